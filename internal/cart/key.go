package cart

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// ErrKeyInvalid 购物车行标识无法解析
var ErrKeyInvalid = errors.New("cart line key invalid")

// LineKey 购物车行的复合标识（商品 + 颜色 + 尺码）
// 结构体可直接比较，不依赖字符串拼接，避免分隔符冲突
type LineKey struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// NewLineKey 归一化选项后生成行标识，未选择的规格视为空字符串
func NewLineKey(productID, color, size string) LineKey {
	return LineKey{
		ProductID: strings.TrimSpace(productID),
		Color:     strings.TrimSpace(color),
		Size:      strings.TrimSpace(size),
	}
}

// Encode 生成可放入 URL 的行标识令牌（仅用于传输）
func (k LineKey) Encode() string {
	payload, _ := json.Marshal([3]string{k.ProductID, k.Color, k.Size})
	return base64.RawURLEncoding.EncodeToString(payload)
}

// ParseLineKey 解析 Encode 生成的令牌
func ParseLineKey(token string) (LineKey, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return LineKey{}, ErrKeyInvalid
	}
	payload, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return LineKey{}, ErrKeyInvalid
	}
	var parts [3]string
	if err := json.Unmarshal(payload, &parts); err != nil {
		return LineKey{}, ErrKeyInvalid
	}
	key := NewLineKey(parts[0], parts[1], parts[2])
	if key.ProductID == "" {
		return LineKey{}, ErrKeyInvalid
	}
	return key, nil
}
