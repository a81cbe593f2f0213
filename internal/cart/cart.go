package cart

import (
	"github.com/trendsight-boutique/internal/constants"

	"github.com/shopspring/decimal"
)

// LineItemInput 加入购物车的候选行
type LineItemInput struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
	Quantity  int
	Color     string
	Size      string
}

// LineItem 购物车行（加入时的商品快照，不随目录变化同步）
type LineItem struct {
	Key       LineKey         `json:"-"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageRef  string          `json:"image"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
}

// LineTotal 行小计
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot 购物车只读视图
type Snapshot struct {
	Lines    []LineItem      `json:"lines"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	IsOpen   bool            `json:"is_open"`
}

// Cart 购物车聚合
//
// Cart 本身不加锁：调用方（会话存储）负责串行化同一购物车的全部访问。
// 所有操作均为全函数，不返回错误。
type Cart struct {
	order  []LineKey
	lines  map[LineKey]*LineItem
	isOpen bool
}

// New 创建空购物车
func New() *Cart {
	return &Cart{
		lines: make(map[LineKey]*LineItem),
	}
}

// clampQuantity 把数量限制在 [1, MaxCartLineQuantity]
func clampQuantity(quantity int) int {
	switch {
	case quantity < 1:
		return 1
	case quantity > constants.MaxCartLineQuantity:
		return constants.MaxCartLineQuantity
	}
	return quantity
}

// Add 加入商品；同一行标识累加数量，不覆盖名称与价格。加入后总是展开购物车。
// 单行数量封顶 MaxCartLineQuantity，累加不会溢出。
func (c *Cart) Add(in LineItemInput) {
	key := NewLineKey(in.ProductID, in.Color, in.Size)
	quantity := clampQuantity(in.Quantity)

	if existing, ok := c.lines[key]; ok {
		if existing.Quantity > constants.MaxCartLineQuantity-quantity {
			existing.Quantity = constants.MaxCartLineQuantity
		} else {
			existing.Quantity += quantity
		}
	} else {
		price := in.UnitPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		c.lines[key] = &LineItem{
			Key:       key,
			ProductID: key.ProductID,
			Name:      in.Name,
			UnitPrice: price,
			ImageRef:  in.ImageRef,
			Color:     key.Color,
			Size:      key.Size,
			Quantity:  quantity,
		}
		c.order = append(c.order, key)
	}
	c.isOpen = true
}

// Remove 删除行；不存在时无操作
func (c *Cart) Remove(key LineKey) {
	if _, ok := c.lines[key]; !ok {
		return
	}
	delete(c.lines, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity 直接设置数量（非增量）；quantity <= 0 等价于 Remove，超过上限按上限处理
func (c *Cart) UpdateQuantity(key LineKey, quantity int) {
	if quantity <= 0 {
		c.Remove(key)
		return
	}
	if line, ok := c.lines[key]; ok {
		line.Quantity = clampQuantity(quantity)
	}
}

// Clear 清空购物车，不改变展开状态
func (c *Cart) Clear() {
	c.order = nil
	c.lines = make(map[LineKey]*LineItem)
}

// Toggle 切换展开状态
func (c *Cart) Toggle() {
	c.isOpen = !c.isOpen
}

// IsOpen 是否展开
func (c *Cart) IsOpen() bool {
	return c.isOpen
}

// Len 不同行的数量
func (c *Cart) Len() int {
	return len(c.order)
}

// Line 按标识读取单行
func (c *Cart) Line(key LineKey) (LineItem, bool) {
	line, ok := c.lines[key]
	if !ok {
		return LineItem{}, false
	}
	return *line, true
}

// Lines 按加入顺序返回行的副本
func (c *Cart) Lines() []LineItem {
	result := make([]LineItem, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, *c.lines[key])
	}
	return result
}

// Count 商品件数合计，每次读取重新计算
func (c *Cart) Count() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal 金额小计（不含运费与税），每次读取重新计算
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Snapshot 生成只读视图
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Lines:    c.Lines(),
		Count:    c.Count(),
		Subtotal: c.Subtotal(),
		IsOpen:   c.isOpen,
	}
}
