package service

import (
	"context"
	"errors"
	"strings"

	"github.com/trendsight-boutique/internal/cart"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/session"
)

// CartLineDetail 购物车行（用于响应）
type CartLineDetail struct {
	Key       string       `json:"key"`
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	Color     string       `json:"color"`
	Size      string       `json:"size"`
	UnitPrice models.Money `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	LineTotal models.Money `json:"line_total"`
}

// CartDetail 购物车视图
type CartDetail struct {
	Lines    []CartLineDetail `json:"lines"`
	Count    int              `json:"count"`
	Subtotal models.Money     `json:"subtotal"`
	IsOpen   bool             `json:"is_open"`
}

// AddCartItemInput 加入购物车输入；名称、价格、图片由目录解析
type AddCartItemInput struct {
	ProductID string
	Quantity  int
	Color     string
	Size      string
}

// CartService 访客购物车服务
type CartService struct {
	store   *session.Store
	catalog *CatalogService
}

// NewCartService 创建购物车服务
func NewCartService(store *session.Store, catalog *CatalogService) *CartService {
	return &CartService{
		store:   store,
		catalog: catalog,
	}
}

// Get 读取购物车
func (s *CartService) Get(sessionID string) CartDetail {
	var snapshot cart.Snapshot
	s.store.Do(sessionID, func(c *cart.Cart) {
		snapshot = c.Snapshot()
	})
	return toCartDetail(snapshot)
}

// Lines 读取购物车行（结账使用）
func (s *CartService) Lines(sessionID string) []cart.LineItem {
	var lines []cart.LineItem
	s.store.Do(sessionID, func(c *cart.Cart) {
		lines = c.Lines()
	})
	return lines
}

// AddItem 加入商品；商品不存在或已下架时返回 ErrProductNotAvailable
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddCartItemInput) (CartDetail, error) {
	product, err := s.catalog.GetPublic(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CartDetail{}, ErrProductNotAvailable
		}
		return CartDetail{}, err
	}

	candidate := cart.LineItemInput{
		ProductID: product.Slug,
		Name:      product.Name,
		UnitPrice: product.PriceAmount.Decimal,
		ImageRef:  product.Image,
		Quantity:  input.Quantity,
		Color:     strings.TrimSpace(input.Color),
		Size:      strings.TrimSpace(input.Size),
	}
	key := cart.NewLineKey(candidate.ProductID, candidate.Color, candidate.Size)
	var (
		snapshot cart.Snapshot
		applied  int
	)
	s.store.Do(sessionID, func(c *cart.Cart) {
		before, _ := c.Line(key)
		c.Add(candidate)
		after, _ := c.Line(key)
		applied = after.Quantity - before.Quantity
		snapshot = c.Snapshot()
	})
	logger.Infow("cart_item_added",
		"session_id", sessionID,
		"product_id", candidate.ProductID,
		"color", key.Color,
		"size", key.Size,
		"quantity", applied,
		"cart_count", snapshot.Count,
	)
	return toCartDetail(snapshot), nil
}

// UpdateQuantity 直接设置数量，数量 <= 0 时删除该行
func (s *CartService) UpdateQuantity(sessionID string, key cart.LineKey, quantity int) CartDetail {
	var snapshot cart.Snapshot
	s.store.Do(sessionID, func(c *cart.Cart) {
		c.UpdateQuantity(key, quantity)
		snapshot = c.Snapshot()
	})
	logger.Debugw("cart_item_quantity_updated",
		"session_id", sessionID,
		"product_id", key.ProductID,
		"quantity", quantity,
	)
	return toCartDetail(snapshot)
}

// Remove 删除行，幂等
func (s *CartService) Remove(sessionID string, key cart.LineKey) CartDetail {
	var snapshot cart.Snapshot
	s.store.Do(sessionID, func(c *cart.Cart) {
		c.Remove(key)
		snapshot = c.Snapshot()
	})
	logger.Debugw("cart_item_removed", "session_id", sessionID, "product_id", key.ProductID)
	return toCartDetail(snapshot)
}

// Clear 清空购物车
func (s *CartService) Clear(sessionID string) CartDetail {
	var snapshot cart.Snapshot
	s.store.Do(sessionID, func(c *cart.Cart) {
		c.Clear()
		snapshot = c.Snapshot()
	})
	logger.Infow("cart_cleared", "session_id", sessionID)
	return toCartDetail(snapshot)
}

// Reset 丢弃整个会话购物车（行与展开状态），用于支付完成后
func (s *CartService) Reset(sessionID string) {
	s.store.Drop(sessionID)
	logger.Infow("cart_session_reset", "session_id", sessionID)
}

// Toggle 切换购物车展开状态
func (s *CartService) Toggle(sessionID string) CartDetail {
	var snapshot cart.Snapshot
	s.store.Do(sessionID, func(c *cart.Cart) {
		c.Toggle()
		snapshot = c.Snapshot()
	})
	return toCartDetail(snapshot)
}

func toCartDetail(snapshot cart.Snapshot) CartDetail {
	lines := make([]CartLineDetail, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		lines = append(lines, CartLineDetail{
			Key:       line.Key.Encode(),
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.ImageRef,
			Color:     line.Color,
			Size:      line.Size,
			UnitPrice: models.NewMoneyFromDecimal(line.UnitPrice),
			Quantity:  line.Quantity,
			LineTotal: models.NewMoneyFromDecimal(line.LineTotal()),
		})
	}
	return CartDetail{
		Lines:    lines,
		Count:    snapshot.Count,
		Subtotal: models.NewMoneyFromDecimal(snapshot.Subtotal),
		IsOpen:   snapshot.IsOpen,
	}
}
