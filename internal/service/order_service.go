package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trendsight-boutique/internal/constants"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/payment/stripe"
	"github.com/trendsight-boutique/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutGateway 托管结账会话网关
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, input stripe.CheckoutInput) (*stripe.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*stripe.SessionDetail, error)
}

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	gateway   CheckoutGateway
	now       func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, gateway CheckoutGateway) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		gateway:   gateway,
		now:       time.Now,
	}
}

// RecordFromCheckout 根据已支付的结账会话落库订单
// 同一会话只会生成一笔订单，重复调用返回已有订单。
func (s *OrderService) RecordFromCheckout(ctx context.Context, sessionID string) (*models.Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrCheckoutSessionID
	}

	existing, err := s.orderRepo.GetByCheckoutSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if s.gateway == nil {
		return nil, ErrCheckoutUnavailable
	}
	detail, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderRecordFailed, err)
	}
	if !detail.Paid() {
		return nil, ErrPaymentNotCompleted
	}

	order, items := s.buildOrder(detail)
	var recorded *models.Order
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		found, err := repo.GetByCheckoutSessionID(sessionID)
		if err != nil {
			return err
		}
		if found != nil {
			recorded = found
			return nil
		}
		if err := repo.Create(order, items); err != nil {
			return err
		}
		recorded = order
		return nil
	})
	if err != nil {
		// 并发落库时唯一索引冲突，以已写入的订单为准
		if found, findErr := s.orderRepo.GetByCheckoutSessionID(sessionID); findErr == nil && found != nil {
			return found, nil
		}
		return nil, err
	}

	logger.Infow("order_recorded",
		"order_id", recorded.ID,
		"order_no", recorded.OrderNo,
		"checkout_session_id", sessionID,
		"total_amount", recorded.TotalAmount.String(),
		"currency", recorded.Currency,
		"item_count", len(recorded.Items),
	)
	return recorded, nil
}

// ListAdmin 后台订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetAdminByID 后台订单详情
func (s *OrderService) GetAdminByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *OrderService) buildOrder(detail *stripe.SessionDetail) (*models.Order, []models.OrderItem) {
	now := s.now()
	paidAt := now
	customerName := strings.TrimSpace(detail.CustomerName)
	shipping := models.JSON{}
	if detail.Shipping != nil {
		if customerName == "" {
			customerName = strings.TrimSpace(detail.Shipping.Name)
		}
		address := detail.Shipping.Address
		shipping = models.JSON{
			"name":        detail.Shipping.Name,
			"line1":       address.Line1,
			"line2":       address.Line2,
			"city":        address.City,
			"state":       address.State,
			"postal_code": address.PostalCode,
			"country":     address.Country,
		}
	}

	items := make([]models.OrderItem, 0, len(detail.LineItems))
	for _, line := range detail.LineItems {
		unitPrice := models.NewMoneyFromDecimal(line.UnitAmount)
		items = append(items, models.OrderItem{
			ProductSlug: strings.TrimSpace(line.ProductRef),
			Name:        strings.TrimSpace(line.Name),
			Image:       strings.TrimSpace(line.Image),
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
			TotalPrice:  unitPrice.Times(line.Quantity),
		})
	}

	order := &models.Order{
		OrderNo:           generateOrderNo(now),
		CheckoutSessionID: detail.ID,
		CustomerEmail:     strings.ToLower(strings.TrimSpace(detail.CustomerEmail)),
		CustomerName:      customerName,
		Status:            constants.OrderStatusProcessing,
		Currency:          strings.ToUpper(strings.TrimSpace(detail.Currency)),
		TotalAmount:       models.NewMoneyFromDecimal(detail.AmountTotal),
		ShippingAddress:   shipping,
		PaidAt:            &paidAt,
	}
	return order, items
}

func generateOrderNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return "TS" + now.Format("20060102") + suffix
}
