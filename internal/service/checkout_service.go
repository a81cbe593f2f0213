package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/trendsight-boutique/internal/cart"
	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/payment/stripe"
	"github.com/trendsight-boutique/internal/queue"
)

// stripe 在跳转时替换该占位符
const checkoutSessionPlaceholder = "{CHECKOUT_SESSION_ID}"

// CheckoutConfirmation 结账确认结果
type CheckoutConfirmation struct {
	SessionID     string        `json:"session_id"`
	Status        string        `json:"status"`
	CustomerEmail string        `json:"customer_email"`
	AmountTotal   models.Money  `json:"amount_total"`
	Currency      string        `json:"currency"`
	Queued        bool          `json:"queued"`
	Order         *models.Order `json:"order,omitempty"`
}

// CheckoutService 结账服务：购物车 -> 托管支付会话
type CheckoutService struct {
	cfg          config.CheckoutConfig
	gateway      CheckoutGateway
	queueClient  *queue.Client
	orderService *OrderService
}

// NewCheckoutService 创建结账服务；gateway 为空时结账不可用
func NewCheckoutService(cfg config.CheckoutConfig, gateway CheckoutGateway, queueClient *queue.Client, orderService *OrderService) *CheckoutService {
	return &CheckoutService{
		cfg:          cfg,
		gateway:      gateway,
		queueClient:  queueClient,
		orderService: orderService,
	}
}

// CreateSession 按购物车行创建支付会话
func (s *CheckoutService) CreateSession(ctx context.Context, lines []cart.LineItem) (*stripe.CheckoutSession, error) {
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}
	if s.gateway == nil {
		return nil, ErrCheckoutUnavailable
	}

	inputs := make([]stripe.LineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, stripe.LineInput{
			ProductRef: line.ProductID,
			Name:       checkoutLineName(line),
			ImageURL:   s.absoluteURL(line.ImageRef),
			UnitAmount: line.UnitPrice,
			Quantity:   line.Quantity,
		})
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, stripe.CheckoutInput{
		Lines:                  inputs,
		Currency:               s.cfg.Currency,
		SuccessURL:             s.cfg.AppURL + "/success?session_id=" + checkoutSessionPlaceholder,
		CancelURL:              s.cfg.AppURL + "/cancel",
		PaymentMethodTypes:     s.cfg.PaymentMethodTypes,
		BillingAddressAuto:     true,
		TaxIDCollection:        true,
		BoletoExpiresAfterDays: s.cfg.BoletoExpireDays,
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("checkout_session_created",
		"checkout_session_id", session.ID,
		"line_count", len(inputs),
		"currency", s.cfg.Currency,
	)
	return session, nil
}

// Confirm 确认支付结果；已支付时投递订单落库任务，队列不可用时同步落库
func (s *CheckoutService) Confirm(ctx context.Context, sessionID string) (*CheckoutConfirmation, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrCheckoutSessionID
	}
	if s.gateway == nil {
		return nil, ErrCheckoutUnavailable
	}

	detail, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !detail.Paid() {
		logger.Infow("checkout_not_completed",
			"checkout_session_id", sessionID,
			"status", detail.Status,
			"payment_status", detail.PaymentStatus,
		)
		return nil, ErrPaymentNotCompleted
	}

	result := &CheckoutConfirmation{
		SessionID:     detail.ID,
		Status:        detail.Status,
		CustomerEmail: detail.CustomerEmail,
		AmountTotal:   models.NewMoneyFromDecimal(detail.AmountTotal),
		Currency:      detail.Currency,
	}

	if s.queueClient.Enabled() {
		enqueueErr := s.queueClient.EnqueueOrderRecord(queue.OrderRecordPayload{CheckoutSessionID: detail.ID})
		if enqueueErr == nil {
			result.Queued = true
			logger.Infow("order_record_enqueued", "checkout_session_id", detail.ID)
			return result, nil
		}
		logger.Warnw("order_record_enqueue_failed",
			"checkout_session_id", detail.ID,
			"error", enqueueErr,
		)
	}

	if s.orderService == nil {
		return nil, ErrOrderRecordFailed
	}
	order, err := s.orderService.RecordFromCheckout(ctx, detail.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderRecordFailed, err)
	}
	result.Order = order
	return result, nil
}

func (s *CheckoutService) absoluteURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return s.cfg.AppURL + "/" + strings.TrimLeft(ref, "/")
}

func checkoutLineName(line cart.LineItem) string {
	var variant []string
	if line.Color != "" {
		variant = append(variant, line.Color)
	}
	if line.Size != "" {
		variant = append(variant, line.Size)
	}
	if len(variant) == 0 {
		return line.Name
	}
	return line.Name + " (" + strings.Join(variant, " / ") + ")"
}
