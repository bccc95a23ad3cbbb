package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/OnSightTeam/ordersvc/internal/discount"
	"github.com/OnSightTeam/ordersvc/internal/metrics"
	"github.com/OnSightTeam/ordersvc/internal/models"
	"github.com/OnSightTeam/ordersvc/internal/pricing"
)

var (
	ErrMissingCustomer = errors.New("customer name is required")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must not be negative")
)

// OrderStore interface for order persistence
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
}

// DiscountSource interface for discount code lookup
type DiscountSource interface {
	Lookup(ctx context.Context, code string) (discount.Discount, bool)
}

// Notifier delivers the order receipt to the customer.
type Notifier interface {
	SendOrderReceipt(ctx context.Context, email string, total float64) error
}

// OrderEvents publishes order lifecycle events.
type OrderEvents interface {
	OrderProcessed(ctx context.Context, order *models.Order, req *models.OrderRequest)
}

// OrderService handles order business logic
type OrderService struct {
	store    OrderStore
	codes    DiscountSource
	notifier Notifier
	events   OrderEvents
	metrics  *metrics.Registry
	schedule *pricing.Schedule
	log      *slog.Logger
}

// NewOrderService creates a new order service. The notifier and events
// collaborators are optional; pass nil to disable them. A nil metrics
// registry is replaced with a private one.
func NewOrderService(store OrderStore, codes DiscountSource, notifier Notifier, events OrderEvents, m *metrics.Registry, log *slog.Logger) *OrderService {
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &OrderService{
		store:    store,
		codes:    codes,
		notifier: notifier,
		events:   events,
		metrics:  m,
		schedule: pricing.NewSchedule(),
		log:      log,
	}
}

// ProcessOrder prices the order, persists it and emits the follow-up side
// effects. Unknown discount codes and order types do not fail the order;
// they leave the price unchanged.
func (s *OrderService) ProcessOrder(ctx context.Context, req models.OrderRequest) (*models.Receipt, error) {
	start := time.Now()
	defer func() { s.metrics.ProcessLatency.Observe(time.Since(start).Seconds()) }()

	if err := validateRequest(req); err != nil {
		s.metrics.OrderFailures.Inc()
		return nil, err
	}

	var codePercent int64
	if req.DiscountCode != "" && s.codes != nil {
		if d, ok := s.codes.Lookup(ctx, req.DiscountCode); ok {
			codePercent = d.Percent
		} else {
			s.log.DebugContext(ctx, "unknown discount code ignored", "code", req.DiscountCode)
		}
	}

	quote := s.schedule.Quote(req.Items, req.OrderType, codePercent)

	order := &models.Order{
		Customer: req.CustomerName,
		Total:    quote.Total,
		Date:     time.Now().UTC(),
	}
	if err := s.store.Create(ctx, order); err != nil {
		s.metrics.OrderFailures.Inc()
		return nil, fmt.Errorf("save order: %w", err)
	}

	// The order is committed at this point; notification or publishing
	// trouble must not fail the request.
	if s.notifier != nil {
		if err := s.notifier.SendOrderReceipt(ctx, req.Email, order.Total); err != nil {
			s.log.WarnContext(ctx, "order receipt notification failed", "order_id", order.ID, "error", err)
		} else {
			s.metrics.ReceiptsSent.Inc()
		}
	}
	if s.events != nil {
		s.events.OrderProcessed(ctx, order, &req)
	}

	s.metrics.OrdersProcessed.Inc()
	if quote.TierDiscount > 0 {
		s.metrics.TierDiscounts.Inc()
	}
	if quote.CodeDiscount > 0 {
		s.metrics.CodeDiscounts.Inc()
	}

	s.log.InfoContext(ctx, "order processed",
		"order_id", order.ID,
		"customer", order.Customer,
		"order_type", string(req.OrderType),
		"total", order.Total,
	)

	return &models.Receipt{
		OrderID:   order.ID,
		Customer:  order.Customer,
		Total:     order.Total,
		Timestamp: order.Date,
	}, nil
}

// GetOrder returns one stored order by id.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.store.GetByID(ctx, id)
}

func validateRequest(req models.OrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return ErrMissingCustomer
	}
	if len(req.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if item.Price < 0 {
			return ErrInvalidPrice
		}
	}
	return nil
}
