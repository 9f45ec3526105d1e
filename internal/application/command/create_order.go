package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/venicelab/orders/internal/domain"
	"github.com/venicelab/orders/internal/observability"
)

//go:generate mockgen -source ../../domain/repo.go -destination mocks_test.go -package command

var (
	// ErrItemsNotPersisted means the header row exists without its items.
	// No compensating delete is attempted; the order stays durable and the
	// gap is left to out-of-band reconciliation.
	ErrItemsNotPersisted = errors.New("order items not persisted")

	// ErrEventNotPublished means the order was fully persisted but the
	// billing notification did not go out. The caller gets the order id
	// together with this error.
	ErrEventNotPublished = errors.New("order created event not published")
)

type ItemInput struct {
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
}

type CreateOrderInput struct {
	CustomerID uuid.UUID
	Items      []ItemInput
}

type CreateOrderResult struct {
	OrderID uuid.UUID
}

type CreateOrderHandler struct {
	orders    domain.OrderRepository
	items     domain.OrderItemRepository
	publisher domain.EventPublisher
	logger    *zap.Logger
	metrics   observability.Metrics
}

func NewCreateOrderHandler(
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	publisher domain.EventPublisher,
	logger *zap.Logger,
	metrics observability.Metrics,
) *CreateOrderHandler {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &CreateOrderHandler{
		orders:    orders,
		items:     items,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Handle creates the order across both stores and publishes the creation
// event. Validation happens entirely before the first write; after the header
// insert the order is durable and later step failures are reported without
// rolling it back.
func (h *CreateOrderHandler) Handle(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	order, err := domain.NewOrder(in.CustomerID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, line := range in.Items {
		item, err := domain.NewOrderItem(order.ID, line.Product, line.Quantity, line.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
		total = total.Add(item.Subtotal())
	}

	// Cannot be negative with validated inputs; the aggregate checks anyway.
	if err := order.SetTotal(total); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tHeader := time.Now()
	if err := h.orders.Add(ctx, order); err != nil {
		h.logger.Error("order header insert failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		h.metrics.ObserveCreate(observability.CreateFailed, observability.MsSince(tHeader), 0, 0)
		return nil, fmt.Errorf("add order: %w", err)
	}
	headerMs := observability.MsSince(tHeader)

	// The header is the durability boundary. A cancellation from here on is
	// reported as a failure, not rolled back.
	tItems := time.Now()
	if err := h.items.AddMany(ctx, items); err != nil {
		h.logger.Error("order items write failed, header already durable",
			zap.String("order_id", order.ID.String()),
			zap.Int("item_count", len(items)),
			zap.Error(err),
		)
		h.metrics.ObserveCreate(observability.CreatePartial, headerMs, observability.MsSince(tItems), 0)
		return nil, fmt.Errorf("%w: %v", ErrItemsNotPersisted, err)
	}
	itemsMs := observability.MsSince(tItems)

	event := domain.NewOrderCreatedEvent(order, len(items))
	tPublish := time.Now()
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("order created but event publish failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		h.metrics.ObserveCreate(observability.CreatePartial, headerMs, itemsMs, observability.MsSince(tPublish))
		return &CreateOrderResult{OrderID: order.ID}, fmt.Errorf("%w: %v", ErrEventNotPublished, err)
	}

	h.metrics.ObserveCreate(observability.CreateOK, headerMs, itemsMs, observability.MsSince(tPublish))
	h.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID.String()),
		zap.String("total", order.Total.String()),
		zap.Int("item_count", len(items)),
	)
	return &CreateOrderResult{OrderID: order.ID}, nil
}
