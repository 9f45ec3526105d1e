package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/venicelab/orders/internal/domain"
	"github.com/venicelab/orders/internal/observability"
)

//go:generate mockgen -source ../../domain/repo.go -destination mocks_test.go -package query

// CacheTTL bounds how stale a served order view can be.
const CacheTTL = 2 * time.Minute

func CacheKey(id uuid.UUID) string {
	return fmt.Sprintf("order:%s", id)
}

// OrderView is the denormalized read model aggregating both stores. It is
// derived and disposable; losing the cached copy only costs a re-read.
type OrderView struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	CreatedAt  time.Time       `json:"created_at"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Items      []ItemView      `json:"items"`
}

type ItemView struct {
	ID        uuid.UUID       `json:"id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type GetOrderHandler struct {
	orders  domain.OrderRepository
	items   domain.OrderItemRepository
	cache   domain.Cache
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewGetOrderHandler(
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	cache domain.Cache,
	logger *zap.Logger,
	metrics observability.Metrics,
) *GetOrderHandler {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &GetOrderHandler{
		orders:  orders,
		items:   items,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle serves the order view cache-first. Absence is a normal outcome and
// comes back as (nil, nil); not-found results are never cached.
func (h *GetOrderHandler) Handle(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	key := CacheKey(id)

	tCache := time.Now()
	if raw, ok, err := h.cache.Get(ctx, key); err != nil {
		h.logger.Warn("cache read failed, falling through to stores",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
	} else if ok {
		var view OrderView
		if err := json.Unmarshal(raw, &view); err != nil {
			// Corrupt entry; treat as a miss and let the rewrite replace it.
			h.logger.Warn("cache entry not decodable",
				zap.String("order_id", id.String()),
				zap.Error(err),
			)
		} else {
			h.metrics.IncCacheHit()
			h.metrics.ObserveLookup(observability.SourceCache, observability.MsSince(tCache), 0)
			return &view, nil
		}
	}
	h.metrics.IncCacheMiss()
	cacheMs := observability.MsSince(tCache)

	tStore := time.Now()
	order, err := h.orders.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		h.metrics.ObserveLookup(observability.SourceStore, cacheMs, observability.MsSince(tStore))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	items, err := h.items.GetByOrderID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get items for order %s: %w", id, err)
	}

	view := assemble(order, items)

	if raw, err := json.Marshal(view); err != nil {
		h.logger.Warn("order view not encodable for cache",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
	} else if err := h.cache.Set(ctx, key, raw, CacheTTL); err != nil {
		// The read already succeeded; a failed cache write only costs the
		// next caller a store round trip.
		h.logger.Warn("cache write failed",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
	}

	h.metrics.ObserveLookup(observability.SourceStore, cacheMs, observability.MsSince(tStore))
	h.logger.Info("order assembled from stores",
		zap.String("order_id", id.String()),
		zap.Int("item_count", len(view.Items)),
	)
	return view, nil
}

// assemble recomputes each subtotal instead of trusting any stored value.
// Item order follows the item repository's insertion-order contract.
func assemble(order *domain.Order, items []domain.OrderItem) *OrderView {
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, ItemView{
			ID:        it.ID,
			Product:   it.Product,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return &OrderView{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		CreatedAt:  order.CreatedAt,
		Status:     string(order.Status),
		Total:      order.Total,
		Items:      views,
	}
}
