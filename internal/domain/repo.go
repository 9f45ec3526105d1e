package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	Add(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
}

type OrderItemRepository interface {
	// GetByOrderID returns the order's items in insertion order. An empty
	// slice is a valid result.
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	// AddMany persists all items in one bulk write. Empty input is a no-op
	// success.
	AddMany(ctx context.Context, items []OrderItem) error
}

// EventPublisher delivers domain events to the broker, best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}
