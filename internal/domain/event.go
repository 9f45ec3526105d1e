package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is the immutable snapshot published for downstream
// billing once per successful order creation.
type OrderCreatedEvent struct {
	OrderID    uuid.UUID       `json:"order_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	OrderDate  time.Time       `json:"order_date"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewOrderCreatedEvent(o *Order, itemCount int) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		OrderDate:  o.CreatedAt,
		Total:      o.Total,
		ItemCount:  itemCount,
		CreatedAt:  time.Now().UTC(),
	}
}
