package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a single product line of an order, kept in the document store.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewOrderItem validates before any state is observable: an item with an empty
// product, non-positive quantity or negative price cannot be constructed.
func NewOrderItem(orderID uuid.UUID, product string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if product == "" {
		return nil, &ValidationError{Field: "product", Reason: "must not be empty"}
	}
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if unitPrice.IsNegative() {
		return nil, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	return &OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}

// ReconstructOrderItem rebuilds an item from persisted data. The store is
// trusted; invariants were checked when the item was first constructed.
func ReconstructOrderItem(id, orderID uuid.UUID, product string, quantity int, unitPrice decimal.Decimal) OrderItem {
	return OrderItem{
		ID:        id,
		OrderID:   orderID,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

// Subtotal is always derived, never stored, so it cannot diverge.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
