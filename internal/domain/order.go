package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

// Order is the aggregate-level order record kept in Postgres.
// Items live separately in the document store and reference it by OrderID.
type Order struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	CreatedAt  time.Time       `json:"created_at"`
	Status     Status          `json:"status"`
	Total      decimal.Decimal `json:"total"`
}

func NewOrder(customerID uuid.UUID) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, &ValidationError{Field: "customer_id", Reason: "is required"}
	}
	return &Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		CreatedAt:  time.Now().UTC(),
		Status:     StatusPending,
		Total:      decimal.Zero,
	}, nil
}

func (o *Order) SetTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return &ValidationError{Field: "total", Reason: "must not be negative"}
	}
	o.Total = total
	return nil
}

func (o *Order) UpdateStatus(s Status) {
	o.Status = s
}
