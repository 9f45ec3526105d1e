package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/venicelab/orders/internal/domain"
)

// OrderRepo persists order headers in Postgres. Items are not its concern;
// they live in the document store.
type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgx ping: %w", err)
	}
	return pool, nil
}

func (r *OrderRepo) Add(ctx context.Context, o *domain.Order) error {
	// Totals travel as text so NUMERIC(18,2) round-trips without float drift.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO orders (id, customer_id, created_at, status, total)
		VALUES ($1, $2, $3, $4, $5)
	`, o.ID, o.CustomerID, o.CreatedAt, string(o.Status), o.Total.String())
	return err
}

func (r *OrderRepo) Update(ctx context.Context, o *domain.Order) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET status=$2, total=$3 WHERE id=$1
	`, o.ID, string(o.Status), o.Total.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
		total  string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, created_at, status, total
		FROM orders WHERE id=$1
	`, id).Scan(&o.ID, &o.CustomerID, &o.CreatedAt, &status, &total)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	o.Status = domain.Status(status)
	o.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("order %s has malformed total %q: %w", id, total, err)
	}
	return &o, nil
}
