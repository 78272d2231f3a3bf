package postgres

import (
	"context"
	"errors"
	"fmt"

	"logistics-crm/internal/domain/order"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const sql = `
		INSERT INTO orders (
			id, lead_id, status, base_price, final_price, notes,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := executor(ctx, r.pool).Exec(ctx, sql,
		o.ID, o.LeadID, o.Status, o.BasePrice, o.FinalPrice,
		nullIfEmptyText(o.Notes), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	const sql = `
		SELECT
			id, lead_id, status, base_price, final_price,
			COALESCE(notes, ''), created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o order.Order
	err := executor(ctx, r.pool).QueryRow(ctx, sql, id).Scan(
		&o.ID, &o.LeadID, &o.Status, &o.BasePrice, &o.FinalPrice,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, f order.Filter) ([]*order.Order, error) {
	sql := `
		SELECT
			id, lead_id, status, base_price, final_price,
			COALESCE(notes, ''), created_at, updated_at
		FROM orders
		WHERE 1=1
	`
	var args []any

	if f.LeadID != "" {
		args = append(args, f.LeadID)
		sql += fmt.Sprintf(" AND lead_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		sql += fmt.Sprintf(" AND status = $%d", len(args))
	}

	args = append(args, f.Limit)
	sql += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	sql += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := executor(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(
			&o.ID, &o.LeadID, &o.Status, &o.BasePrice, &o.FinalPrice,
			&o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}

	return orders, rows.Err()
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	const sql = `
		UPDATE orders
		SET status = $2, base_price = $3, final_price = $4, notes = $5,
		    updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := executor(ctx, r.pool).Exec(ctx, sql,
		o.ID, o.Status, o.BasePrice, o.FinalPrice, nullIfEmptyText(o.Notes))
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	const sql = `DELETE FROM orders WHERE id = $1`

	cmdTag, err := executor(ctx, r.pool).Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
