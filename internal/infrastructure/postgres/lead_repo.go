package postgres

import (
	"context"
	"errors"
	"fmt"

	"logistics-crm/internal/domain/lead"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeadRepository struct {
	pool *pgxpool.Pool
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	const sql = `
		INSERT INTO leads (
			id, name, phone, email,
			origin_zip, dest_zip, vehicle_type, operable,
			created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := executor(ctx, r.pool).Exec(ctx, sql,
		l.ID, l.Name, l.Phone, l.Email,
		l.OriginZip, l.DestZip, l.VehicleType, l.Operable,
		nullIfEmptyText(l.CreatedBy), l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*lead.Lead, error) {
	const sql = `
		SELECT
			id, name, phone, email,
			origin_zip, dest_zip, vehicle_type, operable,
			COALESCE(created_by, ''), created_at, updated_at
		FROM leads
		WHERE id = $1
	`

	var l lead.Lead
	err := executor(ctx, r.pool).QueryRow(ctx, sql, id).Scan(
		&l.ID, &l.Name, &l.Phone, &l.Email,
		&l.OriginZip, &l.DestZip, &l.VehicleType, &l.Operable,
		&l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead by id: %w", err)
	}

	return &l, nil
}

func (r *LeadRepository) List(ctx context.Context, f lead.Filter) ([]*lead.Lead, error) {
	sql := `
		SELECT
			id, name, phone, email,
			origin_zip, dest_zip, vehicle_type, operable,
			COALESCE(created_by, ''), created_at, updated_at
		FROM leads
		WHERE created_by = $1
	`
	args := []any{f.CreatedBy}

	if f.OriginZip != "" {
		args = append(args, "%"+f.OriginZip+"%")
		sql += fmt.Sprintf(" AND origin_zip ILIKE $%d", len(args))
	}
	if f.DestZip != "" {
		args = append(args, "%"+f.DestZip+"%")
		sql += fmt.Sprintf(" AND dest_zip ILIKE $%d", len(args))
	}
	if f.VehicleType != "" {
		args = append(args, f.VehicleType)
		sql += fmt.Sprintf(" AND vehicle_type = $%d", len(args))
	}
	if f.Operable != nil {
		args = append(args, *f.Operable)
		sql += fmt.Sprintf(" AND operable = $%d", len(args))
	}

	args = append(args, f.Limit)
	sql += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	sql += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := executor(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []*lead.Lead
	for rows.Next() {
		var l lead.Lead
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Phone, &l.Email,
			&l.OriginZip, &l.DestZip, &l.VehicleType, &l.Operable,
			&l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, &l)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	const sql = `
		UPDATE leads
		SET name = $2, phone = $3, email = $4,
		    origin_zip = $5, dest_zip = $6, vehicle_type = $7, operable = $8,
		    updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := executor(ctx, r.pool).Exec(ctx, sql,
		l.ID, l.Name, l.Phone, l.Email,
		l.OriginZip, l.DestZip, l.VehicleType, l.Operable)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	const sql = `DELETE FROM leads WHERE id = $1`

	cmdTag, err := executor(ctx, r.pool).Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
