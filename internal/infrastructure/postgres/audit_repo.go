package postgres

import (
	"context"
	"fmt"

	"logistics-crm/internal/domain/audit"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository appends to the audit_logs table. Rows are never updated
// or deleted by the service.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	const sql = `
		INSERT INTO audit_logs (user_id, endpoint, payload_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := executor(ctx, r.pool).Exec(ctx, sql,
		e.UserID, e.Endpoint, e.PayloadHash, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}
