package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
)

type ActivityRepository interface {
	Record(ctx context.Context, companyID, recordID *uuid.UUID, actor, action, detail string) error
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]*entity.ActivityLog, error)
}

type activityRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewActivityRepository(pool *pgxpool.Pool, logger *slog.Logger) ActivityRepository {
	return &activityRepository{pool: pool, logger: logger}
}

// Record is best-effort from callers' point of view: workflow stages log
// the error and move on rather than failing the business operation.
func (r *activityRepository) Record(ctx context.Context, companyID, recordID *uuid.UUID, actor, action, detail string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activity_logs (company_id, actor, action, record_id, detail)
		VALUES ($1, $2, $3, $4, $5)`,
		companyID, actor, action, recordID, detail)
	if err != nil {
		r.logger.Error("failed to record activity", "action", action, "error", err)
	}
	return err
}

func (r *activityRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]*entity.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, actor, action, record_id, detail, created_at
		FROM activity_logs
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		companyID, limit)
	if err != nil {
		r.logger.Error("failed to list activity", "company_id", companyID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.ActivityLog
	for rows.Next() {
		var a entity.ActivityLog
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Actor, &a.Action, &a.RecordID, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
