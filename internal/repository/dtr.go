package repository

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xxch4nnn/WorkTrack-sub001/constants"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
)

// CreateDTREntry carries a freshly extracted (or hand-typed) record.
type CreateDTREntry struct {
	CompanyID      uuid.UUID
	EmployeeID     *uuid.UUID
	EmployeeCode   string
	EmployeeName   string
	Dates          []string
	TimeIn         []string
	TimeOut        []string
	DetectedFormat string
	Confidence     float32
	NeedsReview    bool
	SourcePath     *string
}

// DTRFilter narrows List results; zero values mean "any".
type DTRFilter struct {
	CompanyID   uuid.UUID
	EmployeeID  *uuid.UUID
	Status      string
	NeedsReview *bool
}

type DTRRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DTREntry, error)
	Create(ctx context.Context, e *CreateDTREntry) (*entity.DTREntry, error)
	List(ctx context.Context, f DTRFilter) ([]*entity.DTREntry, error)
	SetStatus(ctx context.Context, id uuid.UUID, status constants.DTRStatus, actor string, reason *string) (*entity.DTREntry, error)
	SetEmployee(ctx context.Context, id, employeeID uuid.UUID) error
}

type dtrRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDTRRepository(pool *pgxpool.Pool, logger *slog.Logger) DTRRepository {
	return &dtrRepository{pool: pool, logger: logger}
}

const dtrColumns = `id, company_id, employee_id, employee_code, employee_name, dates, time_in, time_out,
	detected_format, confidence, needs_review, status, source_path, approved_by, approved_at,
	rejection_reason, created_at, updated_at`

func scanDTR(row pgx.Row) (*entity.DTREntry, error) {
	var e entity.DTREntry
	err := row.Scan(&e.ID, &e.CompanyID, &e.EmployeeID, &e.EmployeeCode, &e.EmployeeName,
		&e.Dates, &e.TimeIn, &e.TimeOut, &e.DetectedFormat, &e.Confidence, &e.NeedsReview,
		&e.Status, &e.SourcePath, &e.ApprovedBy, &e.ApprovedAt, &e.RejectionReason,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *dtrRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DTREntry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+dtrColumns+` FROM dtr_entries WHERE id = $1`, id)
	e, err := scanDTR(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("DTR_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	return e, err
}

func (r *dtrRepository) Create(ctx context.Context, e *CreateDTREntry) (*entity.DTREntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO dtr_entries (company_id, employee_id, employee_code, employee_name, dates,
			time_in, time_out, detected_format, confidence, needs_review, source_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+dtrColumns,
		e.CompanyID, e.EmployeeID, e.EmployeeCode, e.EmployeeName, e.Dates,
		e.TimeIn, e.TimeOut, e.DetectedFormat, e.Confidence, e.NeedsReview, e.SourcePath)
	created, err := scanDTR(row)
	if err != nil {
		r.logger.Error("failed to create dtr entry", "company_id", e.CompanyID, "error", err)
		return nil, err
	}
	return created, nil
}

func (r *dtrRepository) List(ctx context.Context, f DTRFilter) ([]*entity.DTREntry, error) {
	q := `SELECT ` + dtrColumns + ` FROM dtr_entries WHERE company_id = $1`
	args := []any{f.CompanyID}
	if f.EmployeeID != nil {
		args = append(args, *f.EmployeeID)
		q += ` AND employee_id = $2`
	}
	if f.Status != "" {
		args = append(args, f.Status)
		q += ` AND status = $` + strconv.Itoa(len(args))
	}
	if f.NeedsReview != nil {
		args = append(args, *f.NeedsReview)
		q += ` AND needs_review = $` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to list dtr entries", "company_id", f.CompanyID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.DTREntry
	for rows.Next() {
		e, err := scanDTR(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *dtrRepository) SetStatus(ctx context.Context, id uuid.UUID, status constants.DTRStatus, actor string, reason *string) (*entity.DTREntry, error) {
	var approvedBy *string
	var approvedAt *time.Time
	if status == constants.DTRStatusApproved {
		now := time.Now().UTC()
		approvedBy, approvedAt = &actor, &now
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE dtr_entries
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+dtrColumns,
		id, string(status), approvedBy, approvedAt, reason)
	e, err := scanDTR(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("DTR_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to update dtr status", "dtr_id", id, "status", status, "error", err)
	}
	return e, err
}

func (r *dtrRepository) SetEmployee(ctx context.Context, id, employeeID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE dtr_entries SET employee_id = $2, updated_at = now() WHERE id = $1`,
		id, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewAppError("DTR_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	return nil
}

