package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
)

// CreateCompany carries the writable fields of a company record.
type CreateCompany struct {
	Name             string
	Address          *string
	WorkdayStart     int
	ScheduledMinutes int
	GraceMinutes     int
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	Create(ctx context.Context, c *CreateCompany) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type companyRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCompanyRepository(pool *pgxpool.Pool, logger *slog.Logger) CompanyRepository {
	return &companyRepository{pool: pool, logger: logger}
}

const companyColumns = `id, name, address, workday_start, scheduled_minutes, grace_minutes, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.WorkdayStart, &c.ScheduledMinutes, &c.GraceMinutes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("COMPANY_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	return c, err
}

func (r *companyRepository) Create(ctx context.Context, c *CreateCompany) (*entity.Company, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO companies (name, address, workday_start, scheduled_minutes, grace_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		c.Name, c.Address, c.WorkdayStart, c.ScheduledMinutes, c.GraceMinutes)
	created, err := scanCompany(row)
	if err != nil {
		r.logger.Error("failed to create company", "name", c.Name, "error", err)
		return nil, err
	}
	return created, nil
}

func (r *companyRepository) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at`)
	if err != nil {
		r.logger.Error("failed to list companies", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *companyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check company existence", "company_id", id, "error", err)
		return false, err
	}
	return exists, nil
}
