package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
)

// CreateEmployee carries the writable fields of an employee record.
type CreateEmployee struct {
	CompanyID    uuid.UUID
	EmployeeCode string
	FirstName    string
	LastName     string
	Position     *string
	DailyRate    float64
	HiredAt      *time.Time
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetByCode(ctx context.Context, companyID uuid.UUID, code string) (*entity.Employee, error)
	Create(ctx context.Context, e *CreateEmployee) (*entity.Employee, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.Employee, error)
}

type employeeRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewEmployeeRepository(pool *pgxpool.Pool, logger *slog.Logger) EmployeeRepository {
	return &employeeRepository{pool: pool, logger: logger}
}

const employeeColumns = `id, company_id, employee_code, first_name, last_name, position, daily_rate, active, hired_at, created_at, updated_at`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.CompanyID, &e.EmployeeCode, &e.FirstName, &e.LastName,
		&e.Position, &e.DailyRate, &e.Active, &e.HiredAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("EMPLOYEE_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	return e, err
}

// GetByCode matches the human-facing code printed on DTR sheets,
// case-insensitively, within one company.
func (r *employeeRepository) GetByCode(ctx context.Context, companyID uuid.UUID, code string) (*entity.Employee, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 AND lower(employee_code) = lower($2)`,
		companyID, code)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("EMPLOYEE_NOT_FOUND", code, common.ErrNotFound)
	}
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, e *CreateEmployee) (*entity.Employee, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO employees (company_id, employee_code, first_name, last_name, position, daily_rate, hired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+employeeColumns,
		e.CompanyID, e.EmployeeCode, e.FirstName, e.LastName, e.Position, e.DailyRate, e.HiredAt)
	created, err := scanEmployee(row)
	if err != nil {
		r.logger.Error("failed to create employee", "employee_code", e.EmployeeCode, "error", err)
		return nil, err
	}
	return created, nil
}

func (r *employeeRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.Employee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 ORDER BY employee_code`,
		companyID)
	if err != nil {
		r.logger.Error("failed to list employees", "company_id", companyID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
