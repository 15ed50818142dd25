package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
)

type PayrollRepository interface {
	// Upsert writes one computed record, replacing a previous run for the
	// same employee and period.
	Upsert(ctx context.Context, rec *entity.PayrollRecord) (*entity.PayrollRecord, error)
	ListByPeriod(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*entity.PayrollRecord, error)
}

type payrollRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPayrollRepository(pool *pgxpool.Pool, logger *slog.Logger) PayrollRepository {
	return &payrollRepository{pool: pool, logger: logger}
}

const payrollColumns = `id, company_id, employee_id, period_start, period_end, days_worked,
	worked_minutes, late_minutes, overtime_minutes, gross_pay, deductions, net_pay, created_at, updated_at`

func scanPayroll(row pgx.Row) (*entity.PayrollRecord, error) {
	var p entity.PayrollRecord
	err := row.Scan(&p.ID, &p.CompanyID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd,
		&p.DaysWorked, &p.WorkedMinutes, &p.LateMinutes, &p.OvertimeMinutes,
		&p.GrossPay, &p.Deductions, &p.NetPay, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *payrollRepository) Upsert(ctx context.Context, rec *entity.PayrollRecord) (*entity.PayrollRecord, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payroll_records (company_id, employee_id, period_start, period_end, days_worked,
			worked_minutes, late_minutes, overtime_minutes, gross_pay, deductions, net_pay)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id, period_start, period_end) DO UPDATE SET
			days_worked = EXCLUDED.days_worked,
			worked_minutes = EXCLUDED.worked_minutes,
			late_minutes = EXCLUDED.late_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			gross_pay = EXCLUDED.gross_pay,
			deductions = EXCLUDED.deductions,
			net_pay = EXCLUDED.net_pay,
			updated_at = now()
		RETURNING `+payrollColumns,
		rec.CompanyID, rec.EmployeeID, rec.PeriodStart, rec.PeriodEnd, rec.DaysWorked,
		rec.WorkedMinutes, rec.LateMinutes, rec.OvertimeMinutes, rec.GrossPay, rec.Deductions, rec.NetPay)
	saved, err := scanPayroll(row)
	if err != nil {
		r.logger.Error("failed to upsert payroll record", "employee_id", rec.EmployeeID, "error", err)
		return nil, err
	}
	return saved, nil
}

// ListByPeriod resolves employee code and name alongside each record for
// display and export.
func (r *payrollRepository) ListByPeriod(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*entity.PayrollRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.company_id, p.employee_id, p.period_start, p.period_end, p.days_worked,
			p.worked_minutes, p.late_minutes, p.overtime_minutes, p.gross_pay, p.deductions, p.net_pay,
			p.created_at, p.updated_at, e.employee_code, e.first_name || ' ' || e.last_name
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.company_id = $1 AND p.period_start = $2 AND p.period_end = $3
		ORDER BY e.employee_code`,
		companyID, start, end)
	if err != nil {
		r.logger.Error("failed to list payroll records", "company_id", companyID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.PayrollRecord
	for rows.Next() {
		var p entity.PayrollRecord
		err := rows.Scan(&p.ID, &p.CompanyID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd,
			&p.DaysWorked, &p.WorkedMinutes, &p.LateMinutes, &p.OvertimeMinutes,
			&p.GrossPay, &p.Deductions, &p.NetPay, &p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeCode, &p.EmployeeName)
		if err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
