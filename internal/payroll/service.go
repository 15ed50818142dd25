// Package payroll computes pay-period records from approved DTR entries.
package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/xxch4nnn/WorkTrack-sub001/constants"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
)

// OvertimeMultiplier applies to minutes worked past the scheduled day.
const OvertimeMultiplier = 1.25

// Schedule is the company working-day parameters a run computes against.
type Schedule struct {
	WorkdayStart     int // minutes from midnight
	ScheduledMinutes int
	GraceMinutes     int
}

func scheduleFor(c *entity.Company) Schedule {
	s := Schedule{
		WorkdayStart:     c.WorkdayStart,
		ScheduledMinutes: c.ScheduledMinutes,
		GraceMinutes:     c.GraceMinutes,
	}
	if s.WorkdayStart <= 0 {
		s.WorkdayStart = constants.DefaultWorkdayStart
	}
	if s.ScheduledMinutes <= 0 {
		s.ScheduledMinutes = constants.DefaultScheduledMinutes
	}
	if s.GraceMinutes < 0 {
		s.GraceMinutes = constants.DefaultGraceMinutes
	}
	return s
}

// DayTally is the per-day outcome of pairing one date with one in/out pair.
type DayTally struct {
	Date            time.Time
	WorkedMinutes   int
	LateMinutes     int
	OvertimeMinutes int
}

// TallyEntry pairs an entry's dates with its time-in/time-out tokens by
// index and tallies each resolvable day. Days whose date or either clock
// token fails to parse are skipped, as are readings where time-out is not
// after time-in (an OCR misread, not a real shift).
func TallyEntry(e *entity.DTREntry, sched Schedule) []DayTally {
	var out []DayTally
	for i, rawDate := range e.Dates {
		if i >= len(e.TimeIn) || i >= len(e.TimeOut) {
			break
		}
		date, ok := ParseDate(rawDate)
		if !ok {
			continue
		}
		in, ok := ParseClock(e.TimeIn[i])
		if !ok {
			continue
		}
		outMin, ok := ParseClock(e.TimeOut[i])
		if !ok || outMin <= in {
			continue
		}

		d := DayTally{Date: date, WorkedMinutes: outMin - in}
		if late := in - (sched.WorkdayStart + sched.GraceMinutes); late > 0 {
			d.LateMinutes = late
		}
		if ot := d.WorkedMinutes - sched.ScheduledMinutes; ot > 0 {
			d.OvertimeMinutes = ot
		}
		out = append(out, d)
	}
	return out
}

// Service runs payroll periods over approved entries.
type Service struct {
	companies repository.CompanyRepository
	employees repository.EmployeeRepository
	entries   repository.DTRRepository
	records   repository.PayrollRepository
	logger    *slog.Logger
}

func NewService(
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	entries repository.DTRRepository,
	records repository.PayrollRepository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		companies: companies,
		employees: employees,
		entries:   entries,
		records:   records,
		logger:    logger,
	}
}

// RunPeriod computes and upserts one payroll record per employee with
// approved entries inside [start, end]. Re-running a period replaces the
// previous records.
func (s *Service) RunPeriod(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*entity.PayrollRecord, error) {
	began := time.Now()

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}
	sched := scheduleFor(company)

	entries, err := s.entries.List(ctx, repository.DTRFilter{
		CompanyID: companyID,
		Status:    string(constants.DTRStatusApproved),
	})
	if err != nil {
		return nil, fmt.Errorf("list approved entries: %w", err)
	}

	// Aggregate tallies per employee; unmatched entries cannot be paid.
	type agg struct {
		days, worked, late, overtime int
	}
	byEmployee := map[uuid.UUID]*agg{}
	for _, e := range entries {
		if e.EmployeeID == nil {
			s.logger.Warn("approved entry has no employee match, skipping", "dtr_id", e.ID)
			continue
		}
		for _, day := range TallyEntry(e, sched) {
			if day.Date.Before(start) || day.Date.After(end) {
				continue
			}
			a := byEmployee[*e.EmployeeID]
			if a == nil {
				a = &agg{}
				byEmployee[*e.EmployeeID] = a
			}
			a.days++
			a.worked += day.WorkedMinutes
			a.late += day.LateMinutes
			a.overtime += day.OvertimeMinutes
		}
	}

	var out []*entity.PayrollRecord
	for employeeID, a := range byEmployee {
		emp, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			return nil, fmt.Errorf("load employee %s: %w", employeeID, err)
		}

		perMinute := emp.DailyRate / float64(sched.ScheduledMinutes)
		gross := emp.DailyRate*float64(a.days) + perMinute*float64(a.overtime)*OvertimeMultiplier
		deductions := perMinute * float64(a.late)

		rec := &entity.PayrollRecord{
			CompanyID:       companyID,
			EmployeeID:      employeeID,
			PeriodStart:     start,
			PeriodEnd:       end,
			DaysWorked:      a.days,
			WorkedMinutes:   a.worked,
			LateMinutes:     a.late,
			OvertimeMinutes: a.overtime,
			GrossPay:        roundCents(gross),
			Deductions:      roundCents(deductions),
		}
		rec.NetPay = roundCents(rec.GrossPay - rec.Deductions)

		saved, err := s.records.Upsert(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("upsert payroll record: %w", err)
		}
		saved.EmployeeCode = emp.EmployeeCode
		saved.EmployeeName = emp.FullName()
		out = append(out, saved)
	}

	// Map iteration order is random; match ListPeriod's ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })

	s.logger.Info("payroll.run.ok",
		"company_id", companyID.String(),
		"period_start", start.Format("2006-01-02"),
		"period_end", end.Format("2006-01-02"),
		"employees", len(out),
		"elapsed_ms", time.Since(began).Milliseconds(),
	)
	return out, nil
}

// ListPeriod returns the stored records of a previously run period.
func (s *Service) ListPeriod(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*entity.PayrollRecord, error) {
	return s.records.ListByPeriod(ctx, companyID, start, end)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
