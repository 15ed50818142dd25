// Package repotest provides in-memory repository implementations for
// tests that exercise services and handlers without a database.
package repotest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xxch4nnn/WorkTrack-sub001/constants"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
)

type Companies struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Company
}

func NewCompanies() *Companies {
	return &Companies{rows: map[uuid.UUID]*entity.Company{}}
}

func (f *Companies) Add(c *entity.Company) *entity.Company {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.rows[c.ID] = c
	return c
}

func (f *Companies) GetByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.rows[id]; ok {
		return c, nil
	}
	return nil, common.NewAppError("COMPANY_NOT_FOUND", id.String(), common.ErrNotFound)
}

func (f *Companies) Create(_ context.Context, c *repository.CreateCompany) (*entity.Company, error) {
	now := time.Now().UTC()
	return f.Add(&entity.Company{
		ID:               uuid.New(),
		Name:             c.Name,
		Address:          c.Address,
		WorkdayStart:     c.WorkdayStart,
		ScheduledMinutes: c.ScheduledMinutes,
		GraceMinutes:     c.GraceMinutes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}), nil
}

func (f *Companies) List(_ context.Context) ([]*entity.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Company, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	return out, nil
}

func (f *Companies) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	return ok, nil
}

type Employees struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Employee
}

func NewEmployees() *Employees {
	return &Employees{rows: map[uuid.UUID]*entity.Employee{}}
}

func (f *Employees) Add(e *entity.Employee) *entity.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.rows[e.ID] = e
	return e
}

func (f *Employees) GetByID(_ context.Context, id uuid.UUID) (*entity.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.rows[id]; ok {
		return e, nil
	}
	return nil, common.NewAppError("EMPLOYEE_NOT_FOUND", id.String(), common.ErrNotFound)
}

func (f *Employees) GetByCode(_ context.Context, companyID uuid.UUID, code string) (*entity.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.rows {
		if e.CompanyID == companyID && strings.EqualFold(e.EmployeeCode, code) {
			return e, nil
		}
	}
	return nil, common.NewAppError("EMPLOYEE_NOT_FOUND", code, common.ErrNotFound)
}

func (f *Employees) Create(_ context.Context, e *repository.CreateEmployee) (*entity.Employee, error) {
	now := time.Now().UTC()
	return f.Add(&entity.Employee{
		ID:           uuid.New(),
		CompanyID:    e.CompanyID,
		EmployeeCode: e.EmployeeCode,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Position:     e.Position,
		DailyRate:    e.DailyRate,
		Active:       true,
		HiredAt:      e.HiredAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}), nil
}

func (f *Employees) ListByCompany(_ context.Context, companyID uuid.UUID) ([]*entity.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Employee
	for _, e := range f.rows {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

type DTREntries struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.DTREntry
}

func NewDTREntries() *DTREntries {
	return &DTREntries{rows: map[uuid.UUID]*entity.DTREntry{}}
}

func (f *DTREntries) Add(e *entity.DTREntry) *entity.DTREntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = string(constants.DTRStatusPending)
	}
	f.rows[e.ID] = e
	return e
}

func (f *DTREntries) GetByID(_ context.Context, id uuid.UUID) (*entity.DTREntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.rows[id]; ok {
		return e, nil
	}
	return nil, common.NewAppError("DTR_NOT_FOUND", id.String(), common.ErrNotFound)
}

func (f *DTREntries) Create(_ context.Context, e *repository.CreateDTREntry) (*entity.DTREntry, error) {
	now := time.Now().UTC()
	return f.Add(&entity.DTREntry{
		ID:             uuid.New(),
		CompanyID:      e.CompanyID,
		EmployeeID:     e.EmployeeID,
		EmployeeCode:   e.EmployeeCode,
		EmployeeName:   e.EmployeeName,
		Dates:          e.Dates,
		TimeIn:         e.TimeIn,
		TimeOut:        e.TimeOut,
		DetectedFormat: e.DetectedFormat,
		Confidence:     e.Confidence,
		NeedsReview:    e.NeedsReview,
		Status:         string(constants.DTRStatusPending),
		SourcePath:     e.SourcePath,
		CreatedAt:      now,
		UpdatedAt:      now,
	}), nil
}

func (f *DTREntries) List(_ context.Context, filter repository.DTRFilter) ([]*entity.DTREntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.DTREntry
	for _, e := range f.rows {
		if e.CompanyID != filter.CompanyID {
			continue
		}
		if filter.EmployeeID != nil && (e.EmployeeID == nil || *e.EmployeeID != *filter.EmployeeID) {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.NeedsReview != nil && e.NeedsReview != *filter.NeedsReview {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *DTREntries) SetStatus(_ context.Context, id uuid.UUID, status constants.DTRStatus, actor string, reason *string) (*entity.DTREntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return nil, common.NewAppError("DTR_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	e.Status = string(status)
	e.RejectionReason = reason
	if status == constants.DTRStatusApproved {
		now := time.Now().UTC()
		e.ApprovedBy, e.ApprovedAt = &actor, &now
	}
	return e, nil
}

func (f *DTREntries) SetEmployee(_ context.Context, id, employeeID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return common.NewAppError("DTR_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	e.EmployeeID = &employeeID
	return nil
}

type PayrollRecords struct {
	mu   sync.Mutex
	rows map[string]*entity.PayrollRecord
}

func NewPayrollRecords() *PayrollRecords {
	return &PayrollRecords{rows: map[string]*entity.PayrollRecord{}}
}

func key(rec *entity.PayrollRecord) string {
	return rec.EmployeeID.String() + "|" + rec.PeriodStart.Format("2006-01-02") + "|" + rec.PeriodEnd.Format("2006-01-02")
}

func (f *PayrollRecords) Upsert(_ context.Context, rec *entity.PayrollRecord) (*entity.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(rec)
	if prev, ok := f.rows[k]; ok {
		rec.ID = prev.ID
	} else if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	saved := *rec
	f.rows[k] = &saved
	return &saved, nil
}

func (f *PayrollRecords) ListByPeriod(_ context.Context, companyID uuid.UUID, start, end time.Time) ([]*entity.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.PayrollRecord
	for _, rec := range f.rows {
		if rec.CompanyID == companyID && rec.PeriodStart.Equal(start) && rec.PeriodEnd.Equal(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type Activity struct {
	mu      sync.Mutex
	Entries []*entity.ActivityLog
}

func NewActivity() *Activity {
	return &Activity{}
}

func (f *Activity) Record(_ context.Context, companyID, recordID *uuid.UUID, actor, action, detail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Entries = append(f.Entries, &entity.ActivityLog{
		ID:        uuid.New(),
		CompanyID: companyID,
		Actor:     actor,
		Action:    action,
		RecordID:  recordID,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (f *Activity) ListByCompany(_ context.Context, companyID uuid.UUID, limit int) ([]*entity.ActivityLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Newest first, matching the SQL implementation's ordering.
	var out []*entity.ActivityLog
	for i := len(f.Entries) - 1; i >= 0; i-- {
		a := f.Entries[i]
		if a.CompanyID != nil && *a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
