package export

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xxch4nnn/WorkTrack-sub001/constants"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository/repotest"
)

func openWorkbook(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestPayrollRegisterXLSX(t *testing.T) {
	records := repotest.NewPayrollRecords()
	companyID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	rec := &entity.PayrollRecord{
		CompanyID:       companyID,
		EmployeeID:      uuid.New(),
		PeriodStart:     start,
		PeriodEnd:       end,
		DaysWorked:      10,
		WorkedMinutes:   5100,
		LateMinutes:     35,
		OvertimeMinutes: 300,
		GrossPay:        10350.50,
		Deductions:      70,
		NetPay:          10280.50,
		EmployeeCode:    "EMP-042",
		EmployeeName:    "Juan Dela Cruz",
	}
	_, err := records.Upsert(context.Background(), rec)
	require.NoError(t, err)

	svc := NewService(records, repotest.NewDTREntries(), slog.Default())
	b, err := svc.PayrollRegisterXLSX(context.Background(), companyID, start, end)
	require.NoError(t, err)

	f := openWorkbook(t, b)
	const sheet = "Payroll Register"
	assert.Equal(t, "Employee Code", cell(t, f, sheet, "A1"))
	assert.Equal(t, "EMP-042", cell(t, f, sheet, "A2"))
	assert.Equal(t, "Juan Dela Cruz", cell(t, f, sheet, "B2"))
	assert.Equal(t, "10", cell(t, f, sheet, "C2"))
	assert.Equal(t, "10350.5", cell(t, f, sheet, "G2"))
	assert.Equal(t, "10280.5", cell(t, f, sheet, "I2"))
}

func TestPayrollRegisterXLSXEmptyPeriod(t *testing.T) {
	svc := NewService(repotest.NewPayrollRecords(), repotest.NewDTREntries(), slog.Default())
	b, err := svc.PayrollRegisterXLSX(context.Background(), uuid.New(),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f := openWorkbook(t, b)
	assert.Equal(t, "Employee Code", cell(t, f, "Payroll Register", "A1"))
	assert.Equal(t, "", cell(t, f, "Payroll Register", "A2"))
}

func TestDTRLogXLSX(t *testing.T) {
	entries := repotest.NewDTREntries()
	companyID := uuid.New()
	entries.Add(&entity.DTREntry{
		CompanyID:      companyID,
		EmployeeCode:   "EMP-042",
		EmployeeName:   "Juan Dela Cruz",
		Dates:          []string{"01/15/2024", "01/16/2024"},
		TimeIn:         []string{"8:00am", "8:05am"},
		TimeOut:        []string{"5:00pm", "5:01pm"},
		DetectedFormat: "standard",
		Confidence:     1,
		Status:         string(constants.DTRStatusPending),
	})

	svc := NewService(repotest.NewPayrollRecords(), entries, slog.Default())
	b, err := svc.DTRLogXLSX(context.Background(), repository.DTRFilter{CompanyID: companyID})
	require.NoError(t, err)

	f := openWorkbook(t, b)
	const sheet = "DTR Log"
	assert.Equal(t, "EMP-042", cell(t, f, sheet, "B2"))
	assert.Equal(t, "01/15/2024, 01/16/2024", cell(t, f, sheet, "D2"))
	assert.Equal(t, "8:00am, 8:05am", cell(t, f, sheet, "E2"))
	assert.Equal(t, "standard", cell(t, f, sheet, "G2"))
	assert.Equal(t, "PENDING", cell(t, f, sheet, "J2"))
}
