// Package export produces XLSX workbooks from computed payroll records
// and captured DTR entries.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes.
type Service struct {
	records repository.PayrollRepository
	entries repository.DTRRepository
	logger  *slog.Logger
}

func NewService(records repository.PayrollRepository, entries repository.DTRRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, entries: entries, logger: logger}
}

// PayrollRegisterXLSX returns a workbook with one row per employee for the
// given pay period.
func (s *Service) PayrollRegisterXLSX(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]byte, error) {
	began := time.Now()

	recs, err := s.records.ListByPeriod(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query payroll records: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Payroll Register"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Employee Code",
		"Employee Name",
		"Days Worked",
		"Worked (min)",
		"Late (min)",
		"Overtime (min)",
		"Gross Pay",
		"Deductions",
		"Net Pay",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.EmployeeCode)
		write(2, r.EmployeeName)
		write(3, r.DaysWorked)
		write(4, r.WorkedMinutes)
		write(5, r.LateMinutes)
		write(6, r.OvertimeMinutes)
		write(7, r.GrossPay)
		write(8, r.Deductions)
		write(9, r.NetPay)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "F", 14)
	_ = f.SetColWidth(sheet, "G", "I", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.payroll.ok",
		"company_id", companyID.String(),
		"rows", len(recs),
		"elapsed_ms", time.Since(began).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// DTRLogXLSX returns a workbook with one row per captured DTR entry,
// flattening the raw candidate lists for reviewers who prefer a sheet.
func (s *Service) DTRLogXLSX(ctx context.Context, filter repository.DTRFilter) ([]byte, error) {
	began := time.Now()

	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query dtr entries: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "DTR Log"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Captured",
		"Employee Code",
		"Employee Name",
		"Dates",
		"Time In",
		"Time Out",
		"Format",
		"Confidence",
		"Needs Review",
		"Status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, e.CreatedAt.Format("2006-01-02 15:04"))
		write(2, e.EmployeeCode)
		write(3, e.EmployeeName)
		write(4, strings.Join(e.Dates, ", "))
		write(5, strings.Join(e.TimeIn, ", "))
		write(6, strings.Join(e.TimeOut, ", "))
		write(7, e.DetectedFormat)
		write(8, e.Confidence)
		write(9, e.NeedsReview)
		write(10, e.Status)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "C", 22)
	_ = f.SetColWidth(sheet, "D", "F", 30)
	_ = f.SetColWidth(sheet, "G", "J", 13)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.dtrlog.ok",
		"company_id", filter.CompanyID.String(),
		"rows", len(entries),
		"elapsed_ms", time.Since(began).Milliseconds(),
	)
	return buf.Bytes(), nil
}
