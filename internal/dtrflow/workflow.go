// Package dtrflow coordinates the capture workflow: OCR a dropped scan,
// run the field extractor over the recognized text, match the employee,
// and persist a pending DTR draft for review.
package dtrflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/dtr"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/ocr"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
)

// TextCapturer recognizes text on a scan file. *ocr.Extractor implements it.
type TextCapturer interface {
	Extract(ctx context.Context, path string) (ocr.Result, error)
}

// FormatResolver reports the layout a company's sheets are expected to
// use. *templates.Registry implements it.
type FormatResolver interface {
	ExpectedFormat(companyID string) (dtr.Format, bool)
}

// Workflow runs capture end to end. It owns no state; every stage reads
// and writes through the repositories.
type Workflow struct {
	capturer  TextCapturer
	formats   FormatResolver
	employees repository.EmployeeRepository
	entries   repository.DTRRepository
	activity  repository.ActivityRepository
	logger    *slog.Logger
}

func NewWorkflow(
	capturer TextCapturer,
	formats FormatResolver,
	employees repository.EmployeeRepository,
	entries repository.DTRRepository,
	activity repository.ActivityRepository,
	logger *slog.Logger,
) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		capturer:  capturer,
		formats:   formats,
		employees: employees,
		entries:   entries,
		activity:  activity,
		logger:    logger,
	}
}

// ProcessFile captures text from a scan and submits it. Returns the
// persisted draft entry.
func (w *Workflow) ProcessFile(ctx context.Context, companyID uuid.UUID, path string) (*entity.DTREntry, error) {
	res, err := w.capturer.Extract(ctx, path)
	if err != nil {
		w.logger.Error("dtrflow.ocr.failed", "path", path, "error", err)
		return nil, fmt.Errorf("capture text: %w", err)
	}
	w.logger.Info("dtrflow.ocr.ok",
		"path", path,
		"method", res.Method,
		"confidence", res.Confidence,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	if res.Confidence > 0 && res.Confidence < ocr.TextConfidenceThreshold {
		w.logger.Warn("low capture confidence, extraction may be noisy",
			"path", path, "confidence", res.Confidence)
	}

	return w.SubmitText(ctx, companyID, res.Text, &path)
}

// SubmitText runs the extractor over recognized (or hand-typed) text and
// persists a PENDING draft. needs_review is set when the extractor flags
// an unrecognized layout or when the detected format contradicts the
// company's template.
func (w *Workflow) SubmitText(ctx context.Context, companyID uuid.UUID, text string, sourcePath *string) (*entity.DTREntry, error) {
	res, err := dtr.Extract(text, companyID.String())
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}

	needsReview := res.IsNewFormat
	if expected, ok := w.formats.ExpectedFormat(companyID.String()); ok && expected != res.Format {
		w.logger.Warn("detected format contradicts company template",
			"company_id", companyID.String(),
			"expected", string(expected),
			"detected", string(res.Format),
		)
		needsReview = true
	}

	employeeID := w.matchEmployee(ctx, companyID, res.Employee.EmployeeID)

	entry, err := w.entries.Create(ctx, &repository.CreateDTREntry{
		CompanyID:      companyID,
		EmployeeID:     employeeID,
		EmployeeCode:   res.Employee.EmployeeID,
		EmployeeName:   res.Employee.Name,
		Dates:          res.Dates,
		TimeIn:         res.Times.TimeIn,
		TimeOut:        res.Times.TimeOut,
		DetectedFormat: string(res.Format),
		Confidence:     res.Confidence,
		NeedsReview:    needsReview,
		SourcePath:     sourcePath,
	})
	if err != nil {
		return nil, fmt.Errorf("create dtr entry: %w", err)
	}

	// Audit trail is best effort; a failed log line never fails a capture.
	if err := w.activity.Record(ctx, &companyID, &entry.ID, "system", "dtr.captured",
		fmt.Sprintf("format=%s confidence=%.2f needs_review=%t", res.Format, res.Confidence, needsReview)); err != nil {
		w.logger.Warn("activity log write failed", "dtr_id", entry.ID, "error", err)
	}

	w.logger.Info("dtrflow.extract.ok",
		"dtr_id", entry.ID,
		"company_id", companyID.String(),
		"format", string(res.Format),
		"confidence", res.Confidence,
		"needs_review", needsReview,
		"matched", employeeID != nil,
	)
	return entry, nil
}

// matchEmployee resolves the extracted code against the employee roster.
// An unknown or absent code leaves the entry unmatched for manual review.
func (w *Workflow) matchEmployee(ctx context.Context, companyID uuid.UUID, code string) *uuid.UUID {
	if code == "" {
		return nil
	}
	emp, err := w.employees.GetByCode(ctx, companyID, code)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			w.logger.Error("employee lookup failed", "employee_code", code, "error", err)
		}
		return nil
	}
	return &emp.ID
}
