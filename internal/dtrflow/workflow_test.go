package dtrflow

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxch4nnn/WorkTrack-sub001/constants"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/dtr"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/entity"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/ocr"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository/repotest"
)

const standardSheet = `Daily Time Record
Employee ID: EMP-042
Name: Juan Dela Cruz
Date: 01/15/2024
Time In: 8:00am
Time Out: 5:00pm`

type stubCapturer struct {
	res ocr.Result
	err error
}

func (s stubCapturer) Extract(_ context.Context, _ string) (ocr.Result, error) {
	return s.res, s.err
}

type stubFormats struct {
	format dtr.Format
	ok     bool
}

func (s stubFormats) ExpectedFormat(_ string) (dtr.Format, bool) {
	return s.format, s.ok
}

type fixture struct {
	employees *repotest.Employees
	entries   *repotest.DTREntries
	activity  *repotest.Activity
	companyID uuid.UUID
}

func newFixture() *fixture {
	return &fixture{
		employees: repotest.NewEmployees(),
		entries:   repotest.NewDTREntries(),
		activity:  repotest.NewActivity(),
		companyID: uuid.New(),
	}
}

func (f *fixture) workflow(capt TextCapturer, formats FormatResolver) *Workflow {
	return NewWorkflow(capt, formats, f.employees, f.entries, f.activity, slog.Default())
}

func TestSubmitTextMatchesEmployee(t *testing.T) {
	f := newFixture()
	emp := f.employees.Add(&entity.Employee{
		CompanyID:    f.companyID,
		EmployeeCode: "EMP-042",
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
	})
	w := f.workflow(stubCapturer{}, stubFormats{})

	entry, err := w.SubmitText(context.Background(), f.companyID, standardSheet, nil)
	require.NoError(t, err)

	require.NotNil(t, entry.EmployeeID)
	assert.Equal(t, emp.ID, *entry.EmployeeID)
	assert.Equal(t, "EMP-042", entry.EmployeeCode)
	assert.Equal(t, "Juan Dela Cruz", entry.EmployeeName)
	assert.Equal(t, []string{"01/15/2024"}, entry.Dates)
	assert.Equal(t, []string{"8:00am"}, entry.TimeIn)
	assert.Equal(t, []string{"5:00pm"}, entry.TimeOut)
	assert.Equal(t, string(dtr.FormatStandard), entry.DetectedFormat)
	assert.Equal(t, string(constants.DTRStatusPending), entry.Status)
	assert.False(t, entry.NeedsReview)

	require.Len(t, f.activity.Entries, 1)
	assert.Equal(t, "dtr.captured", f.activity.Entries[0].Action)
	assert.Equal(t, "system", f.activity.Entries[0].Actor)
}

func TestSubmitTextUnknownCodeLeavesUnmatched(t *testing.T) {
	f := newFixture()
	w := f.workflow(stubCapturer{}, stubFormats{})

	entry, err := w.SubmitText(context.Background(), f.companyID, standardSheet, nil)
	require.NoError(t, err)
	assert.Nil(t, entry.EmployeeID)
	assert.Equal(t, "EMP-042", entry.EmployeeCode) // raw code kept for review
}

func TestSubmitTextFlagsNewFormat(t *testing.T) {
	f := newFixture()
	w := f.workflow(stubCapturer{}, stubFormats{})

	entry, err := w.SubmitText(context.Background(), f.companyID, "asdf qwer 12345", nil)
	require.NoError(t, err)
	assert.True(t, entry.NeedsReview)
	assert.Equal(t, string(dtr.FormatUnknown), entry.DetectedFormat)
	assert.Zero(t, entry.Confidence)
}

func TestSubmitTextFlagsTemplateMismatch(t *testing.T) {
	f := newFixture()
	w := f.workflow(stubCapturer{}, stubFormats{format: dtr.FormatBiometric, ok: true})

	entry, err := w.SubmitText(context.Background(), f.companyID, standardSheet, nil)
	require.NoError(t, err)
	assert.True(t, entry.NeedsReview) // confident read, wrong layout for this company
	assert.Equal(t, string(dtr.FormatStandard), entry.DetectedFormat)
}

func TestSubmitTextMatchingTemplateDoesNotFlag(t *testing.T) {
	f := newFixture()
	w := f.workflow(stubCapturer{}, stubFormats{format: dtr.FormatStandard, ok: true})

	entry, err := w.SubmitText(context.Background(), f.companyID, standardSheet, nil)
	require.NoError(t, err)
	assert.False(t, entry.NeedsReview)
}

func TestSubmitTextEmptyText(t *testing.T) {
	f := newFixture()
	w := f.workflow(stubCapturer{}, stubFormats{})

	_, err := w.SubmitText(context.Background(), f.companyID, "   \n ", nil)
	require.Error(t, err)
	assert.Empty(t, f.activity.Entries)
}

func TestProcessFile(t *testing.T) {
	f := newFixture()
	capt := stubCapturer{res: ocr.Result{
		Text:       standardSheet,
		Method:     "image-ocr",
		Confidence: 0.9,
	}}
	w := f.workflow(capt, stubFormats{})

	entry, err := w.ProcessFile(context.Background(), f.companyID, "/drop/sheet.jpg")
	require.NoError(t, err)
	require.NotNil(t, entry.SourcePath)
	assert.Equal(t, "/drop/sheet.jpg", *entry.SourcePath)
	assert.Equal(t, string(dtr.FormatStandard), entry.DetectedFormat)
}

func TestProcessFileOCRFailure(t *testing.T) {
	f := newFixture()
	w := f.workflow(stubCapturer{err: errors.New("tesseract exited 1")}, stubFormats{})

	_, err := w.ProcessFile(context.Background(), f.companyID, "/drop/bad.jpg")
	require.Error(t, err)

	entries, err := f.entries.List(context.Background(), repository.DTRFilter{CompanyID: f.companyID})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
