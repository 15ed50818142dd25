// Package dtr extracts structured fields from the raw text an OCR engine
// recognized on a scanned daily time record. The extractor is a single-pass,
// stateless pipeline: classify the layout, pull employee identity, date and
// time candidates out of the noisy text with regex heuristics, and score how
// many of the expected data categories were located. Callers decide what to
// do with low-confidence results (typically flag them for manual review).
package dtr

import (
	"strings"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
)

// NewFormatThreshold marks results whose layout the heuristics could not
// read well enough; such sheets likely use a template we have not seen.
const NewFormatThreshold = 0.6

// Result is the best-guess structured reading of one scanned sheet. It has
// no identity beyond the call; persistence is the caller's concern.
type Result struct {
	Employee    EmployeeInfo `json:"employee"`
	Dates       []string     `json:"dates"`
	Times       Times        `json:"times"`
	Format      Format       `json:"format"`
	Confidence  float32      `json:"confidence"`
	IsNewFormat bool         `json:"is_new_format"`
}

// Extract runs the full pipeline over raw recognized text. companyID is
// accepted for future per-company template lookup and currently has no
// effect on the output.
//
// Malformed or unrecognizable text is not an error — absent patterns yield
// empty fields and a low score. Only an empty input violates the caller
// contract: the capture flow must not invoke the extractor when OCR
// produced nothing.
func Extract(text string, companyID string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, common.NewAppError("DTR_EXTRACT", "raw text is empty", common.ErrInvalidInput)
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	format := DetectFormat(text, companyID)

	res := Result{
		Employee: extractEmployeeInfo(lines),
		Dates:    extractDates(lines),
		Times:    extractTimes(lines, format),
		Format:   format,
	}
	res.Confidence = scoreConfidence(lines, format)
	res.IsNewFormat = res.Confidence < NewFormatThreshold
	return res, nil
}
