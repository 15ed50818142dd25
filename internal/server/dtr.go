package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xxch4nnn/WorkTrack-sub001/constants"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
)

type submitDTRRequest struct {
	CompanyID  string  `json:"company_id"`
	Text       string  `json:"text"`
	SourcePath *string `json:"source_path,omitempty"`
}

func (s *Server) handleSubmitDTR(w http.ResponseWriter, r *http.Request) {
	var req submitDTRRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	companyID, err := parseUUID("company_id", req.CompanyID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	entry, err := s.workflow.SubmitText(r.Context(), companyID, req.Text, req.SourcePath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func dtrFilterFromQuery(q url.Values) (repository.DTRFilter, error) {
	companyID, err := parseUUID("company_id", q.Get("company_id"))
	if err != nil {
		return repository.DTRFilter{}, err
	}

	filter := repository.DTRFilter{
		CompanyID: companyID,
		Status:    q.Get("status"),
	}
	if raw := q.Get("employee_id"); raw != "" {
		employeeID, err := parseUUID("employee_id", raw)
		if err != nil {
			return repository.DTRFilter{}, err
		}
		filter.EmployeeID = &employeeID
	}
	if raw := q.Get("needs_review"); raw != "" {
		needs, err := strconv.ParseBool(raw)
		if err != nil {
			return repository.DTRFilter{}, common.NewAppError("BAD_REQUEST", "needs_review must be a boolean", common.ErrInvalidInput)
		}
		filter.NeedsReview = &needs
	}
	return filter, nil
}

func (s *Server) handleListDTR(w http.ResponseWriter, r *http.Request) {
	filter, err := dtrFilterFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	entries, err := s.entries.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// handleExportDTR streams the filtered DTR log as a workbook, using the
// same query filter as the list endpoint.
func (s *Server) handleExportDTR(w http.ResponseWriter, r *http.Request) {
	filter, err := dtrFilterFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	b, err := s.export.DTRLogXLSX(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := "dtr-log-" + filter.CompanyID.String() + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleGetDTR(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	entry, err := s.entries.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type reviewRequest struct {
	Actor  string  `json:"actor"`
	Reason *string `json:"reason,omitempty"`
}

func (s *Server) handleApproveDTR(w http.ResponseWriter, r *http.Request) {
	s.reviewDTR(w, r, constants.DTRStatusApproved)
}

func (s *Server) handleRejectDTR(w http.ResponseWriter, r *http.Request) {
	s.reviewDTR(w, r, constants.DTRStatusRejected)
}

// reviewDTR moves a PENDING entry to its terminal state. Entries already
// decided stay decided; re-reviewing is a conflict, not an update.
func (s *Server) reviewDTR(w http.ResponseWriter, r *http.Request, status constants.DTRStatus) {
	id, err := parseUUID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Actor == "" {
		s.writeError(w, r, common.NewAppError("BAD_REQUEST", "actor is required", common.ErrInvalidInput))
		return
	}
	if status == constants.DTRStatusRejected && (req.Reason == nil || *req.Reason == "") {
		s.writeError(w, r, common.NewAppError("BAD_REQUEST", "reason is required to reject", common.ErrInvalidInput))
		return
	}

	entry, err := s.entries.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entry.Status != string(constants.DTRStatusPending) {
		s.writeError(w, r, common.NewAppError("DTR_ALREADY_DECIDED",
			"entry is already "+entry.Status, common.ErrConflict))
		return
	}

	updated, err := s.entries.SetStatus(r.Context(), id, status, req.Actor, req.Reason)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type matchDTRRequest struct {
	EmployeeID string `json:"employee_id"`
	Actor      string `json:"actor"`
}

// handleMatchDTR attaches an employee to an entry the automatic code
// match could not resolve. The employee must belong to the entry's
// company.
func (s *Server) handleMatchDTR(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req matchDTRRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	employeeID, err := parseUUID("employee_id", req.EmployeeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Actor == "" {
		s.writeError(w, r, common.NewAppError("BAD_REQUEST", "actor is required", common.ErrInvalidInput))
		return
	}

	entry, err := s.entries.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	emp, err := s.employees.GetByID(r.Context(), employeeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if emp.CompanyID != entry.CompanyID {
		s.writeError(w, r, common.NewAppError("EMPLOYEE_COMPANY_MISMATCH",
			"employee belongs to a different company", common.ErrValidation))
		return
	}

	if err := s.entries.SetEmployee(r.Context(), id, employeeID); err != nil {
		s.writeError(w, r, err)
		return
	}

	// Audit trail is best effort, like the capture workflow's.
	if err := s.activity.Record(r.Context(), &entry.CompanyID, &entry.ID, req.Actor, "dtr.matched",
		"employee_code="+emp.EmployeeCode); err != nil {
		s.logger.Warn("activity log write failed", "dtr_id", entry.ID, "error", err)
	}

	updated, err := s.entries.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
