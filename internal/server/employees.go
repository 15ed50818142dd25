package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
)

type createEmployeeRequest struct {
	CompanyID    string  `json:"company_id"`
	EmployeeCode string  `json:"employee_code"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Position     *string `json:"position,omitempty"`
	DailyRate    float64 `json:"daily_rate"`
	HiredAt      *string `json:"hired_at,omitempty"` // YYYY-MM-DD
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	v := common.NewValidator().
		Field("company_id", req.CompanyID, common.Required, common.UUID).
		Field("employee_code", req.EmployeeCode, common.Required, common.EmployeeCode, common.MaxLength(32)).
		Field("first_name", req.FirstName, common.MaxLength(100)).
		Field("last_name", req.LastName, common.Required, common.MaxLength(100))
	if v.HasErrors() {
		s.writeError(w, r, common.NewAppError("VALIDATION", v.ErrorMessage(), common.ErrValidation))
		return
	}
	if req.DailyRate <= 0 {
		s.writeError(w, r, common.NewAppError("VALIDATION", "daily_rate must be positive", common.ErrValidation))
		return
	}

	companyID, err := parseUUID("company_id", req.CompanyID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	exists, err := s.companies.Exists(r.Context(), companyID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !exists {
		s.writeError(w, r, common.NewAppError("COMPANY_NOT_FOUND", req.CompanyID, common.ErrNotFound))
		return
	}

	var hiredAt *time.Time
	if req.HiredAt != nil {
		t, err := time.Parse("2006-01-02", *req.HiredAt)
		if err != nil {
			s.writeError(w, r, common.NewAppError("BAD_REQUEST", "hired_at must be YYYY-MM-DD", common.ErrInvalidInput))
			return
		}
		hiredAt = &t
	}

	emp, err := s.employees.Create(r.Context(), &repository.CreateEmployee{
		CompanyID:    companyID,
		EmployeeCode: req.EmployeeCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Position:     req.Position,
		DailyRate:    req.DailyRate,
		HiredAt:      hiredAt,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, emp)
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	companyID, err := parseUUID("company_id", r.URL.Query().Get("company_id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.employees.ListByCompany(r.Context(), companyID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employees": list})
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	emp, err := s.employees.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}
