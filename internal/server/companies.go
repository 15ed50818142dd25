package server

import (
	"net/http"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
)

type createCompanyRequest struct {
	Name             string  `json:"name"`
	Address          *string `json:"address,omitempty"`
	WorkdayStart     int     `json:"workday_start,omitempty"`
	ScheduledMinutes int     `json:"scheduled_minutes,omitempty"`
	GraceMinutes     int     `json:"grace_minutes,omitempty"`
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	v := common.NewValidator().
		Field("name", req.Name, common.Required, common.MaxLength(200)).
		Field("address", req.Address, common.MaxLength(500))
	if v.HasErrors() {
		s.writeError(w, r, common.NewAppError("VALIDATION", v.ErrorMessage(), common.ErrValidation))
		return
	}

	company, err := s.companies.Create(r.Context(), &repository.CreateCompany{
		Name:             req.Name,
		Address:          req.Address,
		WorkdayStart:     req.WorkdayStart,
		ScheduledMinutes: req.ScheduledMinutes,
		GraceMinutes:     req.GraceMinutes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	list, err := s.companies.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": list})
}
