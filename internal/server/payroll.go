package server

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
)

type runPayrollRequest struct {
	CompanyID   string `json:"company_id"`
	PeriodStart string `json:"period_start"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end"`
}

func (s *Server) handleRunPayroll(w http.ResponseWriter, r *http.Request) {
	var req runPayrollRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	companyID, start, end, err := payrollParams(req.CompanyID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	recs, err := s.payroll.RunPeriod(r.Context(), companyID, start, end)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": recs})
}

func (s *Server) handleListPayroll(w http.ResponseWriter, r *http.Request) {
	companyID, start, end, err := payrollQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	recs, err := s.payroll.ListPeriod(r.Context(), companyID, start, end)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": recs})
}

func (s *Server) handleExportPayroll(w http.ResponseWriter, r *http.Request) {
	companyID, start, end, err := payrollQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.export.PayrollRegisterXLSX(r.Context(), companyID, start, end)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := fmt.Sprintf("payroll-%s-%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func payrollQuery(q url.Values) (uuid.UUID, time.Time, time.Time, error) {
	return payrollParams(q.Get("company_id"), q.Get("period_start"), q.Get("period_end"))
}

func payrollParams(company, rawStart, rawEnd string) (uuid.UUID, time.Time, time.Time, error) {
	companyID, err := parseUUID("company_id", company)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	start, err := time.Parse("2006-01-02", rawStart)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{},
			common.NewAppError("BAD_REQUEST", "period_start must be YYYY-MM-DD", common.ErrInvalidInput)
	}
	end, err := time.Parse("2006-01-02", rawEnd)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{},
			common.NewAppError("BAD_REQUEST", "period_end must be YYYY-MM-DD", common.ErrInvalidInput)
	}
	if end.Before(start) {
		return uuid.Nil, time.Time{}, time.Time{},
			common.NewAppError("BAD_REQUEST", "period_end is before period_start", common.ErrInvalidInput)
	}
	return companyID, start, end, nil
}
