// Package server exposes the HTTP API: extraction, DTR review, rosters,
// payroll runs and exports.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/dtrflow"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/export"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/payroll"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
)

// HealthFunc reports backend liveness, typically a database ping.
type HealthFunc func(ctx context.Context) error

type Server struct {
	companies repository.CompanyRepository
	employees repository.EmployeeRepository
	entries   repository.DTRRepository
	activity  repository.ActivityRepository
	workflow  *dtrflow.Workflow
	payroll   *payroll.Service
	export    *export.Service
	health    HealthFunc
	logger    *slog.Logger
}

func NewServer(
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	entries repository.DTRRepository,
	activity repository.ActivityRepository,
	workflow *dtrflow.Workflow,
	payrollSvc *payroll.Service,
	exportSvc *export.Service,
	health HealthFunc,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		companies: companies,
		employees: employees,
		entries:   entries,
		activity:  activity,
		workflow:  workflow,
		payroll:   payrollSvc,
		export:    exportSvc,
		health:    health,
		logger:    logger,
	}
}

// Router builds the chi router with middleware and all routes attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)

		r.Route("/dtr", func(r chi.Router) {
			r.Post("/", s.handleSubmitDTR)
			r.Get("/", s.handleListDTR)
			r.Get("/export", s.handleExportDTR)
			r.Get("/{id}", s.handleGetDTR)
			r.Post("/{id}/approve", s.handleApproveDTR)
			r.Post("/{id}/reject", s.handleRejectDTR)
			r.Post("/{id}/match", s.handleMatchDTR)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Post("/", s.handleCreateEmployee)
			r.Get("/", s.handleListEmployees)
			r.Get("/{id}", s.handleGetEmployee)
		})

		r.Route("/companies", func(r chi.Router) {
			r.Post("/", s.handleCreateCompany)
			r.Get("/", s.handleListCompanies)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Post("/run", s.handleRunPayroll)
			r.Get("/", s.handleListPayroll)
			r.Get("/export", s.handleExportPayroll)
		})

		r.Get("/activity", s.handleListActivity)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps application error kinds to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrConflict):
		status = http.StatusConflict
	}

	var body errorBody
	body.Error.Code = "INTERNAL"
	body.Error.Message = http.StatusText(status)

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		body.Error.Code = appErr.Code
		body.Error.Message = appErr.Message
	} else if status != http.StatusInternalServerError {
		body.Error.Message = err.Error()
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", common.RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, body)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return common.NewAppError("BAD_REQUEST", "malformed JSON body", common.ErrInvalidInput)
	}
	return nil
}

func parseUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, common.NewAppError("BAD_REQUEST", field+" must be a valid uuid", common.ErrInvalidInput)
	}
	return id, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
