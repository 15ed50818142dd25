package server

import (
	"net/http"
	"strconv"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
)

const defaultActivityLimit = 50

// handleListActivity returns a company's audit trail, newest first, capped
// at the requested limit.
func (s *Server) handleListActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	companyID, err := parseUUID("company_id", q.Get("company_id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	limit := defaultActivityLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, r, common.NewAppError("BAD_REQUEST", "limit must be a positive integer", common.ErrInvalidInput))
			return
		}
		limit = n
	}

	logs, err := s.activity.ListByCompany(r.Context(), companyID, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activity": logs})
}
