package server

import (
	"net/http"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/dtr"
)

type extractRequest struct {
	Text      string `json:"text"`
	CompanyID string `json:"company_id,omitempty"`
}

// handleExtract runs the extractor over raw text without persisting
// anything. Review tooling uses it to preview what a sheet would yield.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := dtr.Extract(req.Text, req.CompanyID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
