// Package templates holds per-company DTR layout definitions. A template
// records which layout a company's sheets are expected to use; the capture
// workflow compares it against the detected layout to flag mismatches for
// review. Templates never influence detection itself.
package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/dtr"
)

// Template describes one company's expected DTR layout.
type Template struct {
	CompanyID      string              `json:"company_id"`
	Name           string              `json:"name"`
	ExpectedFormat string              `json:"expected_format"`
	LabelAliases   map[string][]string `json:"label_aliases,omitempty"`
	GraceMinutes   int                 `json:"grace_minutes,omitempty"`
}

// ErrNoTemplate is returned when a company has no template file on disk.
var ErrNoTemplate = errors.New("no template for company")

const templateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["company_id", "expected_format"],
  "properties": {
    "company_id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "expected_format": {
      "type": "string",
      "enum": ["standard", "timesheet", "attendance-log", "biometric", "unknown"]
    },
    "label_aliases": {
      "type": "object",
      "additionalProperties": {"type": "array", "items": {"type": "string"}}
    },
    "grace_minutes": {"type": "integer", "minimum": 0}
  },
  "additionalProperties": false
}`

// Registry loads and validates template files from a directory, caching
// parsed templates so the capture worker does not hit the disk per scan.
type Registry struct {
	dir    string
	schema *jsonschema.Schema
	cache  *gocache.Cache
	logger *slog.Logger
}

func NewRegistry(dir string, ttl time.Duration, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sch, err := jsonschema.CompileString("template.schema.json", templateSchema)
	if err != nil {
		return nil, fmt.Errorf("compile template schema: %w", err)
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Registry{
		dir:    dir,
		schema: sch,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}, nil
}

// Load returns the template for a company, reading and validating the
// file on a cache miss. Returns ErrNoTemplate when the file is absent.
func (r *Registry) Load(companyID string) (*Template, error) {
	if companyID == "" {
		return nil, ErrNoTemplate
	}
	if v, ok := r.cache.Get(companyID); ok {
		return v.(*Template), nil
	}

	path := filepath.Join(r.dir, companyID+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoTemplate
		}
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	if err := r.schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("template %s does not match schema: %w", path, err)
	}

	var tmpl Template
	if err := json.Unmarshal(b, &tmpl); err != nil {
		return nil, fmt.Errorf("decode template %s: %w", path, err)
	}

	r.cache.Set(companyID, &tmpl, gocache.DefaultExpiration)
	r.logger.Debug("template loaded", "company_id", companyID, "expected_format", tmpl.ExpectedFormat)
	return &tmpl, nil
}

// ExpectedFormat reports the layout a company's sheets should use, or
// false when no template exists.
func (r *Registry) ExpectedFormat(companyID string) (dtr.Format, bool) {
	tmpl, err := r.Load(companyID)
	if err != nil {
		if !errors.Is(err, ErrNoTemplate) {
			r.logger.Warn("template lookup failed", "company_id", companyID, "error", err)
		}
		return "", false
	}
	return dtr.Format(tmpl.ExpectedFormat), true
}
