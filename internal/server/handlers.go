package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/leapstack-labs/gridlint/internal/loader"
	"github.com/leapstack-labs/gridlint/internal/report"
	"github.com/leapstack-labs/gridlint/pkg/core"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type validateResponse struct {
	report.FileResult
	Status string `json:"status"`
}

type rulesResponse struct {
	Rules []core.RuleInfo `json:"rules"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.version})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	resp := rulesResponse{Rules: []core.RuleInfo{}}
	if s.registry != nil {
		resp.Rules = s.registry.Infos()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleValidate accepts a multipart form with a "file" field or a raw
// CSV body. The "name" query parameter labels a raw body; a .tsv name or a
// text/tab-separated-values content type selects tab separation.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		s.writeError(w, http.StatusServiceUnavailable, "validation engine not configured")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)

	body, name, err := s.readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer func() { _ = body.Close() }()

	opts := loader.CSVOptions{}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.EqualFold(filepath.Ext(name), ".tsv") || mediaType == "text/tab-separated-values" {
		opts.Comma = '\t'
	}

	g, err := loader.ReadCSV(body, opts)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res := s.engine.CheckGrid(name, g)
	if res.Violations == nil {
		res.Violations = []core.Violation{}
	}
	s.logger.Info("table validated", "name", name, "violations", len(res.Violations))
	s.writeJSON(w, http.StatusOK, validateResponse{FileResult: res, Status: res.Status()})
}

func (s *Server) readUpload(r *http.Request) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "upload.csv"
		}
		return r.Body, name, nil
	}

	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", err
		}
		return nil, "", errors.New("invalid multipart form")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", errors.New("no file provided")
	}
	return file, header.Filename, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("json encode error", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.logger.Warn("request failed", "status", status, "error", message)
	s.writeJSON(w, status, map[string]string{"error": message})
}
