package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dgallion1/folioparse/internal/layout"
	"github.com/dgallion1/folioparse/internal/parser"
	"github.com/dgallion1/folioparse/internal/portfolio"
	"github.com/dgallion1/folioparse/internal/profile"
)

type parseResponse struct {
	Record    profile.Record       `json:"record"`
	Portfolio *portfolio.Portfolio `json:"portfolio,omitempty"`
	Pages     int                  `json:"pages,omitempty"`
	Lines     []string             `json:"lines,omitempty"`
}

type linesRequest struct {
	Lines []string `json:"lines"`
}

// handleParse extracts and parses an uploaded export in the request.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	p, err := parser.ForFile(filename, s.parserOptions())
	if err != nil {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := s.readUpload(file)
	if errors.Is(err, errTooLarge) {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	doc, err := p.Parse(bytes.NewReader(data), filename)
	if errors.Is(err, parser.ErrTooManyPages) {
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		s.log.Warn("extraction failed", "filename", filename, "error", err)
		jsonError(w, "extraction failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	rec := s.profiles.Parse(doc.Lines)
	port := portfolio.FromRecord(rec)
	s.latency.Observe(start)

	writeJSON(w, parseResponse{
		Record:    rec,
		Portfolio: &port,
		Pages:     doc.Pages,
		Lines:     layout.Texts(doc.Lines),
	})
}

// handleParseLines runs the section parser over already extracted lines.
func (s *Server) handleParseLines(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req linesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	rec := s.profiles.ParseText(req.Lines)
	s.latency.Observe(start)
	writeJSON(w, parseResponse{Record: rec})
}

// handleParseFragments reconstructs lines from positioned fragments and
// parses them.
func (s *Server) handleParseFragments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req parser.FragmentsFile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	lines := layout.Reconstruct(req.Pages)
	rec := s.profiles.Parse(lines)
	s.latency.Observe(start)
	writeJSON(w, parseResponse{
		Record: rec,
		Pages:  len(req.Pages),
		Lines:  layout.Texts(lines),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
