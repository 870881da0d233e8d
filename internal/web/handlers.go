package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CalKK/campaignmessaging/internal/core"
	"github.com/CalKK/campaignmessaging/internal/logging"
	"github.com/CalKK/campaignmessaging/internal/messaging"
	"github.com/CalKK/campaignmessaging/internal/sheet"
	"github.com/CalKK/campaignmessaging/internal/web/templates"
)

const (
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	cleanedFilename   = "cleaned_contacts.xlsx"
	codeOK            = "OK"
	multipartMemLimit = 8 << 20
)

// ProcessResponse is the body of a successful /api/process call.
type ProcessResponse struct {
	Contacts []messaging.LinkedContact `json:"contacts"`
	Summary  core.Summary              `json:"summary"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Page(s.cfg.Security.RequireAPIKey).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"uploads": s.service.LimiterStatus(),
	})
}

// handleProcess validates an uploaded sheet and returns one chat link per
// valid contact plus the summary of rejected rows.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	file, filename, err := s.formFile(w, r)
	if err != nil {
		s.fail(w, r, "process", start, err)
		return
	}
	defer file.Close()

	res, err := s.service.Process(r.Context(), filename, file)
	if err != nil {
		s.fail(w, r, "process", start, err)
		return
	}

	resp := ProcessResponse{
		Contacts: s.linker.Generate(res.Result.Contacts),
		Summary:  res.Summary(),
	}
	s.observe("process", codeOK, start)

	logging.WithFields(r.Context(), "upload_id", res.UploadID, "filename", filename).Info("upload processed",
		"rows", len(res.Rows),
		"found", resp.Summary.Found,
		"errors", resp.Summary.Errors,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.Results(resp.Contacts, resp.Summary).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render results", "error", err)
		}
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// handleClean returns the normalized sheet as an xlsx download. The
// workbook goes through a request-scoped temp file that is always removed.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	file, filename, err := s.formFile(w, r)
	if err != nil {
		s.fail(w, r, "clean", start, err)
		return
	}
	defer file.Close()

	res, err := s.service.Clean(r.Context(), filename, file, sheet.XLSX{})
	if err != nil {
		s.fail(w, r, "clean", start, err)
		return
	}

	path, err := s.writeTemp(res.Data)
	if path != "" {
		defer removeTemp(r, path)
	}
	if err != nil {
		s.fail(w, r, "clean", start, err)
		return
	}

	out, err := os.Open(path)
	if err != nil {
		s.fail(w, r, "clean", start, &core.WriteFailure{Op: "open temp file", Err: err})
		return
	}
	defer out.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cleanedFilename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, out); err != nil {
		logging.FromContext(r.Context()).Warn("cleaned file copy interrupted", "error", err)
	}

	s.observe("clean", codeOK, start)
	logging.WithFields(r.Context(), "upload_id", res.UploadID, "filename", filename).Info("upload cleaned",
		"rows", len(res.Rows),
		"bytes", len(res.Data),
	)
}

// formFile enforces the upload size limit and returns the "file" part.
func (s *Server) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, string, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(min(maxSize, multipartMemLimit)); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("parse form: %w: %w", core.ErrNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", core.ErrNoFile
	}
	return file, header.Filename, nil
}

// writeTemp writes data to cleaned_<uuid>.xlsx in the upload temp dir. The
// returned path is set whenever a file may exist on disk.
func (s *Server) writeTemp(data []byte) (string, error) {
	dir := s.cfg.Upload.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "cleaned_"+uuid.New().String()+".xlsx")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return path, &core.WriteFailure{Op: "write temp file", Err: err}
	}
	return path, nil
}

func removeTemp(r *http.Request, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.FromContext(r.Context()).Warn("temp file not removed", "path", path, "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, start time.Time, err error) {
	s.observe(op, core.MapError(err).Code, start)
	respondError(w, r, err)
}

func (s *Server) observe(op, code string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveUpload(op, code, time.Since(start))
	}
}
