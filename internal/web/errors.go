package web

// errors.go renders request-level failures. The technical error is logged
// with the request ID; the client gets the mapped user message as JSON, an
// HTMX fragment or plain text, with the status core.MapError chose.

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/CalKK/campaignmessaging/internal/core"
	"github.com/CalKK/campaignmessaging/internal/logging"
	"github.com/CalKK/campaignmessaging/internal/web/templates"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func statusFor(msg core.UserMessage) int {
	if msg.Status == 0 {
		return http.StatusInternalServerError
	}
	return msg.Status
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := core.MapError(err)
	status := statusFor(msg)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
		"error", err.Error(),
	}
	var de *core.DecodeError
	if errors.As(err, &de) {
		attrs = append(attrs, "detail", de.Detail())
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error", attrs...)

	switch {
	case isHTMX(r):
		renderErrorPartial(w, r, msg, status)
	case wantsJSON(r):
		writeJSON(w, r, status, ErrorResponse{
			Error:   msg.Message,
			Message: msg.Message,
			Action:  msg.Action,
			Code:    msg.Code,
		})
	default:
		http.Error(w, msg.Message+" ("+msg.Code+")", status)
	}
}

// renderErrorPartial answers HTMX with 200 so the alert is swapped in; the
// real status travels in a header.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Error-Status", strconv.Itoa(status))
	w.WriteHeader(http.StatusOK)
	if err := templates.ErrorAlert(msg).Render(r.Context(), w); err != nil {
		slog.Error("render error alert", "error", err, "request_id", middleware.GetReqID(r.Context()))
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON reports whether the client asked for JSON. API routes default to it.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
