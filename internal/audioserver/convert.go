package audioserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

// Client-facing error messages.
const (
	msgMethodNotAllowed = "Method not allowed. Use GET or POST."
	msgMissingURL       = "Missing required parameter: url"
	msgInvalidURL       = "Invalid YouTube URL format"
	msgUnavailable      = "Unable to fetch video info. Please try again later."
	msgAuthRequired     = "This video requires sign-in or age verification"
	msgVideoNotFound    = "Video is unavailable"
	msgNoAudio          = "No audio formats available for this video"
	msgInternal         = "Failed to process video. Please try again."
)

const maxRequestBody = 64 * 1024

// Envelope is the response body of /api/convert.
type Envelope struct {
	Success bool           `json:"success"`
	Data    *engine.Result `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Details any            `json:"details,omitempty"`
}

type convertRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var input string
	switch r.Method {
	case http.MethodGet:
		input = r.URL.Query().Get("url")
	case http.MethodPost:
		var req convertRequest
		// A malformed body is treated as a missing url.
		_ = json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req)
		input = req.URL
	default:
		writeJSON(w, http.StatusMethodNotAllowed, Envelope{Error: msgMethodNotAllowed})
		return
	}

	res, err := engine.Convert(r.Context(), s.srcs, input)
	if err != nil {
		status, env := Failure(err, s.dev)
		writeJSON(w, status, env)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: res})
}

// Failure builds the error envelope and HTTP status for a pipeline error.
// Diagnostic details are attached only when dev is set.
func Failure(err error, dev bool) (int, Envelope) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("convert failed", slog.Int("status", status), slog.Any("error", err))
	}
	env := Envelope{Error: msg}
	if dev {
		env.Details = details(err)
	}
	return status, env
}

// statusFor maps a pipeline error to an HTTP status and a fixed message.
func statusFor(err error) (int, string) {
	var ex *engine.ExhaustionError
	switch {
	case errors.Is(err, engine.ErrMissingURL):
		return http.StatusBadRequest, msgMissingURL
	case errors.Is(err, engine.ErrValidation):
		return http.StatusBadRequest, msgInvalidURL
	case errors.As(err, &ex):
		switch {
		case ex.All(engine.FailureAuthRequired):
			return http.StatusForbidden, msgAuthRequired
		case ex.All(engine.FailureNotFound):
			return http.StatusNotFound, msgVideoNotFound
		}
		return http.StatusServiceUnavailable, msgUnavailable
	case errors.Is(err, engine.ErrNoAudio):
		return http.StatusNotFound, msgNoAudio
	case errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound, msgVideoNotFound
	case errors.Is(err, engine.ErrAuthRequired):
		return http.StatusForbidden, msgAuthRequired
	}
	return http.StatusInternalServerError, msgInternal
}

func details(err error) any {
	var ex *engine.ExhaustionError
	if errors.As(err, &ex) {
		return ex.Details()
	}
	return err.Error()
}
