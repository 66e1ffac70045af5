package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks bad or missing caller input. Never retried.
	ErrValidation = errors.New("validation failed")
	ErrMissingURL = fmt.Errorf("%w: missing required parameter: url", ErrValidation)
	ErrInvalidURL = fmt.Errorf("%w: invalid YouTube URL format", ErrValidation)

	// ErrNotFound means the video itself is unavailable (removed, private, blocked).
	ErrNotFound = errors.New("video unavailable")
	// ErrAuthRequired means the upstream demands sign-in, age or bot verification.
	ErrAuthRequired = errors.New("authentication required")
	// ErrNoAudio means the winning source offered no audio-only stream.
	ErrNoAudio = errors.New("no audio formats available")
	// ErrNoSources means the resolver was handed an empty source list.
	ErrNoSources = errors.New("no sources configured")
)

// FailureKind classifies a single source failure.
type FailureKind int

const (
	FailureUpstream FailureKind = iota
	FailureNotFound
	FailureAuthRequired
)

func (k FailureKind) String() string {
	switch k {
	case FailureNotFound:
		return "not_found"
	case FailureAuthRequired:
		return "auth_required"
	}
	return "upstream"
}

// SourceError is one source's failure inside a resolve walk.
type SourceError struct {
	Source   string
	Instance string
	Kind     FailureKind
	Err      error
}

func newSourceError(src Source, err error) SourceError {
	kind := FailureUpstream
	switch {
	case errors.Is(err, ErrAuthRequired):
		kind = FailureAuthRequired
	case errors.Is(err, ErrNotFound):
		kind = FailureNotFound
	}
	return SourceError{Source: src.Name, Instance: src.Instance, Kind: kind, Err: err}
}

func (e *SourceError) Error() string {
	if e.Instance == "" {
		return e.Source + ": " + e.Err.Error()
	}
	return e.Source + " (" + e.Instance + "): " + e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }

// FailureDetail is the JSON shape of one source failure in diagnostics.
type FailureDetail struct {
	Source   string `json:"source"`
	Instance string `json:"instance,omitempty"`
	Kind     string `json:"kind"`
	Error    string `json:"error"`
}

// ExhaustionError is returned when every source failed. Failures holds exactly
// one entry per attempted source, in call order.
type ExhaustionError struct {
	Failures []SourceError
}

func (e *ExhaustionError) Error() string {
	parts := make([]string, len(e.Failures))
	for i := range e.Failures {
		parts[i] = e.Failures[i].Error()
	}
	return fmt.Sprintf("all %d sources failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// All reports whether every failure has the given kind.
func (e *ExhaustionError) All(kind FailureKind) bool {
	if len(e.Failures) == 0 {
		return false
	}
	for _, f := range e.Failures {
		if f.Kind != kind {
			return false
		}
	}
	return true
}

// Details returns the failures in a JSON-friendly form.
func (e *ExhaustionError) Details() []FailureDetail {
	out := make([]FailureDetail, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = FailureDetail{
			Source:   f.Source,
			Instance: f.Instance,
			Kind:     f.Kind.String(),
			Error:    f.Err.Error(),
		}
	}
	return out
}
