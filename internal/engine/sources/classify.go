package sources

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

var authMarkers = []string{
	"sign in",
	"login required",
	"confirm your age",
	"age-restricted",
	"age restricted",
	"not a bot",
	"inappropriate for some users",
}

var notFoundMarkers = []string{
	"unavailable",
	"private",
	"removed",
	"does not exist",
	"not available",
	"terminated",
	"no longer available",
}

// classifyReason maps an upstream's human-readable reason to ErrAuthRequired
// or ErrNotFound. Returns nil when the text says neither.
func classifyReason(reason string) error {
	r := strings.ToLower(reason)
	for _, m := range authMarkers {
		if strings.Contains(r, m) {
			return engine.ErrAuthRequired
		}
	}
	for _, m := range notFoundMarkers {
		if strings.Contains(r, m) {
			return engine.ErrNotFound
		}
	}
	return nil
}

// playabilityKind maps a non-OK playabilityStatus to a failure sentinel. The
// reason text wins over the status code: LOGIN_REQUIRED is also reported for
// private videos.
func playabilityKind(status, reason string) error {
	if kind := classifyReason(reason); kind != nil {
		return kind
	}
	switch status {
	case "LOGIN_REQUIRED", "AGE_CHECK_REQUIRED", "AGE_VERIFICATION_REQUIRED", "CONTENT_CHECK_REQUIRED":
		return engine.ErrAuthRequired
	case "ERROR", "UNPLAYABLE":
		return engine.ErrNotFound
	}
	return nil
}

// playabilityError converts a non-OK playabilityStatus into an error.
func playabilityError(status, reason string) error {
	if status == "" || status == "OK" {
		return nil
	}
	if kind := playabilityKind(status, reason); kind != nil {
		return fmt.Errorf("playability %s: %s: %w", status, reason, kind)
	}
	return fmt.Errorf("playability %s: %s", status, reason)
}
