package sources

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

func TestClassifyReason(t *testing.T) {
	tests := []struct {
		reason string
		want   error
	}{
		{"Sign in to confirm you're not a bot", engine.ErrAuthRequired},
		{"Sign in to confirm your age", engine.ErrAuthRequired},
		{"This video may be inappropriate for some users.", engine.ErrAuthRequired},
		{"Video unavailable", engine.ErrNotFound},
		{"This video is private", engine.ErrNotFound},
		{"This video has been removed by the uploader", engine.ErrNotFound},
		{"Internal Server Error", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyReason(tt.reason), tt.reason)
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"empty 503", http.StatusServiceUnavailable, "", nil},
		{"html 502", http.StatusBadGateway, "<html>Service temporarily unavailable</html>", nil},
		{"plain text 500", http.StatusInternalServerError, "video not available", nil},
		{"envelope on 500", http.StatusInternalServerError, `{"error":"This video is unavailable"}`, engine.ErrNotFound},
		{"envelope on 403", http.StatusForbidden, `{"message":"Sign in to confirm you're not a bot"}`, engine.ErrAuthRequired},
		{"envelope on 503", http.StatusServiceUnavailable, `{"error":"Service Unavailable"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := statusError(tt.status, []byte(tt.body))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			assert.NotErrorIs(t, err, engine.ErrNotFound)
			assert.NotErrorIs(t, err, engine.ErrAuthRequired)
		})
	}
}

func TestPlayabilityError(t *testing.T) {
	assert.NoError(t, playabilityError("OK", ""))
	assert.NoError(t, playabilityError("", ""))

	assert.ErrorIs(t, playabilityError("LOGIN_REQUIRED", ""), engine.ErrAuthRequired)
	assert.ErrorIs(t, playabilityError("AGE_CHECK_REQUIRED", "whatever"), engine.ErrAuthRequired)
	assert.ErrorIs(t, playabilityError("LOGIN_REQUIRED", "This video is private"), engine.ErrNotFound)
	assert.ErrorIs(t, playabilityError("ERROR", "Video unavailable"), engine.ErrNotFound)
	assert.ErrorIs(t, playabilityError("UNPLAYABLE", ""), engine.ErrNotFound)

	err := playabilityError("LIVE_STREAM_OFFLINE", "Premieres soon")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, engine.ErrNotFound)
	assert.NotErrorIs(t, err, engine.ErrAuthRequired)
}
