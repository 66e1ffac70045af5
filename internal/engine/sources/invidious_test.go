package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

const invidiousBody = `{
  "videoId": "dQw4w9WgXcQ",
  "title": "Never Gonna Give You Up",
  "author": "Rick Astley",
  "lengthSeconds": 212,
  "videoThumbnails": [
    {"quality": "maxres", "url": "/vi/dQw4w9WgXcQ/maxres.jpg", "width": 1280, "height": 720},
    {"quality": "high", "url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "width": 480, "height": 360}
  ],
  "adaptiveFormats": [
    {"url": "https://v/137", "type": "video/mp4; codecs=\"avc1.640028\"", "bitrate": "4500000", "clen": "70000000"},
    {"url": "https://a/140", "type": "audio/mp4; codecs=\"mp4a.40.2\"", "bitrate": "130000", "clen": "3400000"},
    {"url": "https://a/251", "type": "audio/webm; codecs=\"opus\"", "bitrate": 160000, "clen": "3500000"}
  ]
}`

func TestInvidiousFetch(t *testing.T) {
	var gotPath, gotFields, gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFields = r.URL.Query().Get("fields")
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(invidiousBody))
	}))
	defer srv.Close()

	src := Invidious(srv.Client(), srv.URL+"/", time.Second)
	assert.Equal(t, engine.SourceInvidious, src.Name)
	assert.Equal(t, srv.URL, src.Instance)

	p, err := src.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/videos/dQw4w9WgXcQ", gotPath)
	assert.Equal(t, invidiousFields, gotFields)
	assert.Equal(t, engine.UserAgentApp, gotUA)
	assert.Equal(t, "application/json", gotAccept)

	assert.Equal(t, "Never Gonna Give You Up", p.Title)
	assert.Equal(t, "Rick Astley", p.Author)
	assert.Equal(t, 212, p.LengthSeconds)
	require.Len(t, p.Thumbnails, 2)
	assert.Equal(t, srv.URL+"/vi/dQw4w9WgXcQ/maxres.jpg", p.Thumbnails[0].URL)
	require.Len(t, p.Streams, 3)
	assert.Equal(t, 130000, p.Streams[1].Bitrate.OrElse(0))
	assert.Equal(t, int64(3400000), p.Streams[1].ContentLength.OrElse(0))

	audio, err := engine.SelectAudio(p.Streams, src.Audio)
	require.NoError(t, err)
	assert.Equal(t, "https://a/251", audio.URL)
}

func TestInvidiousErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{"error field on 200", http.StatusOK, `{"error":"This video is unavailable"}`, engine.ErrNotFound},
		{"error envelope on 500", http.StatusInternalServerError, `{"error":"Sign in to confirm you're not a bot"}`, engine.ErrAuthRequired},
		{"plain 502", http.StatusBadGateway, `<html>bad gateway</html>`, nil},
		{"empty 503", http.StatusServiceUnavailable, ``, nil},
		{"html 502 says unavailable", http.StatusBadGateway, `<html>Service temporarily unavailable</html>`, nil},
		{"html 404 says not available", http.StatusNotFound, `<h1>Page not available</h1>`, nil},
		{"503 envelope", http.StatusServiceUnavailable, `{"error":"Service Unavailable"}`, nil},
		{"garbage body", http.StatusOK, `not json`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := Invidious(srv.Client(), srv.URL, time.Second).Fetch(context.Background(), "dQw4w9WgXcQ")
			require.Error(t, err)
			if tt.kind != nil {
				assert.ErrorIs(t, err, tt.kind)
			} else {
				assert.NotErrorIs(t, err, engine.ErrNotFound)
				assert.NotErrorIs(t, err, engine.ErrAuthRequired)
			}
		})
	}
}

func TestResolveAllInstancesDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	srcs := []engine.Source{
		Invidious(srv.Client(), srv.URL, time.Second),
		Piped(srv.Client(), srv.URL, time.Second),
	}
	_, err := engine.Resolve(context.Background(), srcs, "dQw4w9WgXcQ")

	var ex *engine.ExhaustionError
	require.ErrorAs(t, err, &ex)
	require.Len(t, ex.Failures, 2)
	for _, f := range ex.Failures {
		assert.Equal(t, engine.FailureUpstream, f.Kind, f.Error())
	}
	assert.False(t, ex.All(engine.FailureNotFound))
	assert.False(t, ex.All(engine.FailureAuthRequired))
}
