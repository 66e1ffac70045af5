package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/samber/mo"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

// Extractor returns a source that deciphers YouTube's player directly with
// kkdai/youtube. Credential cookies ride on every request the library makes.
func Extractor(client *http.Client, cred engine.Credential, timeout time.Duration) engine.Source {
	yt := &youtube.Client{HTTPClient: cred.Client(client)}
	return engine.Source{
		Name:    engine.SourceExtractor,
		Timeout: timeout,
		Audio:   engine.AudioByDirectURL,
		Fetch: func(ctx context.Context, videoID string) (*engine.Payload, error) {
			video, err := yt.GetVideoContext(ctx, videoID)
			if err != nil {
				return nil, classifyExtractorError(err)
			}
			return videoPayload(ctx, yt, video), nil
		},
	}
}

func videoPayload(ctx context.Context, yt *youtube.Client, video *youtube.Video) *engine.Payload {
	p := &engine.Payload{
		VideoID:       video.ID,
		Title:         video.Title,
		Author:        video.Author,
		LengthSeconds: int(video.Duration.Seconds()),
	}

	for i := len(video.Thumbnails) - 1; i >= 0; i-- {
		u := video.Thumbnails[i].URL
		p.Thumbnails = append(p.Thumbnails, engine.Thumbnail{URL: u, Quality: engine.ThumbnailQuality(u)})
	}

	for i := range video.Formats {
		f := &video.Formats[i]
		s := formatStream(f)
		if s.URL == "" && strings.Contains(f.MimeType, "audio") {
			u, err := yt.GetStreamURLContext(ctx, video, f)
			if err != nil {
				slog.Debug("extractor: stream url unresolved", slog.Int("itag", f.ItagNo), slog.Any("error", err))
			}
			s.URL = u
		}
		p.Streams = append(p.Streams, s)
	}
	return p
}

func formatStream(f *youtube.Format) engine.Stream {
	s := engine.Stream{URL: f.URL, MimeType: f.MimeType}
	switch {
	case f.Bitrate > 0:
		s.Bitrate = mo.Some(f.Bitrate)
	case f.AverageBitrate > 0:
		s.Bitrate = mo.Some(f.AverageBitrate)
	}
	if f.ContentLength > 0 {
		s.ContentLength = mo.Some(f.ContentLength)
	}
	return s
}

// classifyExtractorError maps the library's restriction errors onto the
// failure kinds the resolver reports.
func classifyExtractorError(err error) error {
	switch {
	case errors.Is(err, youtube.ErrLoginRequired),
		errors.Is(err, youtube.ErrNotPlayableInEmbed):
		return fmt.Errorf("extractor: %w: %w", engine.ErrAuthRequired, err)
	case errors.Is(err, youtube.ErrVideoPrivate):
		return fmt.Errorf("extractor: %w: %w", engine.ErrNotFound, err)
	}

	var statusErr *youtube.ErrPlayabiltyStatus
	if errors.As(err, &statusErr) {
		if kind := playabilityKind(statusErr.Status, statusErr.Reason); kind != nil {
			return fmt.Errorf("extractor: %w: %w", kind, err)
		}
	}
	return fmt.Errorf("extractor: %w", err)
}
