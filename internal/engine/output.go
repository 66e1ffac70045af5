package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// UnknownAuthor is used when a source returns no channel name.
const UnknownAuthor = "Unknown Artist"

// FormatDuration renders seconds as m:ss. Minutes are not wrapped into hours.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// BuildResult maps the winning source's payload and the chosen stream into
// the response shape. The result always carries the requested videoID; a
// differing payload id is only logged.
func BuildResult(videoID string, res *Resolution, audio Stream) Result {
	p := res.Payload

	if p.VideoID != "" && p.VideoID != videoID {
		slog.Debug("source returned a different video id",
			slog.String("source", res.Source.String()),
			slog.String("requested", videoID),
			slog.String("returned", p.VideoID))
	}
	author := strings.TrimSpace(p.Author)
	if author == "" {
		author = UnknownAuthor
	}

	out := Result{
		VideoID:           videoID,
		Title:             p.Title,
		Author:            author,
		Thumbnail:         SelectThumbnail(p.Thumbnails, videoID),
		Duration:          p.LengthSeconds,
		DurationFormatted: FormatDuration(p.LengthSeconds),
		AudioURL:          audio.URL,
		AudioFormat: AudioFormat{
			MimeType: audio.MimeType,
			Bitrate:  audio.bitrate(),
		},
		Provenance: &Provenance{
			Source:   res.Source.Name,
			Instance: res.Source.Instance,
		},
	}
	if n, ok := audio.ContentLength.Get(); ok {
		out.AudioFormat.ContentLength = &n
	}
	return out
}

// Convert runs the whole pipeline for one caller input: extract the video ID,
// resolve it against srcs, pick the audio stream and build the result.
func Convert(ctx context.Context, srcs []Source, input string) (*Result, error) {
	metrics.ConvertRequests.Add(1)

	if input == "" {
		metrics.ConvertErrors.Add(1)
		return nil, ErrMissingURL
	}
	videoID, ok := ExtractVideoID(input)
	if !ok {
		metrics.ConvertErrors.Add(1)
		return nil, ErrInvalidURL
	}

	res, err := Resolve(ctx, srcs, videoID)
	if err != nil {
		metrics.ConvertErrors.Add(1)
		return nil, err
	}

	audio, err := SelectAudio(res.Payload.Streams, res.Source.Audio)
	if err != nil {
		metrics.ConvertErrors.Add(1)
		metrics.NoAudio.Add(1)
		return nil, fmt.Errorf("%s: %w", res.Source, err)
	}

	out := BuildResult(videoID, res, audio)
	return &out, nil
}
