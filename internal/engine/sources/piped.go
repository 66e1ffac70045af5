package sources

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

// DefaultPipedInstances are public Piped API instances, tried in order.
var DefaultPipedInstances = []string{
	"https://pipedapi.kavin.rocks",
	"https://pipedapi.adminforge.de",
	"https://api.piped.private.coffee",
}

type pipedStreams struct {
	apiError
	Title        string         `json:"title"`
	Uploader     string         `json:"uploader"`
	ThumbnailURL string         `json:"thumbnailUrl"`
	Duration     engine.FlexInt `json:"duration"`
	AudioStreams []pipedStream  `json:"audioStreams"`
}

type pipedStream struct {
	URL           string         `json:"url"`
	MimeType      string         `json:"mimeType"`
	Bitrate       engine.FlexInt `json:"bitrate"`
	ContentLength engine.FlexInt `json:"contentLength"`
}

// Piped returns a source backed by one Piped API instance's /streams endpoint.
func Piped(client *http.Client, instance string, timeout time.Duration) engine.Source {
	base := strings.TrimRight(instance, "/")
	return engine.Source{
		Name:     engine.SourcePiped,
		Instance: base,
		Timeout:  timeout,
		Audio:    engine.AudioByMimeType,
		Fetch: func(ctx context.Context, videoID string) (*engine.Payload, error) {
			var s pipedStreams
			if err := getJSON(ctx, client, base+"/streams/"+url.PathEscape(videoID), nil, &s); err != nil {
				return nil, err
			}
			if msg := s.text(); msg != "" {
				return nil, payloadError(msg)
			}
			return s.payload(base, videoID), nil
		},
	}
}

func (s *pipedStreams) payload(base, videoID string) *engine.Payload {
	p := &engine.Payload{
		VideoID:       videoID,
		Title:         s.Title,
		Author:        s.Uploader,
		LengthSeconds: s.Duration.OrZero(),
		Streams: lo.Map(s.AudioStreams, func(a pipedStream, _ int) engine.Stream {
			return engine.Stream{
				URL:           a.URL,
				MimeType:      a.MimeType,
				Bitrate:       a.Bitrate.Int(),
				ContentLength: a.ContentLength.Int64(),
			}
		}),
	}
	if s.ThumbnailURL != "" {
		u := engine.ResolveRef(base, s.ThumbnailURL)
		p.Thumbnails = []engine.Thumbnail{{URL: u, Quality: engine.ThumbnailQuality(u)}}
	}
	return p
}
