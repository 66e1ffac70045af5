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

// DefaultInvidiousInstances are public Invidious instances, tried in order.
var DefaultInvidiousInstances = []string{
	"https://inv.nadeko.net",
	"https://invidious.nerdvpn.de",
	"https://invidious.private.coffee",
	"https://yt.artemislena.eu",
	"https://invidious.protokolla.fi",
	"https://iv.datura.network",
	"https://invidious.perennialte.ch",
	"https://inv.tux.pizza",
	"https://invidious.einfachzocken.eu",
	"https://inv.citw.lgbt",
}

const invidiousFields = "videoId,title,author,lengthSeconds,videoThumbnails,adaptiveFormats"

type invidiousVideo struct {
	Error           string            `json:"error"`
	VideoID         string            `json:"videoId"`
	Title           string            `json:"title"`
	Author          string            `json:"author"`
	LengthSeconds   engine.FlexInt    `json:"lengthSeconds"`
	Thumbnails      []invidiousThumb  `json:"videoThumbnails"`
	AdaptiveFormats []invidiousFormat `json:"adaptiveFormats"`
}

type invidiousThumb struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

// Bitrate and clen arrive as strings on most instances.
type invidiousFormat struct {
	URL     string         `json:"url"`
	Type    string         `json:"type"`
	Bitrate engine.FlexInt `json:"bitrate"`
	Clen    engine.FlexInt `json:"clen"`
}

// Invidious returns a source backed by one Invidious instance's /api/v1/videos.
func Invidious(client *http.Client, instance string, timeout time.Duration) engine.Source {
	base := strings.TrimRight(instance, "/")
	return engine.Source{
		Name:     engine.SourceInvidious,
		Instance: base,
		Timeout:  timeout,
		Audio:    engine.AudioByMimeType,
		Fetch: func(ctx context.Context, videoID string) (*engine.Payload, error) {
			u := base + "/api/v1/videos/" + url.PathEscape(videoID) + "?fields=" + invidiousFields
			var v invidiousVideo
			if err := getJSON(ctx, client, u, nil, &v); err != nil {
				return nil, err
			}
			if v.Error != "" {
				return nil, payloadError(v.Error)
			}
			return v.payload(base), nil
		},
	}
}

func (v *invidiousVideo) payload(base string) *engine.Payload {
	return &engine.Payload{
		VideoID:       v.VideoID,
		Title:         v.Title,
		Author:        v.Author,
		LengthSeconds: v.LengthSeconds.OrZero(),
		Thumbnails: lo.Map(v.Thumbnails, func(t invidiousThumb, _ int) engine.Thumbnail {
			return engine.Thumbnail{URL: engine.ResolveRef(base, t.URL), Quality: t.Quality}
		}),
		Streams: lo.Map(v.AdaptiveFormats, func(f invidiousFormat, _ int) engine.Stream {
			return engine.Stream{
				URL:           f.URL,
				MimeType:      f.Type,
				Bitrate:       f.Bitrate.Int(),
				ContentLength: f.Clen.Int64(),
			}
		}),
	}
}
