package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Source kinds. Multi-instance kinds expand to one Source per instance.
const (
	SourceInvidious = "invidious"
	SourceInnertube = "innertube"
	SourcePiped     = "piped"
	SourceWatchPage = "watchpage"
	SourceExtractor = "extractor"
)

// Source describes one upstream in the ranked fallback list. Sources are plain
// configuration values: the resolver treats every entry the same way and only
// calls Fetch, which adapts the upstream's own schema into a Payload.
type Source struct {
	Name     string
	Instance string // base URL for proxy instances, empty for direct sources
	Timeout  time.Duration
	Audio    AudioCriterion
	Fetch    func(ctx context.Context, videoID string) (*Payload, error)
}

func (s Source) String() string {
	if s.Instance == "" {
		return s.Name
	}
	return s.Name + " (" + s.Instance + ")"
}

// Payload is the normalized metadata one source returned for a video.
type Payload struct {
	VideoID       string
	Title         string
	Author        string
	LengthSeconds int
	Thumbnails    []Thumbnail
	Streams       []Stream
}

// Thumbnail is a preview image with the upstream's quality label.
type Thumbnail struct {
	URL     string
	Quality string
}

// Stream is one playable format offered by a source.
type Stream struct {
	URL           string
	MimeType      string
	Bitrate       mo.Option[int]
	ContentLength mo.Option[int64]
}

func (s Stream) bitrate() int { return s.Bitrate.OrElse(0) }

// Result is the provider-agnostic response returned to callers.
type Result struct {
	VideoID           string      `json:"videoId"`
	Title             string      `json:"title"`
	Author            string      `json:"author"`
	Thumbnail         string      `json:"thumbnail"`
	Duration          int         `json:"duration"`
	DurationFormatted string      `json:"durationFormatted"`
	AudioURL          string      `json:"audioUrl"`
	AudioFormat       AudioFormat `json:"audioFormat"`
	Provenance        *Provenance `json:"provenance,omitempty"`
}

type AudioFormat struct {
	MimeType      string `json:"mimeType"`
	Bitrate       int    `json:"bitrate"`
	ContentLength *int64 `json:"contentLength,omitempty"`
}

// Provenance records which source answered.
type Provenance struct {
	Source   string `json:"source"`
	Instance string `json:"instance,omitempty"`
}

// FlexInt decodes integers that upstreams send either as JSON numbers or as
// quoted strings ("130000"). Empty strings and null decode as absent.
type FlexInt struct {
	v  int64
	ok bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = FlexInt{}
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fl, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("flexint %s: %w", b, err)
		}
		n = int64(fl)
	}
	*f = FlexInt{v: n, ok: true}
	return nil
}

// Int returns the value as an option; absent values are None.
func (f FlexInt) Int() mo.Option[int] {
	if !f.ok {
		return mo.None[int]()
	}
	return mo.Some(int(f.v))
}

// Int64 returns the value as an option; absent values are None.
func (f FlexInt) Int64() mo.Option[int64] {
	if !f.ok {
		return mo.None[int64]()
	}
	return mo.Some(f.v)
}

// OrZero returns the value or 0 when absent.
func (f FlexInt) OrZero() int { return int(f.v) }
