package sources

import (
	"errors"

	"github.com/samber/lo"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

// playerResponse is the subset of YouTube's player response read by both the
// Innertube source and the watch page source (ytInitialPlayerResponse).
type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails *struct {
		VideoID       string         `json:"videoId"`
		Title         string         `json:"title"`
		Author        string         `json:"author"`
		LengthSeconds engine.FlexInt `json:"lengthSeconds"`
		Thumbnail     struct {
			Thumbnails []struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"thumbnail"`
	} `json:"videoDetails"`
	StreamingData *struct {
		AdaptiveFormats []playerFormat `json:"adaptiveFormats"`
	} `json:"streamingData"`
}

// playerFormat is one entry of streamingData. Ciphered formats carry
// signatureCipher instead of url and stay unplayable here.
type playerFormat struct {
	URL             string         `json:"url"`
	SignatureCipher string         `json:"signatureCipher"`
	MimeType        string         `json:"mimeType"`
	Bitrate         engine.FlexInt `json:"bitrate"`
	AverageBitrate  engine.FlexInt `json:"averageBitrate"`
	ContentLength   engine.FlexInt `json:"contentLength"`
}

// payload validates the response and maps it to a Payload.
func (r *playerResponse) payload(videoID string) (*engine.Payload, error) {
	if r.PlayabilityStatus != nil {
		if err := playabilityError(r.PlayabilityStatus.Status, r.PlayabilityStatus.Reason); err != nil {
			return nil, err
		}
	}
	if r.VideoDetails == nil {
		return nil, errors.New("player response has no videoDetails")
	}
	d := r.VideoDetails

	p := &engine.Payload{
		VideoID:       lo.Ternary(d.VideoID != "", d.VideoID, videoID),
		Title:         d.Title,
		Author:        d.Author,
		LengthSeconds: d.LengthSeconds.OrZero(),
	}
	// Listed smallest first; reversed so the ladder's first-entry fallback
	// lands on the largest image.
	for i := len(d.Thumbnail.Thumbnails) - 1; i >= 0; i-- {
		u := d.Thumbnail.Thumbnails[i].URL
		p.Thumbnails = append(p.Thumbnails, engine.Thumbnail{URL: u, Quality: engine.ThumbnailQuality(u)})
	}
	if r.StreamingData != nil {
		for _, f := range r.StreamingData.AdaptiveFormats {
			p.Streams = append(p.Streams, f.stream())
		}
	}
	return p, nil
}

func (f playerFormat) stream() engine.Stream {
	bitrate := f.Bitrate.Int()
	if bitrate.IsAbsent() || bitrate.OrElse(0) == 0 {
		if avg := f.AverageBitrate.Int(); avg.IsPresent() {
			bitrate = avg
		}
	}
	return engine.Stream{
		URL:           f.URL,
		MimeType:      f.MimeType,
		Bitrate:       bitrate,
		ContentLength: f.ContentLength.Int64(),
	}
}
