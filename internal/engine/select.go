package engine

import (
	"strings"

	"github.com/samber/lo"
)

// AudioCriterion decides whether a stream counts as audio-only for a source.
type AudioCriterion func(Stream) bool

// AudioByMimeType accepts streams whose MIME type mentions audio. Used by the
// proxy APIs, which list every adaptive format with a direct URL.
func AudioByMimeType(s Stream) bool {
	return strings.Contains(s.MimeType, "audio")
}

// AudioByDirectURL accepts streams that carry a playable URL and are not
// declared as video. Used by direct extraction, where ciphered formats come
// back without a URL.
func AudioByDirectURL(s Stream) bool {
	return s.URL != "" && (s.MimeType == "" || strings.Contains(s.MimeType, "audio"))
}

// SelectAudio returns the highest-bitrate audio stream. Missing bitrates count
// as 0 and ties keep the earliest stream.
func SelectAudio(streams []Stream, isAudio AudioCriterion) (Stream, error) {
	if isAudio == nil {
		isAudio = AudioByMimeType
	}
	audio := lo.Filter(streams, func(s Stream, _ int) bool { return isAudio(s) })
	if len(audio) == 0 {
		return Stream{}, ErrNoAudio
	}
	return lo.MaxBy(audio, func(a, b Stream) bool { return a.bitrate() > b.bitrate() }), nil
}

// thumbnailPreference lists accepted quality labels, best first.
var thumbnailPreference = [][]string{
	{"maxres", "maxresdefault"},
	{"high", "hqdefault"},
}

// SelectThumbnail prefers a max-resolution image, then a high-quality one,
// then the first listed, then YouTube's static default for videoID.
func SelectThumbnail(thumbs []Thumbnail, videoID string) string {
	for _, labels := range thumbnailPreference {
		t, ok := lo.Find(thumbs, func(t Thumbnail) bool {
			return t.URL != "" && lo.Contains(labels, t.Quality)
		})
		if ok {
			return t.URL
		}
	}
	if len(thumbs) > 0 && thumbs[0].URL != "" {
		return thumbs[0].URL
	}
	return DefaultThumbnail(videoID)
}
