package engine

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stream(url, mime string, bitrate int) Stream {
	s := Stream{URL: url, MimeType: mime}
	if bitrate >= 0 {
		s.Bitrate = mo.Some(bitrate)
	}
	return s
}

func TestSelectAudioPicksHighestBitrate(t *testing.T) {
	streams := []Stream{
		stream("v1", `video/mp4; codecs="avc1"`, 2_500_000),
		stream("a1", `audio/mp4; codecs="mp4a.40.2"`, 130_000),
		stream("a2", `audio/webm; codecs="opus"`, 160_000),
		stream("a3", `audio/webm; codecs="opus"`, 70_000),
	}
	got, err := SelectAudio(streams, AudioByMimeType)
	require.NoError(t, err)
	assert.Equal(t, "a2", got.URL)
}

func TestSelectAudioTieKeepsFirst(t *testing.T) {
	streams := []Stream{
		stream("first", "audio/webm", 128_000),
		stream("second", "audio/mp4", 128_000),
	}
	got, err := SelectAudio(streams, AudioByMimeType)
	require.NoError(t, err)
	assert.Equal(t, "first", got.URL)
}

func TestSelectAudioMissingBitrateCountsAsZero(t *testing.T) {
	streams := []Stream{
		stream("unknown", "audio/webm", -1),
		stream("low", "audio/mp4", 1),
	}
	got, err := SelectAudio(streams, AudioByMimeType)
	require.NoError(t, err)
	assert.Equal(t, "low", got.URL)

	got, err = SelectAudio(streams[:1], AudioByMimeType)
	require.NoError(t, err)
	assert.Equal(t, "unknown", got.URL)
}

func TestSelectAudioIdempotent(t *testing.T) {
	streams := []Stream{
		stream("a", "audio/webm", 50_000),
		stream("b", "audio/webm", 160_000),
		stream("c", "audio/mp4", 160_000),
	}
	first, err := SelectAudio(streams, AudioByMimeType)
	require.NoError(t, err)
	for range 5 {
		again, err := SelectAudio(streams, AudioByMimeType)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "b", first.URL)
}

func TestSelectAudioNoAudio(t *testing.T) {
	_, err := SelectAudio([]Stream{stream("v", "video/mp4", 1)}, AudioByMimeType)
	assert.ErrorIs(t, err, ErrNoAudio)

	_, err = SelectAudio(nil, nil)
	assert.ErrorIs(t, err, ErrNoAudio)
}

func TestAudioByDirectURL(t *testing.T) {
	streams := []Stream{
		stream("", "audio/webm", 999_999),
		stream("https://v", "video/mp4", 500_000),
		stream("https://a", "audio/mp4", 128_000),
	}
	got, err := SelectAudio(streams, AudioByDirectURL)
	require.NoError(t, err)
	assert.Equal(t, "https://a", got.URL)

	assert.True(t, AudioByDirectURL(Stream{URL: "https://x"}))
	assert.False(t, AudioByDirectURL(Stream{MimeType: "audio/webm"}))
}

func TestSelectThumbnail(t *testing.T) {
	tests := []struct {
		name   string
		thumbs []Thumbnail
		want   string
	}{
		{
			name: "maxres preferred",
			thumbs: []Thumbnail{
				{URL: "default.jpg", Quality: "default"},
				{URL: "high.jpg", Quality: "high"},
				{URL: "maxres.jpg", Quality: "maxres"},
			},
			want: "maxres.jpg",
		},
		{
			name: "maxresdefault label",
			thumbs: []Thumbnail{
				{URL: "hq.jpg", Quality: "hqdefault"},
				{URL: "max.jpg", Quality: "maxresdefault"},
			},
			want: "max.jpg",
		},
		{
			name: "high when no maxres",
			thumbs: []Thumbnail{
				{URL: "medium.jpg", Quality: "medium"},
				{URL: "high.jpg", Quality: "high"},
			},
			want: "high.jpg",
		},
		{
			name:   "first when no preferred label",
			thumbs: []Thumbnail{{URL: "a.jpg", Quality: "medium"}, {URL: "b.jpg", Quality: "default"}},
			want:   "a.jpg",
		},
		{
			name:   "default when empty",
			thumbs: nil,
			want:   "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectThumbnail(tt.thumbs, "dQw4w9WgXcQ"))
		})
	}
}
