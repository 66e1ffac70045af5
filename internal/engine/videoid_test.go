package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	const id = "dQw4w9WgXcQ"
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=" + id, id, true},
		{"watch url with extra params", "https://www.youtube.com/watch?v=" + id + "&t=42s&list=PL1", id, true},
		{"music host", "https://music.youtube.com/watch?v=" + id + "&feature=share", id, true},
		{"short link", "https://youtu.be/" + id, id, true},
		{"short link with query", "https://youtu.be/" + id + "?si=abc", id, true},
		{"embed", "https://www.youtube.com/embed/" + id + "?autoplay=1", id, true},
		{"v path", "http://youtube.com/v/" + id, id, true},
		{"shorts", "https://www.youtube.com/shorts/" + id, id, true},
		{"fragment", "https://youtu.be/" + id + "#t=10", id, true},
		{"bare id", id, id, true},
		{"bare id with whitespace", "  " + id + "\n", id, true},
		{"bare id with dash and underscore", "a-b_c-d_e-f", "a-b_c-d_e-f", true},
		{"too short", "abc123", "", false},
		{"too long bare", id + "X", "", false},
		{"other site", "https://vimeo.com/123456", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVideoIDShapesAgree(t *testing.T) {
	const id = "XXXXXXXXXXX"
	shapes := []string{
		"https://www.youtube.com/watch?v=" + id,
		"https://youtu.be/" + id,
		"https://www.youtube.com/embed/" + id,
		"https://www.youtube.com/v/" + id,
		id,
	}
	for _, s := range shapes {
		got, ok := ExtractVideoID(s)
		assert.True(t, ok, s)
		assert.Equal(t, id, got, s)
	}
}

func TestDefaultThumbnail(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/abc/hqdefault.jpg", DefaultThumbnail("abc"))
}
