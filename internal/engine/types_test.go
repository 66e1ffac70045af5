package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
		D FlexInt `json:"d"`
		E FlexInt `json:"e"`
		F FlexInt `json:"f"`
	}
	err := json.Unmarshal([]byte(`{"a":130000,"b":"160000","c":"","d":null,"e":12.9}`), &v)
	require.NoError(t, err)

	assert.Equal(t, 130000, v.A.Int().OrElse(-1))
	assert.Equal(t, int64(160000), v.B.Int64().OrElse(-1))
	assert.True(t, v.C.Int().IsAbsent())
	assert.True(t, v.D.Int().IsAbsent())
	assert.Equal(t, 12, v.E.OrZero())
	assert.True(t, v.F.Int().IsAbsent(), "missing field stays absent")

	err = json.Unmarshal([]byte(`{"a":"fast"}`), &v)
	assert.Error(t, err)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "extractor", Source{Name: "extractor"}.String())
	assert.Equal(t, "piped (https://p.example)", Source{Name: "piped", Instance: "https://p.example"}.String())
}

func TestThumbnailQuality(t *testing.T) {
	tests := map[string]string{
		"https://i.ytimg.com/vi/ID/maxresdefault.jpg":            "maxresdefault",
		"https://i.ytimg.com/vi_webp/ID/hqdefault.webp?v=1":      "hqdefault",
		"https://pipedproxy.example/vi/ID/sddefault.jpg?host=i":  "sddefault",
		"https://i.ytimg.com/vi/ID/hqdefault_live.jpg":           "hqdefault",
		"":                                                       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ThumbnailQuality(in), in)
	}
}

func TestResolveRef(t *testing.T) {
	assert.Equal(t, "https://inv.example/vi/ID/maxres.jpg", ResolveRef("https://inv.example", "/vi/ID/maxres.jpg"))
	assert.Equal(t, "https://i.ytimg.com/x.jpg", ResolveRef("https://inv.example", "//i.ytimg.com/x.jpg"))
	assert.Equal(t, "https://cdn/x.jpg", ResolveRef("https://inv.example", "https://cdn/x.jpg"))
	assert.Equal(t, "", ResolveRef("https://inv.example", ""))
}

func TestFormatMetrics(t *testing.T) {
	before := GetMetrics()["invidious_hits"]
	countSuccess(SourceInvidious)
	assert.Equal(t, before+1, GetMetrics()["invidious_hits"])

	text := FormatMetrics()
	for _, k := range metricKeys {
		assert.True(t, strings.Contains(text, k+" "), "missing metric %s", k)
	}
}
