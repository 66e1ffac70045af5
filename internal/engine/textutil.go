package engine

import (
	"net/url"
	"path"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentApp    = "MusicPlayerApp/1.0"
	UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8.
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// ThumbnailQuality derives a quality label from a thumbnail URL's file name,
// e.g. ".../vi/ID/maxresdefault.jpg?x=1" -> "maxresdefault". Returns "" when
// the URL has no file name.
func ThumbnailQuality(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	// webp variants are served as "maxresdefault_live" or "hqdefault_custom_1".
	if i := strings.IndexByte(base, '_'); i > 0 {
		base = base[:i]
	}
	return base
}

// ResolveRef resolves ref against base; used for instance-relative thumbnail paths.
// ref is returned unchanged when it is already absolute or base is unusable.
func ResolveRef(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
