package engine

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Credential is the optional YouTube authentication forwarded verbatim to the
// direct extraction sources. The zero value means anonymous access.
type Credential struct {
	Cookies     []*http.Cookie
	POToken     string
	VisitorData string
}

// ParseCredential builds a Credential from raw configuration values.
func ParseCredential(cookie, poToken, visitorData string) (Credential, error) {
	cookies, err := ParseCookies(cookie)
	if err != nil {
		return Credential{}, err
	}
	return Credential{
		Cookies:     cookies,
		POToken:     strings.TrimSpace(poToken),
		VisitorData: strings.TrimSpace(visitorData),
	}, nil
}

// Empty reports whether no credential material is configured.
func (c Credential) Empty() bool {
	return len(c.Cookies) == 0 && c.POToken == "" && c.VisitorData == ""
}

// CookieHeader renders the cookies as a single Cookie header value.
func (c Credential) CookieHeader() string {
	parts := make([]string, 0, len(c.Cookies))
	for _, ck := range c.Cookies {
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}

// ParseCookies accepts a browser export (JSON array of {name, value}), a JSON
// object of name to value, or a raw "a=b; c=d" header string. JSON is tried
// first; input that is not valid JSON is parsed as a raw header.
func ParseCookies(raw string) ([]*http.Cookie, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		var list []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		}
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			out := make([]*http.Cookie, 0, len(list))
			for _, c := range list {
				if c.Name != "" {
					out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
				}
			}
			return out, nil
		}
	case '{':
		var m map[string]string
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			names := make([]string, 0, len(m))
			for name := range m {
				names = append(names, name)
			}
			sort.Strings(names)
			out := make([]*http.Cookie, 0, len(m))
			for _, name := range names {
				out = append(out, &http.Cookie{Name: name, Value: m[name]})
			}
			return out, nil
		}
	}

	cookies, err := http.ParseCookie(raw)
	if err != nil {
		return nil, fmt.Errorf("parse cookie: %w", err)
	}
	return cookies, nil
}

// Client returns an http.Client based on base whose requests carry the
// credential's cookies. base itself is not modified.
func (c Credential) Client(base *http.Client) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	if len(c.Cookies) == 0 {
		return base
	}
	clone := *base
	rt := base.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	clone.Transport = &cookieTransport{base: rt, header: c.CookieHeader()}
	return &clone
}

type cookieTransport struct {
	base   http.RoundTripper
	header string
}

func (t *cookieTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if existing := r.Header.Get("Cookie"); existing != "" {
		r.Header.Set("Cookie", existing+"; "+t.header)
	} else {
		r.Header.Set("Cookie", t.header)
	}
	return t.base.RoundTrip(r)
}
