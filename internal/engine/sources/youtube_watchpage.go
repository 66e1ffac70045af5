package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

const (
	ytWatchURL = "https://www.youtube.com/watch"
	// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
	ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "
	maxWatchPage                  = 6 * 1024 * 1024
)

type watchPage struct {
	browser  *engine.BrowserClient
	client   *http.Client
	endpoint string
	cred     engine.Credential
}

// WatchPage returns a source that scrapes ytInitialPlayerResponse out of the
// public watch page. With a browser client the page is fetched with a Chrome
// TLS fingerprint; otherwise client is used.
func WatchPage(browser *engine.BrowserClient, client *http.Client, cred engine.Credential, timeout time.Duration) engine.Source {
	return newWatchPage(browser, client, cred, ytWatchURL).source(timeout)
}

func newWatchPage(browser *engine.BrowserClient, client *http.Client, cred engine.Credential, endpoint string) *watchPage {
	return &watchPage{browser: browser, client: cred.Client(client), endpoint: endpoint, cred: cred}
}

func (w *watchPage) source(timeout time.Duration) engine.Source {
	return engine.Source{
		Name:    engine.SourceWatchPage,
		Timeout: timeout,
		Audio:   engine.AudioByDirectURL,
		Fetch:   w.fetch,
	}
}

func (w *watchPage) fetch(ctx context.Context, videoID string) (*engine.Payload, error) {
	page := w.endpoint + "?v=" + url.QueryEscape(videoID) + "&hl=en"

	body, err := w.get(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	raw, err := findPlayerResponse(body)
	if err != nil {
		return nil, err
	}
	var pr playerResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return pr.payload(videoID)
}

func (w *watchPage) get(ctx context.Context, page string) ([]byte, error) {
	if w.browser != nil {
		return w.getBrowser(ctx, page)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, page, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.RandomUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPage))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return body, nil
}

// getBrowser runs the fingerprinted request. The stealth client has no
// context support, so the caller's deadline is enforced around it.
func (w *watchPage) getBrowser(ctx context.Context, page string) ([]byte, error) {
	headers := engine.ChromeHeaders()
	if c := w.cred.CookieHeader(); c != "" {
		headers["cookie"] = c
	}

	type result struct {
		data   []byte
		status int
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		data, _, status, err := w.browser.Do("GET", page, headers, nil)
		ch <- result{data, status, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		if r.status != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d", r.status)
		}
		return r.data, nil
	}
}

// findPlayerResponse locates the <script> that assigns ytInitialPlayerResponse
// and cuts the JSON object out of it.
func findPlayerResponse(html []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var raw []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, ytInitialPlayerResponseMarker)
		if idx < 0 {
			return true
		}
		raw = extractJSON([]byte(text[idx+len(ytInitialPlayerResponseMarker):]))
		return raw == nil
	})
	if raw == nil {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	return raw, nil
}

// extractJSON extracts a complete JSON object from the start of b
// by counting brace depth. Returns nil if b does not start with '{'.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
