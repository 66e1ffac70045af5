package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

const (
	maxJSONBody  = 4 * 1024 * 1024
	errorSnippet = 256
)

// apiError is the error envelope used by both Invidious and Piped.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e apiError) text() string {
	switch {
	case e.Error != "" && e.Message != "" && e.Error != e.Message:
		return e.Error + ": " + e.Message
	case e.Error != "":
		return e.Error
	}
	return e.Message
}

// getJSON issues a GET and decodes a 2xx JSON body into out. Non-2xx responses
// become errors via statusError.
func getJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", engine.UserAgentApp)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// statusError describes a non-2xx response. Only a parsed error envelope is
// classified, and never on a gateway or outage status.
func statusError(status int, body []byte) error {
	var e apiError
	if json.Unmarshal(body, &e) == nil {
		if msg := e.text(); msg != "" {
			if kind := classifyReason(msg); kind != nil && !outageStatus(status) {
				return fmt.Errorf("HTTP %d: %s: %w", status, msg, kind)
			}
			return fmt.Errorf("HTTP %d: %s", status, msg)
		}
	}
	msg := strings.TrimSpace(engine.TruncateRunes(string(body), errorSnippet, "..."))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("HTTP %d: %s", status, msg)
}

// outageStatus reports statuses that mean the instance itself is down.
func outageStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// payloadError turns an error field found in a 2xx body into a failure.
func payloadError(msg string) error {
	if kind := classifyReason(msg); kind != nil {
		return fmt.Errorf("upstream error: %s: %w", msg, kind)
	}
	return fmt.Errorf("upstream error: %s", msg)
}
