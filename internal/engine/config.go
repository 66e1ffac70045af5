package engine

import (
	"net/http"
	"time"
)

// DefaultSourceTimeout bounds a single upstream call when a source sets none.
const DefaultSourceTimeout = 10 * time.Second

// Config holds all engine configuration, injected from main.
type Config struct {
	Providers          []string      // source kinds in preference order
	InvidiousInstances []string      // tried in order when "invidious" is enabled
	PipedInstances     []string      // tried in order when "piped" is enabled
	ProviderTimeout    time.Duration // per-call bound for every source
	Development        bool          // expose per-source failure details in error responses
	Credential         Credential    // optional cookie / PoToken for direct sources
	HTTPClient         *http.Client
	BrowserClient      *BrowserClient // nil = watch page fetched with HTTPClient
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, audioserver).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = DefaultSourceTimeout
	}
	cfg = c
	Cfg = &cfg
}
