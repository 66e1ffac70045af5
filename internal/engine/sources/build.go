package sources

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

// DefaultProviders is the source order used when none is configured.
var DefaultProviders = []string{
	engine.SourceInvidious,
	engine.SourcePiped,
	engine.SourceInnertube,
	engine.SourceWatchPage,
	engine.SourceExtractor,
}

// Build expands the configured provider kinds into the ordered source list.
// Proxy kinds contribute one source per instance, in instance order.
func Build(c *engine.Config) ([]engine.Source, error) {
	providers := c.Providers
	if len(providers) == 0 {
		providers = DefaultProviders
	}

	var srcs []engine.Source
	for _, kind := range providers {
		switch strings.ToLower(strings.TrimSpace(kind)) {
		case engine.SourceInvidious:
			for _, inst := range instancesOr(c.InvidiousInstances, DefaultInvidiousInstances) {
				srcs = append(srcs, Invidious(c.HTTPClient, inst, c.ProviderTimeout))
			}
		case engine.SourcePiped:
			for _, inst := range instancesOr(c.PipedInstances, DefaultPipedInstances) {
				srcs = append(srcs, Piped(c.HTTPClient, inst, c.ProviderTimeout))
			}
		case engine.SourceInnertube:
			srcs = append(srcs, Innertube(c.HTTPClient, c.Credential, c.ProviderTimeout))
		case engine.SourceWatchPage:
			srcs = append(srcs, WatchPage(c.BrowserClient, c.HTTPClient, c.Credential, c.ProviderTimeout))
		case engine.SourceExtractor:
			srcs = append(srcs, Extractor(c.HTTPClient, c.Credential, c.ProviderTimeout))
		case "":
		default:
			return nil, fmt.Errorf("unknown provider %q", kind)
		}
	}
	if len(srcs) == 0 {
		return nil, engine.ErrNoSources
	}
	return srcs, nil
}

func instancesOr(configured, defaults []string) []string {
	out := make([]string, 0, len(configured))
	for _, s := range configured {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaults
	}
	return out
}
