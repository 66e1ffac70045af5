package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ConvertRequests atomic.Int64
	ConvertErrors   atomic.Int64
	SourceAttempts  atomic.Int64
	SourceFailures  atomic.Int64
	SourceTimeouts  atomic.Int64
	Exhausted       atomic.Int64
	NoAudio         atomic.Int64
	InvidiousHits   atomic.Int64
	PipedHits       atomic.Int64
	InnertubeHits   atomic.Int64
	WatchPageHits   atomic.Int64
	ExtractorHits   atomic.Int64
}

var metricKeys = []string{
	"convert_requests", "convert_errors",
	"source_attempts", "source_failures", "source_timeouts",
	"sources_exhausted", "no_audio",
	"invidious_hits", "piped_hits", "innertube_hits", "watchpage_hits", "extractor_hits",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"convert_requests":  metrics.ConvertRequests.Load(),
		"convert_errors":    metrics.ConvertErrors.Load(),
		"source_attempts":   metrics.SourceAttempts.Load(),
		"source_failures":   metrics.SourceFailures.Load(),
		"source_timeouts":   metrics.SourceTimeouts.Load(),
		"sources_exhausted": metrics.Exhausted.Load(),
		"no_audio":          metrics.NoAudio.Load(),
		"invidious_hits":    metrics.InvidiousHits.Load(),
		"piped_hits":        metrics.PipedHits.Load(),
		"innertube_hits":    metrics.InnertubeHits.Load(),
		"watchpage_hits":    metrics.WatchPageHits.Load(),
		"extractor_hits":    metrics.ExtractorHits.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func countSuccess(source string) {
	switch source {
	case SourceInvidious:
		metrics.InvidiousHits.Add(1)
	case SourcePiped:
		metrics.PipedHits.Add(1)
	case SourceInnertube:
		metrics.InnertubeHits.Add(1)
	case SourceWatchPage:
		metrics.WatchPageHits.Add(1)
	case SourceExtractor:
		metrics.ExtractorHits.Add(1)
	}
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
