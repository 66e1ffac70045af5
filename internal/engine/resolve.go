package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/mo"
)

// Resolution is the winning source and the payload it returned.
type Resolution struct {
	Source  Source
	Payload *Payload
}

// Resolve walks srcs strictly in order and returns the first source that
// yields a payload. Each source gets one bounded attempt; a failure is
// recorded and the walk moves on. When every source fails the returned
// *ExhaustionError lists one failure per source in call order.
func Resolve(ctx context.Context, srcs []Source, videoID string) (*Resolution, error) {
	if len(srcs) == 0 {
		return nil, ErrNoSources
	}

	failures := make([]SourceError, 0, len(srcs))
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slog.Debug("resolve: trying source", slog.String("source", src.String()), slog.String("video_id", videoID))
		payload, err := attempt(ctx, src, videoID).Get()
		if err == nil {
			countSuccess(src.Name)
			slog.Info("resolve: source succeeded", slog.String("source", src.String()), slog.String("video_id", videoID))
			return &Resolution{Source: src, Payload: payload}, nil
		}

		metrics.SourceFailures.Add(1)
		if errors.Is(err, context.DeadlineExceeded) {
			metrics.SourceTimeouts.Add(1)
		}
		failures = append(failures, newSourceError(src, err))
		slog.Warn("resolve: source failed", slog.String("source", src.String()), slog.Any("error", err))
	}

	metrics.Exhausted.Add(1)
	return nil, &ExhaustionError{Failures: failures}
}

// WalkBudget is the longest a Resolve over srcs can take: every source
// running to its timeout.
func WalkBudget(srcs []Source) time.Duration {
	var total time.Duration
	for _, src := range srcs {
		total += sourceTimeout(src)
	}
	return total
}

func sourceTimeout(src Source) time.Duration {
	if src.Timeout <= 0 {
		return DefaultSourceTimeout
	}
	return src.Timeout
}

// attempt runs one source call under the source's timeout.
func attempt(ctx context.Context, src Source, videoID string) mo.Result[*Payload] {
	metrics.SourceAttempts.Add(1)

	callCtx, cancel := context.WithTimeout(ctx, sourceTimeout(src))
	defer cancel()

	var payload *Payload
	err := TrackOperation(callCtx, src.String(), func(ctx context.Context) error {
		p, err := src.Fetch(ctx, videoID)
		payload = p
		return err
	})
	if err != nil {
		return mo.Err[*Payload](err)
	}
	if payload == nil {
		return mo.Err[*Payload](errors.New("empty payload"))
	}
	return mo.Ok(payload)
}
