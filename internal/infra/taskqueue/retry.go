package taskqueue

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

const (
	defaultMaxRetries = 3
	baseBackoff       = 100 * time.Millisecond
)

// backoff returns the wait before the given zero-based attempt: 0, 100ms,
// 200ms, 400ms and so on.
func backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return time.Duration(math.Pow(2, float64(attempt-1))) * baseBackoff
}

// retry runs fn up to maxRetries times with exponential backoff between
// attempts and gives up early when ctx is done.
func retry(ctx context.Context, maxRetries int, operation string, attrs []slog.Attr, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if wait := backoff(attempt); wait > 0 {
			slog.LogAttrs(ctx, slog.LevelDebug, "retrying "+operation,
				append(attrs,
					slog.Int("attempt", attempt+1),
					slog.Duration("backoff", wait),
				)...,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.LogAttrs(ctx, slog.LevelError, "all retries exhausted for "+operation,
		append(attrs,
			slog.Int("max_retries", maxRetries),
			slog.String("error", lastErr.Error()),
		)...,
	)
	return fmt.Errorf("failed %s after %d retries: %w", operation, maxRetries, lastErr)
}

func taskAttrs(task *NotificationTask) []slog.Attr {
	return []slog.Attr{
		slog.String("task_name", task.Name),
		slog.String("event_id", task.EventID),
		slog.String("user_id", task.UserID),
	}
}
