// Package retry wraps a single outbound call with bounded retries and
// exponential backoff. It only distinguishes transient from terminal
// failures; the wrapped call must be safe to repeat.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dante4567/openwebui-sub000/internal/apperr"
)

// HTTPError is a retryable upstream HTTP failure (5xx or 429). Terminal
// upstream responses are mapped to apperr kinds by the client and never
// reach the retry loop a second time.
type HTTPError struct {
	Status int
	Body   string
	// RetryAfter is the server-requested wait for 429 responses, 0 if absent.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream HTTP %d: %s", e.Status, e.Body)
}

// Retryable reports whether err is worth another attempt: connection and
// timeout errors, HTTP 5xx and HTTP 429. Classified terminal errors
// (validation, not-found, auth, upstream rejection) are not.
func Retryable(err error) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status >= 500 || he.Status == 429
	}
	if apperr.KindOf(err) != "" {
		return false
	}
	// Anything unclassified at this point came from the transport:
	// connection refused, DNS failure, per-attempt timeout.
	return true
}

// Executor runs an operation with the shared backoff schedule:
// MaxAttempts total attempts sleeping BaseDelay, 2*BaseDelay, 4*BaseDelay...
// between them. The caller's goroutine blocks for the backoff duration.
type Executor struct {
	MaxAttempts int
	BaseDelay   time.Duration

	log   *slog.Logger
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates an Executor with the default schedule (3 attempts, 1s base).
func New(log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		log:         log,
		sleep:       sleepCtx,
	}
}

// SetSleep overrides the backoff sleep. Test hook.
func (e *Executor) SetSleep(fn func(ctx context.Context, d time.Duration) error) {
	e.sleep = fn
}

// Do invokes fn until it succeeds, fails terminally, or attempts run out.
// Exhaustion is wrapped as upstream_unavailable carrying the last error.
func (e *Executor) Do(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= e.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !Retryable(err) {
			return err
		}
		lastErr = err
		if attempt == e.MaxAttempts {
			break
		}
		wait := e.BaseDelay << (attempt - 1)
		var he *HTTPError
		if errors.As(err, &he) && he.RetryAfter > 0 {
			wait = he.RetryAfter
		}
		e.log.Warn("upstream attempt failed, retrying",
			"op", op, "attempt", attempt, "wait", wait.String(), "error", err)
		if serr := e.sleep(ctx, wait); serr != nil {
			return apperr.UpstreamUnavailable(fmt.Sprintf("%s aborted during backoff", op), lastErr)
		}
	}
	e.log.Error("upstream attempts exhausted",
		"op", op, "attempts", e.MaxAttempts, "error", lastErr)
	return apperr.UpstreamUnavailable(fmt.Sprintf("%s failed after %d attempts", op, e.MaxAttempts), lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
