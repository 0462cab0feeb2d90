package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arifwdtm/starpick/internal/platform/logging"
	"github.com/arifwdtm/starpick/internal/platform/resilience"
)

// FetchExecutor mediates every remote call. It paces the first attempt,
// then retries failed calls after a fixed cooldown, by default forever:
// the pipeline would rather wait out a quota window than lose a fetch.
// It is the only component that sleeps.
type FetchExecutor struct {
	policy resilience.RetryPolicy
	logger *logging.Logger
	sleep  func(context.Context, time.Duration) error
}

func NewFetchExecutor(policy resilience.RetryPolicy, logger *logging.Logger) *FetchExecutor {
	if logger == nil {
		logger = logging.Default()
	}
	return &FetchExecutor{
		policy: resilience.NormalizeRetryPolicy(policy),
		logger: logger,
		sleep:  ctxSleep,
	}
}

// Execute runs call until it succeeds. With MaxAttempts > 0 it instead
// fails loudly after that many attempts; a fetch is never dropped without
// an error reaching the caller.
func (e *FetchExecutor) Execute(ctx context.Context, label string, call func(context.Context) error) error {
	if err := e.sleep(ctx, e.policy.PacingDelay); err != nil {
		return err
	}

	attempt := 0
	for {
		attempt++
		err := call(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		e.logger.WarnContext(ctx, "remote call failed, cooling down",
			"call", label,
			"attempt", attempt,
			"cooldown", e.policy.Cooldown,
			"rate_limited", errors.Is(err, ErrRateLimited),
			"error", err,
		)

		if e.policy.MaxAttempts > 0 && attempt >= e.policy.MaxAttempts {
			return fmt.Errorf("%w: %s failed after %d attempts: %v", ErrRetriesExhausted, label, attempt, err)
		}
		if err := e.sleep(ctx, e.policy.Cooldown); err != nil {
			return err
		}
	}
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
