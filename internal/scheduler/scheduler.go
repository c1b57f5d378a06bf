// Package scheduler implements the interfaces.Scheduler contract on
// top of robfig/cron (time-triggered jobs) and asynq (event-triggered
// jobs), the way the pack's cron-driven services and asynq task
// handlers each do separately (spec.md §6).
package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	cronlib "github.com/robfig/cron/v3"

	"github.com/resonate/core/internal/logger"
)

// cronRetries is the fixed retry budget for cron-triggered jobs
// (spec.md §4.5/§5): robfig/cron has no retry concept of its own, so
// a failed tick is retried in-process up to this many additional
// attempts before being logged and left for the next scheduled tick.
// Keyed by the stable job id passed to RegisterCron.
var cronRetries = map[string]int{
	"daily-rebuild": 2,
	"chm-batch":     2,
}

const defaultCronRetries = 1

// Scheduler wires cron.Cron for time-triggered invocations and an
// asynq client/mux pair for event-triggered ones.
type Scheduler struct {
	cron       *cronlib.Cron
	mux        *asynq.ServeMux
	client     *asynq.Client
	eventRetry map[string]int
}

func New(redisOpt asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{
		cron:       cronlib.New(),
		mux:        asynq.NewServeMux(),
		client:     asynq.NewClient(redisOpt),
		eventRetry: map[string]int{},
	}
}

// RegisterCron schedules fn to run on cronExpr, retrying in-process up
// to cronRetries[id] times (default defaultCronRetries) on failure.
func (s *Scheduler) RegisterCron(id, cronExpr string, fn func(ctx context.Context) error) error {
	maxAttempts := cronRetries[id]
	if maxAttempts <= 0 {
		maxAttempts = defaultCronRetries
	}

	_, err := s.cron.AddFunc(cronExpr, func() {
		ctx := logger.WithFields(context.Background(), "job_id", id)
		var lastErr error
		for attempt := 0; attempt <= maxAttempts; attempt++ {
			if lastErr = fn(ctx); lastErr == nil {
				return
			}
			logger.Warn(ctx, "scheduler: cron job attempt failed", "job_id", id, "attempt", attempt, "error", lastErr)
		}
		logger.Error(ctx, "scheduler: cron job exhausted retries", "job_id", id, "error", lastErr)
	})
	if err != nil {
		return fmt.Errorf("scheduler: register cron %q: %w", id, err)
	}
	return nil
}

// RegisterEvent registers fn as the asynq handler for eventName and
// remembers maxRetry so Emit can attach it at enqueue time.
func (s *Scheduler) RegisterEvent(id, eventName string, maxRetry int, fn func(ctx context.Context, payload []byte) error) error {
	s.eventRetry[eventName] = maxRetry
	s.mux.HandleFunc(eventName, func(ctx context.Context, t *asynq.Task) error {
		ctx = logger.WithFields(ctx, "job_id", id, "event", eventName)
		return fn(ctx, t.Payload())
	})
	return nil
}

// Emit enqueues an event-triggered task with the retry budget
// registered for eventName (spec.md §6's event names:
// resonate/voice-note-uploaded, resonate/profile-rebuilt,
// resonate/account-deleted).
func (s *Scheduler) Emit(ctx context.Context, eventName string, payload []byte) error {
	maxRetry, ok := s.eventRetry[eventName]
	if !ok {
		maxRetry = 1
	}
	task := asynq.NewTask(eventName, payload)
	_, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(maxRetry))
	if err != nil {
		return fmt.Errorf("scheduler: dispatch %q: %w", eventName, err)
	}
	return nil
}

// Mux exposes the asynq handler mux for cmd/worker's asynq.Server.
func (s *Scheduler) Mux() *asynq.ServeMux { return s.mux }

// Start begins the cron scheduler. The asynq consumer side is driven
// separately by an asynq.Server in cmd/worker, wired against Mux().
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the cron scheduler and closes the asynq client.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	return s.client.Close()
}
