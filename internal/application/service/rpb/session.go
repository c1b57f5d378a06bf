package rpb

import (
	"context"

	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

const sessionMinOpens = 3
const sessionSampleSize = 500

// extractSessionSignals builds the 24-slot hourly activity array from
// app_opened timestamps, normalized by the largest slot count, plus
// mean session duration from open/close pairs and a sessions-per-day
// estimate (total fetched opens divided by 7) (spec.md §4.1).
func extractSessionSignals(ctx context.Context, userID string, events interfaces.EventRepository) (types.SessionSignals, bool, error) {
	opens, err := events.ListByType(ctx, userID, types.EventAppOpened, sessionSampleSize)
	if err != nil {
		return types.SessionSignals{}, false, err
	}
	if len(opens) < sessionMinOpens {
		return types.SessionSignals{}, false, nil
	}

	closes, err := events.ListByType(ctx, userID, types.EventAppClosed, sessionSampleSize)
	if err != nil {
		return types.SessionSignals{}, false, err
	}

	var hourly [24]float64
	for _, ev := range opens {
		hourly[ev.ClientTs.Hour()]++
	}
	maxCount := 0.0
	for _, v := range hourly {
		if v > maxCount {
			maxCount = v
		}
	}
	if maxCount > 0 {
		for i := range hourly {
			hourly[i] /= maxCount
		}
	}

	meanDuration := meanSessionDurationMs(opens, closes)

	return types.SessionSignals{
		Present:        true,
		HourlyActivity: hourly,
		MeanDurationMs: meanDuration,
		SessionsPerDay: float64(len(opens)) / 7.0,
	}, true, nil
}

// meanSessionDurationMs pairs chronologically adjacent open/close
// events (by server timestamp) into session durations; opens with no
// matching close are ignored.
func meanSessionDurationMs(opens, closes []*types.BehavioralEvent) float64 {
	if len(opens) == 0 || len(closes) == 0 {
		return 0
	}
	type ev struct {
		ts    int64
		isOpen bool
	}
	merged := make([]ev, 0, len(opens)+len(closes))
	for _, o := range opens {
		merged = append(merged, ev{ts: o.ServerTs.UnixMilli(), isOpen: true})
	}
	for _, c := range closes {
		merged = append(merged, ev{ts: c.ServerTs.UnixMilli(), isOpen: false})
	}
	for i := 1; i < len(merged); i++ {
		for j := i; j > 0 && merged[j-1].ts > merged[j].ts; j-- {
			merged[j-1], merged[j] = merged[j], merged[j-1]
		}
	}

	var durations []float64
	var pendingOpenTs int64
	var haveOpen bool
	for _, e := range merged {
		if e.isOpen {
			pendingOpenTs = e.ts
			haveOpen = true
			continue
		}
		if haveOpen {
			durations = append(durations, float64(e.ts-pendingOpenTs))
			haveOpen = false
		}
	}
	return meanOf(durations)
}
