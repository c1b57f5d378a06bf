package rpb

import (
	"context"
	"math"

	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

const typingMinStarts = 5
const typingSampleSize = 500

// extractTypingSignals pairs typing_started/typing_stopped events in
// chronological order and reports mean and population standard
// deviation of burst duration in ms (spec.md §4.1).
func extractTypingSignals(ctx context.Context, userID string, events interfaces.EventRepository) (types.TypingSignals, bool, error) {
	raw, err := events.ListByTypesOrdered(ctx, userID, []types.EventType{types.EventTypingStarted, types.EventTypingStopped}, typingSampleSize)
	if err != nil {
		return types.TypingSignals{}, false, err
	}

	var durationsMs []float64
	var startCount int
	var pendingStart *types.BehavioralEvent
	for _, ev := range raw {
		switch ev.EventType {
		case types.EventTypingStarted:
			startCount++
			pendingStart = ev
		case types.EventTypingStopped:
			if pendingStart != nil {
				durationsMs = append(durationsMs, float64(ev.ClientTs.Sub(pendingStart.ClientTs).Milliseconds()))
				pendingStart = nil
			}
		}
	}

	if startCount < typingMinStarts {
		return types.TypingSignals{}, false, nil
	}

	mean := meanOf(durationsMs)
	variance := 0.0
	if len(durationsMs) > 0 {
		for _, d := range durationsMs {
			variance += (d - mean) * (d - mean)
		}
		variance /= float64(len(durationsMs))
	}

	return types.TypingSignals{
		Present:           true,
		MeanBurstMs:       mean,
		CadenceVarianceMs: math.Sqrt(variance),
	}, true, nil
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
