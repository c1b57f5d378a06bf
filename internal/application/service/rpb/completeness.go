package rpb

import "github.com/resonate/core/internal/types"

// Completeness weights sum to 100 (spec.md §4.1).
const (
	completenessVoiceWeight     = 25.0
	completenessBioWeight       = 15.0
	completenessMessagingWeight = 20.0
	completenessTypingWeight    = 10.0
	completenessSessionWeight   = 15.0
	completenessBrowsingWeight  = 15.0

	messagingCompletenessDivisor = 50.0
	sessionActiveDaysTarget      = 7.0
	sessionActiveSlotThreshold   = 0.1
)

// completeness computes the weighted-sum completeness score in
// [0,100] from the presence and scale of each bundle (spec.md §4.1).
func completeness(b types.SignalBundle) float64 {
	score := 0.0
	if b.Voice.Present {
		score += completenessVoiceWeight
	}
	if b.Bio.Present {
		score += completenessBioWeight
	}
	if b.Messaging.Present {
		scale := minFloat(float64(b.Messaging.TotalMessageCount)/messagingCompletenessDivisor, 1.0)
		score += completenessMessagingWeight * scale
	}
	if b.Typing.Present {
		score += completenessTypingWeight
	}
	if b.Session.Present {
		activeDays := float64(types.ActiveSlotCount(b.Session.HourlyActivity, sessionActiveSlotThreshold))
		scale := minFloat(activeDays/sessionActiveDaysTarget, 1.0)
		score += completenessSessionWeight * scale
	}
	if b.Browsing.Present {
		score += completenessBrowsingWeight
	}
	return score
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
