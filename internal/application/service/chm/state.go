package chm

import (
	"time"

	"github.com/resonate/core/internal/types"
)

const (
	dormantThresholdDays = 3
	revivedThresholdDays = 1

	negLatencyThreshold    = -0.3
	negLengthThreshold     = -0.3
	negSentimentThreshold  = -0.2
	negInitiativeThreshold = 0.3
	negDiversityThreshold  = 0.3

	posLatencyThreshold    = 0.2
	posLengthThreshold     = 0.0
	posSentimentThreshold  = 0.0
	posInitiativeThreshold = 0.5
	posDiversityThreshold  = 0.5

	coolingNegCount = 2
	activeposCount  = 3
	warmingPosCount = 2
)

func negativeCount(s Signals) int {
	n := 0
	if s.Latency < negLatencyThreshold {
		n++
	}
	if s.Length < negLengthThreshold {
		n++
	}
	if s.Sentiment < negSentimentThreshold {
		n++
	}
	if s.Initiative < negInitiativeThreshold {
		n++
	}
	if s.Diversity < negDiversityThreshold {
		n++
	}
	return n
}

func positiveCount(s Signals) int {
	n := 0
	if s.Latency > posLatencyThreshold {
		n++
	}
	if s.Length > posLengthThreshold {
		n++
	}
	if s.Sentiment > posSentimentThreshold {
		n++
	}
	if s.Initiative > posInitiativeThreshold {
		n++
	}
	if s.Diversity > posDiversityThreshold {
		n++
	}
	return n
}

// nextState implements the CHM state machine exactly (spec.md §4.5).
// daysSinceLastMessage dominates everything else: at >= 3 days the
// conversation is dormant regardless of signal shape.
func nextState(previous types.ConversationState, signals Signals, daysSinceLastMessage float64) types.ConversationState {
	if daysSinceLastMessage >= dormantThresholdDays {
		return types.ConversationDormant
	}
	if previous == types.ConversationDormant && daysSinceLastMessage < revivedThresholdDays {
		return types.ConversationRevived
	}

	if negativeCount(signals) >= coolingNegCount {
		return types.ConversationCooling
	}
	if positiveCount(signals) >= activeposCount {
		return types.ConversationActive
	}
	if previous == types.ConversationWarming {
		if positiveCount(signals) >= warmingPosCount {
			return types.ConversationActive
		}
		return types.ConversationWarming
	}
	return previous
}

// Evaluation is one conversation's full CHM pass result.
type Evaluation struct {
	ConversationID        string
	PreviousState         types.ConversationState
	NewState              types.ConversationState
	Health                int
	Signals               Signals
	TransitionedToCooling bool
	NudgeGenerated        bool
}

func evaluateConversation(conv *types.Conversation, messages []*types.Message, now time.Time) Evaluation {
	signals := computeSignals(messages)
	prev := conv.HealthState
	newState := nextState(prev, signals, conv.DaysSinceLastMessage(now))

	return Evaluation{
		ConversationID:        conv.ID,
		PreviousState:         prev,
		NewState:              newState,
		Health:                signals.OverallHealth(),
		Signals:               signals,
		TransitionedToCooling: prev != types.ConversationCooling && newState == types.ConversationCooling,
	}
}
