package chm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonate/core/internal/types"
)

func strPtr(s string) *string { return &s }

func mkMessages(n int, senderA, senderB string, start time.Time, gap time.Duration, content func(i int) string, sentiment func(i int) *float64) []*types.Message {
	messages := make([]*types.Message, n)
	for i := 0; i < n; i++ {
		sender := senderA
		if i%2 == 1 {
			sender = senderB
		}
		var sent *float64
		if sentiment != nil {
			sent = sentiment(i)
		}
		messages[i] = &types.Message{
			ID:        strPtrVal(i),
			SenderID:  strPtr(sender),
			Content:   content(i),
			Sentiment: sent,
			SentAt:    start.Add(time.Duration(i) * gap),
		}
	}
	return messages
}

func strPtrVal(i int) string { return "m" + string(rune('a'+i%26)) }

// TestDormantOverridesAllSignals covers spec.md §8 scenario 5: a
// conversation whose last message is 4 days old must classify as
// dormant regardless of any signal shape, with no nudge.
func TestDormantOverridesAllSignals(t *testing.T) {
	now := time.Now()
	conv := &types.Conversation{
		ID:            "conv-1",
		HealthState:   types.ConversationActive,
		LastMessageAt: now.Add(-4 * 24 * time.Hour),
	}
	messages := mkMessages(20, "userA", "userB", now.Add(-10*24*time.Hour), time.Minute,
		func(i int) string { return "hello there friend" }, nil)

	eval := evaluateConversation(conv, messages, now)
	assert.Equal(t, types.ConversationDormant, eval.NewState)
	assert.False(t, eval.TransitionedToCooling)
}

func TestRevivedFromDormantWithRecentMessage(t *testing.T) {
	now := time.Now()
	conv := &types.Conversation{
		ID:            "conv-2",
		HealthState:   types.ConversationDormant,
		LastMessageAt: now.Add(-2 * time.Hour),
	}
	messages := mkMessages(10, "userA", "userB", now.Add(-1*time.Hour), time.Minute,
		func(i int) string { return "hey again!" }, nil)

	eval := evaluateConversation(conv, messages, now)
	assert.Equal(t, types.ConversationRevived, eval.NewState)
}

// TestCoolingTransitionMatchesWorkedExample covers spec.md §8 scenario
// 6: 20 messages, recent response latency roughly double the older
// latency, average length roughly halved, low initiative. Previous
// state active; expected new state cooling.
func TestCoolingTransitionMatchesWorkedExample(t *testing.T) {
	now := time.Now()
	start := now.Add(-2 * time.Hour)

	messages := make([]*types.Message, 0, 20)
	t0 := start
	// Older half: fast replies (1 minute apart), long messages.
	for i := 0; i < 10; i++ {
		sender := "userA"
		if i%2 == 1 {
			sender = "userB"
		}
		messages = append(messages, &types.Message{
			ID:       strPtrVal(i),
			SenderID: strPtr(sender),
			Content:  "this is a fairly long and thoughtful message about our weekend plans together",
			SentAt:   t0,
		})
		t0 = t0.Add(1 * time.Minute)
	}
	// Recent half: slow replies (4 minutes apart), short messages, all
	// but one sent by userA (low initiative for userB).
	for i := 10; i < 20; i++ {
		sender := "userA"
		if i == 11 {
			sender = "userB"
		}
		messages = append(messages, &types.Message{
			ID:       strPtrVal(i),
			SenderID: strPtr(sender),
			Content:  "ok",
			SentAt:   t0,
		})
		t0 = t0.Add(4 * time.Minute)
	}

	conv := &types.Conversation{
		ID:            "conv-3",
		HealthState:   types.ConversationActive,
		LastMessageAt: t0,
	}

	eval := evaluateConversation(conv, messages, t0.Add(time.Minute))
	require.Equal(t, types.ConversationCooling, eval.NewState)
	assert.True(t, eval.TransitionedToCooling)

	quiet := quietParty(messages, "userA", "userB")
	assert.Equal(t, "userB", quiet)
}

func TestNegativeAndPositiveCounts(t *testing.T) {
	s := Signals{Latency: -0.5, Length: -0.4, Sentiment: -0.3, Initiative: 0.1, Diversity: 0.1}
	assert.Equal(t, 5, negativeCount(s))
	assert.Equal(t, 0, positiveCount(s))
}

func TestOverallHealthRange(t *testing.T) {
	best := Signals{Latency: 1, Length: 1, Sentiment: 1, Initiative: 1, Diversity: 1}
	assert.Equal(t, 100, best.OverallHealth())

	worst := Signals{Latency: -1, Length: -1, Sentiment: -1, Initiative: 0, Diversity: 0}
	assert.Equal(t, 0, worst.OverallHealth())
}
