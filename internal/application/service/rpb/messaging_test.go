package rpb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/resonate/core/internal/types"
)

type fakeMessageRepo struct {
	recentByUser []*types.Message
}

func (f *fakeMessageRepo) RecentByUser(ctx context.Context, userID string, limit int) ([]*types.Message, error) {
	return f.recentByUser, nil
}
func (f *fakeMessageRepo) RecentByConversation(ctx context.Context, conversationID string, limit int) ([]*types.Message, error) {
	return nil, nil
}
func (f *fakeMessageRepo) LastN(ctx context.Context, conversationID string, n int) ([]*types.Message, error) {
	return nil, nil
}

func TestExtractMessagingSignalsBelowMinimumIsAbsent(t *testing.T) {
	repo := &fakeMessageRepo{recentByUser: []*types.Message{
		{Content: "hi"}, {Content: "there"},
	}}
	_, present, err := extractMessagingSignals(context.Background(), "u1", repo)
	require.NoError(t, err)
	require.False(t, present)
}

func TestExtractMessagingSignalsComputesRates(t *testing.T) {
	now := time.Now()
	repo := &fakeMessageRepo{recentByUser: []*types.Message{
		{Content: "hi there?", SentAt: now},
		{Content: "how are you?", SentAt: now},
		{Content: "good morning", SentAt: now},
		{Content: "nice day isn't it?", SentAt: now},
	}}
	signals, present, err := extractMessagingSignals(context.Background(), "u1", repo)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, 4, signals.TotalMessageCount)
	require.InDelta(t, 0.75, signals.QuestionRate, 0.0001)
}

func TestEmojiRuneInRange(t *testing.T) {
	require.True(t, emojiRuneInRange(0x1F600))
	require.True(t, emojiRuneInRange(0x1F9FF))
	require.False(t, emojiRuneInRange(0x0041))
}
