package rpb

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
)

type fakeEventRepo struct {
	latest    map[types.EventType]*types.BehavioralEvent
	byType    map[types.EventType][]*types.BehavioralEvent
	ordered   []*types.BehavioralEvent
}

func (f *fakeEventRepo) Track(ctx context.Context, events []*types.BehavioralEvent) (int, error) {
	return len(events), nil
}

func (f *fakeEventRepo) LatestByType(ctx context.Context, userID string, eventType types.EventType) (*types.BehavioralEvent, error) {
	if f.latest == nil {
		return nil, apperrors.NotFound("no event", nil)
	}
	ev, ok := f.latest[eventType]
	if !ok {
		return nil, apperrors.NotFound("no event", nil)
	}
	return ev, nil
}

func (f *fakeEventRepo) ListByType(ctx context.Context, userID string, eventType types.EventType, limit int) ([]*types.BehavioralEvent, error) {
	return f.byType[eventType], nil
}

func (f *fakeEventRepo) ListByTypesOrdered(ctx context.Context, userID string, eventTypes []types.EventType, limit int) ([]*types.BehavioralEvent, error) {
	return f.ordered, nil
}

func TestExtractVoiceSignalsNoURLMeansAbsent(t *testing.T) {
	user := &types.User{ID: "u1"}
	_, present, err := extractVoiceSignals(context.Background(), user, &fakeEventRepo{})
	require.NoError(t, err)
	require.False(t, present)
}

func TestExtractVoiceSignalsURLNoEventDefaultsModeratePace(t *testing.T) {
	user := &types.User{ID: "u1", VoiceURL: "https://example.com/v.mp3"}
	signals, present, err := extractVoiceSignals(context.Background(), user, &fakeEventRepo{})
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, types.PaceModerate, signals.Pace)
}

func TestExtractVoiceSignalsParsesPayload(t *testing.T) {
	payload, _ := json.Marshal(types.VoiceNoteAnalyzedPayload{
		WordCount: 120, VocabularyRichness: 0.4, Sentiment: 0.2,
		DominantEmotions: []string{"joy"}, Pace: types.PaceFast,
	})
	repo := &fakeEventRepo{latest: map[types.EventType]*types.BehavioralEvent{
		types.EventVoiceNoteAnalyzed: {EventData: payload},
	}}
	user := &types.User{ID: "u1", VoiceURL: "https://example.com/v.mp3"}
	signals, present, err := extractVoiceSignals(context.Background(), user, repo)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, types.PaceFast, signals.Pace)
	require.Equal(t, 120, signals.WordCount)
}
