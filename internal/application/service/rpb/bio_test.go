package rpb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/resonate/core/internal/types"
)

func TestExtractBioSignalsNoBioIsAbsent(t *testing.T) {
	user := &types.User{ID: "u1"}
	_, present, err := extractBioSignals(context.Background(), user, &fakeEventRepo{})
	require.NoError(t, err)
	require.False(t, present)
}

func TestExtractBioSignalsMinimalStyle(t *testing.T) {
	user := &types.User{ID: "u1", Bio: "Sound engineer by day"}
	signals, present, err := extractBioSignals(context.Background(), user, &fakeEventRepo{})
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, 4, signals.WordCount)
	require.Equal(t, types.StyleMinimal, signals.Style)
	require.Equal(t, 0.0, signals.DeletionRate)
}

func TestExtractBioSignalsDeletionRateWithEdits(t *testing.T) {
	user := &types.User{ID: "u1", Bio: "Sound engineer by day"}
	repo := &fakeEventRepo{byType: map[types.EventType][]*types.BehavioralEvent{
		types.EventBioEdited: {{}, {}},
	}}
	signals, present, err := extractBioSignals(context.Background(), user, repo)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, 2, signals.EditCount)
	require.Equal(t, bioDeletionRate, signals.DeletionRate)
}
