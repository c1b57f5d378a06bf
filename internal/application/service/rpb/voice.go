package rpb

import (
	"context"
	"encoding/json"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

// extractVoiceSignals reads the most recent voice_note_analyzed event
// (spec.md §4.1). No voice URL on the user means "no data"; a URL with
// no analysis event yet means a zero-initialized bundle at the default
// moderate pace.
func extractVoiceSignals(ctx context.Context, user *types.User, events interfaces.EventRepository) (types.VoiceSignals, bool, error) {
	if user.VoiceURL == "" {
		return types.VoiceSignals{}, false, nil
	}

	ev, err := events.LatestByType(ctx, user.ID, types.EventVoiceNoteAnalyzed)
	if apperrors.Is(err, apperrors.KindNotFound) {
		return types.VoiceSignals{Present: true, Pace: types.PaceModerate}, true, nil
	}
	if err != nil {
		return types.VoiceSignals{}, false, err
	}

	var payload types.VoiceNoteAnalyzedPayload
	if err := json.Unmarshal(ev.EventData, &payload); err != nil {
		return types.VoiceSignals{Present: true, Pace: types.PaceModerate}, true, nil
	}

	pace := payload.Pace
	if pace == "" {
		pace = types.PaceModerate
	}
	return types.VoiceSignals{
		Present:            true,
		WordCount:          payload.WordCount,
		VocabularyRichness: payload.VocabularyRichness,
		Sentiment:          payload.Sentiment,
		DominantEmotions:   payload.DominantEmotions,
		Pace:               pace,
	}, true, nil
}
