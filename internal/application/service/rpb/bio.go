package rpb

import (
	"context"
	"strings"

	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

// bioDeletionRate is the fixed constant applied whenever any bio_edited
// events exist (spec.md §4.1: "coarse deletion rate, fixed constant
// when any edits exist").
const bioDeletionRate = 0.15

// bioStyleModerate is a bio-length bucket, distinct from the five
// canonical communication Style values — only equality against
// StyleMinimal matters to the downstream style cascade (spec.md §4.2).
const bioStyleModerate types.Style = "moderate"

func bioStyleFromLength(wordCount int) types.Style {
	switch {
	case wordCount < 20:
		return types.StyleMinimal
	case wordCount > 80:
		return types.StyleExpressive
	default:
		return bioStyleModerate
	}
}

func extractBioSignals(ctx context.Context, user *types.User, events interfaces.EventRepository) (types.BioSignals, bool, error) {
	if strings.TrimSpace(user.Bio) == "" {
		return types.BioSignals{}, false, nil
	}

	wordCount := len(strings.Fields(user.Bio))

	edits, err := events.ListByType(ctx, user.ID, types.EventBioEdited, 0)
	if err != nil {
		return types.BioSignals{}, false, err
	}

	deletionRate := 0.0
	if len(edits) > 0 {
		deletionRate = bioDeletionRate
	}

	return types.BioSignals{
		Present:      true,
		WordCount:    wordCount,
		EditCount:    len(edits),
		DeletionRate: deletionRate,
		Style:        bioStyleFromLength(wordCount),
	}, true, nil
}
