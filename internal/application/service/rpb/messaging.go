package rpb

import (
	"context"
	"strings"

	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

const messagingSampleSize = 500
const messagingMinCount = 3

// emojiRuneInRange reports whether r falls in the emoji block spec.md
// §4.1 names (U+1F600–U+1F9FF).
func emojiRuneInRange(r rune) bool {
	return r >= 0x1F600 && r <= 0x1F9FF
}

func extractMessagingSignals(ctx context.Context, userID string, messages interfaces.MessageRepository) (types.MessagingSignals, bool, error) {
	recent, err := messages.RecentByUser(ctx, userID, messagingSampleSize)
	if err != nil {
		return types.MessagingSignals{}, false, err
	}
	if len(recent) < messagingMinCount {
		return types.MessagingSignals{}, false, nil
	}

	var (
		totalChars      int
		questionCount   int
		emojiCount      int
		tokenCounts     = map[string]struct{}{}
		totalTokenCount int
	)

	for _, m := range recent {
		totalChars += len([]rune(m.Content))
		if strings.Contains(m.Content, "?") {
			questionCount++
		}
		for _, r := range m.Content {
			if emojiRuneInRange(r) {
				emojiCount++
			}
		}
		for _, tok := range strings.Fields(strings.ToLower(m.Content)) {
			tokenCounts[tok] = struct{}{}
			totalTokenCount++
		}
	}

	n := float64(len(recent))
	vocabDiversity := 0.0
	if totalTokenCount > 0 {
		vocabDiversity = float64(len(tokenCounts)) / float64(totalTokenCount)
	}

	return types.MessagingSignals{
		Present:             true,
		AvgCharLength:       float64(totalChars) / n,
		QuestionRate:        float64(questionCount) / n,
		EmojiRate:           float64(emojiCount) / n,
		VocabularyDiversity: vocabDiversity,
		TotalMessageCount:   len(recent),
	}, true, nil
}
