package chm

import (
	"context"
	"fmt"
	"strings"

	"github.com/resonate/core/internal/logger"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/utils"
)

// nudgeSystemPrompt is verbatim (spec.md §6): the completion backend
// receives this unchanged for every nudge request.
const nudgeSystemPrompt = "You are a conversation catalyst for a dating app. Your job is to generate ONE specific, curious question that could naturally restart a cooling conversation. Rules: Under 25 words; Must be a question (end with ?); Reference ONE of the provided interest tags if possible; Never generic; Never guilt-trippy; Should spark genuine curiosity; Match the energy of the archetype provided."

const nudgeLastMessageCount = 3
const quietPartyWindow = 10

// quietParty identifies the participant who sent fewer of the last 10
// messages in the conversation; ties resolve to userA (spec.md §4.5).
func quietParty(messages []*types.Message, userAID, userBID string) string {
	window := tailN(messages, quietPartyWindow)
	countA, countB := 0, 0
	for _, m := range window {
		if m.SenderID == nil {
			continue
		}
		switch *m.SenderID {
		case userAID:
			countA++
		case userBID:
			countB++
		}
	}
	if countB < countA {
		return userBID
	}
	return userAID
}

func buildNudgeUserPrompt(quietProfile, otherProfile *types.ResonanceProfile, recent []*types.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quiet participant archetype: %s, style: %s, interest tags: %s.\n",
		quietProfile.Archetype, quietProfile.Style, strings.Join(quietProfile.DominantEmotions, ", "))
	fmt.Fprintf(&b, "Other participant archetype: %s, style: %s, interest tags: %s.\n",
		otherProfile.Archetype, otherProfile.Style, strings.Join(otherProfile.DominantEmotions, ", "))
	b.WriteString("Recent messages (oldest first):\n")
	for _, m := range tailN(recent, nudgeLastMessageCount) {
		fmt.Fprintf(&b, "- %s\n", utils.SanitizeForLog(m.Content))
	}
	return b.String()
}

// generateNudge is invoked only on a transition into cooling (spec.md
// §4.5). Completion failures are non-fatal: the caller persists the
// state transition regardless and leaves pendingNudge unset.
func (s *Service) generateNudge(ctx context.Context, conv *types.Conversation, userAID, userBID string, messages []*types.Message) (string, bool) {
	if s.Completer == nil {
		return "", false
	}

	quietID := quietParty(messages, userAID, userBID)
	otherID := userAID
	if quietID == userAID {
		otherID = userBID
	}

	profiles, err := s.Profiles.GetManyByUserID(ctx, []string{quietID, otherID})
	if err != nil {
		logger.Warn(ctx, "chm: failed to load profiles for nudge generation", "conversation_id", conv.ID, "error", err)
		return "", false
	}
	quietProfile, ok1 := profiles[quietID]
	otherProfile, ok2 := profiles[otherID]
	if !ok1 || !ok2 {
		return "", false
	}

	userPrompt := buildNudgeUserPrompt(quietProfile, otherProfile, messages)
	text, err := s.Completer.Complete(ctx, nudgeSystemPrompt, userPrompt)
	if err != nil {
		logger.Warn(ctx, "chm: completion request failed for nudge", "conversation_id", conv.ID, "error", err)
		return "", false
	}

	cleaned := utils.SanitizeForDisplay(strings.TrimSpace(text))
	if cleaned == "" {
		return "", false
	}
	return cleaned, true
}
