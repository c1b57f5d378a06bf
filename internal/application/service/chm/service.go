package chm

import (
	"context"
	"time"

	"github.com/resonate/core/internal/logger"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

const messageFetchLimit = 100

// Service wires conversation, message, match, and profile access plus
// the completion backend used for nudge generation.
type Service struct {
	Conversations interfaces.ConversationRepository
	Messages      interfaces.MessageRepository
	Matches       interfaces.MatchRepository
	Profiles      interfaces.ProfileRepository
	Completer     interfaces.Completer
}

func New(conversations interfaces.ConversationRepository, messages interfaces.MessageRepository, matches interfaces.MatchRepository, profiles interfaces.ProfileRepository, completer interfaces.Completer) *Service {
	return &Service{
		Conversations: conversations,
		Messages:      messages,
		Matches:       matches,
		Profiles:      profiles,
		Completer:     completer,
	}
}

// ProcessConversation runs one full CHM pass for a single conversation
// id: fetch recent messages, compute signals, transition state, and
// — only on a fresh transition into cooling — attempt nudge
// generation, then persist (spec.md §4.5).
func (s *Service) ProcessConversation(ctx context.Context, conversationID string) (Evaluation, error) {
	conv, err := s.Conversations.GetByID(ctx, conversationID)
	if err != nil {
		return Evaluation{}, err
	}

	messages, err := s.Messages.LastN(ctx, conversationID, messageFetchLimit)
	if err != nil {
		return Evaluation{}, err
	}

	eval := evaluateConversation(conv, messages, time.Now())

	var nudge *string
	var nudgeAt *time.Time
	if eval.TransitionedToCooling {
		match, matchErr := s.Matches.GetByID(ctx, conv.MatchID)
		if matchErr != nil {
			logger.Warn(ctx, "chm: failed to load match for nudge targeting", "conversation_id", conversationID, "error", matchErr)
		} else {
			if text, ok := s.generateNudge(ctx, conv, match.UserAID, match.UserBID, messages); ok {
				now := time.Now()
				nudge = &text
				nudgeAt = &now
				eval.NudgeGenerated = true
			}
		}
	}

	if err := s.Conversations.UpdateHealth(ctx, conversationID, eval.NewState, nudge, nudgeAt); err != nil {
		return eval, err
	}

	return eval, nil
}
