// Package interfaces collects the narrow repository/adapter contracts
// the core depends on, mirroring the teacher's
// internal/types/interfaces layout (one interface per external
// collaborator, implementations live under internal/application).
package interfaces

import (
	"context"
	"time"

	"github.com/resonate/core/internal/types"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*types.User, error)
	GetManyByID(ctx context.Context, ids []string) (map[string]*types.User, error)
	ListActiveSince(ctx context.Context, cutoff time.Time, limit int) ([]*types.User, error)
	UpdateProfile(ctx context.Context, id string, patch UserPatch) error
	MarkOnboardingComplete(ctx context.Context, id string) error
	Touch(ctx context.Context, id string, at time.Time) error
}

type UserPatch struct {
	DisplayName *string
	Bio         *string
	Pronouns    *string
	City        *string
	Country     *string
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*types.ResonanceProfile, error)
	GetManyByUserID(ctx context.Context, userIDs []string) (map[string]*types.ResonanceProfile, error)
	Upsert(ctx context.Context, profile *types.ResonanceProfile) error
	Delete(ctx context.Context, userID string) error
}

type EventRepository interface {
	Track(ctx context.Context, events []*types.BehavioralEvent) (int, error)
	LatestByType(ctx context.Context, userID string, eventType types.EventType) (*types.BehavioralEvent, error)
	ListByType(ctx context.Context, userID string, eventType types.EventType, limit int) ([]*types.BehavioralEvent, error)
	ListByTypesOrdered(ctx context.Context, userID string, eventTypes []types.EventType, limit int) ([]*types.BehavioralEvent, error)
}

type MessageRepository interface {
	RecentByUser(ctx context.Context, userID string, limit int) ([]*types.Message, error)
	RecentByConversation(ctx context.Context, conversationID string, limit int) ([]*types.Message, error)
	LastN(ctx context.Context, conversationID string, n int) ([]*types.Message, error)
}

type ConversationRepository interface {
	GetByID(ctx context.Context, id string) (*types.Conversation, error)
	GetByMatchID(ctx context.Context, matchID string) (*types.Conversation, error)
	ListActiveSince(ctx context.Context, cutoff time.Time) ([]*types.Conversation, error)
	UpdateHealth(ctx context.Context, id string, state types.ConversationState, nudge *string, nudgeAt *time.Time) error
}

type MatchRepository interface {
	GetByID(ctx context.Context, id string) (*types.Match, error)
	GetByPair(ctx context.Context, userA, userB string) (*types.Match, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]*types.Match, error)
	SetResonanceSnapshot(ctx context.Context, id string, score int, waveform []byte) error
	// GhostRates computes, for each of the given user ids, the fraction
	// of their most recent 20 matched-but-never-started conversations
	// over total matched, in one aggregated query — resolving spec.md
	// §9's ghost-penalty Open Question (batched, not N round trips).
	GhostRates(ctx context.Context, userIDs []string) (map[string]float64, error)
}

type BlockReportRepository interface {
	ListInvolving(ctx context.Context, userID string) ([]*types.BlockReport, error)
	IsBlocked(ctx context.Context, reporterID, reportedID string) (bool, error)
}
