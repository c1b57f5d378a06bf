package rpc

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resonate/core/internal/application/service/dfre"
	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

const maxTrackedEventsPerCall = 100

// Service implements the public RPC surface (spec.md §6). Every
// method takes the already-authenticated caller's user id; session
// verification itself is an out-of-scope external collaborator
// (spec.md §1), but an empty caller id is rejected defensively.
type Service struct {
	Users    interfaces.UserRepository
	Profiles interfaces.ProfileRepository
	Events   interfaces.EventRepository
	Feed     *dfre.Service
}

func New(users interfaces.UserRepository, profiles interfaces.ProfileRepository, events interfaces.EventRepository, feed *dfre.Service) *Service {
	return &Service{Users: users, Profiles: profiles, Events: events, Feed: feed}
}

func requireCaller(callerID string) error {
	if callerID == "" {
		return apperrors.Unauthorized("missing caller session", nil)
	}
	return nil
}

// UserWithProfile is getMe's response shape (spec.md §6): the user
// row plus its resonance profile, if one has been built yet.
type UserWithProfile struct {
	User    *types.User
	Profile *types.ResonanceProfile
}

func (s *Service) GetMe(ctx context.Context, callerID string) (*UserWithProfile, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}

	user, err := s.Users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	profile, err := s.Profiles.GetByUserID(ctx, callerID)
	if apperrors.Is(err, apperrors.KindNotFound) {
		return &UserWithProfile{User: user}, nil
	}
	if err != nil {
		return nil, err
	}
	return &UserWithProfile{User: user, Profile: profile}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, callerID string, patch UpdateProfilePatch) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if err := validateRequest(patch); err != nil {
		return err
	}

	return s.Users.UpdateProfile(ctx, callerID, interfaces.UserPatch{
		DisplayName: patch.DisplayName,
		Bio:         patch.Bio,
		Pronouns:    patch.Pronouns,
		City:        patch.City,
		Country:     patch.Country,
	})
}

func (s *Service) CompleteOnboarding(ctx context.Context, callerID string) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	return s.Users.MarkOnboardingComplete(ctx, callerID)
}

// TrackEventsResult reports the count accepted (spec.md §6).
type TrackEventsResult struct {
	Accepted int
}

func (s *Service) TrackEvents(ctx context.Context, callerID string, req TrackEventsRequest) (*TrackEventsResult, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	events := make([]*types.BehavioralEvent, 0, len(req.Events))
	for _, e := range req.Events {
		events = append(events, &types.BehavioralEvent{
			ID:        uuid.NewString(),
			UserID:    callerID,
			SessionID: req.SessionID,
			EventType: types.EventType(e.EventType),
			EventData: e.EventData,
			ClientTs:  e.ClientTs,
			ServerTs:  now,
		})
	}

	accepted, err := s.Events.Track(ctx, events)
	if err != nil {
		return nil, err
	}

	if touchErr := s.Users.Touch(ctx, callerID, now); touchErr != nil {
		return nil, touchErr
	}

	return &TrackEventsResult{Accepted: accepted}, nil
}

func (s *Service) DiscoverFeed(ctx context.Context, callerID string, req DiscoverFeedRequest) (*dfre.Page, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cursor := 0
	if req.Cursor != nil {
		parsed, err := parseCursor(*req.Cursor)
		if err != nil {
			return nil, apperrors.Validation("invalid cursor", err)
		}
		cursor = parsed
	}
	limit := 30
	if req.Limit != nil {
		limit = *req.Limit
	}

	return s.Feed.Discover(ctx, callerID, cursor, limit)
}
