package rpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

type fakeUserRepo struct {
	users            map[string]*types.User
	lastPatch        interfaces.UserPatch
	onboardingCalled bool
	touched          bool
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*types.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return u, nil
}
func (f *fakeUserRepo) GetManyByID(ctx context.Context, ids []string) (map[string]*types.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) ListActiveSince(ctx context.Context, cutoff time.Time, limit int) ([]*types.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, patch interfaces.UserPatch) error {
	f.lastPatch = patch
	return nil
}
func (f *fakeUserRepo) MarkOnboardingComplete(ctx context.Context, id string) error {
	f.onboardingCalled = true
	return nil
}
func (f *fakeUserRepo) Touch(ctx context.Context, id string, at time.Time) error {
	f.touched = true
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*types.ResonanceProfile
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*types.ResonanceProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.NotFound("profile", nil)
	}
	return p, nil
}
func (f *fakeProfileRepo) GetManyByUserID(ctx context.Context, userIDs []string) (map[string]*types.ResonanceProfile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *types.ResonanceProfile) error { return nil }
func (f *fakeProfileRepo) Delete(ctx context.Context, userID string) error                   { return nil }

type fakeEventRepo struct {
	tracked []*types.BehavioralEvent
}

func (f *fakeEventRepo) Track(ctx context.Context, events []*types.BehavioralEvent) (int, error) {
	f.tracked = append(f.tracked, events...)
	return len(events), nil
}
func (f *fakeEventRepo) LatestByType(ctx context.Context, userID string, eventType types.EventType) (*types.BehavioralEvent, error) {
	return nil, apperrors.NotFound("event", nil)
}
func (f *fakeEventRepo) ListByType(ctx context.Context, userID string, eventType types.EventType, limit int) ([]*types.BehavioralEvent, error) {
	return nil, nil
}
func (f *fakeEventRepo) ListByTypesOrdered(ctx context.Context, userID string, eventTypes []types.EventType, limit int) ([]*types.BehavioralEvent, error) {
	return nil, nil
}

func TestGetMeReturnsEmptyProfileWhenNotBuilt(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*types.User{"u1": {ID: "u1", DisplayName: "Ada"}}}
	profiles := &fakeProfileRepo{profiles: map[string]*types.ResonanceProfile{}}
	s := New(users, profiles, &fakeEventRepo{}, nil)

	result, err := s.GetMe(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", result.User.DisplayName)
	assert.Nil(t, result.Profile)
}

func TestGetMeRejectsMissingCaller(t *testing.T) {
	s := New(&fakeUserRepo{}, &fakeProfileRepo{}, &fakeEventRepo{}, nil)
	_, err := s.GetMe(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestUpdateProfileValidatesDisplayNameLength(t *testing.T) {
	users := &fakeUserRepo{}
	s := New(users, &fakeProfileRepo{}, &fakeEventRepo{}, nil)

	tooShort := "a"
	err := s.UpdateProfile(context.Background(), "u1", UpdateProfilePatch{DisplayName: &tooShort})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestUpdateProfileAcceptsValidPatch(t *testing.T) {
	users := &fakeUserRepo{}
	s := New(users, &fakeProfileRepo{}, &fakeEventRepo{}, nil)

	name := "Ada Lovelace"
	err := s.UpdateProfile(context.Background(), "u1", UpdateProfilePatch{DisplayName: &name})
	require.NoError(t, err)
	require.NotNil(t, users.lastPatch.DisplayName)
	assert.Equal(t, name, *users.lastPatch.DisplayName)
}

func TestTrackEventsRejectsOverLimitBatch(t *testing.T) {
	users := &fakeUserRepo{}
	s := New(users, &fakeProfileRepo{}, &fakeEventRepo{}, nil)

	events := make([]TrackedEvent, 101)
	for i := range events {
		events[i] = TrackedEvent{EventType: "app_opened", ClientTs: time.Now()}
	}

	_, err := s.TrackEvents(context.Background(), "u1", TrackEventsRequest{SessionID: "s1", Events: events})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestTrackEventsAcceptsValidBatch(t *testing.T) {
	users := &fakeUserRepo{}
	eventRepo := &fakeEventRepo{}
	s := New(users, &fakeProfileRepo{}, eventRepo, nil)

	result, err := s.TrackEvents(context.Background(), "u1", TrackEventsRequest{
		SessionID: "s1",
		Events:    []TrackedEvent{{EventType: "app_opened", ClientTs: time.Now()}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)
	assert.True(t, users.touched)
	assert.Len(t, eventRepo.tracked, 1)
}

func TestDiscoverFeedRejectsLimitOutOfRange(t *testing.T) {
	s := New(&fakeUserRepo{}, &fakeProfileRepo{}, &fakeEventRepo{}, nil)
	tooMany := 51
	_, err := s.DiscoverFeed(context.Background(), "u1", DiscoverFeedRequest{Limit: &tooMany})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}
