// Package rpb implements the Resonance Profile Builder (spec.md §4.1,
// §4.2): six concurrent signal aggregators, archetype/style
// classification, embedding-prompt construction, and the rebuild
// orchestration that writes the profile row and vector.
package rpb

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resonate/core/internal/application/cache"
	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/logger"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

const modelVersion = "rpb-v1"
const embeddingDimensions = 1536

type Service struct {
	Users     interfaces.UserRepository
	Events    interfaces.EventRepository
	Messages  interfaces.MessageRepository
	Profiles  interfaces.ProfileRepository
	Vectors   interfaces.VectorStore
	Embedder  interfaces.Embedder
	Cache     *cache.RedisCache
	FreshnessWindow time.Duration
}

func New(users interfaces.UserRepository, events interfaces.EventRepository, messages interfaces.MessageRepository,
	profiles interfaces.ProfileRepository, vectors interfaces.VectorStore, embedder interfaces.Embedder, c *cache.RedisCache) *Service {
	return &Service{
		Users:           users,
		Events:          events,
		Messages:        messages,
		Profiles:        profiles,
		Vectors:         vectors,
		Embedder:        embedder,
		Cache:           c,
		FreshnessWindow: 48 * time.Hour,
	}
}

// RebuildResult mirrors the scheduled-job structured counts spec.md §7
// asks for observability.
type RebuildResult struct {
	Rebuilt int
	Skipped int
	Failed  int
}

// aggregateSignals runs the six extractors concurrently; each
// extractor's own error is a soft-fail (logged, bundle marked absent),
// per spec.md §4.1 ("each must tolerate the absence of any other").
func (s *Service) aggregateSignals(ctx context.Context, user *types.User) types.SignalBundle {
	var bundle types.SignalBundle
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, present, err := extractVoiceSignals(gctx, user, s.Events)
		if err != nil {
			logger.Warn(ctx, "voice signal extraction failed", "user_id", user.ID, "error", err)
			return nil
		}
		v.Present = present
		bundle.Voice = v
		return nil
	})
	g.Go(func() error {
		v, present, err := extractBioSignals(gctx, user, s.Events)
		if err != nil {
			logger.Warn(ctx, "bio signal extraction failed", "user_id", user.ID, "error", err)
			return nil
		}
		v.Present = present
		bundle.Bio = v
		return nil
	})
	g.Go(func() error {
		v, present, err := extractMessagingSignals(gctx, user.ID, s.Messages)
		if err != nil {
			logger.Warn(ctx, "messaging signal extraction failed", "user_id", user.ID, "error", err)
			return nil
		}
		v.Present = present
		bundle.Messaging = v
		return nil
	})
	g.Go(func() error {
		v, present, err := extractTypingSignals(gctx, user.ID, s.Events)
		if err != nil {
			logger.Warn(ctx, "typing signal extraction failed", "user_id", user.ID, "error", err)
			return nil
		}
		v.Present = present
		bundle.Typing = v
		return nil
	})
	g.Go(func() error {
		v, present, err := extractSessionSignals(gctx, user.ID, s.Events)
		if err != nil {
			logger.Warn(ctx, "session signal extraction failed", "user_id", user.ID, "error", err)
			return nil
		}
		v.Present = present
		bundle.Session = v
		return nil
	})
	g.Go(func() error {
		v, present, err := extractBrowsingSignals(gctx, user.ID, s.Events)
		if err != nil {
			logger.Warn(ctx, "browsing signal extraction failed", "user_id", user.ID, "error", err)
			return nil
		}
		v.Present = present
		bundle.Browsing = v
		return nil
	})
	_ = g.Wait()

	return bundle
}

// Rebuild runs one full RPB pass for a single user: aggregate (parallel)
// -> classify (sequential) -> embed -> vector upsert -> profile upsert
// -> cache invalidation (spec.md §4.2, §5).
func (s *Service) Rebuild(ctx context.Context, userID string) error {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	bundle := s.aggregateSignals(ctx, user)

	archetype := classifyArchetype(bundle)
	style := classifyStyle(bundle)
	depth := depthScore(bundle)
	emotions := dominantEmotions(bundle)
	comp := completeness(bundle)

	profile := &types.ResonanceProfile{
		UserID:             user.ID,
		Archetype:          archetype,
		Style:              style,
		DominantEmotions:   emotions,
		HourlyActivity:     bundle.Session.HourlyActivity,
		VocabularyRichness: bundle.Voice.VocabularyRichness,
		HumorScore:         humorScore(bundle),
		DepthScore:         depth,
		CompletenessScore:  comp,
		ModelVersion:       modelVersion,
		LastRecalculatedAt: time.Now(),
	}

	prompt := buildEmbeddingPrompt(user, bundle)
	result, embedErr := s.Embedder.Embed(ctx, prompt)
	if embedErr != nil {
		logger.Warn(ctx, "embedding request failed, committing partial profile", "user_id", userID, "error", embedErr)
		profile.EmbeddingGenerated = false
	} else {
		profile.EmbeddingGenerated = true
		metadata := types.VectorMetadata{
			UserID:           user.ID,
			Archetype:        string(archetype),
			Style:            string(style),
			City:             user.City,
			SubscriptionTier: string(user.SubscriptionTier),
			LastActiveISO:    user.LastActiveAt.UTC().Format(time.RFC3339),
		}
		if err := s.Vectors.Upsert(ctx, user.ID, result.Vector, metadata); err != nil {
			logger.Warn(ctx, "vector upsert failed, committing partial profile", "user_id", userID, "error", err)
			profile.EmbeddingGenerated = false
		}
	}

	if err := s.Profiles.Upsert(ctx, profile); err != nil {
		return apperrors.Upstream("upsert resonance profile", err)
	}

	if s.Cache != nil {
		if _, err := cache.InvalidateUserPattern(ctx, s.Cache, user.ID); err != nil {
			logger.Warn(ctx, "cache invalidation failed after rebuild", "user_id", userID, "error", err)
		}
	}

	return nil
}

// DailyRebuildPass runs the 03:00 UTC sweep over every active user,
// skipping anyone whose profile is fresher than the freshness window
// (spec.md §4.2).
func (s *Service) DailyRebuildPass(ctx context.Context) RebuildResult {
	var result RebuildResult

	users, err := s.Users.ListActiveSince(ctx, time.Now().Add(-7*24*time.Hour), 0)
	if err != nil {
		logger.Error(ctx, "daily rebuild: failed to list active users", "error", err)
		return result
	}

	for _, user := range users {
		existing, err := s.Profiles.GetByUserID(ctx, user.ID)
		if err == nil && existing.IsFresh(time.Now(), s.FreshnessWindow) {
			result.Skipped++
			continue
		}
		if err := s.Rebuild(ctx, user.ID); err != nil {
			logger.Error(ctx, "daily rebuild: user rebuild failed", "user_id", user.ID, "error", err)
			result.Failed++
			continue
		}
		result.Rebuilt++
	}

	return result
}
