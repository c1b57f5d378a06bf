package ers

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resonate/core/internal/application/cache"
	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

const cacheTTL = time.Hour

// Result is the public ERS output (spec.md §4.3): total score,
// breakdown, and visualization payload.
type Result struct {
	TotalScore int       `json:"totalScore"`
	Breakdown  Breakdown `json:"breakdown"`
	Waveform   Waveform  `json:"waveform"`
}

type Service struct {
	Profiles interfaces.ProfileRepository
	Users    interfaces.UserRepository
	Cache    *cache.RedisCache
}

func New(profiles interfaces.ProfileRepository, users interfaces.UserRepository, c *cache.RedisCache) *Service {
	return &Service{Profiles: profiles, Users: users, Cache: c}
}

func cacheKey(userA, userB string) string {
	lo, hi := types.OrderedPair(userA, userB)
	return fmt.Sprintf("resonate:ers:%s:%s:score", lo, hi)
}

// Score computes (or returns the cached) ERS result for a pair of
// users, raising NotFound if either profile or user row is missing
// (spec.md §4.3). vectorSimilarity is an optional ANN-provided
// override; nil falls back to the 0.5 default.
func (s *Service) Score(ctx context.Context, userAID, userBID string, vectorSimilarity *float64) (*Result, error) {
	key := cacheKey(userAID, userBID)
	if s.Cache != nil {
		var cached Result
		if hit, err := s.Cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	var profileA, profileB *types.ResonanceProfile
	var userA, userB *types.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Profiles.GetByUserID(gctx, userAID)
		if err != nil {
			return err
		}
		profileA = p
		return nil
	})
	g.Go(func() error {
		p, err := s.Profiles.GetByUserID(gctx, userBID)
		if err != nil {
			return err
		}
		profileB = p
		return nil
	})
	g.Go(func() error {
		u, err := s.Users.GetByID(gctx, userAID)
		if err != nil {
			return err
		}
		userA = u
		return nil
	})
	g.Go(func() error {
		u, err := s.Users.GetByID(gctx, userBID)
		if err != nil {
			return err
		}
		userB = u
		return nil
	})
	if err := g.Wait(); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, err
		}
		return nil, apperrors.Upstream("load ers inputs", err)
	}

	base, breakdown := Base(Inputs{
		ProfileA:          profileA,
		ProfileB:          profileB,
		UserA:             userA,
		UserB:             userB,
		VectorSimilarity:  vectorSimilarity,
	})

	geo := geographicModifier(userA, userB)
	recency := recencyModifier(userA, userB, time.Now())
	comp := completenessModifier(profileA, profileB)
	mutual := mutualInterestModifier()

	final := clamp(base*geo*recency*comp*mutual, 0, 100)
	total := int(final + 0.5)

	lo, hi := types.OrderedPair(userAID, userBID)
	waveform := BuildWaveform(lo, hi, profileA.Archetype, profileB.Archetype, profileA.DepthScore, profileB.DepthScore)

	result := &Result{TotalScore: total, Breakdown: breakdown, Waveform: waveform}

	if s.Cache != nil {
		_ = s.Cache.Set(ctx, key, result, cacheTTL)
	}

	return result, nil
}
