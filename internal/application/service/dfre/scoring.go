package dfre

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/resonate/core/internal/logger"
	"github.com/resonate/core/internal/types"
)

const (
	weightERS          = 0.40
	weightFreshness    = 0.15
	weightGhostPenalty = 0.15
	weightSubBoost     = 0.15

	boostPremium = 0.10
	boostPlus    = 0.05

	ersPoolSize = 16
)

// freshness implements spec.md §4.4 stage 3's tiered recency score.
func freshness(lastActive time.Time, now time.Time) float64 {
	hours := now.Sub(lastActive).Hours()
	switch {
	case hours <= 1:
		return 1.0
	case hours <= 24:
		return 0.9
	case hours <= 72:
		return 0.7
	default:
		v := 0.7 - (hours-72)/168
		if v < 0.3 {
			return 0.3
		}
		return v
	}
}

func subscriptionBoost(tier types.SubscriptionTier) float64 {
	switch tier {
	case types.TierPremium:
		return boostPremium
	case types.TierPlus:
		return boostPlus
	default:
		return 0
	}
}

func ghostPenalty(rate float64) float64 {
	v := rate * 0.7
	if v > 0.5 {
		return 0.5
	}
	return v
}

// softScore batch-loads candidate profiles, users, and ghost rates,
// fans out ERS calls over a bounded pool (spec.md §5: "implementation-
// defined, bounded"), and computes each candidate's final blended score.
func (s *Service) softScore(ctx context.Context, viewerID string, viewerProfile *types.ResonanceProfile, candidates []Candidate) ([]Candidate, error) {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.UserID
	}

	profiles, err := s.Profiles.GetManyByUserID(ctx, ids)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.GetManyByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	ghostRates, err := s.Matches.GhostRates(ctx, ids)
	if err != nil {
		logger.Warn(ctx, "dfre: ghost rate batch query failed, defaulting to zero", "viewer_id", viewerID, "error", err)
		ghostRates = map[string]float64{}
	}

	now := time.Now()
	pool, err := ants.NewPool(ersPoolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	scored := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		c := c
		profile, ok := profiles[c.UserID]
		if !ok {
			continue
		}
		user, ok := users[c.UserID]
		if !ok {
			continue
		}
		c.Profile = profile
		c.User = user
		c.Freshness = freshness(user.LastActiveAt, now)
		c.GhostPenalty = ghostPenalty(ghostRates[c.UserID])
		c.SubBoost = subscriptionBoost(user.SubscriptionTier)

		wg.Add(1)
		vecScore := c.VectorScore
		submitErr := pool.Submit(func() {
			defer wg.Done()
			result, err := s.ERS.Score(ctx, viewerID, c.UserID, &vecScore)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn(ctx, "dfre: ers scoring failed for candidate", "viewer_id", viewerID, "candidate_id", c.UserID, "error", err)
				c.ERSScore = 0
			} else {
				c.ERSScore = result.TotalScore
			}
			ersNormalized := float64(c.ERSScore) / 100.0
			c.FinalScore = ersNormalized*weightERS + c.Freshness*weightFreshness +
				(1-c.GhostPenalty)*weightGhostPenalty + (1+c.SubBoost)*weightSubBoost
			scored = append(scored, c)
		})
		if submitErr != nil {
			wg.Done()
			logger.Warn(ctx, "dfre: ers pool submit failed for candidate", "viewer_id", viewerID, "candidate_id", c.UserID, "error", submitErr)
		}
	}
	wg.Wait()

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	return scored, nil
}
