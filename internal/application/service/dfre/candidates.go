// Package dfre implements the Dynamic Feed Ranking Engine (spec.md
// §4.4): candidate retrieval, safety filtering, soft scoring,
// diversity injection, and paginated caching.
package dfre

import (
	"context"
	"time"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/logger"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

const annTopK = 500
const dbFallbackLimit = 500
const activeWindow = 7 * 24 * time.Hour

// Candidate is one feed entry as it flows through the pipeline stages.
type Candidate struct {
	UserID          string
	VectorScore     float64
	Profile         *types.ResonanceProfile
	User            *types.User
	Freshness       float64
	GhostPenalty    float64
	SubBoost        float64
	ERSScore        int
	FinalScore      float64
	DiversityBonus  float64
}

// retrieveCandidates fetches the viewer's profile and actual stored
// vector, queries the ANN index excluding the viewer, and falls back
// to a bounded database scan on ANN failure (spec.md §4.4 stage 1,
// resolving §9's self-query Open Question by fetching the real vector
// rather than a zero-vector).
func (s *Service) retrieveCandidates(ctx context.Context, viewerID string) ([]Candidate, *types.ResonanceProfile, error) {
	viewerProfile, err := s.Profiles.GetByUserID(ctx, viewerID)
	if apperrors.Is(err, apperrors.KindNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	viewerVector, err := s.Vectors.Get(ctx, viewerID)
	if err == nil {
		matches, err := s.Vectors.Query(ctx, viewerVector, annTopK, interfaces.VectorFilter{
			NotEqual: map[string]string{"user_id": viewerID},
		})
		if err == nil {
			candidates := make([]Candidate, 0, len(matches))
			for _, m := range matches {
				candidates = append(candidates, Candidate{UserID: m.UserID, VectorScore: m.Score})
			}
			return candidates, viewerProfile, nil
		}
		logger.Warn(ctx, "dfre: ANN query failed, falling back to database scan", "viewer_id", viewerID, "error", err)
	} else {
		logger.Warn(ctx, "dfre: viewer vector unavailable, falling back to database scan", "viewer_id", viewerID, "error", err)
	}

	users, err := s.Users.ListActiveSince(ctx, time.Now().Add(-activeWindow), dbFallbackLimit)
	if err != nil {
		return nil, viewerProfile, apperrors.Upstream("candidate db fallback", err)
	}
	candidates := make([]Candidate, 0, len(users))
	for _, u := range users {
		if u.ID == viewerID {
			continue
		}
		candidates = append(candidates, Candidate{UserID: u.ID, VectorScore: 0.5})
	}
	return candidates, viewerProfile, nil
}
