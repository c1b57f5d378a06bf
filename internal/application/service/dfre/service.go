package dfre

import (
	"context"

	"github.com/resonate/core/internal/application/service/ers"
	"github.com/resonate/core/internal/logger"
	"github.com/resonate/core/internal/types/interfaces"
)

// Service wires the five discovery-feed pipeline stages: candidate
// retrieval, safety filtering, soft scoring, diversity injection, and
// paginated caching (spec.md §4.4).
type Service struct {
	Profiles     interfaces.ProfileRepository
	Users        interfaces.UserRepository
	Matches      interfaces.MatchRepository
	BlockReports interfaces.BlockReportRepository
	Vectors      interfaces.VectorStore
	Cache        interfaces.Cache
	ERS          *ers.Service
}

func New(profiles interfaces.ProfileRepository, users interfaces.UserRepository, matches interfaces.MatchRepository, blockReports interfaces.BlockReportRepository, vectors interfaces.VectorStore, cache interfaces.Cache, ersSvc *ers.Service) *Service {
	return &Service{
		Profiles:     profiles,
		Users:        users,
		Matches:      matches,
		BlockReports: blockReports,
		Vectors:      vectors,
		Cache:        cache,
		ERS:          ersSvc,
	}
}

// Discover runs the full pipeline for one viewer and returns the
// requested page (spec.md §4.4, §6's feed.discover operation).
func (s *Service) Discover(ctx context.Context, viewerID string, cursor int, limit int) (*Page, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	candidates, viewerProfile, err := s.retrieveCandidates(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	retrievedCount := len(candidates)

	if viewerProfile == nil || len(candidates) == 0 {
		return &Page{
			Profiles: nil,
			Cursor:   nil,
			Total:    0,
			Debug: DebugSummary{
				Retrieved:   retrievedCount,
				AfterSafety: 0,
				Archetypes:  ArchetypeHistogram{},
			},
		}, nil
	}

	excluded, err := s.safetyExclusions(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	candidates = filterSafe(candidates, excluded)
	afterSafetyCount := len(candidates)

	scored, err := s.softScore(ctx, viewerID, viewerProfile, candidates)
	if err != nil {
		return nil, err
	}

	overflowLimit := limit + diversityOverflow
	windowEnd := overflowLimit
	if windowEnd > len(scored) {
		windowEnd = len(scored)
	}
	window := injectDiversity(scored[:windowEnd], limit)
	ranked := append(window, scored[windowEnd:]...)

	histogram := ArchetypeHistogram{}
	for _, c := range ranked {
		if c.Profile != nil {
			histogram[string(c.Profile.Archetype)]++
		}
	}

	debug := DebugSummary{
		Retrieved:   retrievedCount,
		AfterSafety: afterSafetyCount,
		Archetypes:  histogram,
	}

	page, err := s.paginateAndCache(ctx, viewerID, ranked, cursor, limit, debug)
	if err != nil {
		logger.Warn(ctx, "dfre: page caching failed", "viewer_id", viewerID, "error", err)
	}
	return page, nil
}
