package dfre

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/resonate/core/internal/logger"
)

func blockedSetKey(userID string) string    { return fmt.Sprintf("resonate:user:%s:blocked_set", userID) }
func passedSetKey(userID string) string     { return fmt.Sprintf("resonate:user:%s:passed_set", userID) }
func resonatedSetKey(userID string) string  { return fmt.Sprintf("resonate:user:%s:resonated_set", userID) }
func blockedBySetKey(userID string) string  { return fmt.Sprintf("resonate:user:%s:blocked_by_set", userID) }

// safetyExclusions unions the viewer's block set, passed set, prior
// resonate set, and blocked-by set (all read from cache in parallel),
// plus a database read of blocks_reports involving the viewer
// (spec.md §4.4 stage 2).
func (s *Service) safetyExclusions(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	excluded := map[string]struct{}{}

	var blocked, passed, resonated, blockedBy []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.Cache.SMembers(gctx, blockedSetKey(viewerID))
		if err != nil {
			return err
		}
		blocked = v
		return nil
	})
	g.Go(func() error {
		v, err := s.Cache.SMembers(gctx, passedSetKey(viewerID))
		if err != nil {
			return err
		}
		passed = v
		return nil
	})
	g.Go(func() error {
		v, err := s.Cache.SMembers(gctx, resonatedSetKey(viewerID))
		if err != nil {
			return err
		}
		resonated = v
		return nil
	})
	g.Go(func() error {
		v, err := s.Cache.SMembers(gctx, blockedBySetKey(viewerID))
		if err != nil {
			return err
		}
		blockedBy = v
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Warn(ctx, "dfre: safety cache reads failed, proceeding with partial exclusions", "viewer_id", viewerID, "error", err)
	}

	for _, set := range [][]string{blocked, passed, resonated, blockedBy} {
		for _, id := range set {
			excluded[id] = struct{}{}
		}
	}

	records, err := s.BlockReports.ListInvolving(ctx, viewerID)
	if err != nil {
		return excluded, err
	}
	for _, rec := range records {
		if rec.ReporterID == viewerID {
			excluded[rec.ReportedID] = struct{}{}
		} else {
			excluded[rec.ReporterID] = struct{}{}
		}
	}

	return excluded, nil
}

func filterSafe(candidates []Candidate, excluded map[string]struct{}) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, blocked := excluded[c.UserID]; blocked {
			continue
		}
		out = append(out, c)
	}
	return out
}
