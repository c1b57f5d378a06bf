package dfre

import (
	"context"
	"fmt"
	"time"

	"github.com/resonate/core/internal/logger"
)

const defaultPageSize = 30
const pageCacheTTL = 3 * time.Minute

func rankedListKey(viewerID string) string { return fmt.Sprintf("resonate:user:%s:feed_ranked", viewerID) }
func pageKey(viewerID, cursor string) string {
	return fmt.Sprintf("resonate:user:%s:feed_page_%s", viewerID, cursor)
}

// ArchetypeHistogram is part of the debug summary (spec.md §4.4 stage 5).
type ArchetypeHistogram map[string]int

// DebugSummary reports pipeline stage counts for observability.
type DebugSummary struct {
	Retrieved   int                `json:"retrieved"`
	AfterSafety int                `json:"afterSafety"`
	Archetypes  ArchetypeHistogram `json:"archetypeHistogram"`
}

// Page is one emitted page of the discovery feed (spec.md §6's
// feed.discover response shape).
type Page struct {
	Profiles []Candidate  `json:"profiles"`
	Cursor   *string      `json:"cursor"`
	Total    int          `json:"total"`
	Debug    DebugSummary `json:"debug"`
}

// paginateAndCache slices the ranked list into a page, caches the full
// list and the emitted page, per spec.md §4.4 stage 5.
func (s *Service) paginateAndCache(ctx context.Context, viewerID string, ranked []Candidate, cursor int, limit int, debug DebugSummary) (*Page, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	start := cursor * limit
	if start > len(ranked) {
		start = len(ranked)
	}
	end := start + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	pageItems := ranked[start:end]

	var nextCursor *string
	if end < len(ranked) {
		next := fmt.Sprintf("%d", cursor+1)
		nextCursor = &next
	}

	page := &Page{
		Profiles: pageItems,
		Cursor:   nextCursor,
		Total:    len(ranked),
		Debug:    debug,
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, rankedListKey(viewerID), ranked, pageCacheTTL); err != nil {
			logger.Warn(ctx, "dfre: failed to cache ranked list", "viewer_id", viewerID, "error", err)
		}
		cursorStr := fmt.Sprintf("%d", cursor)
		if err := s.Cache.Set(ctx, pageKey(viewerID, cursorStr), page, pageCacheTTL); err != nil {
			logger.Warn(ctx, "dfre: failed to cache feed page", "viewer_id", viewerID, "error", err)
		}
	}

	return page, nil
}
