package rpb

import (
	"context"

	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

const browsingMinProfileViews = 3
const browsingSampleSize = 500

// Default dwell/read-rate figures used when finer-grained per-event
// dwell data isn't present in the payload (spec.md §4.1).
const (
	defaultAvgDwellMs  = 8000
	defaultBioReadRate = 0.6
)

func extractBrowsingSignals(ctx context.Context, userID string, events interfaces.EventRepository) (types.BrowsingSignals, bool, error) {
	profileViews, err := events.ListByType(ctx, userID, types.EventProfileViewed, browsingSampleSize)
	if err != nil {
		return types.BrowsingSignals{}, false, err
	}
	if len(profileViews) < browsingMinProfileViews {
		return types.BrowsingSignals{}, false, nil
	}

	photoViews, err := events.ListByType(ctx, userID, types.EventPhotoViewed, browsingSampleSize)
	if err != nil {
		return types.BrowsingSignals{}, false, err
	}

	dwellRatio := 0.0
	if len(profileViews) > 0 {
		dwellRatio = float64(len(photoViews)) / float64(len(profileViews))
	}

	sessions, err := events.ListByType(ctx, userID, types.EventAppOpened, browsingSampleSize)
	if err != nil {
		return types.BrowsingSignals{}, false, err
	}
	viewsPerSession := float64(len(profileViews))
	if len(sessions) > 0 {
		viewsPerSession = float64(len(profileViews)) / float64(len(sessions))
	}

	return types.BrowsingSignals{
		Present:                true,
		PhotoDwellRatio:        dwellRatio,
		AvgDwellMs:             defaultAvgDwellMs,
		BioReadRate:            defaultBioReadRate,
		ProfileViewsPerSession: viewsPerSession,
	}, true, nil
}
