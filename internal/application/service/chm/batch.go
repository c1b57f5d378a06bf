package chm

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/resonate/core/internal/logger"
	"github.com/resonate/core/internal/types"
)

const batchWindow = 7 * 24 * time.Hour

// BatchResult is the structured count the scheduler reports for
// observability (spec.md §7): total, healthy, cooling, dormant,
// nudgesGenerated.
type BatchResult struct {
	Total           int `json:"total"`
	Healthy         int `json:"healthy"`
	Cooling         int `json:"cooling"`
	Dormant         int `json:"dormant"`
	NudgesGenerated int `json:"nudgesGenerated"`
}

// RunBatch enumerates every conversation active within the last 7
// days and processes each serially (spec.md §4.5, §5: the batch
// driver bounds cost by not fanning out across conversations).
// Per-conversation failures are logged, counted, and do not abort the
// remaining batch.
func (s *Service) RunBatch(ctx context.Context) (BatchResult, error) {
	conversations, err := s.Conversations.ListActiveSince(ctx, time.Now().Add(-batchWindow))
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	var errs *multierror.Error

	for _, conv := range conversations {
		result.Total++
		eval, err := s.ProcessConversation(ctx, conv.ID)
		if err != nil {
			logger.Warn(ctx, "chm: batch pass failed for conversation", "conversation_id", conv.ID, "error", err)
			errs = multierror.Append(errs, err)
			continue
		}

		switch eval.NewState {
		case types.ConversationCooling:
			result.Cooling++
		case types.ConversationDormant:
			result.Dormant++
		default:
			result.Healthy++
		}
		if eval.NudgeGenerated {
			result.NudgesGenerated++
		}
	}

	return result, errs.ErrorOrNil()
}
