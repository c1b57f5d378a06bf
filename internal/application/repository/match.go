package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) interfaces.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*types.Match, error) {
	var m types.Match
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match not found", err)
		}
		return nil, apperrors.Upstream("load match", err)
	}
	return &m, nil
}

// GetByPair looks up the match row by the canonical ordered pair,
// matching the uniqueness constraint (spec.md §3, types.OrderedPair).
func (r *matchRepository) GetByPair(ctx context.Context, userA, userB string) (*types.Match, error) {
	lo, hi := types.OrderedPair(userA, userB)
	var m types.Match
	if err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", lo, hi).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("match not found for pair", err)
		}
		return nil, apperrors.Upstream("load match by pair", err)
	}
	return &m, nil
}

func (r *matchRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]*types.Match, error) {
	var matches []*types.Match
	if err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&matches).Error; err != nil {
		return nil, apperrors.Upstream("load recent matches", err)
	}
	return matches, nil
}

func (r *matchRepository) SetResonanceSnapshot(ctx context.Context, id string, score int, waveform []byte) error {
	if err := r.db.WithContext(ctx).Model(&types.Match{}).Where("id = ?", id).Updates(map[string]any{
		"resonance_score":  score,
		"waveform_payload": waveform,
	}).Error; err != nil {
		return apperrors.Upstream("set resonance snapshot", err)
	}
	return nil
}

const ghostRateRecentLimit = 20

type ghostRateRow struct {
	UserID     string
	Total      int64
	GhostCount int64
}

// GhostRates aggregates ghost penalty inputs for a batch of candidates
// in a single query: for each user, their most recent 20 matched
// matches, and how many never led to a started conversation.
func (r *matchRepository) GhostRates(ctx context.Context, userIDs []string) (map[string]float64, error) {
	rates := make(map[string]float64, len(userIDs))
	if len(userIDs) == 0 {
		return rates, nil
	}

	var rows []ghostRateRow
	err := r.db.WithContext(ctx).Raw(`
		WITH candidate_ids AS (
			SELECT unnest(?::text[]) AS user_id
		),
		user_matches AS (
			SELECT c.user_id, m.matched_at, m.conversation_started_at
			FROM matches m
			JOIN candidate_ids c ON m.user_a_id = c.user_id OR m.user_b_id = c.user_id
			WHERE m.matched_at IS NOT NULL
		),
		ranked AS (
			SELECT *, ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY matched_at DESC) AS rn
			FROM user_matches
		)
		SELECT user_id,
			COUNT(*) AS total,
			SUM(CASE WHEN conversation_started_at IS NULL THEN 1 ELSE 0 END) AS ghost_count
		FROM ranked
		WHERE rn <= ?
		GROUP BY user_id
	`, userIDs, ghostRateRecentLimit).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Upstream("compute ghost rates", err)
	}

	for _, row := range rows {
		if row.Total == 0 {
			continue
		}
		rates[row.UserID] = float64(row.GhostCount) / float64(row.Total)
	}
	return rates, nil
}
