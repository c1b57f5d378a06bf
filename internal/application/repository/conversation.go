package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) interfaces.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*types.Conversation, error) {
	var c types.Conversation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("conversation not found", err)
		}
		return nil, apperrors.Upstream("load conversation", err)
	}
	return &c, nil
}

func (r *conversationRepository) GetByMatchID(ctx context.Context, matchID string) (*types.Conversation, error) {
	var c types.Conversation
	if err := r.db.WithContext(ctx).Where("match_id = ?", matchID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("conversation not found for match", err)
		}
		return nil, apperrors.Upstream("load conversation by match", err)
	}
	return &c, nil
}

// ListActiveSince feeds the CHM batch driver's 7-day-active window
// (spec.md §4.5).
func (r *conversationRepository) ListActiveSince(ctx context.Context, cutoff time.Time) ([]*types.Conversation, error) {
	var conversations []*types.Conversation
	if err := r.db.WithContext(ctx).
		Where("last_message_at >= ?", cutoff).
		Order("last_message_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, apperrors.Upstream("list active conversations", err)
	}
	return conversations, nil
}

func (r *conversationRepository) UpdateHealth(ctx context.Context, id string, state types.ConversationState, nudge *string, nudgeAt *time.Time) error {
	updates := map[string]any{
		"health_state": state,
	}
	if nudge != nil {
		updates["pending_nudge"] = *nudge
		updates["nudge_generated_at"] = nudgeAt
	}
	if err := r.db.WithContext(ctx).Model(&types.Conversation{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return apperrors.Upstream("update conversation health", err)
	}
	return nil
}
