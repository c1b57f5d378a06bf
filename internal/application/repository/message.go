package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) interfaces.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]*types.Message, error) {
	var messages []*types.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND deleted_at IS NULL", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, apperrors.Upstream("load recent messages by user", err)
	}
	return messages, nil
}

func (r *messageRepository) RecentByConversation(ctx context.Context, conversationID string, limit int) ([]*types.Message, error) {
	var messages []*types.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND deleted_at IS NULL", conversationID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, apperrors.Upstream("load recent messages by conversation", err)
	}
	return messages, nil
}

// LastN returns the most recent n messages in chronological (oldest
// first) order, the shape CHM's signal extractors consume directly.
func (r *messageRepository) LastN(ctx context.Context, conversationID string, n int) ([]*types.Message, error) {
	var desc []*types.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND deleted_at IS NULL", conversationID).
		Order("sent_at DESC").
		Limit(n).
		Find(&desc).Error; err != nil {
		return nil, apperrors.Upstream("load last n messages", err)
	}
	for i, j := 0, len(desc)-1; i < j; i, j = i+1, j-1 {
		desc[i], desc[j] = desc[j], desc[i]
	}
	return desc, nil
}
