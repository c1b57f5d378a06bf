package repository

import (
	"gorm.io/gorm"

	"context"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) interfaces.EventRepository {
	return &eventRepository{db: db}
}

// Track is append-only and batched: behavioral events never update or
// delete (spec.md §3).
func (r *eventRepository) Track(ctx context.Context, events []*types.BehavioralEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(events, 100).Error; err != nil {
		return 0, apperrors.Upstream("track behavioral events", err)
	}
	return len(events), nil
}

func (r *eventRepository) LatestByType(ctx context.Context, userID string, eventType types.EventType) (*types.BehavioralEvent, error) {
	var ev types.BehavioralEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_type = ?", userID, eventType).
		Order("server_ts DESC").
		First(&ev).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("no event of that type", err)
		}
		return nil, apperrors.Upstream("load latest event", err)
	}
	return &ev, nil
}

func (r *eventRepository) ListByType(ctx context.Context, userID string, eventType types.EventType, limit int) ([]*types.BehavioralEvent, error) {
	var events []*types.BehavioralEvent
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND event_type = ?", userID, eventType).
		Order("server_ts DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, apperrors.Upstream("list events by type", err)
	}
	return events, nil
}

func (r *eventRepository) ListByTypesOrdered(ctx context.Context, userID string, eventTypes []types.EventType, limit int) ([]*types.BehavioralEvent, error) {
	var events []*types.BehavioralEvent
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND event_type IN ?", userID, eventTypes).
		Order("server_ts ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, apperrors.Upstream("list events by types", err)
	}
	return events, nil
}
