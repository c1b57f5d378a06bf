package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
	apperrors "github.com/resonate/core/internal/errors"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) interfaces.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*types.User, error) {
	var u types.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found", err)
		}
		return nil, apperrors.Upstream("load user", err)
	}
	return &u, nil
}

func (r *userRepository) GetManyByID(ctx context.Context, ids []string) (map[string]*types.User, error) {
	if len(ids) == 0 {
		return map[string]*types.User{}, nil
	}
	var users []*types.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperrors.Upstream("load users", err)
	}
	out := make(map[string]*types.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *userRepository) ListActiveSince(ctx context.Context, cutoff time.Time, limit int) ([]*types.User, error) {
	var users []*types.User
	q := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND onboarding_complete = ? AND last_active_at >= ?", true, cutoff).
		Order("last_active_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, apperrors.Upstream("list active users", err)
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, patch interfaces.UserPatch) error {
	updates := map[string]any{}
	if patch.DisplayName != nil {
		updates["display_name"] = *patch.DisplayName
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.Pronouns != nil {
		updates["pronouns"] = *patch.Pronouns
	}
	if patch.City != nil {
		updates["city"] = *patch.City
	}
	if patch.Country != nil {
		updates["country"] = *patch.Country
	}
	if len(updates) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&types.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return apperrors.Upstream("update user profile", err)
	}
	return nil
}

func (r *userRepository) MarkOnboardingComplete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Model(&types.User{}).
		Where("id = ?", id).
		Update("onboarding_complete", true).Error; err != nil {
		return apperrors.Upstream("mark onboarding complete", err)
	}
	return nil
}

func (r *userRepository) Touch(ctx context.Context, id string, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&types.User{}).
		Where("id = ?", id).
		Update("last_active_at", at).Error; err != nil {
		return apperrors.Upstream("touch user", err)
	}
	return nil
}
