package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) interfaces.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*types.ResonanceProfile, error) {
	var p types.ResonanceProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("resonance profile not found", err)
		}
		return nil, apperrors.Upstream("load resonance profile", err)
	}
	return &p, nil
}

func (r *profileRepository) GetManyByUserID(ctx context.Context, userIDs []string) (map[string]*types.ResonanceProfile, error) {
	if len(userIDs) == 0 {
		return map[string]*types.ResonanceProfile{}, nil
	}
	var profiles []*types.ResonanceProfile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, apperrors.Upstream("load resonance profiles", err)
	}
	out := make(map[string]*types.ResonanceProfile, len(profiles))
	for _, p := range profiles {
		out[p.UserID] = p
	}
	return out, nil
}

// Upsert writes a full profile row, replacing any existing one for the
// user (RPB always recomputes the whole row, never a partial patch).
func (r *profileRepository) Upsert(ctx context.Context, profile *types.ResonanceProfile) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error; err != nil {
		return apperrors.Upstream("upsert resonance profile", err)
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&types.ResonanceProfile{}).Error; err != nil {
		return apperrors.Upstream("delete resonance profile", err)
	}
	return nil
}
