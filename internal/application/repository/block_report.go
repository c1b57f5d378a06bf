package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/resonate/core/internal/errors"
	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

type blockReportRepository struct {
	db *gorm.DB
}

func NewBlockReportRepository(db *gorm.DB) interfaces.BlockReportRepository {
	return &blockReportRepository{db: db}
}

func (r *blockReportRepository) ListInvolving(ctx context.Context, userID string) ([]*types.BlockReport, error) {
	var records []*types.BlockReport
	if err := r.db.WithContext(ctx).
		Where("reporter_id = ? OR reported_id = ?", userID, userID).
		Find(&records).Error; err != nil {
		return nil, apperrors.Upstream("list blocks and reports", err)
	}
	return records, nil
}

// IsBlocked checks the one-directional block relationship (reporter
// blocked reported); the reverse direction is a separate call.
func (r *blockReportRepository) IsBlocked(ctx context.Context, reporterID, reportedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&types.BlockReport{}).
		Where("reporter_id = ? AND reported_id = ? AND kind = ?", reporterID, reportedID, types.ReportKindBlock).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Upstream("check block status", err)
	}
	return count > 0, nil
}
