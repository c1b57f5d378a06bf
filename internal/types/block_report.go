package types

import "time"

// BlockReport records a block or report from one user against another
// (spec.md §3). Unique block per ordered (reporter, reported) pair
// where Kind == block is enforced by a partial unique migration index.
type BlockReport struct {
	ID         string     `gorm:"column:id;primaryKey" json:"id"`
	ReporterID string     `gorm:"column:reporter_id" json:"reporterId"`
	ReportedID string     `gorm:"column:reported_id" json:"reportedId"`
	Kind       ReportKind `gorm:"column:kind" json:"kind"`
	Reason     string     `gorm:"column:reason" json:"reason,omitempty"`
	Details    string     `gorm:"column:details" json:"details,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"createdAt"`
}

func (BlockReport) TableName() string { return "blocks_reports" }
