package types

import "time"

// ResonanceProfile is the per-user RPB output row (spec.md §3). The
// dense vector itself lives in the Vector Store Adapter; this row
// stores only the reference (VectorID == UserID by convention).
type ResonanceProfile struct {
	UserID              string    `gorm:"column:user_id;primaryKey" json:"userId"`
	Archetype           Archetype `gorm:"column:archetype" json:"archetype"`
	Style               Style     `gorm:"column:style" json:"style"`
	DominantEmotions    []string  `gorm:"column:dominant_emotions;serializer:json" json:"dominantEmotions"`
	HourlyActivity      [24]float64 `gorm:"column:hourly_activity;serializer:json" json:"hourlyActivity"`
	VocabularyRichness  float64   `gorm:"column:vocabulary_richness" json:"vocabularyRichness"`
	HumorScore          float64   `gorm:"column:humor_score" json:"humorScore"`
	DepthScore          float64   `gorm:"column:depth_score" json:"depthScore"`
	CompletenessScore   float64   `gorm:"column:completeness_score" json:"completenessScore"`
	EmbeddingGenerated  bool      `gorm:"column:embedding_generated" json:"embeddingGenerated"`
	ModelVersion        string    `gorm:"column:model_version" json:"modelVersion"`
	LastRecalculatedAt  time.Time `gorm:"column:last_recalculated_at" json:"lastRecalculatedAt"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (ResonanceProfile) TableName() string { return "resonance_profiles" }

// IsFresh reports whether the profile is newer than maxAge, used by the
// daily rebuild pass's 48h freshness skip (spec.md §4.2).
func (p *ResonanceProfile) IsFresh(now time.Time, maxAge time.Duration) bool {
	return p != nil && now.Sub(p.LastRecalculatedAt) < maxAge
}

// PeakHour returns the index of the hourly-activity slot with the
// highest score.
func (p *ResonanceProfile) PeakHour() int {
	peak := 0
	for i := 1; i < 24; i++ {
		if p.HourlyActivity[i] > p.HourlyActivity[peak] {
			peak = i
		}
	}
	return peak
}

// ActiveSlotCount counts hourly slots with score > threshold, used by
// the session-signal completeness scaling (spec.md §4.1).
func ActiveSlotCount(hourly [24]float64, threshold float64) int {
	n := 0
	for _, v := range hourly {
		if v > threshold {
			n++
		}
	}
	return n
}
