package types

import "time"

// Match is a pair of user ids in canonical (sorted) order (spec.md §3).
// Uniqueness is enforced on the ordered pair by a migration-level
// constraint.
type Match struct {
	ID                    string     `gorm:"column:id;primaryKey" json:"id"`
	UserAID               string     `gorm:"column:user_a_id" json:"userAId"`
	UserBID               string     `gorm:"column:user_b_id" json:"userBId"`
	ResonanceScore        *int       `gorm:"column:resonance_score" json:"resonanceScore,omitempty"`
	WaveformPayload       []byte     `gorm:"column:waveform_payload;serializer:json" json:"waveformPayload,omitempty"`
	State                 MatchState `gorm:"column:state" json:"state"`
	LikedByAAt            *time.Time `gorm:"column:liked_by_a_at" json:"likedByAAt,omitempty"`
	LikedByBAt            *time.Time `gorm:"column:liked_by_b_at" json:"likedByBAt,omitempty"`
	ConversationStartedAt *time.Time `gorm:"column:conversation_started_at" json:"conversationStartedAt,omitempty"`
	UnmatchedByID         *string    `gorm:"column:unmatched_by_id" json:"unmatchedById,omitempty"`
	MatchedAt             *time.Time `gorm:"column:matched_at" json:"matchedAt,omitempty"`
	CreatedAt             time.Time  `gorm:"column:created_at" json:"createdAt"`
}

func (Match) TableName() string { return "matches" }

// OrderedPair returns (min, max) of two user ids, the canonical
// ordering required by the Match uniqueness constraint and used
// throughout ERS/DFRE for cache keys.
func OrderedPair(a, b string) (string, string) {
	if a <= b {
		return a, b
	}
	return b, a
}

// IsGhost reports whether this match was matched but never led to a
// started conversation. DFRE's ghost penalty computes the same test in
// SQL (MatchRepository.GhostRates) rather than calling this.
func (m *Match) IsGhost() bool {
	return m.MatchedAt != nil && m.ConversationStartedAt == nil
}
