package types

import "time"

// Conversation is one per match (spec.md §3). Invariant: at most one
// pending nudge at a time — enforced by CHM only ever setting
// PendingNudge on a cooling transition and the external UI clearing it
// on delivery.
type Conversation struct {
	ID               string            `gorm:"column:id;primaryKey" json:"id"`
	MatchID          string            `gorm:"column:match_id" json:"matchId"`
	LastMessageAt    time.Time         `gorm:"column:last_message_at" json:"lastMessageAt"`
	HealthState      ConversationState `gorm:"column:health_state" json:"healthState"`
	PendingNudge     *string           `gorm:"column:pending_nudge" json:"pendingNudge,omitempty"`
	NudgeGeneratedAt *time.Time        `gorm:"column:nudge_generated_at" json:"nudgeGeneratedAt,omitempty"`
	ArchivedByA      bool              `gorm:"column:archived_by_a" json:"archivedByA"`
	ArchivedByB      bool              `gorm:"column:archived_by_b" json:"archivedByB"`
	CreatedAt        time.Time         `gorm:"column:created_at" json:"createdAt"`
}

func (Conversation) TableName() string { return "conversations" }

// DaysSinceLastMessage is used by the CHM state machine's dormant
// short-circuit (spec.md §4.5).
func (c *Conversation) DaysSinceLastMessage(now time.Time) float64 {
	return now.Sub(c.LastMessageAt).Hours() / 24
}
