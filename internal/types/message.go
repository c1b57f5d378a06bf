package types

import "time"

// Message belongs to a Conversation (spec.md §3). Content is stored
// encrypted at rest by the Profile Store; this type carries the
// already-decrypted plaintext the repository layer hands back, since
// content-level encryption/decryption is a storage concern external to
// the core (spec.md §1, out of scope: "persistent relational store").
// Sentiment/emotion arrive pre-computed (Non-goals: no novel NLP).
type Message struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id"`
	ConversationID string     `gorm:"column:conversation_id" json:"conversationId"`
	SenderID       *string    `gorm:"column:sender_id" json:"senderId,omitempty"`
	Content        string     `gorm:"column:content" json:"-"`
	ContentType    string     `gorm:"column:content_type" json:"contentType"`
	Sentiment      *float64   `gorm:"column:sentiment" json:"sentiment,omitempty"`
	EmotionTag     string     `gorm:"column:emotion_tag" json:"emotionTag,omitempty"`
	SentAt         time.Time  `gorm:"column:sent_at" json:"sentAt"`
	ReadAt         *time.Time `gorm:"column:read_at" json:"readAt,omitempty"`
	DeletedAt      *time.Time `gorm:"column:deleted_at" json:"-"`
}

func (Message) TableName() string { return "messages" }

func (m *Message) IsDeleted() bool { return m != nil && m.DeletedAt != nil }
