package types

import (
	"encoding/json"
	"time"
)

// BehavioralEvent is an immutable append-only record (spec.md §3).
// EventData is stored as raw JSON. No JSON-schema validation runs on
// read: the voice aggregator decodes voice_note_analyzed payloads with
// encoding/json, and other types are preserved verbatim.
type BehavioralEvent struct {
	ID            string          `gorm:"column:id;primaryKey" json:"id"`
	UserID        string          `gorm:"column:user_id" json:"userId"`
	SessionID     string          `gorm:"column:session_id" json:"sessionId"`
	EventType     EventType       `gorm:"column:event_type" json:"eventType"`
	EventData     json.RawMessage `gorm:"column:event_data" json:"eventData,omitempty"`
	ClientTs      time.Time       `gorm:"column:client_ts" json:"clientTs"`
	ServerTs      time.Time       `gorm:"column:server_ts" json:"serverTs"`
}

func (BehavioralEvent) TableName() string { return "behavioral_events" }

// VoiceNoteAnalyzedPayload is the recognized shape of a
// voice_note_analyzed event's EventData (spec.md §4.1).
type VoiceNoteAnalyzedPayload struct {
	WordCount          int      `json:"wordCount"`
	VocabularyRichness float64  `json:"vocabularyRichness"`
	Sentiment          float64  `json:"sentiment"`
	DominantEmotions   []string `json:"dominantEmotions"`
	Pace               SpeakingPace `json:"pace"`
}

// BioEditedPayload is the recognized shape of a bio_edited event.
type BioEditedPayload struct {
	NewLength int `json:"newLength"`
}
