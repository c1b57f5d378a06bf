package types

// Archetype is a user's high-level energy category (spec.md §3, §GLOSSARY).
// Ordinal order matters: classification tie-breaks and matrix lookups
// iterate/index in this order.
type Archetype string

const (
	ArchetypeSpark  Archetype = "spark"
	ArchetypeAnchor Archetype = "anchor"
	ArchetypeWave   Archetype = "wave"
	ArchetypeEmber  Archetype = "ember"
	ArchetypeStorm  Archetype = "storm"
)

// Archetypes lists all archetypes in classifier iteration order.
var Archetypes = []Archetype{ArchetypeSpark, ArchetypeAnchor, ArchetypeWave, ArchetypeEmber, ArchetypeStorm}

// Index returns the archetype's position in Archetypes, or -1.
func (a Archetype) Index() int {
	for i, v := range Archetypes {
		if v == a {
			return i
		}
	}
	return -1
}

// HexColor returns the archetype's fixed palette color (spec.md §GLOSSARY).
func (a Archetype) HexColor() string {
	switch a {
	case ArchetypeSpark:
		return "#FFD700"
	case ArchetypeAnchor:
		return "#4A90D9"
	case ArchetypeWave:
		return "#4AF7C4"
	case ArchetypeEmber:
		return "#FF6B35"
	case ArchetypeStorm:
		return "#C77DFF"
	default:
		return "#888888"
	}
}

// Style is a user's communication shape.
type Style string

const (
	StyleExpressive Style = "expressive"
	StylePrecise    Style = "precise"
	StylePoetic     Style = "poetic"
	StyleMinimal    Style = "minimal"
	StyleWitty      Style = "witty"
)

// Styles lists all styles in matrix-index order.
var Styles = []Style{StyleExpressive, StylePrecise, StylePoetic, StyleMinimal, StyleWitty}

func (s Style) Index() int {
	for i, v := range Styles {
		if v == s {
			return i
		}
	}
	return -1
}

// ConversationState is the CHM state machine's state space (spec.md §4.5).
type ConversationState string

const (
	ConversationWarming ConversationState = "warming"
	ConversationActive  ConversationState = "active"
	ConversationCooling ConversationState = "cooling"
	ConversationDormant ConversationState = "dormant"
	ConversationRevived ConversationState = "revived"
)

// MatchState is the lifecycle state of a Match row (spec.md §3).
type MatchState string

const (
	MatchPending              MatchState = "pending"
	MatchMatched              MatchState = "matched"
	MatchConversationStarted  MatchState = "conversation_started"
	MatchDormant              MatchState = "dormant"
	MatchUnmatched            MatchState = "unmatched"
)

// EventType enumerates the behavioral event types the core recognizes
// (spec.md §3). Unknown types are preserved verbatim but ignored by
// the aggregators (DESIGN NOTES, Dynamic event payloads).
type EventType string

const (
	EventVoiceNoteAnalyzed EventType = "voice_note_analyzed"
	EventBioEdited         EventType = "bio_edited"
	EventTypingStarted     EventType = "typing_started"
	EventTypingStopped     EventType = "typing_stopped"
	EventAppOpened         EventType = "app_opened"
	EventAppClosed         EventType = "app_closed"
	EventProfileViewed     EventType = "profile_viewed"
	EventPhotoViewed       EventType = "photo_viewed"
)

// SpeakingPace is the coarse pace classification in the voice bundle.
type SpeakingPace string

const (
	PaceFast     SpeakingPace = "fast"
	PaceModerate SpeakingPace = "moderate"
	PaceSlow     SpeakingPace = "slow"
)

// ReportKind distinguishes a block from a report (spec.md §3).
type ReportKind string

const (
	ReportKindBlock  ReportKind = "block"
	ReportKindReport ReportKind = "report"
)

// SubscriptionTier drives the DFRE subscription boost (spec.md §4.4).
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPlus    SubscriptionTier = "plus"
	TierPremium SubscriptionTier = "premium"
)
