package utils

import (
	"encoding/json"
	"fmt"

	"github.com/resonate/core/internal/types"
)

func init() {
	registerEventSchema[types.VoiceNoteAnalyzedPayload](string(types.EventVoiceNoteAnalyzed))
	registerEventSchema[types.BioEditedPayload](string(types.EventBioEdited))
}

// eventPayloadSchemas caches the generated JSON Schema for each
// recognized event payload shape, exposed for client-facing error
// messages and API documentation (spec.md §3: "EventData is validated
// against a per-EventType JSON schema on read").
var eventPayloadSchemas = map[string]json.RawMessage{}

func registerEventSchema[T any](eventType string) {
	eventPayloadSchemas[eventType] = GenerateSchema[T]()
}

// EventPayloadSchema returns the cached JSON Schema for a recognized
// event type, or nil if the type has no validated shape.
func EventPayloadSchema(eventType string) json.RawMessage {
	return eventPayloadSchemas[eventType]
}

// ValidateEventPayload unmarshals data into dest, the recognized Go
// shape for a given event type (e.g. *types.VoiceNoteAnalyzedPayload).
// Event types with no recognized shape are accepted verbatim — the
// RPB aggregators simply ignore fields they don't understand (spec.md
// §3, DESIGN NOTES: "Dynamic event payloads").
func ValidateEventPayload(data json.RawMessage, dest any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("event payload: %w", err)
	}
	return nil
}
