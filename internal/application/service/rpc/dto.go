// Package rpc implements the public RPC surface consumed by the UI
// layer (spec.md §6): getMe, updateProfile, completeOnboarding,
// events.track, feed.discover. Procedures validate input synchronously;
// repository and feed errors are returned to the caller unchanged,
// without wrapping or logging.
package rpc

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// UpdateProfilePatch is the updateProfile request body (spec.md §6):
// every field optional, validated when present.
type UpdateProfilePatch struct {
	DisplayName *string `validate:"omitempty,min=2,max=50"`
	Bio         *string `validate:"omitempty,max=500"`
	Pronouns    *string `validate:"omitempty,max=20"`
	City        *string `validate:"omitempty,max=100"`
	Country     *string `validate:"omitempty,max=100"`
}

// TrackedEvent is one element of an events.track request.
type TrackedEvent struct {
	EventType string          `validate:"required"`
	EventData []byte          `validate:"omitempty"`
	ClientTs  time.Time       `validate:"required"`
}

// TrackEventsRequest is the events.track request body: at most 100
// events per call (spec.md §6).
type TrackEventsRequest struct {
	SessionID string         `validate:"required"`
	Events    []TrackedEvent `validate:"required,max=100,dive"`
}

// DiscoverFeedRequest is the feed.discover request: cursor optional,
// limit in [1,50] (spec.md §6).
type DiscoverFeedRequest struct {
	Cursor *string `validate:"omitempty"`
	Limit  *int    `validate:"omitempty,min=1,max=50"`
}

func validateRequest(v any) error {
	if err := validate.Struct(v); err != nil {
		return newValidationError(err)
	}
	return nil
}
