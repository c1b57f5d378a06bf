package rpb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/resonate/core/internal/logger"
)

// VoiceNoteUploadedPayload is the resonate/voice-note-uploaded event
// payload (spec.md §6).
type VoiceNoteUploadedPayload struct {
	UserID   string `json:"userId"`
	AudioURL string `json:"audioUrl"`
}

// VoiceNoteUploadedHandler implements interfaces.TaskHandler for the
// cold-start rebuild trigger (spec.md §4.2: "voice-note-uploaded event
// (cold start, retry up to 3)").
type VoiceNoteUploadedHandler struct {
	Service *Service
}

func (h *VoiceNoteUploadedHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var payload VoiceNoteUploadedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("rpb: decode voice-note-uploaded payload: %w", err)
	}

	logger.Info(ctx, "rpb cold-start rebuild triggered", "user_id", payload.UserID)
	if err := h.Service.Rebuild(ctx, payload.UserID); err != nil {
		logger.Error(ctx, "rpb cold-start rebuild failed", "user_id", payload.UserID, "error", err)
		return err
	}
	return nil
}
