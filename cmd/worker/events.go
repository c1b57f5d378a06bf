package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/resonate/core/internal/application/service/rpb"
	"github.com/resonate/core/internal/application/vectorstore"
)

type userEventPayload struct {
	UserID string `json:"userId"`
}

// handleProfileRebuilt triggers an on-demand profile rebuild on a
// bio-edit event (spec.md §4.1's bio-edit trigger funnels into the
// same Rebuild path DailyRebuildPass uses).
func handleProfileRebuilt(ctx context.Context, rpbSvc *rpb.Service, payload []byte) error {
	var p userEventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("worker: decode event payload: %w", err)
	}
	if p.UserID == "" {
		return fmt.Errorf("worker: event payload missing userId")
	}
	return rpbSvc.Rebuild(ctx, p.UserID)
}

// handleAccountDeleted removes the user's vector from Qdrant; the
// relational rows are removed by cascading foreign keys at the
// database layer, but the vector store has no such mechanism.
func handleAccountDeleted(ctx context.Context, vectors *vectorstore.QdrantVectorStore, payload []byte) error {
	var p userEventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("worker: decode event payload: %w", err)
	}
	if p.UserID == "" {
		return fmt.Errorf("worker: event payload missing userId")
	}
	return vectors.Delete(ctx, p.UserID)
}
