package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

// StateStore defines the database operations needed for import/export
type StateStore interface {
	GetState(ctx context.Context) (model.AppState, error)
	ReplaceState(ctx context.Context, state model.AppState) error
}

// ExportState serializes the entire application state as one JSON document.
func ExportState(ctx context.Context, database StateStore, logger *zap.Logger) ([]byte, error) {
	state, err := database.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch state: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize state: %w", err)
	}

	logger.Info("State exported",
		zap.Int("teachers", len(state.Teachers)),
		zap.Int("rosters", len(state.Rosters)))

	return data, nil
}

// ImportState replaces the application state with the given JSON document.
// The document must carry both top-level collections as arrays; anything
// else is rejected before any state is touched.
func ImportState(ctx context.Context, database StateStore, logger *zap.Logger, data []byte) error {
	var doc struct {
		Teachers json.RawMessage `json:"teachers"`
		Rosters  json.RawMessage `json:"rosters"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid import document: %w", err)
	}
	if !isJSONArray(doc.Teachers) {
		return fmt.Errorf("invalid import document: teachers must be an array")
	}
	if !isJSONArray(doc.Rosters) {
		return fmt.Errorf("invalid import document: rosters must be an array")
	}

	var state model.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("invalid import document: %w", err)
	}

	if err := database.ReplaceState(ctx, state); err != nil {
		return fmt.Errorf("failed to replace state: %w", err)
	}

	logger.Info("State imported",
		zap.Int("teachers", len(state.Teachers)),
		zap.Int("rosters", len(state.Rosters)))

	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
