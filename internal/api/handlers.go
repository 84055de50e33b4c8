package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lexhours/lexhours/internal/store"
	"github.com/lexhours/lexhours/internal/types"
)

// Extractor defines the contract the assist endpoints need from the
// extraction pipeline.
type Extractor interface {
	Extract(ctx context.Context, req types.ExtractRequest) (*types.ExtractResult, error)
	ModelName() string
}

// Handler implements the API handlers
type Handler struct {
	store            store.Store
	extractor        Extractor
	tokens           *TokenManager
	assistConfigured bool
	version          string
}

// NewHandler creates a new Handler with store.Store interface
func NewHandler(s store.Store, e Extractor, tokens *TokenManager, assistConfigured bool, version string) *Handler {
	return &Handler{
		store:            s,
		extractor:        e,
		tokens:           tokens,
		assistConfigured: assistConfigured,
		version:          version,
	}
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:     "healthy",
		Version:    h.version,
		Model:      h.extractor.ModelName(),
		UserCount:  stats.UserCount,
		EntryCount: stats.EntryCount,
	})
}
