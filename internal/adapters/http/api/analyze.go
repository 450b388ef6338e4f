// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/reflekt/repute/internal/adapters/inspector"
	"github.com/reflekt/repute/internal/domain/wallet"
)

// AnalyzeDependencies defines the interface for wallet analysis.
type AnalyzeDependencies interface {
	Analyze(ctx context.Context, address string) (wallet.Analysis, error)
}

// AnalyzeHandler handles wallet analysis requests.
type AnalyzeHandler struct {
	deps AnalyzeDependencies
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps AnalyzeDependencies) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps}
}

// HandleAnalyze handles POST /api/analyze requests.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	address, ok := decodeAddress(w, r, op)
	if !ok {
		return
	}

	analysis, err := h.deps.Analyze(r.Context(), address)
	if err != nil {
		if errors.Is(err, inspector.ErrInvalidAddress) {
			writeError(w, http.StatusBadRequest, "invalid_address", wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
