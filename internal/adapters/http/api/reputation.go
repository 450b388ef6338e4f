// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/reflekt/repute/internal/adapters/inspector"
	"github.com/reflekt/repute/internal/domain/reputation"
)

// ReputationDependencies defines the interface for reputation scoring.
type ReputationDependencies interface {
	Reputation(ctx context.Context, address string) (reputation.Result, error)
}

// ReputationHandler handles reputation scoring requests.
type ReputationHandler struct {
	deps ReputationDependencies
	now  func() time.Time
}

// NewReputationHandler creates a new reputation handler.
func NewReputationHandler(deps ReputationDependencies) *ReputationHandler {
	return &ReputationHandler{deps: deps, now: time.Now}
}

// reputationResponse is a scoring result stamped with the computation time.
// The stamp lives here so the result itself stays deterministic.
type reputationResponse struct {
	reputation.Result
	CalculatedAt string `json:"calculated_at"`
}

// HandleReputation handles POST /api/reputation requests.
func (h *ReputationHandler) HandleReputation(w http.ResponseWriter, r *http.Request) {
	const op = "api.reputation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	address, ok := decodeAddress(w, r, op)
	if !ok {
		return
	}

	result, err := h.deps.Reputation(r.Context(), address)
	if err != nil {
		if errors.Is(err, inspector.ErrInvalidAddress) {
			writeError(w, http.StatusBadRequest, "invalid_address", wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, reputationResponse{
		Result:       result,
		CalculatedAt: h.now().UTC().Format(time.RFC3339),
	})
}
