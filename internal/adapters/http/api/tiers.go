// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/reflekt/repute/internal/domain/reputation"
)

// TiersDependencies defines the interface for tier catalog reads.
type TiersDependencies interface {
	Tiers(ctx context.Context) []reputation.TierBand
}

// TiersHandler handles tier catalog requests.
type TiersHandler struct {
	deps TiersDependencies
}

// NewTiersHandler creates a new tiers handler.
func NewTiersHandler(deps TiersDependencies) *TiersHandler {
	return &TiersHandler{deps: deps}
}

type tierInfo struct {
	Name        string  `json:"name"`
	MinScore    float64 `json:"min_score"`
	Description string  `json:"description"`
}

type tiersResponse struct {
	Tiers []tierInfo `json:"tiers"`
}

// HandleGetTiers handles GET /api/tiers requests.
func (h *TiersHandler) HandleGetTiers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	bands := h.deps.Tiers(r.Context())
	out := tiersResponse{Tiers: make([]tierInfo, 0, len(bands))}
	for _, band := range bands {
		out.Tiers = append(out.Tiers, tierInfo{
			Name:        string(band.Name),
			MinScore:    band.MinScore,
			Description: reputation.TierDescription(band.Name),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
