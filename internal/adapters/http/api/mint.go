// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/reflekt/repute/internal/adapters/inspector"
	"github.com/reflekt/repute/internal/adapters/mq/queue"
	"github.com/reflekt/repute/internal/adapters/pinning"
	"github.com/reflekt/repute/internal/domain/badge"
)

// MintDependencies defines the interface for badge minting.
type MintDependencies interface {
	Mint(ctx context.Context, address string) (badge.MintReceipt, error)
}

// MintHandler handles badge minting requests.
type MintHandler struct {
	deps MintDependencies
}

// NewMintHandler creates a new mint handler.
func NewMintHandler(deps MintDependencies) *MintHandler {
	return &MintHandler{deps: deps}
}

// mintResponse mirrors the response schema for POST /api/mint.
type mintResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	ImageIPFSHash    string `json:"image_ipfs_hash,omitempty"`
	MetadataIPFSHash string `json:"metadata_ipfs_hash,omitempty"`
	TokenURI         string `json:"token_uri,omitempty"`
}

// HandleMint handles POST /api/mint requests.
func (h *MintHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	const op = "api.mint"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	address, ok := decodeAddress(w, r, op)
	if !ok {
		return
	}

	receipt, err := h.deps.Mint(r.Context(), address)
	switch {
	case err == nil:
	case errors.Is(err, inspector.ErrInvalidAddress):
		writeError(w, http.StatusBadRequest, "invalid_address", wrap(op, err))
		return
	case errors.Is(err, pinning.ErrNotConfigured):
		// Pinning misconfiguration is an operator problem, not a request
		// failure. Mirror that distinction in the payload.
		writeJSON(w, http.StatusOK, mintResponse{
			Success: false,
			Message: "IPFS pinning is not configured",
		})
		return
	case errors.Is(err, queue.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", newKind(op, ErrBackpressure))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, mintResponse{
		Success:          true,
		Message:          "badge minted",
		ImageIPFSHash:    receipt.ImageCID,
		MetadataIPFSHash: receipt.MetadataCID,
		TokenURI:         receipt.TokenURI,
	})
}
