// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/reflekt/repute/internal/adapters/inspector"
	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/reflekt/repute/internal/domain/wallet"
)

// ExportDependencies defines the interface for profile exports.
type ExportDependencies interface {
	Analyze(ctx context.Context, address string) (wallet.Analysis, error)
	Reputation(ctx context.Context, address string) (reputation.Result, error)
}

// ExportHandler handles profile export requests.
type ExportHandler struct {
	deps ExportDependencies
	now  func() time.Time
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps, now: time.Now}
}

// profileSummary condenses a profile for downstream consumers that want
// a single glanceable block, e.g. DAO membership or recruitment checks.
type profileSummary struct {
	Tier             string               `json:"tier"`
	Score            float64              `json:"score"`
	Badges           []string             `json:"badges"`
	ActivityLevel    wallet.ActivityLevel `json:"activity_level"`
	DAOParticipation int                  `json:"dao_participation"`
	TransactionCount int                  `json:"transaction_count"`
}

// exportResponse mirrors the response schema for POST /api/export.
type exportResponse struct {
	WalletAddress  string            `json:"wallet_address"`
	Analysis       wallet.Analysis   `json:"analysis"`
	Reputation     reputation.Result `json:"reputation"`
	ExportDate     string            `json:"export_date"`
	ProfileSummary profileSummary    `json:"profile_summary"`
}

// HandleExport handles POST /api/export requests.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"
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
	result, err := h.deps.Reputation(r.Context(), address)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{
		WalletAddress: address,
		Analysis:      analysis,
		Reputation:    result,
		ExportDate:    h.now().UTC().Format(time.RFC3339),
		ProfileSummary: profileSummary{
			Tier:             string(result.Tier),
			Score:            result.TotalScore,
			Badges:           result.Badges,
			ActivityLevel:    analysis.ActivityLevel,
			DAOParticipation: len(analysis.DAOParticipations),
			TransactionCount: analysis.TransactionCount,
		},
	})
}
