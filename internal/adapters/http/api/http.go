// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/reflekt/repute/internal/adapters/repository"
	"github.com/reflekt/repute/internal/domain/badge"
	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/reflekt/repute/internal/domain/wallet"
)

// Default limits for leaderboard queries.
const defaultLeaderboardLimit = 100

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = repository.Entry

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Analyze inspects a wallet and returns its observed metrics.
	Analyze(ctx context.Context, address string) (wallet.Analysis, error)

	// Reputation scores a wallet.
	Reputation(ctx context.Context, address string) (reputation.Result, error)

	// Mint renders and pins a badge, then queues a leaderboard update.
	Mint(ctx context.Context, address string) (badge.MintReceipt, error)

	// Read operations expose leaderboard data.
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, address string) (Entry, error)

	// Tiers returns the configured tier ladder, best tier first.
	Tiers(ctx context.Context) []reputation.TierBand
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	analyzeHandler     *AnalyzeHandler
	reputationHandler  *ReputationHandler
	mintHandler        *MintHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	tiersHandler       *TiersHandler
	exportHandler      *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		analyzeHandler:     NewAnalyzeHandler(deps),
		reputationHandler:  NewReputationHandler(deps),
		mintHandler:        NewMintHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		rankHandler:        NewRankHandler(deps),
		tiersHandler:       NewTiersHandler(deps),
		exportHandler:      NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("/api/reputation", MetricsMiddleware(s.reputationHandler.HandleReputation, "reputation"))
	mux.HandleFunc("/api/mint", MetricsMiddleware(s.mintHandler.HandleMint, "mint"))
	mux.HandleFunc("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/api/tiers", MetricsMiddleware(s.tiersHandler.HandleGetTiers, "tiers"))
	mux.HandleFunc("/api/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
}

// addressRequest mirrors the request schema shared by the POST endpoints.
type addressRequest struct {
	Address string `json:"address"`
}

func (a addressRequest) validate() error {
	if strings.TrimSpace(a.Address) == "" {
		return errors.New("missing address")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeAddress reads and validates the shared {address} request body.
func decodeAddress(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return "", false
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return "", false
	}
	return req.Address, true
}
