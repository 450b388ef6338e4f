package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reflekt/repute/internal/adapters/http/api"
	"github.com/reflekt/repute/internal/adapters/inspector"
	"github.com/reflekt/repute/internal/adapters/mq/queue"
	"github.com/reflekt/repute/internal/adapters/pinning"
	"github.com/reflekt/repute/internal/adapters/repository"
	"github.com/reflekt/repute/internal/domain/badge"
	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/reflekt/repute/internal/domain/wallet"
	. "github.com/smartystreets/goconvey/convey"
)

const validAddress = "0x1234567890abcdef1234567890abcdef12345678"

// Mock implementations for testing
type mockDeps struct {
	analysis    wallet.Analysis
	analyzeErr  error
	result      reputation.Result
	scoreErr    error
	receipt     badge.MintReceipt
	mintErr     error
	topN        []api.Entry
	topNErr     error
	rank        api.Entry
	rankErr     error
	tiers       []reputation.TierBand
	lastAddress string
}

func (m *mockDeps) Analyze(_ context.Context, address string) (wallet.Analysis, error) {
	m.lastAddress = address
	if m.analyzeErr != nil {
		return wallet.Analysis{}, m.analyzeErr
	}
	return m.analysis, nil
}

func (m *mockDeps) Reputation(_ context.Context, address string) (reputation.Result, error) {
	m.lastAddress = address
	if m.scoreErr != nil {
		return reputation.Result{}, m.scoreErr
	}
	return m.result, nil
}

func (m *mockDeps) Mint(_ context.Context, address string) (badge.MintReceipt, error) {
	m.lastAddress = address
	if m.mintErr != nil {
		return badge.MintReceipt{}, m.mintErr
	}
	return m.receipt, nil
}

func (m *mockDeps) TopN(_ context.Context, n int) ([]api.Entry, error) {
	if m.topNErr != nil {
		return nil, m.topNErr
	}
	if n > len(m.topN) {
		return m.topN, nil
	}
	return m.topN[:n], nil
}

func (m *mockDeps) Rank(_ context.Context, address string) (api.Entry, error) {
	if m.rankErr != nil {
		return api.Entry{}, m.rankErr
	}
	return m.rank, nil
}

func (m *mockDeps) Tiers(_ context.Context) []reputation.TierBand {
	return m.tiers
}

type mockStats struct{}

func (m *mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	server := api.NewServer(deps, &mockStats{}, 100)
	server.Register(context.Background(), mux)
	return mux
}

func postJSON(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(&mockDeps{})

		Convey("When GET /healthz is requested", func() {
			rec := get(mux, "/healthz")

			Convey("Then it reports healthy", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["status"], ShouldEqual, "healthy")
				So(body["timestamp"], ShouldNotBeEmpty)
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(&mockDeps{})

		Convey("When GET /stats is requested", func() {
			rec := get(mux, "/stats")

			Convey("Then service statistics are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["started"], ShouldEqual, true)
			})
		})
	})
}

func TestAnalyzeEndpoint(t *testing.T) {
	Convey("Given an API server backed by an inspector", t, func() {
		deps := &mockDeps{
			analysis: wallet.Analysis{
				Metrics: wallet.Metrics{
					Address:          validAddress,
					TransactionCount: 200,
					Balance:          1.5,
				},
				IsActive:      true,
				ActivityLevel: wallet.ActivityPowerUser,
				Timestamp:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		}
		mux := newTestMux(deps)

		Convey("When a wallet is analyzed", func() {
			rec := postJSON(mux, "/api/analyze", fmt.Sprintf(`{"address":%q}`, validAddress))

			Convey("Then the analysis payload is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastAddress, ShouldEqual, validAddress)

				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["address"], ShouldEqual, validAddress)
				So(body["transaction_count"], ShouldEqual, 200)
				So(body["activity_level"], ShouldEqual, "power_user")
				So(body["is_active"], ShouldEqual, true)
			})
		})

		Convey("When the body is not JSON", func() {
			rec := postJSON(mux, "/api/analyze", "not-json")

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the address is missing", func() {
			rec := postJSON(mux, "/api/analyze", `{"address":"  "}`)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the inspector rejects the address", func() {
			deps.analyzeErr = fmt.Errorf("inspect: %w", inspector.ErrInvalidAddress)
			rec := postJSON(mux, "/api/analyze", `{"address":"0xnope"}`)

			Convey("Then a 400 with invalid_address is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)

				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "invalid_address")
			})
		})

		Convey("When the inspector fails", func() {
			deps.analyzeErr = fmt.Errorf("rpc unreachable")
			rec := postJSON(mux, "/api/analyze", fmt.Sprintf(`{"address":%q}`, validAddress))

			Convey("Then a 500 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When the method is GET", func() {
			rec := get(mux, "/api/analyze")

			Convey("Then the route does not match", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestReputationEndpoint(t *testing.T) {
	Convey("Given an API server with a scoring backend", t, func() {
		deps := &mockDeps{
			result: reputation.Result{
				Address:    validAddress,
				TotalScore: 72.5,
				Tier:       reputation.TierRare,
				Badges:     []string{"Active Trader"},
				Breakdown:  reputation.Breakdown{"transaction_activity": 12},
			},
		}
		mux := newTestMux(deps)

		Convey("When a reputation is requested", func() {
			rec := postJSON(mux, "/api/reputation", fmt.Sprintf(`{"address":%q}`, validAddress))

			Convey("Then the scored result is returned with a timestamp", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["total_score"], ShouldEqual, 72.5)
				So(body["tier"], ShouldEqual, "rare")
				So(body["calculated_at"], ShouldNotBeEmpty)

				breakdown, ok := body["score_breakdown"].(map[string]interface{})
				So(ok, ShouldBeTrue)
				So(breakdown["transaction_activity"], ShouldEqual, 12)
			})
		})

		Convey("When scoring fails", func() {
			deps.scoreErr = fmt.Errorf("engine offline")
			rec := postJSON(mux, "/api/reputation", fmt.Sprintf(`{"address":%q}`, validAddress))

			Convey("Then a 500 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestMintEndpoint(t *testing.T) {
	Convey("Given an API server with a minting backend", t, func() {
		deps := &mockDeps{
			receipt: badge.MintReceipt{
				ImageCID:    "QmImage",
				MetadataCID: "QmMeta",
				TokenURI:    "ipfs://QmMeta",
			},
		}
		mux := newTestMux(deps)

		Convey("When a badge is minted", func() {
			rec := postJSON(mux, "/api/mint", fmt.Sprintf(`{"address":%q}`, validAddress))

			Convey("Then the IPFS receipt is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["success"], ShouldEqual, true)
				So(body["image_ipfs_hash"], ShouldEqual, "QmImage")
				So(body["metadata_ipfs_hash"], ShouldEqual, "QmMeta")
				So(body["token_uri"], ShouldEqual, "ipfs://QmMeta")
			})
		})

		Convey("When pinning is not configured", func() {
			deps.mintErr = fmt.Errorf("pin image: %w", pinning.ErrNotConfigured)
			rec := postJSON(mux, "/api/mint", fmt.Sprintf(`{"address":%q}`, validAddress))

			Convey("Then the mint reports failure without an error status", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["success"], ShouldEqual, false)
				So(body["image_ipfs_hash"], ShouldBeNil)
			})
		})

		Convey("When the update queue is full", func() {
			deps.mintErr = fmt.Errorf("enqueue: %w", queue.ErrBackpressure)
			rec := postJSON(mux, "/api/mint", fmt.Sprintf(`{"address":%q}`, validAddress))

			Convey("Then a 429 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
			})
		})
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given an API server with leaderboard entries", t, func() {
		deps := &mockDeps{
			topN: []api.Entry{
				{Rank: 1, Address: "0xaaa", Score: 90, Tier: "legendary"},
				{Rank: 2, Address: "0xbbb", Score: 70, Tier: "rare"},
				{Rank: 3, Address: "0xccc", Score: 50, Tier: "uncommon"},
			},
		}
		mux := newTestMux(deps)

		Convey("When the leaderboard is requested without a limit", func() {
			rec := get(mux, "/api/leaderboard")

			Convey("Then the default limit applies", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body []api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(len(body), ShouldEqual, 3)
				So(body[0].Address, ShouldEqual, "0xaaa")
			})
		})

		Convey("When a limit is supplied", func() {
			rec := get(mux, "/api/leaderboard?limit=2")

			Convey("Then only that many entries are returned", func() {
				var body []api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(len(body), ShouldEqual, 2)
			})
		})

		Convey("When the limit is not a number", func() {
			rec := get(mux, "/api/leaderboard?limit=abc")

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the limit exceeds the configured maximum", func() {
			rec := get(mux, "/api/leaderboard?limit=1000")

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)

				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When the board is empty", func() {
			deps.topN = nil
			rec := get(mux, "/api/leaderboard")

			Convey("Then an empty array is returned, not null", func() {
				So(strings.TrimSpace(rec.Body.String()), ShouldEqual, "[]")
			})
		})
	})
}

func TestRankEndpoint(t *testing.T) {
	Convey("Given an API server with a ranked wallet", t, func() {
		deps := &mockDeps{
			rank: api.Entry{Rank: 4, Address: validAddress, Score: 61, Tier: "rare"},
		}
		mux := newTestMux(deps)

		Convey("When the wallet's rank is requested", func() {
			rec := get(mux, "/api/rank/"+validAddress)

			Convey("Then the ranked entry is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Rank, ShouldEqual, 4)
				So(body.Score, ShouldEqual, 61)
			})
		})

		Convey("When the wallet is not on the board", func() {
			deps.rankErr = fmt.Errorf("lookup: %w", repository.ErrNotFound)
			rec := get(mux, "/api/rank/0xunknown")

			Convey("Then a 404 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the path has no address", func() {
			rec := get(mux, "/api/rank/")

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestTiersEndpoint(t *testing.T) {
	Convey("Given an API server with the default tier ladder", t, func() {
		deps := &mockDeps{tiers: reputation.New().Tiers()}
		mux := newTestMux(deps)

		Convey("When the tier catalog is requested", func() {
			rec := get(mux, "/api/tiers")

			Convey("Then all six tiers are described best-first", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body struct {
					Tiers []struct {
						Name        string  `json:"name"`
						MinScore    float64 `json:"min_score"`
						Description string  `json:"description"`
					} `json:"tiers"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(len(body.Tiers), ShouldEqual, 6)
				So(body.Tiers[0].Name, ShouldEqual, "legendary")
				So(body.Tiers[0].MinScore, ShouldEqual, 90)
				So(body.Tiers[5].Name, ShouldEqual, "novice")
				for _, tier := range body.Tiers {
					So(tier.Description, ShouldNotBeEmpty)
				}
			})
		})
	})
}

func TestExportEndpoint(t *testing.T) {
	Convey("Given an API server with analysis and scoring backends", t, func() {
		deps := &mockDeps{
			analysis: wallet.Analysis{
				Metrics: wallet.Metrics{
					Address:          validAddress,
					TransactionCount: 150,
					DAOParticipations: []wallet.DAOParticipation{
						{Name: "Example DAO", ProposalsVoted: 5},
						{Name: "Community DAO", ProposalsVoted: 3},
					},
				},
				IsActive:      true,
				ActivityLevel: wallet.ActivityPowerUser,
			},
			result: reputation.Result{
				Address:    validAddress,
				TotalScore: 64,
				Tier:       reputation.TierRare,
				Badges:     []string{"DAO Member"},
			},
		}
		mux := newTestMux(deps)

		Convey("When a profile export is requested", func() {
			rec := postJSON(mux, "/api/export", fmt.Sprintf(`{"address":%q}`, validAddress))

			Convey("Then the document combines analysis, reputation, and summary", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["wallet_address"], ShouldEqual, validAddress)
				So(body["export_date"], ShouldNotBeEmpty)

				summary, ok := body["profile_summary"].(map[string]interface{})
				So(ok, ShouldBeTrue)
				So(summary["tier"], ShouldEqual, "rare")
				So(summary["score"], ShouldEqual, 64)
				So(summary["dao_participation"], ShouldEqual, 2)
				So(summary["transaction_count"], ShouldEqual, 150)
				So(summary["activity_level"], ShouldEqual, "power_user")
			})
		})
	})
}
