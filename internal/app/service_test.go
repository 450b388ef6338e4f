package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/reflekt/repute/internal/adapters/pinning"
	"github.com/reflekt/repute/internal/adapters/repository"
	service "github.com/reflekt/repute/internal/app"
	"github.com/reflekt/repute/internal/domain/wallet"
	"github.com/reflekt/repute/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const testAddress = "0x1234567890abcdef1234567890abcdef12345678"

// fakeInspector returns canned metrics and counts invocations.
type fakeInspector struct {
	calls    int
	analysis wallet.Analysis
	err      error
}

func (f *fakeInspector) Analyze(_ context.Context, address string) (wallet.Analysis, error) {
	f.calls++
	if f.err != nil {
		return wallet.Analysis{}, f.err
	}
	a := f.analysis
	a.Address = address
	return a, nil
}

// fakePinner pins into memory.
type fakePinner struct {
	files int
	jsons int
}

func (f *fakePinner) Configured() bool { return true }

func (f *fakePinner) PinFile(_ context.Context, _, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.files++
	return "QmImage", nil
}

func (f *fakePinner) PinJSON(_ context.Context, _ string, _ any) (string, error) {
	f.jsons++
	return "QmMeta", nil
}

func activeWallet() wallet.Analysis {
	return wallet.Analysis{
		Metrics: wallet.Metrics{
			Balance:          2,
			WalletAgeDays:    1100,
			TransactionCount: 200,
			TokenDiversity:   12,
			NFTCount:         20,
			DeFi:             wallet.DeFiInteractions{UniswapSwaps: 10, TotalDeFiProtocols: 6},
		},
		IsActive:      true,
		ActivityLevel: wallet.ActivityPowerUser,
		Timestamp:     time.Now().UTC(),
	}
}

func newStartedService(t *testing.T, insp *fakeInspector, opts ...service.Option) *service.Service {
	t.Helper()
	opts = append([]service.Option{service.WithInspector(insp)}, opts...)
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_Start(t *testing.T) {
	Convey("Given a service with an inspector", t, func() {
		svc := service.New(service.WithInspector(&fakeInspector{analysis: activeWallet()}))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it starts and reports as started", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})

			Convey("And a second start is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})
	})

	Convey("Given a service without an inspector", t, func() {
		svc := service.New()

		Convey("Then starting fails", func() {
			So(svc.Start(context.Background()), ShouldEqual, service.ErrNoInspector)
		})
	})
}

func TestService_Analyze(t *testing.T) {
	Convey("Given a started service", t, func() {
		insp := &fakeInspector{analysis: activeWallet()}
		svc := newStartedService(t, insp)
		ctx := context.Background()

		Convey("When a wallet is analyzed twice", func() {
			first, err := svc.Analyze(ctx, testAddress)
			So(err, ShouldBeNil)
			second, err := svc.Analyze(ctx, testAddress)
			So(err, ShouldBeNil)

			Convey("Then the second hit is served from cache", func() {
				So(insp.calls, ShouldEqual, 1)
				So(second, ShouldResemble, first)
			})
		})

		Convey("When analysis fails", func() {
			insp.err = errors.New("rpc unreachable")

			_, err := svc.Analyze(ctx, testAddress)

			Convey("Then the error propagates", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_Reputation(t *testing.T) {
	Convey("Given a started service", t, func() {
		insp := &fakeInspector{analysis: activeWallet()}
		svc := newStartedService(t, insp)

		Convey("When a wallet is scored", func() {
			result, err := svc.Reputation(context.Background(), testAddress)

			Convey("Then a full scoring result comes back", func() {
				So(err, ShouldBeNil)
				So(result.Address, ShouldEqual, testAddress)
				So(result.TotalScore, ShouldBeGreaterThan, 0)
				So(result.TotalScore, ShouldBeLessThanOrEqualTo, 100)
				So(result.Tier, ShouldNotBeEmpty)
				So(len(result.Breakdown), ShouldEqual, 10)
			})
		})
	})
}

func TestService_LeaderboardReads(t *testing.T) {
	Convey("Given a started service with a populated store", t, func() {
		store := repository.NewMemStore()
		ctx := context.Background()
		So(store.Upsert(ctx, repository.Entry{Address: "0xaaa", Score: 80, Tier: "epic"}), ShouldBeNil)
		So(store.Upsert(ctx, repository.Entry{Address: "0xbbb", Score: 60, Tier: "rare"}), ShouldBeNil)

		svc := newStartedService(t, &fakeInspector{analysis: activeWallet()}, service.WithStore(store))

		Convey("Then TopN exposes the board", func() {
			entries, err := svc.TopN(ctx, 10)
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 2)
			So(entries[0].Address, ShouldEqual, "0xaaa")
		})

		Convey("Then Rank resolves known addresses", func() {
			entry, err := svc.Rank(ctx, "0xBBB")
			So(err, ShouldBeNil)
			So(entry.Rank, ShouldEqual, 2)
		})

		Convey("Then Rank rejects unknown addresses", func() {
			_, err := svc.Rank(ctx, "0xccc")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Tiers(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService(t, &fakeInspector{analysis: activeWallet()})

		Convey("Then the tier ladder has six bands, best first", func() {
			bands := svc.Tiers(context.Background())
			So(len(bands), ShouldEqual, 6)
			So(string(bands[0].Name), ShouldEqual, "legendary")
			So(string(bands[5].Name), ShouldEqual, "novice")
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService(t, &fakeInspector{analysis: activeWallet()})

		Convey("Then stats expose queue and board sizes", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["queueLength"], ShouldEqual, 0)
			So(stats["leaderboardSize"], ShouldEqual, 0)
			So(stats["pinningConfigured"], ShouldEqual, false)
		})
	})
}

func TestService_Mint(t *testing.T) {
	Convey("Given a started service with a configured pinner", t, func() {
		store := repository.NewMemStore()
		pinner := &fakePinner{}
		svc := newStartedService(t, &fakeInspector{analysis: activeWallet()},
			service.WithStore(store),
			service.WithPinner(pinner),
		)
		ctx := context.Background()

		Convey("When a badge is minted", func() {
			receipt, err := svc.Mint(ctx, testAddress)

			Convey("Then both artifacts are pinned", func() {
				So(err, ShouldBeNil)
				So(receipt.ImageCID, ShouldEqual, "QmImage")
				So(receipt.MetadataCID, ShouldEqual, "QmMeta")
				So(receipt.TokenURI, ShouldEqual, "ipfs://QmMeta")
				So(pinner.files, ShouldEqual, 1)
				So(pinner.jsons, ShouldEqual, 1)
			})

			Convey("And the leaderboard update lands through the writer", func() {
				So(err, ShouldBeNil)
				deadline := time.After(2 * time.Second)
				for store.Count(ctx) == 0 {
					select {
					case <-deadline:
						t.Fatal("leaderboard update never applied")
					default:
						time.Sleep(5 * time.Millisecond)
					}
				}

				entry, rankErr := store.Rank(ctx, testAddress)
				So(rankErr, ShouldBeNil)
				So(entry.Score, ShouldBeGreaterThan, 0)
				So(entry.Tier, ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given a started service without pinning credentials", t, func() {
		svc := newStartedService(t, &fakeInspector{analysis: activeWallet()})

		Convey("When a mint is attempted", func() {
			_, err := svc.Mint(context.Background(), testAddress)

			Convey("Then it fails with the configuration sentinel", func() {
				So(errors.Is(err, pinning.ErrNotConfigured), ShouldBeTrue)
			})
		})
	})
}
