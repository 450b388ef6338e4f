package reputation_test

import (
	"testing"

	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/reflekt/repute/internal/domain/wallet"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTierBoundaries(t *testing.T) {
	Convey("Given the default tier ladder", t, func() {
		engine := reputation.New()
		bands := engine.Tiers()

		Convey("It has six bands in strictly descending order", func() {
			So(len(bands), ShouldEqual, 6)
			for i := 1; i < len(bands); i++ {
				So(bands[i].MinScore, ShouldBeLessThan, bands[i-1].MinScore)
			}
			So(bands[0].Name, ShouldEqual, reputation.TierLegendary)
			So(bands[len(bands)-1].MinScore, ShouldEqual, 0)
		})

		Convey("Every score in [0,100] maps to exactly the greatest threshold at or below it", func() {
			expect := func(score float64) reputation.Tier {
				switch {
				case score >= 90:
					return reputation.TierLegendary
				case score >= 75:
					return reputation.TierEpic
				case score >= 60:
					return reputation.TierRare
				case score >= 40:
					return reputation.TierUncommon
				case score >= 20:
					return reputation.TierCommon
				default:
					return reputation.TierNovice
				}
			}

			for score := 0.0; score <= 100.0; score += 0.5 {
				So(tierForScore(engine, score), ShouldEqual, expect(score))
			}
		})
	})
}

// tierForScore replays the engine's documented lookup rule over its
// exported ladder: first band from the top whose threshold the score
// reaches.
func tierForScore(e *reputation.Engine, score float64) reputation.Tier {
	for _, band := range e.Tiers() {
		if score >= band.MinScore {
			return band.Name
		}
	}
	return reputation.TierNovice
}

func TestTierDescriptions(t *testing.T) {
	Convey("Given the tier description catalog", t, func() {
		Convey("Every known tier has a non-empty description", func() {
			for _, tier := range []reputation.Tier{
				reputation.TierLegendary,
				reputation.TierEpic,
				reputation.TierRare,
				reputation.TierUncommon,
				reputation.TierCommon,
				reputation.TierNovice,
			} {
				So(reputation.TierDescription(tier), ShouldNotBeEmpty)
				So(reputation.TierDescription(tier), ShouldNotEqual, "Unknown tier")
			}
		})

		Convey("An unknown name yields the sentinel", func() {
			So(reputation.TierDescription("mythic"), ShouldEqual, "Unknown tier")
		})
	})
}

func TestCustomTierBands(t *testing.T) {
	Convey("Given an engine with a reordered custom ladder", t, func() {
		engine := reputation.New(reputation.WithTierBands([]reputation.TierBand{
			{Name: reputation.TierNovice, MinScore: 0},
			{Name: reputation.TierLegendary, MinScore: 50},
		}))

		Convey("Bands are sorted descending regardless of input order", func() {
			bands := engine.Tiers()
			So(bands[0].Name, ShouldEqual, reputation.TierLegendary)
			So(bands[1].Name, ShouldEqual, reputation.TierNovice)
		})

		Convey("Scoring uses the custom thresholds", func() {
			result := engine.Score(wallet.Metrics{
				WalletAgeDays:    2000,
				Balance:          15,
				TransactionCount: 1000,
				TokenDiversity:   15,
			})
			So(result.TotalScore, ShouldBeGreaterThanOrEqualTo, 50)
			So(result.Tier, ShouldEqual, reputation.TierLegendary)
		})
	})
}
