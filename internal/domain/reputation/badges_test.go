package reputation_test

import (
	"testing"

	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/reflekt/repute/internal/domain/wallet"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBadgeEvaluation(t *testing.T) {
	Convey("Given a reputation engine", t, func() {
		engine := reputation.New()

		Convey("Diamond Hands reads the breakdown, not raw fields", func() {
			// Old enough for an age score of 8 but with a heavy swap
			// penalty, so long_term_holder qualifies and frequent_swaps
			// disqualifies.
			m := wallet.Metrics{
				WalletAgeDays:    1100,
				Balance:          2,
				TransactionCount: 100,
				DeFi:             wallet.DeFiInteractions{UniswapSwaps: 60},
			}
			result := engine.Score(m)
			So(result.Breakdown[reputation.CategoryLongTermHolder], ShouldBeGreaterThanOrEqualTo, 8)
			So(result.Breakdown[reputation.CategoryFrequentSwaps], ShouldEqual, -5)
			So(result.Badges, ShouldNotContain, reputation.BadgeDiamondHands)

			// Same wallet without the swap habit earns it.
			m.DeFi.UniswapSwaps = 0
			result = engine.Score(m)
			So(result.Badges, ShouldContain, reputation.BadgeDiamondHands)
		})

		Convey("A mild penalty of -1 still allows Diamond Hands", func() {
			m := wallet.Metrics{
				WalletAgeDays:    2000,
				Balance:          2,
				TransactionCount: 100,
				DeFi:             wallet.DeFiInteractions{UniswapSwaps: 25}, // ratio 0.25 -> -1
			}
			result := engine.Score(m)
			So(result.Breakdown[reputation.CategoryFrequentSwaps], ShouldEqual, -1)
			So(result.Badges, ShouldContain, reputation.BadgeDiamondHands)
		})

		Convey("Single badge thresholds fire exactly at their bounds", func() {
			type tc struct {
				name   string
				metric wallet.Metrics
				badge  string
				earned bool
			}
			cases := []tc{
				{"age 1825 earns Early Adopter", wallet.Metrics{WalletAgeDays: 1825}, reputation.BadgeEarlyAdopter, true},
				{"age 1824 does not", wallet.Metrics{WalletAgeDays: 1824}, reputation.BadgeEarlyAdopter, false},
				{"two DAOs earn DAO Voter", wallet.Metrics{DAOParticipations: []wallet.DAOParticipation{{Name: "a"}, {Name: "b"}}}, reputation.BadgeDAOVoter, true},
				{"one DAO does not", wallet.Metrics{DAOParticipations: []wallet.DAOParticipation{{Name: "a"}}}, reputation.BadgeDAOVoter, false},
				{"20 NFTs earn NFT Collector", wallet.Metrics{NFTCount: 20}, reputation.BadgeNFTCollector, true},
				{"5 protocols earn DeFi Native", wallet.Metrics{DeFi: wallet.DeFiInteractions{TotalDeFiProtocols: 5}}, reputation.BadgeDeFiNative, true},
				{"500 txs earn Power User", wallet.Metrics{TransactionCount: 500}, reputation.BadgePowerUser, true},
				{"balance 10 earns Whale", wallet.Metrics{Balance: 10}, reputation.BadgeWhale, true},
				{"balance 9.99 does not", wallet.Metrics{Balance: 9.99}, reputation.BadgeWhale, false},
				{"ens name earns ENS Owner", wallet.Metrics{ENSName: "a.eth"}, reputation.BadgeENSOwner, true},
				{"10 tokens earn Diversified Portfolio", wallet.Metrics{TokenDiversity: 10}, reputation.BadgeDiversifiedPortfolio, true},
			}
			for _, c := range cases {
				badges := engine.Score(c.metric).Badges
				if c.earned {
					So(badges, ShouldContain, c.badge)
				} else {
					So(badges, ShouldNotContain, c.badge)
				}
			}
		})

		Convey("Badges contain no duplicates and keep evaluation order", func() {
			result := engine.Score(legendaryWallet())

			seen := map[string]bool{}
			for _, b := range result.Badges {
				So(seen[b], ShouldBeFalse)
				seen[b] = true
			}

			// Subsequence check against the canonical order.
			order := []string{
				reputation.BadgeEarlyAdopter,
				reputation.BadgeDAOVoter,
				reputation.BadgeNFTCollector,
				reputation.BadgeDeFiNative,
				reputation.BadgePowerUser,
				reputation.BadgeWhale,
				reputation.BadgeDiamondHands,
				reputation.BadgeENSOwner,
				reputation.BadgeDiversifiedPortfolio,
			}
			idx := 0
			for _, b := range result.Badges {
				for idx < len(order) && order[idx] != b {
					idx++
				}
				So(idx, ShouldBeLessThan, len(order))
			}
		})
	})
}
