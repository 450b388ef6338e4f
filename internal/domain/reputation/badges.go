package reputation

import "github.com/reflekt/repute/internal/domain/wallet"

// Achievement badge names.
const (
	BadgeEarlyAdopter         = "Early Adopter"
	BadgeDAOVoter             = "DAO Voter"
	BadgeNFTCollector         = "NFT Collector"
	BadgeDeFiNative           = "DeFi Native"
	BadgePowerUser            = "Power User"
	BadgeWhale                = "Whale"
	BadgeDiamondHands         = "Diamond Hands"
	BadgeENSOwner             = "ENS Owner"
	BadgeDiversifiedPortfolio = "Diversified Portfolio"
)

// badgePredicate decides one badge from the raw record and the computed
// breakdown. Diamond Hands is the only predicate reading sub-scores, so
// the full breakdown must exist before evaluation starts.
type badgePredicate struct {
	name string
	earn func(m wallet.Metrics, b Breakdown) bool
}

// badgePredicates lists every badge in its fixed evaluation order; the
// output order of Result.Badges follows this list.
var badgePredicates = []badgePredicate{
	{BadgeEarlyAdopter, func(m wallet.Metrics, _ Breakdown) bool {
		return m.WalletAgeDays >= 1825
	}},
	{BadgeDAOVoter, func(m wallet.Metrics, _ Breakdown) bool {
		return len(m.DAOParticipations) >= 2
	}},
	{BadgeNFTCollector, func(m wallet.Metrics, _ Breakdown) bool {
		return m.NFTCount >= 20
	}},
	{BadgeDeFiNative, func(m wallet.Metrics, _ Breakdown) bool {
		return m.DeFi.TotalDeFiProtocols >= 5
	}},
	{BadgePowerUser, func(m wallet.Metrics, _ Breakdown) bool {
		return m.TransactionCount >= 500
	}},
	{BadgeWhale, func(m wallet.Metrics, _ Breakdown) bool {
		return m.Balance >= 10
	}},
	{BadgeDiamondHands, func(_ wallet.Metrics, b Breakdown) bool {
		return b[CategoryLongTermHolder] >= 8 && b[CategoryFrequentSwaps] >= -1
	}},
	{BadgeENSOwner, func(m wallet.Metrics, _ Breakdown) bool {
		return m.HasENS()
	}},
	{BadgeDiversifiedPortfolio, func(m wallet.Metrics, _ Breakdown) bool {
		return m.TokenDiversity >= 10
	}},
}

// evaluateBadges returns earned badge names in evaluation order.
// The slice is never nil so JSON renders [] rather than null.
func evaluateBadges(m wallet.Metrics, b Breakdown) []string {
	badges := make([]string, 0, len(badgePredicates))
	for _, p := range badgePredicates {
		if p.earn(m, b) {
			badges = append(badges, p.name)
		}
	}
	return badges
}
