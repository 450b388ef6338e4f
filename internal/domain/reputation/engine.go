// Package reputation computes a deterministic reputation score for a
// wallet from its normalized activity metrics.
//
// The engine is pure: Score holds no mutable state, performs no I/O and
// never fails for a normalized record, so it is safe to call from any
// number of goroutines without coordination.
package reputation

import (
	"math"

	"github.com/reflekt/repute/internal/domain/wallet"
)

// Category identifies one of the ten sub-scores composing the total.
type Category string

// The fixed set of breakdown categories. Every Breakdown contains all
// ten keys, including those whose sub-score is zero.
const (
	CategoryLongTermHolder    Category = "long_term_holder"
	CategoryDAOParticipation  Category = "dao_participation"
	CategoryNFTMints          Category = "nft_mints"
	CategoryFrequentSwaps     Category = "frequent_swaps"
	CategoryTransactionVolume Category = "transaction_volume"
	CategoryTokenDiversity    Category = "token_diversity"
	CategoryDeFiUsage         Category = "defi_usage"
	CategoryWalletAge         Category = "wallet_age"
	CategoryENSOwnership      Category = "ens_ownership"
	CategoryBalance           Category = "balance"
)

// Categories lists all breakdown keys in their canonical order.
func Categories() []Category {
	return []Category{
		CategoryLongTermHolder,
		CategoryDAOParticipation,
		CategoryNFTMints,
		CategoryFrequentSwaps,
		CategoryTransactionVolume,
		CategoryTokenDiversity,
		CategoryDeFiUsage,
		CategoryWalletAge,
		CategoryENSOwnership,
		CategoryBalance,
	}
}

// Breakdown maps every category to its computed sub-score.
type Breakdown map[Category]float64

// Result is the engine's complete output for one metrics record.
// It is a pure value; callers own any persistence or rendering.
type Result struct {
	Address    string    `json:"address"`
	TotalScore float64   `json:"total_score"`
	Breakdown  Breakdown `json:"score_breakdown"`
	Tier       Tier      `json:"tier"`
	Badges     []string  `json:"badges"`
}

// Total score bounds.
const (
	minTotalScore = 0
	maxTotalScore = 100
)

// Engine computes reputation scores. The tier ladder is fixed at
// construction; the zero-cost default matches the published thresholds.
type Engine struct {
	tiers []TierBand
}

// New constructs an Engine with the default tier ladder, applying any
// options on top.
func New(opts ...Option) *Engine {
	e := &Engine{
		tiers: defaultTierBands(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the full reputation result for a normalized record.
// Calling it twice with an equal record yields an identical result.
func (e *Engine) Score(m wallet.Metrics) Result {
	breakdown := Breakdown{
		CategoryLongTermHolder:    holderScore(m),
		CategoryDAOParticipation:  daoScore(m),
		CategoryNFTMints:          nftScore(m),
		CategoryFrequentSwaps:     swapPenalty(m),
		CategoryTransactionVolume: transactionScore(m),
		CategoryTokenDiversity:    diversityScore(m),
		CategoryDeFiUsage:         defiScore(m),
		CategoryWalletAge:         ageScore(m),
		CategoryENSOwnership:      ensScore(m),
		CategoryBalance:           balanceScore(m),
	}

	var total float64
	for _, v := range breakdown {
		total += v
	}
	// Sub-score ranges bound the raw sum to [-5, 100].
	total = math.Max(minTotalScore, math.Min(maxTotalScore, total))

	return Result{
		Address:    m.Address,
		TotalScore: total,
		Breakdown:  breakdown,
		Tier:       e.tierFor(total),
		Badges:     evaluateBadges(m, breakdown),
	}
}

// holderScore rewards account age, with a capped bonus for holding a
// balance above one unit. Range [0,10].
func holderScore(m wallet.Metrics) float64 {
	var score float64
	switch {
	case m.WalletAgeDays >= 1825: // 5+ years
		score = 10
	case m.WalletAgeDays >= 1095: // 3+ years
		score = 8
	case m.WalletAgeDays >= 365:
		score = 6
	case m.WalletAgeDays >= 180:
		score = 4
	default:
		score = 2
	}
	if m.Balance > 1 {
		score = math.Min(score+2, 10)
	}
	return score
}

// daoScore grants 5 points per DAO plus a vote bonus capped at 10,
// with the category total capped at 20.
func daoScore(m wallet.Metrics) float64 {
	if len(m.DAOParticipations) == 0 {
		return 0
	}
	score := float64(len(m.DAOParticipations) * 5)

	var votes int
	for _, dao := range m.DAOParticipations {
		votes += dao.ProposalsVoted
	}
	score += math.Min(float64(votes*2), 10)

	return math.Min(score, 20)
}

// nftScore bands NFT holdings. Range [0,5].
func nftScore(m wallet.Metrics) float64 {
	switch {
	case m.NFTCount == 0:
		return 0
	case m.NFTCount < 5:
		return 2
	case m.NFTCount < 20:
		return 4
	default:
		return 5
	}
}

// swapPenalty deducts points when swaps dominate overall activity.
// A wallet with no transactions takes no penalty. Range [-5,0].
func swapPenalty(m wallet.Metrics) float64 {
	if m.TransactionCount == 0 {
		return 0
	}
	ratio := float64(m.DeFi.UniswapSwaps) / float64(m.TransactionCount)
	switch {
	case ratio > 0.5:
		return -5
	case ratio > 0.3:
		return -3
	case ratio > 0.2:
		return -1
	default:
		return 0
	}
}

// transactionScore bands overall activity. Range [0,15].
func transactionScore(m wallet.Metrics) float64 {
	switch {
	case m.TransactionCount >= 1000:
		return 15
	case m.TransactionCount >= 500:
		return 12
	case m.TransactionCount >= 200:
		return 10
	case m.TransactionCount >= 100:
		return 8
	case m.TransactionCount >= 50:
		return 6
	case m.TransactionCount >= 20:
		return 4
	case m.TransactionCount >= 5:
		return 2
	default:
		return 0
	}
}

// diversityScore bands the count of distinct fungible assets. Range [0,10].
func diversityScore(m wallet.Metrics) float64 {
	switch {
	case m.TokenDiversity >= 15:
		return 10
	case m.TokenDiversity >= 10:
		return 8
	case m.TokenDiversity >= 5:
		return 5
	case m.TokenDiversity >= 2:
		return 3
	default:
		return 0
	}
}

// defiScore bands distinct DeFi protocol usage. Range [0,15].
func defiScore(m wallet.Metrics) float64 {
	switch {
	case m.DeFi.TotalDeFiProtocols >= 8:
		return 15
	case m.DeFi.TotalDeFiProtocols >= 5:
		return 12
	case m.DeFi.TotalDeFiProtocols >= 3:
		return 9
	case m.DeFi.TotalDeFiProtocols >= 1:
		return 5
	default:
		return 0
	}
}

// ageScore bands raw wallet age without the balance bonus. Range [0,10].
func ageScore(m wallet.Metrics) float64 {
	switch {
	case m.WalletAgeDays >= 1825:
		return 10
	case m.WalletAgeDays >= 1095:
		return 8
	case m.WalletAgeDays >= 730:
		return 6
	case m.WalletAgeDays >= 365:
		return 4
	case m.WalletAgeDays >= 180:
		return 2
	default:
		return 0
	}
}

// ensScore grants a flat bonus for ENS ownership. {0,5}.
func ensScore(m wallet.Metrics) float64 {
	if m.HasENS() {
		return 5
	}
	return 0
}

// balanceScore bands the current balance. Range [0,5].
func balanceScore(m wallet.Metrics) float64 {
	switch {
	case m.Balance >= 10:
		return 5
	case m.Balance >= 5:
		return 4
	case m.Balance >= 1:
		return 3
	case m.Balance >= 0.1:
		return 2
	case m.Balance > 0:
		return 1
	default:
		return 0
	}
}
