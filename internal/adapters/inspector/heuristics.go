package inspector

import "github.com/reflekt/repute/internal/domain/wallet"

// Heuristic bounds.
const (
	maxEstimatedAgeDays = 1825 // cap at 5 years
	maxEstimatedNFTs    = 50
	maxEstimatedTokens  = 20
	maxEstimatedDeFi    = 10
)

// deriveMetrics expands the two node observations into a full metrics
// record. Without an indexer these are transaction-count proxies; in
// particular wallet_age_days is a known approximation (roughly one
// transaction per week), not the true first-activity age.
func deriveMetrics(address string, txCount int, balance float64) wallet.Metrics {
	return wallet.Metrics{
		Address:           address,
		Balance:           balance,
		WalletAgeDays:     min(txCount*7, maxEstimatedAgeDays),
		TransactionCount:  txCount,
		TokenDiversity:    min(txCount/20, maxEstimatedTokens),
		NFTCount:          min(txCount/10, maxEstimatedNFTs),
		DAOParticipations: estimateDAOs(txCount),
		DeFi: wallet.DeFiInteractions{
			UniswapSwaps:       txCount / 5,
			AaveInteractions:   txCount / 10,
			TotalDeFiProtocols: min(txCount/30, maxEstimatedDeFi),
		},
	}
}

// estimateDAOs stands in for governance-tracker queries.
func estimateDAOs(txCount int) []wallet.DAOParticipation {
	switch {
	case txCount > 100:
		return []wallet.DAOParticipation{
			{Name: "Example DAO", ProposalsVoted: 5},
			{Name: "Community DAO", ProposalsVoted: 3},
		}
	case txCount > 50:
		return []wallet.DAOParticipation{
			{Name: "Example DAO", ProposalsVoted: 2},
		}
	default:
		return []wallet.DAOParticipation{}
	}
}
