// Package wallet defines the normalized wallet activity metrics consumed
// by the reputation engine, plus the normalizer that applies defaults to
// raw inspector payloads and rejects malformed ones.
package wallet

import (
	"fmt"
)

// DAOParticipation records voting activity in a single DAO.
type DAOParticipation struct {
	Name           string `json:"name"`
	ProposalsVoted int    `json:"proposals_voted"`
}

// DeFiInteractions summarizes protocol usage observed for a wallet.
type DeFiInteractions struct {
	UniswapSwaps       int `json:"uniswap_swaps"`
	AaveInteractions   int `json:"aave_interactions"`
	TotalDeFiProtocols int `json:"total_defi_protocols"`
}

// Metrics is a fully normalized wallet activity record: every field is
// present and every numeric field is non-negative. It is the only input
// shape the reputation engine accepts.
type Metrics struct {
	Address           string             `json:"address"`
	Balance           float64            `json:"balance"`
	WalletAgeDays     int                `json:"wallet_age_days"`
	TransactionCount  int                `json:"transaction_count"`
	TokenDiversity    int                `json:"token_diversity"`
	NFTCount          int                `json:"nft_count"`
	DAOParticipations []DAOParticipation `json:"dao_participations"`
	// ENSName is empty when the wallet has no reverse ENS record.
	// Only presence matters to the engine.
	ENSName string           `json:"ens_name,omitempty"`
	DeFi    DeFiInteractions `json:"defi_interactions"`
}

// HasENS reports whether the wallet carries an ENS name.
func (m Metrics) HasENS() bool { return m.ENSName != "" }

// RawMetrics mirrors Metrics with optional numeric fields, as produced by
// an inspector or received over the wire. Nil means absent and defaults
// to zero during normalization; absence is never an error.
type RawMetrics struct {
	Address           string              `json:"address"`
	Balance           *float64            `json:"balance"`
	WalletAgeDays     *int                `json:"wallet_age_days"`
	TransactionCount  *int                `json:"transaction_count"`
	TokenDiversity    *int                `json:"token_diversity"`
	NFTCount          *int                `json:"nft_count"`
	DAOParticipations []DAOParticipation  `json:"dao_participations"`
	ENSName           *string             `json:"ens_name"`
	DeFi              *RawDeFiInteractions `json:"defi_interactions"`
}

// RawDeFiInteractions is the optional-field form of DeFiInteractions.
type RawDeFiInteractions struct {
	UniswapSwaps       *int `json:"uniswap_swaps"`
	AaveInteractions   *int `json:"aave_interactions"`
	TotalDeFiProtocols *int `json:"total_defi_protocols"`
}

// Normalize produces a Metrics record from raw input, applying zero or
// empty defaults for absent fields. A numeric field that is present but
// negative is a caller error and yields ErrInvalidMetrics.
func Normalize(raw RawMetrics) (Metrics, error) {
	m := Metrics{
		Address: raw.Address,
	}

	var err error
	if m.Balance, err = normFloat("balance", raw.Balance); err != nil {
		return Metrics{}, err
	}
	if m.WalletAgeDays, err = normInt("wallet_age_days", raw.WalletAgeDays); err != nil {
		return Metrics{}, err
	}
	if m.TransactionCount, err = normInt("transaction_count", raw.TransactionCount); err != nil {
		return Metrics{}, err
	}
	if m.TokenDiversity, err = normInt("token_diversity", raw.TokenDiversity); err != nil {
		return Metrics{}, err
	}
	if m.NFTCount, err = normInt("nft_count", raw.NFTCount); err != nil {
		return Metrics{}, err
	}

	m.DAOParticipations = make([]DAOParticipation, 0, len(raw.DAOParticipations))
	for i, dao := range raw.DAOParticipations {
		if dao.ProposalsVoted < 0 {
			return Metrics{}, fmt.Errorf("%w: dao_participations[%d].proposals_voted is negative", ErrInvalidMetrics, i)
		}
		m.DAOParticipations = append(m.DAOParticipations, dao)
	}

	if raw.ENSName != nil {
		m.ENSName = *raw.ENSName
	}

	if raw.DeFi != nil {
		if m.DeFi.UniswapSwaps, err = normInt("defi_interactions.uniswap_swaps", raw.DeFi.UniswapSwaps); err != nil {
			return Metrics{}, err
		}
		if m.DeFi.AaveInteractions, err = normInt("defi_interactions.aave_interactions", raw.DeFi.AaveInteractions); err != nil {
			return Metrics{}, err
		}
		if m.DeFi.TotalDeFiProtocols, err = normInt("defi_interactions.total_defi_protocols", raw.DeFi.TotalDeFiProtocols); err != nil {
			return Metrics{}, err
		}
	}

	return m, nil
}

// Validate checks an already-shaped Metrics record for negative numeric
// fields. Useful when the record was constructed directly rather than
// through Normalize.
func Validate(m Metrics) error {
	switch {
	case m.Balance < 0:
		return fmt.Errorf("%w: balance is negative", ErrInvalidMetrics)
	case m.WalletAgeDays < 0:
		return fmt.Errorf("%w: wallet_age_days is negative", ErrInvalidMetrics)
	case m.TransactionCount < 0:
		return fmt.Errorf("%w: transaction_count is negative", ErrInvalidMetrics)
	case m.TokenDiversity < 0:
		return fmt.Errorf("%w: token_diversity is negative", ErrInvalidMetrics)
	case m.NFTCount < 0:
		return fmt.Errorf("%w: nft_count is negative", ErrInvalidMetrics)
	case m.DeFi.UniswapSwaps < 0, m.DeFi.AaveInteractions < 0, m.DeFi.TotalDeFiProtocols < 0:
		return fmt.Errorf("%w: defi_interactions has a negative field", ErrInvalidMetrics)
	}
	for i, dao := range m.DAOParticipations {
		if dao.ProposalsVoted < 0 {
			return fmt.Errorf("%w: dao_participations[%d].proposals_voted is negative", ErrInvalidMetrics, i)
		}
	}
	return nil
}

func normFloat(name string, v *float64) (float64, error) {
	if v == nil {
		return 0, nil
	}
	if *v < 0 {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidMetrics, name)
	}
	return *v, nil
}

func normInt(name string, v *int) (int, error) {
	if v == nil {
		return 0, nil
	}
	if *v < 0 {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidMetrics, name)
	}
	return *v, nil
}
