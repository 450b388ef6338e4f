// Package badge renders reputation results into a badge image and the
// NFT metadata document that references it.
package badge

import (
	"fmt"
	"strings"

	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/reflekt/repute/internal/domain/wallet"
)

// ExternalURL is embedded in every metadata document.
const ExternalURL = "https://reflekt.app"

// Attribute is one trait/value pair in the OpenSea metadata schema.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// Metadata is an OpenSea-compatible NFT metadata document.
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	ExternalURL string      `json:"external_url"`
	Attributes  []Attribute `json:"attributes"`
}

// NewMetadata builds the metadata document for a scored wallet. The
// image hash is the IPFS CID of the rendered badge. Attribute order is
// fixed: the core traits first, then one Achievement per badge in badge
// order.
func NewMetadata(result reputation.Result, m wallet.Metrics, imageCID string) Metadata {
	tier := titleCase(string(result.Tier))

	attrs := []Attribute{
		{TraitType: "Reputation Score", Value: result.TotalScore},
		{TraitType: "Tier", Value: tier},
		{TraitType: "Transaction Count", Value: m.TransactionCount},
		{TraitType: "Wallet Age (days)", Value: m.WalletAgeDays},
		{TraitType: "DAO Participations", Value: len(m.DAOParticipations)},
		{TraitType: "NFT Count", Value: m.NFTCount},
		{TraitType: "Token Diversity", Value: m.TokenDiversity},
	}
	for _, b := range result.Badges {
		attrs = append(attrs, Attribute{TraitType: "Achievement", Value: b})
	}

	return Metadata{
		Name: fmt.Sprintf("Web3 Reputation Badge - %s", tier),
		Description: fmt.Sprintf(
			"This NFT represents the Web3 reputation for address %s. Score: %g/100. Tier: %s.",
			result.Address, result.TotalScore, tier,
		),
		Image:       "ipfs://" + imageCID,
		ExternalURL: ExternalURL,
		Attributes:  attrs,
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
