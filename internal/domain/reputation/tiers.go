package reputation

// Tier is one of six ordered reputation bands derived from total score.
type Tier string

const (
	TierLegendary Tier = "legendary"
	TierEpic      Tier = "epic"
	TierRare      Tier = "rare"
	TierUncommon  Tier = "uncommon"
	TierCommon    Tier = "common"
	TierNovice    Tier = "novice"
)

// TierBand pairs a tier with its inclusive minimum score.
type TierBand struct {
	Name     Tier    `json:"name"`
	MinScore float64 `json:"min_score"`
}

// defaultTierBands returns the tier ladder ordered by descending
// threshold. The novice floor at 0 guarantees a match for any score.
func defaultTierBands() []TierBand {
	return []TierBand{
		{Name: TierLegendary, MinScore: 90},
		{Name: TierEpic, MinScore: 75},
		{Name: TierRare, MinScore: 60},
		{Name: TierUncommon, MinScore: 40},
		{Name: TierCommon, MinScore: 20},
		{Name: TierNovice, MinScore: 0},
	}
}

// tierFor returns the first band whose threshold the score reaches,
// scanning from the top.
func (e *Engine) tierFor(score float64) Tier {
	for _, band := range e.tiers {
		if score >= band.MinScore {
			return band.Name
		}
	}
	return TierNovice
}

// Tiers returns a copy of the engine's tier ladder, highest first.
func (e *Engine) Tiers() []TierBand {
	out := make([]TierBand, len(e.tiers))
	copy(out, e.tiers)
	return out
}

var tierDescriptions = map[Tier]string{
	TierLegendary: "Elite Web3 contributor with exceptional on-chain reputation",
	TierEpic:      "Highly respected community member with strong track record",
	TierRare:      "Active participant with solid Web3 presence",
	TierUncommon:  "Regular user showing consistent engagement",
	TierCommon:    "Growing presence in Web3 ecosystem",
	TierNovice:    "Beginning the Web3 journey",
}

// TierDescription returns a one-sentence description for a tier name,
// or "Unknown tier" for anything outside the known set.
func TierDescription(tier Tier) string {
	if desc, ok := tierDescriptions[tier]; ok {
		return desc
	}
	return "Unknown tier"
}
