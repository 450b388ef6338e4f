package reputation

import "sort"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTierBands replaces the tier ladder. Bands are copied and sorted by
// descending threshold so lookup order never depends on caller order.
// An empty slice is ignored.
func WithTierBands(bands []TierBand) Option {
	return func(e *Engine) {
		if len(bands) == 0 {
			return
		}
		sorted := make([]TierBand, len(bands))
		copy(sorted, bands)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].MinScore > sorted[j].MinScore
		})
		e.tiers = sorted
	}
}
