package main

import (
	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the reputation tier ladder",
	Long:  `Print every reputation tier with its minimum score and description.`,
	Args:  cobra.NoArgs,
	RunE:  runTiers,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(tiersCmd)
}

type tierRow struct {
	Name        string  `json:"name"`
	MinScore    float64 `json:"min_score"`
	Description string  `json:"description"`
}

func runTiers(_ *cobra.Command, _ []string) error {
	bands := reputation.New().Tiers()
	rows := make([]tierRow, 0, len(bands))
	for _, band := range bands {
		rows = append(rows, tierRow{
			Name:        string(band.Name),
			MinScore:    band.MinScore,
			Description: reputation.TierDescription(band.Name),
		})
	}
	return printJSON(map[string]any{"tiers": rows})
}
