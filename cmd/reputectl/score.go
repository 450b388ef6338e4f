package main

import (
	"fmt"

	"github.com/reflekt/repute/internal/adapters/inspector"
	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scoreBreakdown bool

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCmd = &cobra.Command{
	Use:   "score <address>",
	Short: "Compute a wallet's reputation score",
	Long: `Analyze a wallet and score it: total score out of 100, tier, and
earned badges. Use --breakdown to include per-category scores.

Example:
  reputectl score 0x1234567890abcdef1234567890abcdef12345678 --breakdown`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&scoreBreakdown, "breakdown", false, "Include per-category score breakdown")
}

func runScore(cmd *cobra.Command, args []string) error {
	insp := inspector.New(rpcURL)
	analysis, err := insp.Analyze(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("analyze wallet: %w", err)
	}

	result := reputation.New().Score(analysis.Metrics)
	if scoreBreakdown {
		return printJSON(result)
	}

	return printJSON(map[string]any{
		"address":     result.Address,
		"total_score": result.TotalScore,
		"tier":        result.Tier,
		"badges":      result.Badges,
	})
}
