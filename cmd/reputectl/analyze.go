package main

import (
	"fmt"

	"github.com/reflekt/repute/internal/adapters/inspector"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze <address>",
	Short: "Inspect a wallet's on-chain activity",
	Long: `Inspect a wallet and print its observed metrics: transaction count,
balance, estimated age, NFT holdings, DAO participation, and DeFi usage.

Example:
  reputectl analyze 0x1234567890abcdef1234567890abcdef12345678`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	insp := inspector.New(rpcURL)
	analysis, err := insp.Analyze(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("analyze wallet: %w", err)
	}
	return printJSON(analysis)
}
