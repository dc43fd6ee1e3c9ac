package main

import (
	"github.com/spf13/cobra"
)

var chargesCmd = &cobra.Command{
	Use:   "charges",
	Short: "Show one provider's charges and percentile ranks for a classification",
	RunE:  runCharges,
}

func init() {
	f := chargesCmd.Flags()
	f.Int("id", 0, "DRG or APC id (required)")
	f.Int("provider", 0, "Provider id (required)")
	_ = chargesCmd.MarkFlagRequired("id")
	_ = chargesCmd.MarkFlagRequired("provider")
	rootCmd.AddCommand(chargesCmd)
}

func runCharges(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	providerID, _ := cmd.Flags().GetInt("provider")
	return runQuery(cmd, func(s *session) (any, bool) {
		return s.comparison().Charges(s.ctx, id, providerID)
	})
}
