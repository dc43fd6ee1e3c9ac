package main

import (
	"github.com/spf13/cobra"
)

var regionalCmd = &cobra.Command{
	Use:   "regional",
	Short: "Show every provider's charges for a classification in a city",
	RunE:  runRegional,
}

func init() {
	f := regionalCmd.Flags()
	f.Int("id", 0, "DRG or APC id (required)")
	f.String("state", "", "State code (required)")
	f.String("city", "", "City (required)")
	for _, name := range []string{"id", "state", "city"} {
		_ = regionalCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(regionalCmd)
}

func runRegional(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	state, _ := cmd.Flags().GetString("state")
	city, _ := cmd.Flags().GetString("city")
	return runQuery(cmd, func(s *session) (any, bool) {
		return s.regional().RegionalResults(s.ctx, state, city, id)
	})
}
