package main

import (
	"github.com/spf13/cobra"
)

var classificationsCmd = &cobra.Command{
	Use:   "classifications",
	Short: "List DRGs or APCs, optionally only those with charges in a city",
	RunE:  runClassifications,
}

func init() {
	f := classificationsCmd.Flags()
	f.String("state", "", "Restrict to classifications with charges in this state (requires --city)")
	f.String("city", "", "Restrict to classifications with charges in this city (requires --state)")
	classificationsCmd.MarkFlagsRequiredTogether("state", "city")
	rootCmd.AddCommand(classificationsCmd)
}

func runClassifications(cmd *cobra.Command, args []string) error {
	state, _ := cmd.Flags().GetString("state")
	city, _ := cmd.Flags().GetString("city")
	return runQuery(cmd, func(s *session) (any, bool) {
		if state != "" {
			return s.regional().ClassificationsByRegion(s.ctx, state, city)
		}
		return s.comparison().Classifications(s.ctx)
	})
}
