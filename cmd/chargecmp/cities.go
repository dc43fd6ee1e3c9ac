package main

import (
	"github.com/spf13/cobra"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List cities of a state",
	Long: "Lists the cities of a state. With --id, only cities with charges for that " +
		"classification are listed.",
	RunE: runCities,
}

func init() {
	f := citiesCmd.Flags()
	f.String("state", "", "State code (required)")
	f.Int("id", 0, "Only cities with charges for this DRG or APC id")
	_ = citiesCmd.MarkFlagRequired("state")
	rootCmd.AddCommand(citiesCmd)
}

func runCities(cmd *cobra.Command, args []string) error {
	state, _ := cmd.Flags().GetString("state")
	id, _ := cmd.Flags().GetInt("id")
	byID := cmd.Flags().Changed("id")
	return runQuery(cmd, func(s *session) (any, bool) {
		if byID {
			return s.comparison().CitiesToCompare(s.ctx, id, state)
		}
		return s.regional().Cities(s.ctx, state)
	})
}
