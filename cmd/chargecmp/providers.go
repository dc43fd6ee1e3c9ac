package main

import (
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List providers of a city with charges for a classification",
	RunE:  runProviders,
}

func init() {
	f := providersCmd.Flags()
	f.Int("id", 0, "DRG or APC id (required)")
	f.String("state", "", "State code (required)")
	f.String("city", "", "City (required)")
	for _, name := range []string{"id", "state", "city"} {
		_ = providersCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	state, _ := cmd.Flags().GetString("state")
	city, _ := cmd.Flags().GetString("city")
	return runQuery(cmd, func(s *session) (any, bool) {
		return s.comparison().Providers(s.ctx, state, city, id)
	})
}
