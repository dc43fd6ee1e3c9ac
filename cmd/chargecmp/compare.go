package main

import (
	"github.com/spf13/cobra"

	"github.com/gyeh/chargecompare/internal/model"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the charges of providers in a city for one classification",
	Long: "Fetches the classification and provider lists, then builds one comparison " +
		"result per --provider. Every provider must be found for the command to succeed.",
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.Int("id", 0, "DRG or APC id (required)")
	f.String("state", "", "State code (required)")
	f.String("city", "", "City (required)")
	f.IntSlice("provider", nil, "Provider id; repeat to compare several (required)")
	for _, name := range []string{"id", "state", "city", "provider"} {
		_ = compareCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	state, _ := cmd.Flags().GetString("state")
	city, _ := cmd.Flags().GetString("city")
	providerIDs, _ := cmd.Flags().GetIntSlice("provider")

	return runQuery(cmd, func(s *session) (any, bool) {
		svc := s.comparison()
		classifications, ok := svc.Classifications(s.ctx)
		if !ok {
			return nil, false
		}
		providers, ok := svc.Providers(s.ctx, state, city, id)
		if !ok {
			return nil, false
		}

		results := make([]model.ComparisonResult, 0, len(providerIDs))
		for _, pid := range providerIDs {
			r, ok := svc.Result(s.ctx, providers, pid, classifications, id)
			if !ok {
				s.log.Warn().Int("provider_id", pid).Int("classification_id", id).Msg("no comparison result")
				return nil, false
			}
			results = append(results, r)
		}
		return results, true
	})
}
