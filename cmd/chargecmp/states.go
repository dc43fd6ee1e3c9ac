package main

import (
	"github.com/spf13/cobra"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List states with charges for a classification",
	RunE:  runStates,
}

func init() {
	f := statesCmd.Flags()
	f.Int("id", 0, "DRG or APC id (required)")
	_ = statesCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(statesCmd)
}

func runStates(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	return runQuery(cmd, func(s *session) (any, bool) {
		return s.comparison().States(s.ctx, id)
	})
}
