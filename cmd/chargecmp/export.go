package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/chargecompare/internal/exitcode"
	"github.com/gyeh/chargecompare/internal/parquetio"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write regional results for a classification to a Parquet file",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.Int("id", 0, "DRG or APC id (required)")
	f.String("state", "", "State code (required)")
	f.String("city", "", "City (required)")
	f.String("out", "", "Output Parquet path (required)")
	for _, name := range []string{"id", "state", "city", "out"} {
		_ = exportCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	state, _ := cmd.Flags().GetString("state")
	city, _ := cmd.Flags().GetString("city")
	out, _ := cmd.Flags().GetString("out")

	return runQuery(cmd, func(s *session) (any, bool) {
		results, ok := s.regional().RegionalResults(s.ctx, state, city, id)
		if !ok {
			return nil, false
		}
		if err := parquetio.WriteRegional(out, results); err != nil {
			s.log.Error().Err(err).Str("path", out).Msg("export failed")
			s.mgr.Close()
			os.Exit(exitcode.ExportError)
		}
		s.log.Info().Str("path", out).Int("rows", len(results)).Msg("export complete")
		return nil, true
	})
}
