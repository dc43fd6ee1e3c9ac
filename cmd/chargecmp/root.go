package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/chargecompare/internal/config"
	"github.com/gyeh/chargecompare/internal/exitcode"
	"github.com/gyeh/chargecompare/internal/logging"
	"github.com/gyeh/chargecompare/internal/model"
	"github.com/gyeh/chargecompare/internal/service"
)

var settingName string

var rootCmd = &cobra.Command{
	Use:   "chargecmp",
	Short: "Compare hospital charges across providers",
	Long: "Queries inpatient (DRG) and outpatient (APC) charge data through the stored-procedure " +
		"data-access layer and prints the results as JSON.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyInpatientDSN, "", "Inpatient Postgres connection string (or set CHARGES_INPATIENT_DSN)")
	pf.String(config.KeyOutpatientDSN, "", "Outpatient Postgres connection string; defaults to the inpatient one")
	pf.String(config.KeyLogFormat, "text", "Log format: text or json")
	pf.String(config.KeyLogLevel, "info", "Log level: debug, info, warn, error")
	pf.String(config.KeyCatalog, "", "YAML file overriding stored procedure names")
	pf.Int32(config.KeyMaxConns, 10, "Maximum connections per pool")
	pf.Int32(config.KeyMinConns, 0, "Connections kept open per pool")
	pf.Duration(config.KeyMaxConnLifetime, time.Hour, "Maximum lifetime of a pooled connection")
	pf.Duration(config.KeyMaxConnIdleTime, 30*time.Minute, "Maximum idle time of a pooled connection")
	pf.Duration(config.KeyAcquireTimeout, 10*time.Second, "How long to wait for a free connection")
	pf.Duration(config.KeyStatementTimeout, 30*time.Second, "Server-side statement timeout (0 disables)")
	pf.StringVar(&settingName, "setting", string(model.Inpatient), "Data setting: inpatient or outpatient")
}

// session is the state every subcommand works with.
type session struct {
	ctx     context.Context
	log     zerolog.Logger
	setting model.Setting
	mgr     *service.Manager
}

// runQuery loads configuration, opens the pools, runs fn and prints its value
// as JSON. It exits with DataUnavailable when fn reports ok=false.
func runQuery(cmd *cobra.Command, fn func(s *session) (any, bool)) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		l := logging.Setup("text")
		l.Error().Err(err).Msg("config load failed")
		os.Exit(exitcode.ConfigError)
	}
	log := logging.WithLevel(logging.Setup(cfg.LogFormat), cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	setting, ok := model.SettingByName(settingName)
	if !ok {
		log.Error().Str("setting", settingName).Msg("setting must be inpatient or outpatient")
		os.Exit(exitcode.UsageError)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	mgr, err := service.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}

	v, ok := fn(&session{ctx: ctx, log: log, setting: setting, mgr: mgr})
	for s, st := range mgr.PoolStats() {
		log.Debug().Str("setting", string(s)).Object("pool", st).Msg("pool stats")
	}
	mgr.Close()
	if !ok {
		log.Warn().Str("command", cmd.Name()).Msg("data unavailable")
		os.Exit(exitcode.DataUnavailable)
	}
	if v == nil {
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *session) comparison() service.ComparisonService {
	svc, err := s.mgr.Comparison(s.setting)
	if err != nil {
		s.log.Fatal().Err(err).Msg("no comparison service")
	}
	return svc
}

func (s *session) regional() service.RegionalService {
	svc, err := s.mgr.Regional(s.setting)
	if err != nil {
		s.log.Fatal().Err(err).Msg("no regional service")
	}
	return svc
}
