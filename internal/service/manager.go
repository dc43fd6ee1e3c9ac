package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/chargecompare/internal/chargedata"
	"github.com/gyeh/chargecompare/internal/config"
	"github.com/gyeh/chargecompare/internal/db"
	"github.com/gyeh/chargecompare/internal/model"
)

// Manager holds the four service groups. Build it once at process start with
// Open (or NewManager for injected stores) and Close it once at shutdown.
type Manager struct {
	InpatientComparison  ComparisonService
	OutpatientComparison ComparisonService
	RegionalInpatient    RegionalService
	RegionalOutpatient   RegionalService

	pools map[model.Setting]*pgxpool.Pool
}

// NewManager wires the services over already-built stores. The returned
// Manager owns no pools; Close is a no-op.
func NewManager(inpatient, outpatient Store) *Manager {
	return &Manager{
		InpatientComparison:  NewComparison(inpatient),
		OutpatientComparison: NewComparison(outpatient),
		RegionalInpatient:    NewRegional(inpatient),
		RegionalOutpatient:   NewRegional(outpatient),
		pools:                map[model.Setting]*pgxpool.Pool{},
	}
}

// Open creates one pool per setting from cfg and wires the services over
// them. The Manager owns the pools.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Manager, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	dsns := map[model.Setting]string{
		model.Inpatient:  cfg.InpatientDSN,
		model.Outpatient: cfg.OutpatientDSN,
	}
	pools := make(map[model.Setting]*pgxpool.Pool, len(dsns))
	stores := make(map[model.Setting]*chargedata.Store, len(dsns))

	for _, s := range model.AllSettings {
		pool, err := db.NewPool(ctx, dsns[s], cfg.PoolOptions())
		if err != nil {
			for _, p := range pools {
				p.Close()
			}
			return nil, fmt.Errorf("%s pool: %w", s, err)
		}
		pools[s] = pool

		procs, _ := cat.For(s)
		stores[s] = chargedata.NewStore(pool, procs, log, cfg.Pool.AcquireTimeout)
		log.Debug().Str("setting", string(s)).Object("pool", db.Stats(pool)).Msg("pool ready")
	}

	m := NewManager(stores[model.Inpatient], stores[model.Outpatient])
	m.pools = pools
	return m, nil
}

// Comparison returns the comparison group for setting.
func (m *Manager) Comparison(s model.Setting) (ComparisonService, error) {
	switch s {
	case model.Inpatient:
		return m.InpatientComparison, nil
	case model.Outpatient:
		return m.OutpatientComparison, nil
	}
	return nil, fmt.Errorf("unknown setting %q", s)
}

// Regional returns the regional group for setting.
func (m *Manager) Regional(s model.Setting) (RegionalService, error) {
	switch s {
	case model.Inpatient:
		return m.RegionalInpatient, nil
	case model.Outpatient:
		return m.RegionalOutpatient, nil
	}
	return nil, fmt.Errorf("unknown setting %q", s)
}

// PoolStats returns a snapshot of every pool the Manager owns.
func (m *Manager) PoolStats() map[model.Setting]db.PoolStats {
	out := make(map[model.Setting]db.PoolStats, len(m.pools))
	for s, p := range m.pools {
		out[s] = db.Stats(p)
	}
	return out
}

// Close closes every pool the Manager owns. Calls already in flight finish first.
func (m *Manager) Close() {
	for _, p := range m.pools {
		p.Close()
	}
}
