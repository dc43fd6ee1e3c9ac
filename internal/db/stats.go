package db

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PoolStats is a point-in-time snapshot of a pool.
type PoolStats struct {
	TotalConns       int32  `json:"total_conns"`
	IdleConns        int32  `json:"idle_conns"`
	AcquiredConns    int32  `json:"acquired_conns"`
	MaxConns         int32  `json:"max_conns"`
	AcquireCount     int64  `json:"acquire_count"`
	CanceledAcquires int64  `json:"canceled_acquire_count"`
	AcquireDuration  string `json:"acquire_duration"`
}

// Stats returns the current statistics of pool.
func Stats(pool *pgxpool.Pool) PoolStats {
	stat := pool.Stat()
	return PoolStats{
		TotalConns:       stat.TotalConns(),
		IdleConns:        stat.IdleConns(),
		AcquiredConns:    stat.AcquiredConns(),
		MaxConns:         stat.MaxConns(),
		AcquireCount:     stat.AcquireCount(),
		CanceledAcquires: stat.CanceledAcquireCount(),
		AcquireDuration:  stat.AcquireDuration().String(),
	}
}

// MarshalZerologObject lets a snapshot be logged with Event.Object.
func (s PoolStats) MarshalZerologObject(e *zerolog.Event) {
	e.Int32("total", s.TotalConns).
		Int32("idle", s.IdleConns).
		Int32("acquired", s.AcquiredConns).
		Int32("max", s.MaxConns).
		Int64("acquire_count", s.AcquireCount).
		Int64("canceled_acquires", s.CanceledAcquires).
		Str("acquire_duration", s.AcquireDuration)
}
