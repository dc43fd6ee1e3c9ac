// Package chargedata invokes the charge-data stored procedures and maps their
// result sets into model entities.
//
// Every exported Store method checks out exactly one pooled connection, makes
// one procedure call, and returns the connection before it returns. Failures
// never escape: they are logged once with the operation name and reported as
// ok=false. An empty result is a non-nil empty slice with ok=true.
package chargedata

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/chargecompare/internal/catalog"
	"github.com/gyeh/chargecompare/internal/db"
	"github.com/gyeh/chargecompare/internal/model"
	"github.com/gyeh/chargecompare/internal/normalize"
)

// Store runs the procedures of one setting against one pool.
// It is safe for concurrent use.
type Store struct {
	pool           *pgxpool.Pool
	procs          catalog.Procedures
	log            zerolog.Logger
	acquireTimeout time.Duration
	m              mapper
}

// NewStore returns a Store over pool. The pool stays owned by the caller.
func NewStore(pool *pgxpool.Pool, procs catalog.Procedures, log zerolog.Logger, acquireTimeout time.Duration) *Store {
	return &Store{
		pool:           pool,
		procs:          procs,
		log:            log.With().Str("setting", string(procs.Setting)).Logger(),
		acquireTimeout: acquireTimeout,
		m:              newMapper(procs),
	}
}

// Setting returns the setting this store serves.
func (s *Store) Setting() model.Setting {
	return s.procs.Setting
}

// Classifications returns every classification (id and definition only),
// without duplicate ids.
func (s *Store) Classifications(ctx context.Context) ([]model.ChargeClassification, bool) {
	var out []model.ChargeClassification
	ok := s.run(ctx, "Classifications", db.Call{Procedure: s.procs.Classifications, ResultSets: 1},
		func(ctx context.Context, rs *db.ResultSets) error {
			items, err := first(ctx, rs, s.m.classification)
			if err != nil {
				return err
			}
			out = uniqueClassifications(items)
			return nil
		})
	return out, ok
}

// States returns the distinct states with charges for a classification.
func (s *Store) States(ctx context.Context, classificationID int) ([]string, bool) {
	return s.strings(ctx, "States", catalog.ColState, db.Call{
		Procedure:  s.procs.States,
		Args:       []any{classificationID},
		ResultSets: 1,
	})
}

// CitiesToCompare returns the distinct cities of state with charges for a classification.
func (s *Store) CitiesToCompare(ctx context.Context, classificationID int, state string) ([]string, bool) {
	return s.strings(ctx, "CitiesToCompare", catalog.ColCity, db.Call{
		Procedure:  s.procs.CitiesToCompare,
		Args:       []any{classificationID, state},
		ResultSets: 1,
	})
}

// Cities returns the distinct cities of state.
func (s *Store) Cities(ctx context.Context, state string) ([]string, bool) {
	return s.strings(ctx, "Cities", catalog.ColCity, db.Call{
		Procedure:  s.procs.Cities,
		Args:       []any{state},
		ResultSets: 1,
	})
}

// Providers returns the providers in city, state that report charges for a
// classification, in result-set order.
func (s *Store) Providers(ctx context.Context, state, city string, classificationID int) ([]model.Provider, bool) {
	var out []model.Provider
	call := db.Call{
		Procedure:  s.procs.Providers,
		Args:       []any{classificationID, city, state},
		ResultSets: 1,
	}
	ok := s.run(ctx, "Providers", call, func(ctx context.Context, rs *db.ResultSets) error {
		items, err := first(ctx, rs, s.m.provider)
		out = items
		return err
	})
	return out, ok
}

// ClassificationsByRegion returns the classifications (id and definition
// only) with charges in city, state.
func (s *Store) ClassificationsByRegion(ctx context.Context, state, city string) ([]model.ChargeClassification, bool) {
	var out []model.ChargeClassification
	call := db.Call{
		Procedure:  s.procs.ClassificationsByRegion,
		Args:       []any{city, state},
		ResultSets: 1,
	}
	ok := s.run(ctx, "ClassificationsByRegion", call, func(ctx context.Context, rs *db.ResultSets) error {
		items, err := first(ctx, rs, s.m.classification)
		out = items
		return err
	})
	return out, ok
}

// Charges returns the charge detail of one provider for one classification:
// amounts and the three percentile ranks. Definition is left empty.
func (s *Store) Charges(ctx context.Context, classificationID, providerID int) (model.ChargeClassification, bool) {
	var out model.ChargeClassification
	call := db.Call{
		Procedure:  s.procs.Charges,
		Args:       []any{classificationID, providerID},
		ResultSets: chargeResultSets,
	}
	ok := s.run(ctx, "Charges", call, func(ctx context.Context, rs *db.ResultSets) error {
		c, err := assembleCharges(ctx, rs, classificationID)
		out = c
		return err
	})
	if !ok {
		return model.ChargeClassification{}, false
	}
	return out, true
}

// RegionalResults returns one comparison per row of the joined regional
// query, in result-set order and without deduplication.
func (s *Store) RegionalResults(ctx context.Context, state, city string, classificationID int) ([]model.ComparisonResult, bool) {
	var out []model.ComparisonResult
	call := db.Call{
		Procedure:  s.procs.RegionalCharges,
		Args:       []any{classificationID, city, state},
		ResultSets: 1,
	}
	ok := s.run(ctx, "RegionalResults", call, func(ctx context.Context, rs *db.ResultSets) error {
		items, err := first(ctx, rs, s.m.regional(s.procs.Setting))
		out = items
		return err
	})
	return out, ok
}

func (s *Store) strings(ctx context.Context, op, column string, call db.Call) ([]string, bool) {
	var out []string
	ok := s.run(ctx, op, call, func(ctx context.Context, rs *db.ResultSets) error {
		items, err := first(ctx, rs, text(column))
		if err != nil {
			return err
		}
		u := normalize.NewUniqueStrings()
		for _, v := range items {
			u.Add(v)
		}
		out = u.Items()
		return nil
	})
	return out, ok
}

// run performs one procedure call and logs its failure, if any, exactly once.
func (s *Store) run(ctx context.Context, op string, call db.Call, fn func(context.Context, *db.ResultSets) error) bool {
	callID := uuid.New().String()
	start := time.Now()

	var status *int16
	err := db.Invoke(ctx, s.pool, s.acquireTimeout, call, func(ctx context.Context, rs *db.ResultSets) error {
		status = rs.Status
		return fn(ctx, rs)
	})
	if err != nil {
		err = &OpError{Op: op, Procedure: call.Procedure, Err: err}
		s.log.Error().
			Err(err).
			Str("op", op).
			Str("procedure", call.Procedure).
			Str("call_id", callID).
			Bool("missing_result_set", MissingResultSet(err)).
			Msg("procedure call failed")
		return false
	}

	ev := s.log.Debug().
		Str("op", op).
		Str("procedure", call.Procedure).
		Str("call_id", callID).
		Dur("duration", time.Since(start))
	if status != nil {
		ev = ev.Int16("status", *status)
	}
	ev.Msg("procedure call complete")
	return true
}

// first reads every row of the first result set. A procedure that opened no
// result set is a failure, not an empty list.
func first[T any](ctx context.Context, rs *db.ResultSets, fn pgx.RowToFunc[T]) ([]T, error) {
	if !rs.HasResultSet() {
		return nil, fmt.Errorf("first result set: %w", db.ErrNoResultSet)
	}
	return collect(ctx, rs, fn)
}

func collect[T any](ctx context.Context, rs *db.ResultSets, fn pgx.RowToFunc[T]) ([]T, error) {
	rows, err := rs.Next(ctx)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func uniqueClassifications(items []model.ChargeClassification) []model.ChargeClassification {
	u := normalize.NewUnique(func(c model.ChargeClassification) int { return c.ID })
	for _, c := range items {
		u.Add(c)
	}
	return u.Items()
}
