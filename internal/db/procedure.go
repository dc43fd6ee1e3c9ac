package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoResultSet is returned when a procedure did not open a result set the
// caller expected. It is a protocol violation, not an empty result.
var ErrNoResultSet = errors.New("no result set")

// Call describes one stored-procedure invocation.
//
// The procedure must take its inputs first, then one INOUT refcursor per
// result set, then a trailing INOUT smallint status:
//
//	PROCEDURE name(inputs..., INOUT rs1 refcursor, ..., INOUT status smallint)
//
// A cursor the procedure leaves unopened comes back NULL and reads as a
// missing result set.
type Call struct {
	Procedure  string
	Args       []any
	ResultSets int
}

// SQL renders the CALL statement with one typed placeholder per input.
func (c Call) SQL() (string, error) {
	if c.Procedure == "" {
		return "", fmt.Errorf("procedure name is empty")
	}
	if c.ResultSets < 1 {
		return "", fmt.Errorf("%s: at least one result set is required", c.Procedure)
	}

	params := make([]string, 0, len(c.Args)+c.ResultSets+1)
	for i, arg := range c.Args {
		typ, err := paramType(arg)
		if err != nil {
			return "", fmt.Errorf("%s: argument %d: %w", c.Procedure, i+1, err)
		}
		params = append(params, fmt.Sprintf("$%d::%s", i+1, typ))
	}
	for i := 0; i < c.ResultSets; i++ {
		params = append(params, "NULL::refcursor")
	}
	params = append(params, "NULL::smallint")

	name := pgx.Identifier(strings.Split(c.Procedure, ".")).Sanitize()
	return "CALL " + name + "(" + strings.Join(params, ", ") + ")", nil
}

func paramType(arg any) (string, error) {
	switch arg.(type) {
	case int, int32, int64:
		return "integer", nil
	case string:
		return "text", nil
	}
	return "", fmt.Errorf("unsupported parameter type %T", arg)
}

// ResultSets walks the result sets of one call in order.
type ResultSets struct {
	tx      pgx.Tx
	cursors []*string
	next    int

	// Status is the procedure's trailing status parameter, nil if it left it unset.
	Status *int16
}

// HasResultSet reports whether the procedure opened its first result set.
func (r *ResultSets) HasResultSet() bool {
	return len(r.cursors) > 0 && r.cursors[0] != nil
}

// Next moves to the next result set and returns its rows. It returns
// ErrNoResultSet when the procedure did not open that result set or when all
// expected result sets were consumed. The caller must close the rows.
func (r *ResultSets) Next(ctx context.Context) (pgx.Rows, error) {
	if r.next >= len(r.cursors) {
		return nil, fmt.Errorf("result set %d: %w", r.next+1, ErrNoResultSet)
	}
	name := r.cursors[r.next]
	r.next++
	if name == nil {
		return nil, fmt.Errorf("result set %d: %w", r.next, ErrNoResultSet)
	}

	// Cursor names are generated per call, so they are not worth preparing.
	rows, err := r.tx.Query(ctx, "FETCH ALL FROM "+pgx.Identifier{*name}.Sanitize(), pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, fmt.Errorf("fetch result set %d: %w", r.next, err)
	}
	return rows, nil
}

// Invoke runs call on a connection checked out of pool and hands its result
// sets to fn. The call runs in a read-only transaction because refcursors do
// not outlive one. The connection goes back to the pool however fn returns.
func Invoke(ctx context.Context, pool *pgxpool.Pool, acquireTimeout time.Duration, call Call, fn func(context.Context, *ResultSets) error) error {
	stmt, err := call.SQL()
	if err != nil {
		return err
	}

	return WithConn(ctx, pool, acquireTimeout, func(conn *pgxpool.Conn) error {
		tx, err := conn.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		// No-op once committed.
		defer func() { _ = tx.Rollback(ctx) }()

		rs := &ResultSets{tx: tx, cursors: make([]*string, call.ResultSets)}
		dest := make([]any, 0, call.ResultSets+1)
		for i := range rs.cursors {
			dest = append(dest, &rs.cursors[i])
		}
		dest = append(dest, &rs.Status)

		if err := tx.QueryRow(ctx, stmt, call.Args...).Scan(dest...); err != nil {
			return fmt.Errorf("call %s: %w", call.Procedure, err)
		}

		if err := fn(ctx, rs); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}
