package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestCallSQL(t *testing.T) {
	tests := []struct {
		name string
		call Call
		want string
	}{
		{
			name: "no_inputs",
			call: Call{Procedure: "inpatient.get_drgs", ResultSets: 1},
			want: `CALL "inpatient"."get_drgs"(NULL::refcursor, NULL::smallint)`,
		},
		{
			name: "mixed_inputs",
			call: Call{Procedure: "inpatient.get_providers", Args: []any{42, "New York", "NY"}, ResultSets: 1},
			want: `CALL "inpatient"."get_providers"($1::integer, $2::text, $3::text, NULL::refcursor, NULL::smallint)`,
		},
		{
			name: "four_result_sets",
			call: Call{Procedure: "get_charges", Args: []any{int64(42), int32(7)}, ResultSets: 4},
			want: `CALL "get_charges"($1::integer, $2::integer, NULL::refcursor, NULL::refcursor, NULL::refcursor, NULL::refcursor, NULL::smallint)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call.SQL()
			if err != nil {
				t.Fatalf("SQL: %v", err)
			}
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestCallSQL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		call Call
	}{
		{"empty_name", Call{ResultSets: 1}},
		{"no_result_sets", Call{Procedure: "inpatient.get_drgs"}},
		{"unsupported_arg", Call{Procedure: "inpatient.get_states", Args: []any{4.2}, ResultSets: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.call.SQL(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestInvoke_ReadsResultSetsInOrder(t *testing.T) {
	pool := testPool(t, PoolOptions{MaxConns: 2})
	call := Call{Procedure: "inpatient.get_charges", Args: []any{42, 7}, ResultSets: 4}

	var columns []string
	err := Invoke(context.Background(), pool, 0, call, func(ctx context.Context, rs *ResultSets) error {
		if !rs.HasResultSet() {
			t.Fatal("HasResultSet: false")
		}
		if rs.Status == nil || *rs.Status != 0 {
			t.Errorf("status: got %v", rs.Status)
		}
		for i := 0; i < 4; i++ {
			rows, err := rs.Next(ctx)
			if err != nil {
				return err
			}
			columns = append(columns, rows.FieldDescriptions()[0].Name)
			rows.Close()
		}
		if _, err := rs.Next(ctx); !errors.Is(err, ErrNoResultSet) {
			t.Errorf("fifth Next: got %v, want ErrNoResultSet", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	want := []string{"avg charges", "avg charges percentile", "avg payments percentile", "avg medicare payments percentile"}
	for i := range want {
		if columns[i] != want[i] {
			t.Errorf("result set %d: first column %q, want %q", i+1, columns[i], want[i])
		}
	}
	if n := pool.Stat().AcquiredConns(); n != 0 {
		t.Errorf("acquired after Invoke: %d", n)
	}
}

func TestInvoke_UnopenedCursor(t *testing.T) {
	pool := testPool(t, PoolOptions{MaxConns: 1})
	call := Call{Procedure: "inpatient.get_states_unopened", Args: []any{42}, ResultSets: 1}

	err := Invoke(context.Background(), pool, 0, call, func(ctx context.Context, rs *ResultSets) error {
		if rs.HasResultSet() {
			t.Error("HasResultSet: true for unopened cursor")
		}
		if rs.Status == nil || *rs.Status != 1 {
			t.Errorf("status: got %v, want 1", rs.Status)
		}
		_, err := rs.Next(ctx)
		return err
	})
	if !errors.Is(err, ErrNoResultSet) {
		t.Fatalf("got %v, want ErrNoResultSet", err)
	}
}

func TestInvoke_PartialResultSets(t *testing.T) {
	pool := testPool(t, PoolOptions{MaxConns: 1})
	call := Call{Procedure: "inpatient.get_charges_partial", Args: []any{42, 7}, ResultSets: 4}

	var opened int
	err := Invoke(context.Background(), pool, 0, call, func(ctx context.Context, rs *ResultSets) error {
		for {
			rows, err := rs.Next(ctx)
			if err != nil {
				return err
			}
			rows.Close()
			opened++
		}
	})
	if !errors.Is(err, ErrNoResultSet) {
		t.Fatalf("got %v, want ErrNoResultSet", err)
	}
	if opened != 2 {
		t.Errorf("opened result sets: got %d, want 2", opened)
	}
}

func TestInvoke_ReadOnly(t *testing.T) {
	pool := testPool(t, PoolOptions{MaxConns: 1})
	call := Call{Procedure: "inpatient.get_drgs", ResultSets: 1}

	err := Invoke(context.Background(), pool, 0, call, func(ctx context.Context, rs *ResultSets) error {
		_, err := rs.tx.Exec(ctx, "DELETE FROM inpatient.charges")
		return err
	})
	if err == nil {
		t.Fatal("expected write inside the call transaction to fail")
	}

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT count(*) FROM inpatient.charges").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Error("fixture rows were deleted")
	}
}

func TestInvoke_UnknownProcedure(t *testing.T) {
	pool := testPool(t, PoolOptions{MaxConns: 1})
	call := Call{Procedure: "inpatient.no_such_procedure", ResultSets: 1}

	called := false
	err := Invoke(context.Background(), pool, 0, call, func(ctx context.Context, rs *ResultSets) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if called {
		t.Error("callback ran for a failed call")
	}
	if n := pool.Stat().AcquiredConns(); n != 0 {
		t.Errorf("acquired after failed call: %d", n)
	}

	// The connection went back usable.
	var one int
	if err := pool.QueryRow(context.Background(), "SELECT 1").Scan(&one); err != nil {
		t.Errorf("pool unusable after failed call: %v", err)
	}
}

func TestResultSets_FetchQuotesCursorName(t *testing.T) {
	pool := testPool(t, PoolOptions{MaxConns: 1})
	call := Call{Procedure: "inpatient.get_states", Args: []any{42}, ResultSets: 1}

	err := Invoke(context.Background(), pool, 0, call, func(ctx context.Context, rs *ResultSets) error {
		rows, err := rs.Next(ctx)
		if err != nil {
			return err
		}
		states, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return err
		}
		if len(states) == 0 {
			t.Error("no rows fetched")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
}
