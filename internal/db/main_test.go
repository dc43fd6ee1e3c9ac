package db

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/chargecompare/internal/dbtest"
	"github.com/gyeh/chargecompare/internal/logging"
)

const testPort = 15434

var testDSN string

func TestMain(m *testing.M) {
	srv, err := dbtest.Start(testPort, "dbtest")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	testDSN = srv.DSN()

	code := func() int {
		ctx := context.Background()
		pool, err := pgxpool.New(ctx, testDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "connect: %v\n", err)
			return 1
		}
		defer pool.Close()
		if err := dbtest.Load(ctx, pool, logging.Setup("text")); err != nil {
			fmt.Fprintf(os.Stderr, "load fixtures: %v\n", err)
			return 1
		}
		return m.Run()
	}()

	if err := srv.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.Exit(code)
}

func testPool(t *testing.T, opts PoolOptions) *pgxpool.Pool {
	t.Helper()
	pool, err := NewPool(context.Background(), testDSN, opts)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
