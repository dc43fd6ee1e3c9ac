package chargedata_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/chargecompare/internal/catalog"
	"github.com/gyeh/chargecompare/internal/chargedata"
	"github.com/gyeh/chargecompare/internal/db"
	"github.com/gyeh/chargecompare/internal/dbtest"
	"github.com/gyeh/chargecompare/internal/logging"
	"github.com/gyeh/chargecompare/internal/model"
)

const testPort = 15433

var srv *dbtest.Server

func TestMain(m *testing.M) {
	var err error
	srv, err = dbtest.Start(testPort, "chargetest")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	code := func() int {
		ctx := context.Background()
		pool, err := pgxpool.New(ctx, srv.DSN())
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

// newPool opens a pool over the fixture database, closed when t ends.
func newPool(t *testing.T, maxConns int32) *pgxpool.Pool {
	t.Helper()
	pool, err := db.NewPool(context.Background(), srv.DSN(), db.PoolOptions{
		MaxConns:        maxConns,
		ApplicationName: "chargedata-test",
	})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// storeOpts tweaks the store a test builds.
type storeOpts struct {
	setting        model.Setting
	pool           *pgxpool.Pool
	log            io.Writer
	acquireTimeout time.Duration
	procs          func(*catalog.Procedures)
}

func newStore(t *testing.T, o storeOpts) *chargedata.Store {
	t.Helper()
	if o.setting == "" {
		o.setting = model.Inpatient
	}
	if o.pool == nil {
		o.pool = newPool(t, 4)
	}
	if o.log == nil {
		o.log = io.Discard
	}
	if o.acquireTimeout == 0 {
		o.acquireTimeout = 5 * time.Second
	}
	procs, err := catalog.Default().For(o.setting)
	if err != nil {
		t.Fatal(err)
	}
	if o.procs != nil {
		o.procs(&procs)
	}
	return chargedata.NewStore(o.pool, procs, logging.New(o.log, "json"), o.acquireTimeout)
}

// errorLines counts the error-level JSON log entries in buf.
func errorLines(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), `"level":"error"`)
}

func assertReleased(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if n := pool.Stat().AcquiredConns(); n != 0 {
		t.Errorf("connections still checked out: %d", n)
	}
}
