// Package dbtest runs an embedded PostgreSQL server loaded with the charge
// fixtures, for integration tests.
package dbtest

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed fixtures/*.sql
var fixtures embed.FS

const (
	user     = "postgres"
	password = "postgres"
)

// Server is a running embedded PostgreSQL instance.
type Server struct {
	pg  *embeddedpostgres.EmbeddedPostgres
	dsn string
}

// Start launches PostgreSQL 16 on port with an empty database. Each test
// package uses its own port so packages can run in parallel.
func Start(port uint32, database string) (*Server, error) {
	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(port).
			Database(database).
			Username(user).
			Password(password).
			Version(embeddedpostgres.V16).
			RuntimePath(filepath.Join(os.TempDir(), fmt.Sprintf("embedded-postgres-%d", port))).
			StartTimeout(30 * time.Second),
	)
	if err := pg.Start(); err != nil {
		return nil, fmt.Errorf("start embedded postgres: %w", err)
	}
	return &Server{
		pg:  pg,
		dsn: fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable", user, password, port, database),
	}, nil
}

// DSN returns the connection string of the fixture database.
func (s *Server) DSN() string {
	return s.dsn
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	return s.pg.Stop()
}

// Load drops the fixture schemas and recreates them from the embedded SQL
// files, applied in filename order.
func Load(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	for _, schema := range []string{"outpatient", "inpatient"} {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema)); err != nil {
			return fmt.Errorf("drop schema %s: %w", schema, err)
		}
	}

	entries, err := fs.ReadDir(fixtures, "fixtures")
	if err != nil {
		return fmt.Errorf("read fixtures dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		name := entry.Name()
		data, err := fs.ReadFile(fixtures, "fixtures/"+name)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", name, err)
		}
		log.Debug().Str("fixture", name).Msg("applying fixture")
		if _, err := pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("execute fixture %s: %w", name, err)
		}
	}
	return nil
}
