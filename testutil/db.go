// Package testutil holds Postgres helpers for the counter integration tests.
// They skip when TEST_DATABASE_URL is unset.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" database/sql driver
)

// DSNEnv names the variable holding the integration database URL.
const DSNEnv = "TEST_DATABASE_URL"

// NewPool returns a pinged pool closed at test cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB returns a database/sql handle for goose, closed at test cleanup.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := openSQL(dsn(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// MustOpenSQLDB is NewSQLDB for TestMain. It panics on failure and leaves
// closing to the caller.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := openSQL(dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: " + err.Error())
	}
	return db
}

func openSQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func dsn(t *testing.T) string {
	t.Helper()
	v := os.Getenv(DSNEnv)
	if v == "" {
		t.Skip(DSNEnv + " not set")
	}
	return v
}
