// Package repo contains the database access logic for the exam tracker API.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// dayLayout matches the day keys handed out by the quota package.
const dayLayout = "2006-01-02"

// MapCounterRepo persists the daily map request counter. The table holds a
// single row; a day different from the stored one restarts the count.
type MapCounterRepo interface {
	// Increment adds one to day's count and returns the new count.
	Increment(ctx context.Context, day string) (int, error)

	// Current returns day's count, or 0 when the stored row is for another day.
	Current(ctx context.Context, day string) (int, error)
}

type pgMapCounterRepo struct {
	db db
}

// NewMapCounterRepo constructs a MapCounterRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewMapCounterRepo(db db) MapCounterRepo {
	return &pgMapCounterRepo{db: db}
}

func (r *pgMapCounterRepo) Increment(ctx context.Context, day string) (int, error) {
	const q = `
		INSERT INTO map_counter (id, count, last_reset_date)
		VALUES (1, 1, @day)
		ON CONFLICT (id) DO UPDATE SET
			count = CASE
				WHEN map_counter.last_reset_date = EXCLUDED.last_reset_date THEN map_counter.count + 1
				ELSE 1
			END,
			last_reset_date = EXCLUDED.last_reset_date,
			updated_at      = now()
		RETURNING count`

	date, err := parseDay(day)
	if err != nil {
		return 0, fmt.Errorf("repo.MapCounterRepo.Increment: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"day": date}).Scan(&count); err != nil {
		return 0, fmt.Errorf("repo.MapCounterRepo.Increment: %w", err)
	}
	return count, nil
}

func (r *pgMapCounterRepo) Current(ctx context.Context, day string) (int, error) {
	const q = `
		SELECT count FROM map_counter
		WHERE id = 1 AND last_reset_date = @day`

	date, err := parseDay(day)
	if err != nil {
		return 0, fmt.Errorf("repo.MapCounterRepo.Current: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx, q, pgx.NamedArgs{"day": date}).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("repo.MapCounterRepo.Current: %w", err)
	}
	return count, nil
}

// parseDay turns a day key into a UTC midnight suitable for a DATE column.
func parseDay(day string) (time.Time, error) {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", day, err)
	}
	return t, nil
}
