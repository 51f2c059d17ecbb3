// Package store provides the shared SQLite-backed implementation of the
// plugin.Store interface. PulseBoard's dashboard data is deliberately
// non-durable: the default DSN is an in-memory database that lives for the
// process lifetime.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/admybrand/pulseboard/pkg/plugin"
	"golang.org/x/mod/semver"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// DefaultDSN keeps all tables in process memory. A single connection
// (see SetMaxOpenConns below) keeps the in-memory database alive.
const DefaultDSN = ":memory:"

// ErrNewerSchema is returned when the database was created by a newer
// version of PulseBoard than the currently running binary.
var ErrNewerSchema = fmt.Errorf("database was created by a newer version of PulseBoard")

// Compile-time interface guard.
var _ plugin.Store = (*SQLiteStore)(nil)

// SQLiteStore implements plugin.Store backed by SQLite via modernc.org/sqlite.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex // Serialize migrations
	once sync.Once  // Ensure _migrations table created once
}

// New opens (or creates) a SQLite database for the given DSN and applies
// recommended pragmas. Pass DefaultDSN for the standard in-memory store.
// Returns the concrete type; callers assign to plugin.Store where needed.
func New(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}

	// SQLite performs best with a single write connection; for the
	// in-memory DSN this also pins the database to one connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", dsn, err)
	}

	// Apply recommended pragmas (modernc.org/sqlite requires SQL statements, not DSN params).
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// DB returns the underlying *sql.DB for direct queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Tx executes fn within a database transaction. The transaction is
// committed if fn returns nil, rolled back otherwise.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// Migrate runs pending migrations for the named module. Already-applied
// migrations (tracked in the shared _migrations table) are skipped.
// Migrations must be provided in ascending Version order.
func (s *SQLiteStore) Migrate(ctx context.Context, module string, migrations []plugin.Migration) error {
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range migrations {
		applied, err := s.isMigrationApplied(ctx, module, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := s.applyMigration(ctx, module, m); err != nil {
			return fmt.Errorf("migration %s/%d (%s): %w", module, m.Version, m.Description, err)
		}
	}

	return nil
}

// CheckVersion compares the running binary version against the version
// recorded in the database. Returns ErrNewerSchema if the database belongs
// to a newer release; otherwise records the current version.
func (s *SQLiteStore) CheckVersion(ctx context.Context, binaryVersion string) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS _meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("create _meta table: %w", err)
	}

	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM _meta WHERE key = 'schema_version'`).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		// First run: record and continue below.
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	default:
		if semver.Compare(canonical(stored), canonical(binaryVersion)) > 0 {
			return fmt.Errorf("%w (database %s, binary %s)", ErrNewerSchema, stored, binaryVersion)
		}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO _meta (key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, binaryVersion)
	if err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// canonical normalizes a version string for semver comparison.
func canonical(v string) string {
	if v == "" {
		return "v0.0.0"
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "v0.0.0"
	}
	return v
}

func (s *SQLiteStore) ensureMigrationsTable(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		_, err = s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS _migrations (
				module     TEXT    NOT NULL,
				version    INTEGER NOT NULL,
				description TEXT   NOT NULL DEFAULT '',
				applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (module, version)
			)`)
	})
	if err != nil {
		return fmt.Errorf("create _migrations table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) isMigrationApplied(ctx context.Context, module string, version int) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM _migrations WHERE module = ? AND version = ?`,
		module, version).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check migration %s/%d: %w", module, version, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) applyMigration(ctx context.Context, module string, m plugin.Migration) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		if err := m.Up(tx); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO _migrations (module, version, description) VALUES (?, ?, ?)`,
			module, m.Version, m.Description)
		return err
	})
}
