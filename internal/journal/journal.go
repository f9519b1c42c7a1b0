package journal

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lucaswerkmeister/clean-recently-used/internal/model"
)

// FileName is the journal database file name inside its directory.
const FileName = "journal.db"

// ErrNotFound is returned by Open when the database does not exist and
// CreateIfNotExists is false.
var ErrNotFound = errors.New("journal not found")

// Journal provides SQLite-based storage for purge runs.
type Journal struct {
	db     *sql.DB
	dbPath string
}

// Options configures Journal behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default journal options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the journal in dir.
func Open(dir string, opts Options) (*Journal, error) {
	dbPath := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check journal path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	j := &Journal{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := j.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return j, nil
}

// Path returns the database file path.
func (j *Journal) Path() string {
	return j.dbPath
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createTables() error {
	schema := `
	-- One row per invocation
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		registry TEXT NOT NULL,
		prefixes TEXT NOT NULL,
		patterns TEXT NOT NULL,
		removed INTEGER NOT NULL,
		kept INTEGER NOT NULL,
		dry_run INTEGER NOT NULL,
		written INTEGER NOT NULL,
		digest_before TEXT,
		digest_after TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Entries removed (or selected, for dry runs) by a run
	CREATE TABLE IF NOT EXISTS removed_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		href TEXT NOT NULL,
		path TEXT NOT NULL,
		rule TEXT NOT NULL,
		modified TEXT,
		applications TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_removed_run ON removed_entries(run_id);
	`

	_, err := j.db.ExecContext(context.Background(), schema)
	return err
}

// Digest returns the hex SHA3-256 digest of data, or "" for nil data.
func Digest(data []byte) string {
	if data == nil {
		return ""
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Record stores a run. before and after are the registry content around
// the run; nil means the file did not exist. It returns the run ID.
func (j *Journal) Record(ctx context.Context, s *model.Summary, before, after []byte) (int64, error) {
	prefixes, err := json.Marshal(nonNil(s.Prefixes))
	if err != nil {
		return 0, fmt.Errorf("failed to serialize prefixes: %w", err)
	}
	patterns, err := json.Marshal(nonNil(s.Patterns))
	if err != nil {
		return 0, fmt.Errorf("failed to serialize patterns: %w", err)
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (started_at, registry, prefixes, patterns, removed, kept, dry_run, written, digest_before, digest_after)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Time.UTC().Format(time.RFC3339Nano),
		s.RegistryPath,
		string(prefixes),
		string(patterns),
		s.RemovedCount(),
		s.Kept,
		s.DryRun,
		s.Written,
		Digest(before),
		Digest(after),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, e := range s.Removed {
		apps, err := json.Marshal(nonNil(e.Applications))
		if err != nil {
			return 0, fmt.Errorf("failed to serialize applications: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO removed_entries (run_id, href, path, rule, modified, applications)
		VALUES (?, ?, ?, ?, ?, ?)`,
			runID, e.Href, e.Path, e.Rule, e.Modified, string(apps),
		); err != nil {
			return 0, fmt.Errorf("failed to insert removed entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// Runs returns up to limit runs, newest first. A limit of zero or less
// returns all runs.
func (j *Journal) Runs(ctx context.Context, limit int) ([]model.Run, error) {
	query := `
	SELECT id, started_at, registry, prefixes, patterns, removed, kept, dry_run, written,
	       COALESCE(digest_before, ''), COALESCE(digest_after, '')
	FROM runs
	ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []model.Run{}
	for rows.Next() {
		var (
			r                  model.Run
			started            string
			prefixes, patterns string
		)
		if err := rows.Scan(
			&r.ID, &started, &r.RegistryPath, &prefixes, &patterns,
			&r.Removed, &r.Kept, &r.DryRun, &r.Written,
			&r.DigestBefore, &r.DigestAfter,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.Time, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %d: invalid start time: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(prefixes), &r.Prefixes); err != nil {
			return nil, fmt.Errorf("run %d: invalid prefixes: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(patterns), &r.Patterns); err != nil {
			return nil, fmt.Errorf("run %d: invalid patterns: %w", r.ID, err)
		}
		if len(r.Patterns) == 0 {
			r.Patterns = nil
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Removed returns the entries recorded for a run in registry order.
func (j *Journal) Removed(ctx context.Context, runID int64) ([]model.RemovedEntry, error) {
	rows, err := j.db.QueryContext(ctx, `
	SELECT href, path, rule, COALESCE(modified, ''), COALESCE(applications, '[]')
	FROM removed_entries
	WHERE run_id = ?
	ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query removed entries: %w", err)
	}
	defer rows.Close()

	entries := []model.RemovedEntry{}
	for rows.Next() {
		var (
			e    model.RemovedEntry
			apps string
		)
		if err := rows.Scan(&e.Href, &e.Path, &e.Rule, &e.Modified, &apps); err != nil {
			return nil, fmt.Errorf("failed to scan removed entry: %w", err)
		}
		if err := json.Unmarshal([]byte(apps), &e.Applications); err != nil {
			return nil, fmt.Errorf("invalid applications: %w", err)
		}
		if len(e.Applications) == 0 {
			e.Applications = nil
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
