// Package store persists significance clustering runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dd0wney/cluso-netclop/pkg/logging"
	"github.com/dd0wney/cluso-netclop/pkg/validation"
)

// ErrRunNotFound is returned for unknown run ids
var ErrRunNotFound = errors.New("run not found")

// Store is a SQLite-backed run repository
type Store struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// Open opens or creates the database at path and migrates its schema
func Open(path string, logger logging.Logger) (*Store, error) {
	if err := validation.NewConfigValidator("store").Required("path", path).Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer; pragmas below apply per connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, logger: logger.With(logging.Component("store"))}
	if err := s.configure(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	s.logger.Debug("results database opened", logging.Path(path))
	return s, nil
}

func (s *Store) configure() error {
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	return nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		scheme TEXT NOT NULL,
		modules INTEGER NOT NULL,
		replicates INTEGER NOT NULL,
		digest TEXT NOT NULL,
		config JSON NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cores (
		run_id TEXT NOT NULL,
		module INTEGER NOT NULL,
		core_index INTEGER NOT NULL,
		size INTEGER NOT NULL,
		stability REAL NOT NULL,
		nodes BLOB NOT NULL,
		PRIMARY KEY (run_id, module, core_index),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts run and its cores in one transaction
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	config, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, seed, scheme, modules, replicates, digest, config)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Seed, run.Scheme,
		run.Modules, run.Replicates, run.Digest, string(config))
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cores (run_id, module, core_index, size, stability, nodes) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare core insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range run.Cores {
		nodes, err := encodeNodes(c.Nodes)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, run.ID, c.Module, c.Index, len(c.Nodes), c.Stability, nodes); err != nil {
			return fmt.Errorf("insert core %d/%d: %w", c.Module, c.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	s.logger.Info("run saved", logging.RunID(run.ID), logging.Count(len(run.Cores)))
	return nil
}

// GetRun loads a run and its cores
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, seed, scheme, modules, replicates, digest, config FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT module, core_index, stability, nodes FROM cores WHERE run_id = ? ORDER BY module, core_index`, id)
	if err != nil {
		return nil, fmt.Errorf("query cores of %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c   Core
			raw []byte
		)
		if err := rows.Scan(&c.Module, &c.Index, &c.Stability, &raw); err != nil {
			return nil, fmt.Errorf("scan core: %w", err)
		}
		if c.Nodes, err = decodeNodes(raw); err != nil {
			return nil, err
		}
		run.Cores = append(run.Cores, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cores: %w", err)
	}
	return run, nil
}

// ListRuns returns every run without cores, newest first
func (s *Store) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, seed, scheme, modules, replicates, digest, config FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run     Run
		created string
		config  string
	)
	err := sc.Scan(&run.ID, &created, &run.Seed, &run.Scheme, &run.Modules, &run.Replicates, &run.Digest, &config)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at of %s: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(config), &run.Config); err != nil {
		return nil, fmt.Errorf("unmarshal config of %s: %w", run.ID, err)
	}
	return &run, nil
}
