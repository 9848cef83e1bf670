package envcache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openStore opens (and creates if needed) the SQLite index at path and
// ensures required tables exist.
func openStore(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(pctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if err := bootstrapStore(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// bootstrapStore creates tables if missing. The index stores enough metadata
// per key to detect staleness without re-provisioning.
func bootstrapStore(ctx context.Context, db *sql.DB) error {
	stmt := `CREATE TABLE IF NOT EXISTS environments (
  key        TEXT PRIMARY KEY,
  language   TEXT NOT NULL,
  source     TEXT NOT NULL,
  revision   TEXT NOT NULL,
  deps       TEXT NOT NULL,
  path       TEXT NOT NULL,
  repo_path  TEXT NOT NULL,
  bin_paths  TEXT NOT NULL,
  created_at TEXT NOT NULL
);`
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("bootstrap sqlite: %w", err)
	}
	return nil
}

// lookupRow reads a persisted environment by key. Returns nil when absent.
func lookupRow(ctx context.Context, db *sql.DB, key string) (*Environment, error) {
	row := db.QueryRowContext(ctx,
		`SELECT key, language, source, revision, path, repo_path, bin_paths
		 FROM environments WHERE key = ?`, key)

	var env Environment
	var binPaths string
	err := row.Scan(&env.Key, &env.Language, &env.Source, &env.Revision,
		&env.Path, &env.RepoPath, &binPaths)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup environment: %w", err)
	}
	env.BinPaths = splitList(binPaths)
	return &env, nil
}

// insertRow records a fully provisioned environment. Rows are only written
// after provisioning succeeded, so the index never references a
// half-provisioned environment.
func insertRow(ctx context.Context, db *sql.DB, req Request, env *Environment) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO environments
		 (key, language, source, revision, deps, path, repo_path, bin_paths, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		env.Key, env.Language, env.Source, env.Revision,
		joinList(req.AdditionalDependencies), env.Path, env.RepoPath,
		joinList(env.BinPaths), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record environment: %w", err)
	}
	return nil
}

// deleteRow removes a persisted environment by key.
func deleteRow(ctx context.Context, db *sql.DB, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM environments WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete environment: %w", err)
	}
	return nil
}

// listRows reads every persisted environment.
func listRows(ctx context.Context, db *sql.DB) ([]*Environment, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT key, language, source, revision, path, repo_path, bin_paths FROM environments`)
	if err != nil {
		return nil, fmt.Errorf("list environments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var envs []*Environment
	for rows.Next() {
		var env Environment
		var binPaths string
		if err := rows.Scan(&env.Key, &env.Language, &env.Source, &env.Revision,
			&env.Path, &env.RepoPath, &binPaths); err != nil {
			return nil, fmt.Errorf("scan environment: %w", err)
		}
		env.BinPaths = splitList(binPaths)
		envs = append(envs, &env)
	}
	return envs, rows.Err()
}
