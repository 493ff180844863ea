package report

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chazu/jtj/bridge"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	archive            TEXT    NOT NULL,
	manifest           TEXT    NOT NULL,
	total_types        INTEGER NOT NULL,
	converted_types    INTEGER NOT NULL,
	total_methods      INTEGER NOT NULL,
	compatible_methods INTEGER NOT NULL,
	created_at         INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS descriptors (
	run_id   INTEGER NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	owner    TEXT    NOT NULL,
	name     TEXT    NOT NULL,
	params   TEXT    NOT NULL,
	kind     TEXT    NOT NULL,
	static   INTEGER NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Run is one pipeline run as recorded in the store.
type Run struct {
	Archive  string
	Manifest string
	Stats    Stats
	Model    *bridge.Model
	At       time.Time
}

// Store records runs in a SQLite database.
type Store struct {
	sqlDB *sql.DB
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("report database path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record stores a run and all of its descriptors in one transaction and
// returns the run id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	at := run.At
	if at.IsZero() {
		at = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (archive, manifest, total_types, converted_types, total_methods, compatible_methods, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Archive, run.Manifest,
		run.Stats.TotalTypes, run.Stats.ConvertedTypes,
		run.Stats.TotalMethods, run.Stats.CompatibleMethods,
		at.UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	if run.Model != nil {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO descriptors (run_id, position, owner, name, params, kind, static)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("prepare descriptors: %w", err)
		}
		defer stmt.Close()

		for i, d := range run.Model.All() {
			params := make([]string, d.Arity())
			for j, p := range d.Params() {
				params[j] = p.Token()
			}
			if _, err := stmt.ExecContext(ctx, id, i, d.Owner().String(), d.Name(),
				strings.Join(params, ","), d.Return().Token(), d.Static()); err != nil {
				return 0, fmt.Errorf("insert descriptor %s: %w", d.Signature(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Descriptor is a stored descriptor row.
type Descriptor struct {
	Owner  string
	Name   string
	Params []string
	Kind   string
	Static bool
}

// Descriptors returns the descriptors recorded for a run, in model order.
func (s *Store) Descriptors(ctx context.Context, runID int64) ([]Descriptor, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT owner, name, params, kind, static FROM descriptors WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query descriptors: %w", err)
	}
	defer rows.Close()

	var out []Descriptor
	for rows.Next() {
		var d Descriptor
		var params string
		if err := rows.Scan(&d.Owner, &d.Name, &params, &d.Kind, &d.Static); err != nil {
			return nil, fmt.Errorf("scan descriptor: %w", err)
		}
		if params != "" {
			d.Params = strings.Split(params, ",")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// LastRun returns the stats of the most recent run for an archive.
func (s *Store) LastRun(ctx context.Context, archive string) (Stats, bool, error) {
	var st Stats
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT total_types, converted_types, total_methods, compatible_methods
		 FROM runs WHERE archive = ? ORDER BY id DESC LIMIT 1`, archive,
	).Scan(&st.TotalTypes, &st.ConvertedTypes, &st.TotalMethods, &st.CompatibleMethods)
	if err == sql.ErrNoRows {
		return Stats{}, false, nil
	}
	if err != nil {
		return Stats{}, false, fmt.Errorf("query last run: %w", err)
	}
	return st, true, nil
}
