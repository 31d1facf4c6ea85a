package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/thaumlab/aspecter/pkg/types"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

//go:embed pragmas.sql
var pragmasSQL string

// SQLiteStore is the primary store backend: a single-file SQLite database
// owning the three tables of the data contract (aspects, recipes, holdings).
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path, applies the pragmas and
// ensures the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	for _, pragma := range strings.Split(pragmasSQL, "\n") {
		pragma = strings.TrimSpace(pragma)
		if pragma == "" || strings.HasPrefix(pragma, "--") {
			continue
		}
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStore{conn: conn, path: path}, nil
}

// Provider identifies the backend.
func (s *SQLiteStore) Provider() Provider { return ProviderSQLite }

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.conn.Close() }

// ListAspects returns all aspect records ordered by name.
func (s *SQLiteStore) ListAspects(ctx context.Context) ([]types.Aspect, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT name, COALESCE(mod, ''), base_value FROM aspects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing aspects: %w", err)
	}
	defer rows.Close()

	var out []types.Aspect
	for rows.Next() {
		var a types.Aspect
		if err := rows.Scan(&a.Name, &a.Mod, &a.BaseValue); err != nil {
			return nil, fmt.Errorf("scanning aspect: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListRecipes returns all recipe records ordered by result name.
func (s *SQLiteStore) ListRecipes(ctx context.Context) ([]types.Recipe, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT name, component_a, component_b FROM recipes ORDER BY name, component_a, component_b`)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer rows.Close()

	var out []types.Recipe
	for rows.Next() {
		var r types.Recipe
		if err := rows.Scan(&r.Name, &r.ComponentA, &r.ComponentB); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListHoldings returns the held quantity per aspect name.
func (s *SQLiteStore) ListHoldings(ctx context.Context) (map[string]float64, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT name, num FROM holdings`)
	if err != nil {
		return nil, fmt.Errorf("listing holdings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var name string
		var num float64
		if err := rows.Scan(&name, &num); err != nil {
			return nil, fmt.Errorf("scanning holding: %w", err)
		}
		out[name] = num
	}
	return out, rows.Err()
}

// PutAspect inserts or replaces an aspect record.
func (s *SQLiteStore) PutAspect(ctx context.Context, a types.Aspect) error {
	if a.BaseValue == 0 {
		a.BaseValue = 1.0
	}
	if err := a.Validate(); err != nil {
		return err
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO aspects (name, mod, base_value) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET mod=excluded.mod, base_value=excluded.base_value`,
		a.Name, a.Mod, a.BaseValue)
	if err != nil {
		return fmt.Errorf("storing aspect %q: %w", a.Name, err)
	}
	return nil
}

// PutRecipe inserts a recipe; duplicates are ignored.
func (s *SQLiteStore) PutRecipe(ctx context.Context, r types.Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO recipes (name, component_a, component_b) VALUES (?, ?, ?)`,
		r.Name, r.ComponentA, r.ComponentB)
	if err != nil {
		return fmt.Errorf("storing recipe %q: %w", r.Name, err)
	}
	return nil
}

// SetHolding records the held quantity for an existing aspect.
func (s *SQLiteStore) SetHolding(ctx context.Context, name string, qty float64) error {
	if qty < 0 {
		return fmt.Errorf("holding for %q must be non-negative", name)
	}

	var exists int
	err := s.conn.QueryRowContext(ctx,
		`SELECT count(*) FROM aspects WHERE name=?`, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking aspect %q: %w", name, err)
	}
	if exists == 0 {
		return fmt.Errorf("%q: %w", name, types.ErrUnknownAspect)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO holdings (name, num) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET num=excluded.num`,
		name, qty)
	if err != nil {
		return fmt.Errorf("storing holding for %q: %w", name, err)
	}
	return nil
}
