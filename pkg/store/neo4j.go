package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/thaumlab/aspecter/pkg/types"
)

// Neo4jStore keeps the recipe graph in a Neo4j (or Bolt-compatible)
// database: one (:Aspect) node per aspect with `holding` stored as a node
// property, and one (:Recipe) node per recipe linked to its result and
// components. It satisfies the same data contract as the SQLite store.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

// OpenNeo4j connects over Bolt and verifies connectivity before returning.
func OpenNeo4j(ctx context.Context, uri, username, password, database string) (*Neo4jStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("neo4j store requires a bolt URI")
	}

	auth := neo4j.NoAuth()
	if username != "" {
		auth = neo4j.BasicAuth(username, password, "")
	}

	driver, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	return &Neo4jStore{driver: driver, database: database}, nil
}

// Provider identifies the backend.
func (s *Neo4jStore) Provider() Provider { return ProviderNeo4j }

// Close releases the driver. The driver's own Close wants a context; the
// Store interface does not carry one, so use Background.
func (s *Neo4jStore) Close() error {
	return s.driver.Close(context.Background())
}

func (s *Neo4jStore) read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return res.Collect(ctx)
}

func (s *Neo4jStore) write(ctx context.Context, cypher string, params map[string]any) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

// ListAspects returns all aspect records ordered by name.
func (s *Neo4jStore) ListAspects(ctx context.Context) ([]types.Aspect, error) {
	records, err := s.read(ctx, `
		MATCH (a:Aspect)
		RETURN a.name AS name, a.mod AS mod, a.base_value AS base_value
		ORDER BY a.name
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("listing aspects: %w", err)
	}

	out := make([]types.Aspect, 0, len(records))
	for _, rec := range records {
		var a types.Aspect
		if v, ok := rec.Get("name"); ok {
			a.Name, _ = v.(string)
		}
		if v, ok := rec.Get("mod"); ok && v != nil {
			a.Mod, _ = v.(string)
		}
		if v, ok := rec.Get("base_value"); ok {
			a.BaseValue = asFloat(v)
		}
		out = append(out, a)
	}
	return out, nil
}

// ListRecipes returns all recipe records ordered by result name.
func (s *Neo4jStore) ListRecipes(ctx context.Context) ([]types.Recipe, error) {
	records, err := s.read(ctx, `
		MATCH (r:Recipe)-[:PRODUCES]->(result:Aspect),
		      (r)-[:COMPONENT_A]->(a:Aspect),
		      (r)-[:COMPONENT_B]->(b:Aspect)
		RETURN result.name AS name, a.name AS component_a, b.name AS component_b
		ORDER BY name, component_a, component_b
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}

	out := make([]types.Recipe, 0, len(records))
	for _, rec := range records {
		var r types.Recipe
		if v, ok := rec.Get("name"); ok {
			r.Name, _ = v.(string)
		}
		if v, ok := rec.Get("component_a"); ok {
			r.ComponentA, _ = v.(string)
		}
		if v, ok := rec.Get("component_b"); ok {
			r.ComponentB, _ = v.(string)
		}
		out = append(out, r)
	}
	return out, nil
}

// ListHoldings returns the held quantity per aspect name.
func (s *Neo4jStore) ListHoldings(ctx context.Context) (map[string]float64, error) {
	records, err := s.read(ctx, `
		MATCH (a:Aspect)
		WHERE a.holding IS NOT NULL AND a.holding > 0
		RETURN a.name AS name, a.holding AS num
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("listing holdings: %w", err)
	}

	out := make(map[string]float64, len(records))
	for _, rec := range records {
		name := ""
		if v, ok := rec.Get("name"); ok {
			name, _ = v.(string)
		}
		if v, ok := rec.Get("num"); ok {
			out[name] = asFloat(v)
		}
	}
	return out, nil
}

// PutAspect inserts or replaces an aspect record.
func (s *Neo4jStore) PutAspect(ctx context.Context, a types.Aspect) error {
	if a.BaseValue == 0 {
		a.BaseValue = 1.0
	}
	if err := a.Validate(); err != nil {
		return err
	}
	err := s.write(ctx, `
		MERGE (a:Aspect {name: $name})
		SET a.mod = $mod, a.base_value = $base_value
	`, map[string]any{"name": a.Name, "mod": a.Mod, "base_value": a.BaseValue})
	if err != nil {
		return fmt.Errorf("storing aspect %q: %w", a.Name, err)
	}
	return nil
}

// PutRecipe inserts a recipe; duplicates are merged away.
func (s *Neo4jStore) PutRecipe(ctx context.Context, r types.Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	err := s.write(ctx, `
		MATCH (result:Aspect {name: $name}),
		      (a:Aspect {name: $component_a}),
		      (b:Aspect {name: $component_b})
		MERGE (rec:Recipe {key: $key})
		MERGE (rec)-[:PRODUCES]->(result)
		MERGE (rec)-[:COMPONENT_A]->(a)
		MERGE (rec)-[:COMPONENT_B]->(b)
	`, map[string]any{
		"name":        r.Name,
		"component_a": r.ComponentA,
		"component_b": r.ComponentB,
		"key":         r.Name + "|" + r.ComponentA + "|" + r.ComponentB,
	})
	if err != nil {
		return fmt.Errorf("storing recipe %q: %w", r.Name, err)
	}
	return nil
}

// SetHolding records the held quantity for an existing aspect.
func (s *Neo4jStore) SetHolding(ctx context.Context, name string, qty float64) error {
	if qty < 0 {
		return fmt.Errorf("holding for %q must be non-negative", name)
	}
	records, err := s.read(ctx,
		`MATCH (a:Aspect {name: $name}) RETURN count(a) AS n`,
		map[string]any{"name": name})
	if err != nil {
		return fmt.Errorf("checking aspect %q: %w", name, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%q: %w", name, types.ErrUnknownAspect)
	}
	if v, ok := records[0].Get("n"); ok {
		if n, _ := v.(int64); n == 0 {
			return fmt.Errorf("%q: %w", name, types.ErrUnknownAspect)
		}
	}

	err = s.write(ctx,
		`MATCH (a:Aspect {name: $name}) SET a.holding = $num`,
		map[string]any{"name": name, "num": qty})
	if err != nil {
		return fmt.Errorf("storing holding for %q: %w", name, err)
	}
	return nil
}

// asFloat coerces the numeric types the bolt protocol may hand back.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
