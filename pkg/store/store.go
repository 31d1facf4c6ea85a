// Package store provides the graph store adapters that supply aspect,
// recipe and holding records to the graph builder.
package store

import (
	"context"
	"fmt"

	"github.com/thaumlab/aspecter/pkg/types"
)

// Provider names a store backend.
type Provider string

const (
	ProviderSQLite Provider = "sqlite"
	ProviderNeo4j  Provider = "neo4j"
	ProviderMemory Provider = "memory"
)

// Store is the read side of the graph store: everything the builder needs
// to assemble a snapshot. Implementations are queried once per load.
type Store interface {
	// ListAspects returns all aspect records, ordered by name.
	ListAspects(ctx context.Context) ([]types.Aspect, error)
	// ListRecipes returns all recipe records, ordered by result name.
	ListRecipes(ctx context.Context) ([]types.Recipe, error)
	// ListHoldings returns the held quantity per aspect name. Aspects
	// without an entry hold zero.
	ListHoldings(ctx context.Context) (map[string]float64, error)
	// Provider identifies the backend.
	Provider() Provider
	// Close releases the underlying connection.
	Close() error
}

// MutableStore extends Store with the write operations the CLI's data
// management commands use. The recommendation core itself never writes.
type MutableStore interface {
	Store

	// PutAspect inserts or replaces an aspect record.
	PutAspect(ctx context.Context, a types.Aspect) error
	// PutRecipe inserts a recipe. Duplicate recipes are ignored.
	PutRecipe(ctx context.Context, r types.Recipe) error
	// SetHolding records the held quantity for an aspect. The aspect must
	// exist.
	SetHolding(ctx context.Context, name string, qty float64) error
}

// Options configures Open.
type Options struct {
	// Driver selects the backend: sqlite, neo4j or memory.
	Driver string
	// URI is the sqlite file path or the neo4j bolt URI.
	URI      string
	Username string
	Password string
	Database string
}

// Open builds a store from configuration.
func Open(ctx context.Context, opts Options) (MutableStore, error) {
	switch Provider(opts.Driver) {
	case ProviderSQLite, "":
		return OpenSQLite(opts.URI)
	case ProviderNeo4j:
		return OpenNeo4j(ctx, opts.URI, opts.Username, opts.Password, opts.Database)
	case ProviderMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
