package aspecter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thaumlab/aspecter/pkg/config"
	"github.com/thaumlab/aspecter/pkg/graph"
	"github.com/thaumlab/aspecter/pkg/search"
	"github.com/thaumlab/aspecter/pkg/store"
	"github.com/thaumlab/aspecter/pkg/types"
	"github.com/thaumlab/aspecter/pkg/weight"
)

// ErrNotLoaded is returned when a query runs before Load has built a
// snapshot.
var ErrNotLoaded = errors.New("aspect graph not loaded")

// ErrReadOnlyStore is returned when a write operation is attempted on a
// store without write support.
var ErrReadOnlyStore = errors.New("store is read-only")

// Aspecter is the main interface for querying the aspect recipe graph.
type Aspecter interface {
	// Load reads the store and builds an in-memory graph snapshot.
	// Queries observe the new snapshot atomically.
	Load(ctx context.Context) error

	// Reload rebuilds the snapshot from the store, typically after a
	// mutation. Running queries keep the snapshot they started with.
	Reload(ctx context.Context) error

	// Recommend enumerates the simple paths connecting begin and end and
	// returns them ranked by weight, using the configured search limits.
	Recommend(ctx context.Context, begin, end string) ([]search.RankedPath, error)

	// RecommendWithOptions is Recommend with explicit search limits.
	RecommendWithOptions(ctx context.Context, begin, end string, opts *search.Options) ([]search.RankedPath, error)

	// Crack decomposes the given aspect quantities into primary aspects.
	Crack(quantities map[string]float64) (map[string]float64, error)

	// Aspects returns all loaded aspect records, ordered by name.
	Aspects() ([]types.Aspect, error)

	// Recipes returns all loaded recipe records.
	Recipes() ([]types.Recipe, error)

	// Mods returns the distinct provenance tags of the loaded aspects.
	Mods() ([]string, error)

	// Primaries returns the names of aspects without recipes.
	Primaries() ([]string, error)

	// Holdings returns the held quantity per aspect name, including the
	// zero entries.
	Holdings() (map[string]float64, error)

	// SetHolding writes a held quantity to the store and reloads.
	SetHolding(ctx context.Context, name string, qty float64) error

	// Close releases the store connection.
	Close() error
}

// Client is the main implementation of the Aspecter interface.
type Client struct {
	store  store.Store
	eval   *weight.Evaluator
	opts   search.Options
	logger *slog.Logger

	mu       sync.RWMutex
	snap     *graph.Snapshot
	searcher *search.Searcher
}

// New creates a Client over the given store. A nil config gets the default
// weighting model and unlimited search; a nil logger falls back to
// slog.Default().
func New(st store.Store, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if st == nil {
		return nil, errors.New("store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	eval := weight.NewDefaultEvaluator()
	var opts search.Options
	if cfg != nil {
		curve, err := weight.NewCurve(cfg.Weights.Alpha)
		if err != nil {
			return nil, fmt.Errorf("configuring holding curve: %w", err)
		}
		eval, err = weight.NewEvaluator(curve, cfg.Weights.Rate)
		if err != nil {
			return nil, fmt.Errorf("configuring evaluator: %w", err)
		}
		opts = search.Options{
			MaxPaths:      cfg.Search.MaxPaths,
			MaxPathLength: cfg.Search.MaxPathLength,
		}
	}

	return &Client{
		store:  st,
		eval:   eval,
		opts:   opts,
		logger: logger,
	}, nil
}

// Load implements Aspecter.
func (c *Client) Load(ctx context.Context) error {
	aspects, err := c.store.ListAspects(ctx)
	if err != nil {
		return fmt.Errorf("reading aspects: %w", err)
	}
	recipes, err := c.store.ListRecipes(ctx)
	if err != nil {
		return fmt.Errorf("reading recipes: %w", err)
	}
	holdings, err := c.store.ListHoldings(ctx)
	if err != nil {
		return fmt.Errorf("reading holdings: %w", err)
	}

	snap, err := graph.Build(aspects, recipes, holdings)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}
	for _, r := range snap.Rejected() {
		c.logger.Warn("Recipe rejected", "recipe", r.String())
	}

	searcher, err := search.NewSearcher(snap, c.eval)
	if err != nil {
		return fmt.Errorf("preparing searcher: %w", err)
	}

	c.mu.Lock()
	c.snap = snap
	c.searcher = searcher
	c.mu.Unlock()

	c.logger.Info("Loaded aspect graph",
		"aspects", len(aspects),
		"recipes", len(recipes)-len(snap.Rejected()),
		"rejected", len(snap.Rejected()),
		"store", string(c.store.Provider()))
	return nil
}

// Reload implements Aspecter.
func (c *Client) Reload(ctx context.Context) error {
	return c.Load(ctx)
}

// current returns the loaded snapshot and searcher.
func (c *Client) current() (*graph.Snapshot, *search.Searcher, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return nil, nil, ErrNotLoaded
	}
	return c.snap, c.searcher, nil
}

// Recommend implements Aspecter.
func (c *Client) Recommend(ctx context.Context, begin, end string) ([]search.RankedPath, error) {
	return c.RecommendWithOptions(ctx, begin, end, &c.opts)
}

// RecommendWithOptions implements Aspecter.
func (c *Client) RecommendWithOptions(ctx context.Context, begin, end string, opts *search.Options) ([]search.RankedPath, error) {
	_, searcher, err := c.current()
	if err != nil {
		return nil, err
	}
	return searcher.Recommend(ctx, begin, end, opts)
}

// Crack implements Aspecter.
func (c *Client) Crack(quantities map[string]float64) (map[string]float64, error) {
	_, searcher, err := c.current()
	if err != nil {
		return nil, err
	}
	return searcher.Crack(quantities)
}

// Aspects implements Aspecter.
func (c *Client) Aspects() ([]types.Aspect, error) {
	snap, _, err := c.current()
	if err != nil {
		return nil, err
	}
	return snap.Aspects(), nil
}

// Recipes implements Aspecter.
func (c *Client) Recipes() ([]types.Recipe, error) {
	snap, _, err := c.current()
	if err != nil {
		return nil, err
	}
	var out []types.Recipe
	for h := 0; h < snap.Len(); h++ {
		for _, pair := range snap.Recipes(h) {
			out = append(out, types.Recipe{
				Name:       snap.Name(h),
				ComponentA: snap.Name(pair[0]),
				ComponentB: snap.Name(pair[1]),
			})
		}
	}
	return out, nil
}

// Mods implements Aspecter.
func (c *Client) Mods() ([]string, error) {
	snap, _, err := c.current()
	if err != nil {
		return nil, err
	}
	return snap.Mods(), nil
}

// Primaries implements Aspecter.
func (c *Client) Primaries() ([]string, error) {
	snap, _, err := c.current()
	if err != nil {
		return nil, err
	}
	return snap.Primaries(), nil
}

// Holdings implements Aspecter.
func (c *Client) Holdings() (map[string]float64, error) {
	snap, _, err := c.current()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, snap.Len())
	for h := 0; h < snap.Len(); h++ {
		out[snap.Name(h)] = snap.Held(h)
	}
	return out, nil
}

// SetHolding implements Aspecter. The store must be mutable.
func (c *Client) SetHolding(ctx context.Context, name string, qty float64) error {
	mut, ok := c.store.(store.MutableStore)
	if !ok {
		return ErrReadOnlyStore
	}
	if err := mut.SetHolding(ctx, name, qty); err != nil {
		return err
	}
	return c.Load(ctx)
}

// Close implements Aspecter.
func (c *Client) Close() error {
	return c.store.Close()
}
