package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/thaumlab/aspecter/pkg/types"
	"gopkg.in/yaml.v3"
)

// Pack is a content pack: a YAML document declaring aspects, recipes and
// optional holdings, importable into any mutable store.
type Pack struct {
	// Name is the pack's provenance tag, applied to aspects that do not
	// carry their own.
	Name     string             `yaml:"name"`
	Aspects  []types.Aspect     `yaml:"aspects"`
	Recipes  []types.Recipe     `yaml:"recipes"`
	Holdings map[string]float64 `yaml:"holdings"`
}

// ReadPack decodes a pack from YAML.
func ReadPack(r io.Reader) (*Pack, error) {
	var p Pack
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding pack: %w", err)
	}
	return &p, nil
}

// ReadPackFile decodes a pack from a YAML file.
func ReadPackFile(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pack: %w", err)
	}
	defer f.Close()
	return ReadPack(f)
}

// Import writes the pack into dst: aspects first so recipe and holding
// references resolve, then recipes, then holdings.
func (p *Pack) Import(ctx context.Context, dst MutableStore) error {
	for _, a := range p.Aspects {
		if a.Mod == "" {
			a.Mod = p.Name
		}
		if err := dst.PutAspect(ctx, a); err != nil {
			return err
		}
	}
	for _, r := range p.Recipes {
		if err := dst.PutRecipe(ctx, r); err != nil {
			return err
		}
	}
	for name, qty := range p.Holdings {
		if err := dst.SetHolding(ctx, name, qty); err != nil {
			return err
		}
	}
	return nil
}
