// Package export writes graph snapshots to Parquet files for analysis in
// external tooling.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/thaumlab/aspecter/pkg/search"
	"github.com/thaumlab/aspecter/pkg/types"
)

// ParquetGraphWriter handles writing aspects, recipes, holdings and ranked
// paths to Parquet files.
type ParquetGraphWriter struct {
	baseDir string
}

// NewParquetGraphWriter creates a new Parquet writer
// baseDir should be the directory where parquet files will be stored
func NewParquetGraphWriter(baseDir string) (*ParquetGraphWriter, error) {
	// Ensure directories exist
	dirs := []string{"aspects", "recipes", "holdings", "paths"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(baseDir, d), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	return &ParquetGraphWriter{baseDir: baseDir}, nil
}

// ParquetAspect represents the schema for an aspect in Parquet
type ParquetAspect struct {
	Name      string  `parquet:"name"`
	Mod       string  `parquet:"mod"`
	BaseValue float64 `parquet:"base_value"`
}

// ParquetRecipe represents the schema for a recipe in Parquet
type ParquetRecipe struct {
	Name       string `parquet:"name"`
	ComponentA string `parquet:"component_a"`
	ComponentB string `parquet:"component_b"`
}

// ParquetHolding represents the schema for a holding in Parquet
type ParquetHolding struct {
	Name     string  `parquet:"name"`
	Quantity float64 `parquet:"quantity"`
}

// ParquetPath represents the schema for a ranked path in Parquet
type ParquetPath struct {
	Begin       string  `parquet:"begin"`
	End         string  `parquet:"end"`
	Key         string  `parquet:"key"`
	Length      int32   `parquet:"length"`
	FinalWeight float64 `parquet:"final_weight"`
	Rank        int32   `parquet:"rank"`
}

// WriteAspects writes aspect records to a timestamped Parquet file and
// returns its path.
func (w *ParquetGraphWriter) WriteAspects(aspects []types.Aspect) (string, error) {
	rows := make([]ParquetAspect, 0, len(aspects))
	for _, a := range aspects {
		rows = append(rows, ParquetAspect{Name: a.Name, Mod: a.Mod, BaseValue: a.BaseValue})
	}
	return writeRows(filepath.Join(w.baseDir, "aspects"), "aspects", rows)
}

// WriteRecipes writes recipe records to a timestamped Parquet file and
// returns its path.
func (w *ParquetGraphWriter) WriteRecipes(recipes []types.Recipe) (string, error) {
	rows := make([]ParquetRecipe, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, ParquetRecipe{Name: r.Name, ComponentA: r.ComponentA, ComponentB: r.ComponentB})
	}
	return writeRows(filepath.Join(w.baseDir, "recipes"), "recipes", rows)
}

// WriteHoldings writes held quantities to a timestamped Parquet file and
// returns its path.
func (w *ParquetGraphWriter) WriteHoldings(holdings map[string]float64) (string, error) {
	rows := make([]ParquetHolding, 0, len(holdings))
	for name, qty := range holdings {
		rows = append(rows, ParquetHolding{Name: name, Quantity: qty})
	}
	return writeRows(filepath.Join(w.baseDir, "holdings"), "holdings", rows)
}

// WritePaths writes a ranked path list to a timestamped Parquet file and
// returns its path.
func (w *ParquetGraphWriter) WritePaths(ranked []search.RankedPath) (string, error) {
	rows := make([]ParquetPath, 0, len(ranked))
	for i, r := range ranked {
		rows = append(rows, ParquetPath{
			Begin:       r.Path.Begin(),
			End:         r.Path.End(),
			Key:         r.Path.Key(),
			Length:      int32(r.Path.Len()),
			FinalWeight: r.FinalWeight,
			Rank:        int32(i + 1),
		})
	}
	return writeRows(filepath.Join(w.baseDir, "paths"), "paths", rows)
}

func writeRows[T any](dir, kind string, rows []T) (string, error) {
	filename := fmt.Sprintf("%s_%s.parquet", kind, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := parquet.WriteFile(path, rows); err != nil {
		return "", fmt.Errorf("failed to write %s parquet file: %w", kind, err)
	}
	return path, nil
}
