package export

import (
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thaumlab/aspecter/pkg/search"
	"github.com/thaumlab/aspecter/pkg/types"
)

func TestWriteAspects(t *testing.T) {
	w, err := NewParquetGraphWriter(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteAspects([]types.Aspect{
		{Name: "Aer", Mod: "base", BaseValue: 1},
		{Name: "Lux", Mod: "base", BaseValue: 2},
	})
	require.NoError(t, err)

	rows, err := parquet.ReadFile[ParquetAspect](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Aer", rows[0].Name)
	assert.Equal(t, 2.0, rows[1].BaseValue)
}

func TestWriteRecipesAndHoldings(t *testing.T) {
	w, err := NewParquetGraphWriter(t.TempDir())
	require.NoError(t, err)

	rPath, err := w.WriteRecipes([]types.Recipe{
		{Name: "Lux", ComponentA: "Aer", ComponentB: "Ignis"},
	})
	require.NoError(t, err)
	recipes, err := parquet.ReadFile[ParquetRecipe](rPath)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Aer", recipes[0].ComponentA)

	hPath, err := w.WriteHoldings(map[string]float64{"Aer": 12})
	require.NoError(t, err)
	holdings, err := parquet.ReadFile[ParquetHolding](hPath)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, 12.0, holdings[0].Quantity)
}

func TestWritePaths(t *testing.T) {
	w, err := NewParquetGraphWriter(t.TempDir())
	require.NoError(t, err)

	path, err := w.WritePaths([]search.RankedPath{
		{
			Path:        types.Path{Aspects: []string{"Aer", "Lux", "Ignis"}},
			Weights:     []float64{0, 0.1, 0.2},
			FinalWeight: 0.3,
		},
	})
	require.NoError(t, err)

	rows, err := parquet.ReadFile[ParquetPath](path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Aer->Lux->Ignis", rows[0].Key)
	assert.Equal(t, int32(3), rows[0].Length)
	assert.Equal(t, int32(1), rows[0].Rank)
}
