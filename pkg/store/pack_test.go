package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thaumlab/aspecter/pkg/types"
)

const samplePack = `
name: thaumcraft4
aspects:
  - name: Aer
  - name: Ignis
  - name: Aqua
  - name: Lux
    base_value: 2
  - name: Vitreus
    mod: addon
recipes:
  - name: Lux
    component_a: Aer
    component_b: Ignis
holdings:
  Aer: 12
  Lux: 3
`

func TestReadPack(t *testing.T) {
	p, err := ReadPack(strings.NewReader(samplePack))
	require.NoError(t, err)

	assert.Equal(t, "thaumcraft4", p.Name)
	assert.Len(t, p.Aspects, 5)
	assert.Len(t, p.Recipes, 1)
	assert.Equal(t, 12.0, p.Holdings["Aer"])
}

func TestReadPackRejectsUnknownFields(t *testing.T) {
	_, err := ReadPack(strings.NewReader("name: x\nbogus: true\n"))
	assert.Error(t, err)
}

func TestPackImport(t *testing.T) {
	ctx := context.Background()
	p, err := ReadPack(strings.NewReader(samplePack))
	require.NoError(t, err)

	dst := NewMemoryStore()
	require.NoError(t, p.Import(ctx, dst))

	aspects, err := dst.ListAspects(ctx)
	require.NoError(t, err)
	require.Len(t, aspects, 5)

	byName := make(map[string]types.Aspect, len(aspects))
	for _, a := range aspects {
		byName[a.Name] = a
	}
	assert.Equal(t, 1.0, byName["Aer"].BaseValue, "base value defaults to 1")
	assert.Equal(t, 2.0, byName["Lux"].BaseValue)
	assert.Equal(t, "thaumcraft4", byName["Aer"].Mod, "pack name fills the mod tag")
	assert.Equal(t, "addon", byName["Vitreus"].Mod, "an explicit mod tag wins")

	holdings, err := dst.ListHoldings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, holdings["Lux"])
}

func TestPackImportUnknownHolding(t *testing.T) {
	p := &Pack{
		Aspects:  []types.Aspect{{Name: "Aer"}},
		Holdings: map[string]float64{"Missing": 1},
	}
	err := p.Import(context.Background(), NewMemoryStore())
	assert.ErrorIs(t, err, types.ErrUnknownAspect)
}
