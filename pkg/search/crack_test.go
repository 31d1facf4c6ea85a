package search

import (
	"errors"
	"testing"

	"github.com/thaumlab/aspecter/pkg/types"
)

func crackSearcher(t *testing.T) *Searcher {
	t.Helper()
	return buildSearcher(t,
		[]types.Aspect{
			{Name: "Aer", BaseValue: 1},
			{Name: "Ignis", BaseValue: 1},
			{Name: "Aqua", BaseValue: 1},
			{Name: "Lux", BaseValue: 1},
			{Name: "Vapor", BaseValue: 1},
			{Name: "Potentia", BaseValue: 1},
		},
		[]types.Recipe{
			{Name: "Lux", ComponentA: "Aer", ComponentB: "Ignis"},
			{Name: "Vapor", ComponentA: "Aqua", ComponentB: "Ignis"},
			{Name: "Potentia", ComponentA: "Lux", ComponentB: "Vapor"},
		},
		nil,
	)
}

func TestCrackPrimary(t *testing.T) {
	s := crackSearcher(t)

	got, err := s.Crack(map[string]float64{"Aer": 1})
	if err != nil {
		t.Fatalf("Crack error: %v", err)
	}
	if len(got) != 1 || got["Aer"] != 1 {
		t.Errorf("Crack(Aer) = %v, want map[Aer:1]", got)
	}
}

func TestCrackNested(t *testing.T) {
	s := crackSearcher(t)

	// Potentia = Lux + Vapor = (Aer+Ignis) + (Aqua+Ignis).
	got, err := s.Crack(map[string]float64{"Potentia": 1})
	if err != nil {
		t.Fatalf("Crack error: %v", err)
	}
	want := map[string]float64{"Aer": 1, "Ignis": 2, "Aqua": 1}
	for name, count := range want {
		if got[name] != count {
			t.Errorf("Crack(Potentia)[%s] = %v, want %v", name, got[name], count)
		}
	}
	if len(got) != len(want) {
		t.Errorf("Crack(Potentia) = %v, want %v", got, want)
	}
}

func TestCrackQuantitiesMultiply(t *testing.T) {
	s := crackSearcher(t)

	got, err := s.Crack(map[string]float64{"Lux": 3, "Ignis": 2})
	if err != nil {
		t.Fatalf("Crack error: %v", err)
	}
	if got["Aer"] != 3 || got["Ignis"] != 5 {
		t.Errorf("Crack = %v, want Aer:3 Ignis:5", got)
	}
}

func TestCrackUnknownAspect(t *testing.T) {
	s := crackSearcher(t)

	if _, err := s.Crack(map[string]float64{"Nonexistent": 1}); !errors.Is(err, types.ErrUnknownAspect) {
		t.Errorf("Crack error = %v, want ErrUnknownAspect", err)
	}
}

func TestCrackNonPositiveQuantity(t *testing.T) {
	s := crackSearcher(t)

	if _, err := s.Crack(map[string]float64{"Aer": 0}); err == nil {
		t.Error("Crack should reject non-positive quantities")
	}
}
