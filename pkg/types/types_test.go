package types

import (
	"errors"
	"testing"
)

func TestAspectValidate(t *testing.T) {
	tests := []struct {
		name    string
		aspect  Aspect
		wantErr error
	}{
		{
			name:    "valid aspect",
			aspect:  Aspect{Name: "Aer", BaseValue: 1.0},
			wantErr: nil,
		},
		{
			name:    "empty name",
			aspect:  Aspect{Name: "", BaseValue: 1.0},
			wantErr: ErrEmptyName,
		},
		{
			name:    "zero base value",
			aspect:  Aspect{Name: "Terra", BaseValue: 0},
			wantErr: ErrDegenerateWeight,
		},
		{
			name:    "negative base value",
			aspect:  Aspect{Name: "Ignis", BaseValue: -2.5},
			wantErr: ErrDegenerateWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.aspect.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Aspect.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecipeValidate(t *testing.T) {
	tests := []struct {
		name    string
		recipe  Recipe
		wantErr error
	}{
		{
			name:    "valid recipe",
			recipe:  Recipe{Name: "Lux", ComponentA: "Aer", ComponentB: "Ignis"},
			wantErr: nil,
		},
		{
			name:    "missing component",
			recipe:  Recipe{Name: "Lux", ComponentA: "Aer"},
			wantErr: ErrEmptyName,
		},
		{
			name:    "self reference",
			recipe:  Recipe{Name: "Lux", ComponentA: "Lux", ComponentB: "Ignis"},
			wantErr: ErrRecipeCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.recipe.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Recipe.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecipeString(t *testing.T) {
	r := Recipe{Name: "Lux", ComponentA: "Aer", ComponentB: "Ignis"}
	if got := r.String(); got != "Lux = Aer + Ignis" {
		t.Errorf("Recipe.String() = %q", got)
	}
}

func TestPath(t *testing.T) {
	p := Path{Aspects: []string{"Aer", "Lux", "Ignis"}}
	if p.Begin() != "Aer" {
		t.Errorf("Begin() = %q, want Aer", p.Begin())
	}
	if p.End() != "Ignis" {
		t.Errorf("End() = %q, want Ignis", p.End())
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
	if p.Key() != "Aer->Lux->Ignis" {
		t.Errorf("Key() = %q", p.Key())
	}

	var empty Path
	if empty.Begin() != "" || empty.End() != "" {
		t.Error("empty path should have empty begin and end")
	}
}
