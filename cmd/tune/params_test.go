package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/monsters/config"
)

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	want := pv.DefaultVector()
	for i, spec := range pv.Specs {
		if got[i] != want[i] {
			t.Errorf("%s: config default %v, param default %v", spec.Name, got[i], want[i])
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{1000, -3, 74.6, 55.4, 0.9})
	want := []float64{250, 5, 75, 55, 0.6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	pv.ApplyToConfig(cfg, []float64{99.7, 12, 150, 30, 0.35})

	if cfg.Energy.FoodHPIncrease != 100 {
		t.Errorf("food_hp_increase = %d, want 100", cfg.Energy.FoodHPIncrease)
	}
	if cfg.Energy.HPLossPerTurn != 12 {
		t.Errorf("hp_loss_per_turn = %d, want 12", cfg.Energy.HPLossPerTurn)
	}
	if cfg.Energy.DivideMinHP != 150 {
		t.Errorf("divide_min_hp = %d, want 150", cfg.Energy.DivideMinHP)
	}
	if cfg.Energy.AttackHPDecrease != 30 {
		t.Errorf("attack_hp_decrease = %d, want 30", cfg.Energy.AttackHPDecrease)
	}
	if cfg.Mutation.Rate != 0.35 {
		t.Errorf("mutation rate = %v, want 0.35", cfg.Mutation.Rate)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("tuned config invalid: %v", err)
	}
}
