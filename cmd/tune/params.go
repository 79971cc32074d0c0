package main

import (
	"math"

	"github.com/pthm-cable/monsters/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded to the nearest integer when applied
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "food_hp_increase", Path: "energy.food_hp_increase", Min: 40, Max: 250, Default: 130, Integer: true},
			{Name: "hp_loss_per_turn", Path: "energy.hp_loss_per_turn", Min: 5, Max: 40, Default: 20, Integer: true},
			{Name: "divide_min_hp", Path: "energy.divide_min_hp", Min: 30, Max: 200, Default: 75, Integer: true},
			{Name: "attack_hp_decrease", Path: "energy.attack_hp_decrease", Min: 10, Max: 120, Default: 50, Integer: true},
			{Name: "mutation_rate", Path: "mutation.rate", Min: 0, Max: 0.6, Default: 0.2},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and integer parameters are whole.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Energy.FoodHPIncrease = int(clamped[0])
	cfg.Energy.HPLossPerTurn = int(clamped[1])
	cfg.Energy.DivideMinHP = int(clamped[2])
	cfg.Energy.AttackHPDecrease = int(clamped[3])
	cfg.Mutation.Rate = clamped[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Energy.FoodHPIncrease),
		float64(cfg.Energy.HPLossPerTurn),
		float64(cfg.Energy.DivideMinHP),
		float64(cfg.Energy.AttackHPDecrease),
		cfg.Mutation.Rate,
	}
}
