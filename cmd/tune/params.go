package main

import (
	"fmt"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/vision"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

var channelNames = [vision.NumChannels]string{"food", "tail", "wall"}

// NewParamVector creates one parameter per linear policy weight, in the
// layout ai.NewLinearPolicy expects.
func NewParamVector() *ParamVector {
	specs := make([]ParamSpec, 0, ai.NumParams)
	for d := ai.Decision(0); d < ai.NumDecisions; d++ {
		for ray := 0; ray < vision.NumRays; ray++ {
			for ch := 0; ch < vision.NumChannels; ch++ {
				specs = append(specs, ParamSpec{
					Name: fmt.Sprintf("w_%s_r%d_%s", d, ray, channelNames[ch]),
					Min:  -1,
					Max:  1,
				})
			}
		}
	}
	for d := ai.Decision(0); d < ai.NumDecisions; d++ {
		specs = append(specs, ParamSpec{Name: "b_" + d.String(), Min: -1, Max: 1})
	}
	return &ParamVector{Specs: specs}
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

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}
