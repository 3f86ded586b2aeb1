package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/config"
)

func TestParamVectorLayout(t *testing.T) {
	pv := NewParamVector()
	if pv.Dim() != ai.NumParams {
		t.Fatalf("Dim = %d, want %d", pv.Dim(), ai.NumParams)
	}
	if pv.Specs[0].Name != "w_none_r0_food" {
		t.Errorf("first param = %s", pv.Specs[0].Name)
	}
	if pv.Specs[pv.Dim()-1].Name != "b_right" {
		t.Errorf("last param = %s", pv.Specs[pv.Dim()-1].Name)
	}
}

func TestParamVectorNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	raw[0] = 0.5
	raw[1] = -0.25

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Fatalf("param %d: %v -> %v", i, raw[i], back[i])
		}
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()
	v := make([]float64, pv.Dim())
	v[0], v[1], v[2] = -3, 3, 0.5

	c := pv.Clamp(v)
	if c[0] != -1 || c[1] != 1 || c[2] != 0.5 {
		t.Errorf("Clamp = %v", c[:3])
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Board = config.NewBoard(config.Board{Width: 8, Height: 8, InitialSize: 2})
	cfg.Tune.AIs = 2

	fe := NewFitnessEvaluator(200, []string{"a", "b"}, cfg)
	params := make([]float64, ai.NumParams)
	params[ai.NumParams-1] = 0.5 // always turn right

	f1 := fe.Evaluate(params)
	s1, _ := fe.LastScore()
	f2 := fe.Evaluate(params)

	if f1 != f2 {
		t.Errorf("fitness differs between evaluations: %v vs %v", f1, f2)
	}
	if f1 >= 0 || math.IsInf(f1, 0) {
		t.Errorf("fitness = %v, want a finite negative value", f1)
	}
	if s1 < 1 {
		t.Errorf("linear score = %v, want at least 1", s1)
	}
}
