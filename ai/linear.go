package ai

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/snek/game"
	"github.com/pthm-cable/snek/vision"
)

// NumParams is the length of a flat LinearPolicy parameter vector:
// a NumDecisions x NumInputs weight matrix followed by one bias per
// decision.
const NumParams = NumDecisions*vision.NumInputs + NumDecisions

// LinearPolicy scores each decision as a weighted sum of the vision
// reading plus a bias and picks the best one.
type LinearPolicy struct {
	sensor  *vision.Sensor
	weights *mat.Dense
	bias    *mat.VecDense

	scores mat.VecDense
}

// NewLinearPolicy builds a policy from a flat parameter vector laid out
// row by row, then the biases.
func NewLinearPolicy(sensor *vision.Sensor, params []float64) (*LinearPolicy, error) {
	if len(params) != NumParams {
		return nil, fmt.Errorf("expected %d parameters, got %d", NumParams, len(params))
	}
	p := make([]float64, NumParams)
	copy(p, params)

	n := NumDecisions * vision.NumInputs
	return &LinearPolicy{
		sensor:  sensor,
		weights: mat.NewDense(NumDecisions, vision.NumInputs, p[:n]),
		bias:    mat.NewVecDense(NumDecisions, p[n:]),
	}, nil
}

// Params returns a copy of the flat parameter vector.
func (p *LinearPolicy) Params() []float64 {
	out := make([]float64, 0, NumParams)
	out = append(out, p.weights.RawMatrix().Data...)
	return append(out, p.bias.RawVector().Data...)
}

// Scores returns the raw decision scores for a state, indexed by Decision.
func (p *LinearPolicy) Scores(s game.State) []float64 {
	x := mat.NewVecDense(vision.NumInputs, p.sensor.SeeState(s))
	p.scores.MulVec(p.weights, x)
	p.scores.AddVec(&p.scores, p.bias)

	out := make([]float64, NumDecisions)
	for i := range out {
		out[i] = p.scores.AtVec(i)
	}
	return out
}

// Decide returns the highest-scoring decision. Ties go to the earlier
// decision.
func (p *LinearPolicy) Decide(s game.State) Decision {
	scores := p.Scores(s)
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return Decision(best)
}

// WeightsFile is the on-disk form of a tuned linear policy.
type WeightsFile struct {
	VisionDistance int       `json:"vision_distance"`
	Fitness        float64   `json:"fitness"`
	Params         []float64 `json:"params"`
}

// SaveWeights writes w as indented JSON.
func SaveWeights(path string, w WeightsFile) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling weights: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing weights: %w", err)
	}
	return nil
}

// LoadWeights reads a weights file and checks its length.
func LoadWeights(path string) (WeightsFile, error) {
	var w WeightsFile
	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("reading weights: %w", err)
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parsing weights: %w", err)
	}
	if len(w.Params) != NumParams {
		return w, fmt.Errorf("weights file has %d parameters, want %d", len(w.Params), NumParams)
	}
	return w, nil
}
