// internal/ranking/weights.go
//
// Per-turn weight triples.
// A weight file is an ordered sequence of [frequency, distinct, elimination] triples,
// indexed by attempt number. JSON keeps the original solver_config.json shape; YAML
// files hold the same sequence of sequences.

package ranking

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrBadWeight = errors.New("ranking: weight triple must be 3 finite numbers")
	ErrNoWeights = errors.New("ranking: weight list is empty")
)

// Weight scales the three components of a weighted score.
type Weight struct {
	Frequency   float64 // positional letter frequency
	Distinct    float64 // bonus for five different letters
	Elimination float64 // bonus from the elimination strategy
}

// Validate rejects non-finite coefficients.
func (w Weight) Validate() error {
	for _, f := range [...]float64{w.Frequency, w.Distinct, w.Elimination} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrBadWeight
		}
	}
	return nil
}

func fromTriple(v []float64) (Weight, error) {
	if len(v) != 3 {
		return Weight{}, fmt.Errorf("%w: got %d values", ErrBadWeight, len(v))
	}
	w := Weight{Frequency: v[0], Distinct: v[1], Elimination: v[2]}
	return w, w.Validate()
}

func (w Weight) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{w.Frequency, w.Distinct, w.Elimination})
}

func (w *Weight) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadWeight, err)
	}
	parsed, err := fromTriple(v)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func (w Weight) MarshalYAML() (interface{}, error) {
	return []float64{w.Frequency, w.Distinct, w.Elimination}, nil
}

func (w *Weight) UnmarshalYAML(value *yaml.Node) error {
	var v []float64
	if err := value.Decode(&v); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrBadWeight, value.Line, err)
	}
	parsed, err := fromTriple(v)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*w = parsed
	return nil
}

// Weights is the per-attempt sequence of triples.
type Weights []Weight

// ForAttempt returns the triple for a zero-based attempt index, reusing the last
// triple once the sequence runs out.
func (ws Weights) ForAttempt(attempt int) Weight {
	if len(ws) == 0 {
		return Weight{}
	}
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= len(ws) {
		attempt = len(ws) - 1
	}
	return ws[attempt]
}

// Validate checks the list is non-empty and every triple is finite.
func (ws Weights) Validate() error {
	if len(ws) == 0 {
		return ErrNoWeights
	}
	for i, w := range ws {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// ParseWeights decodes a weight list. yamlFormat selects YAML instead of JSON.
func ParseWeights(data []byte, yamlFormat bool) (Weights, error) {
	var ws Weights
	var err error
	if yamlFormat {
		err = yaml.Unmarshal(data, &ws)
	} else {
		err = json.Unmarshal(data, &ws)
	}
	if err != nil {
		return nil, err
	}
	if err := ws.Validate(); err != nil {
		return nil, err
	}
	return ws, nil
}

// LoadWeights reads a weight file; .yaml and .yml select YAML, anything else JSON.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	ws, err := ParseWeights(data, ext == ".yaml" || ext == ".yml")
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ws, nil
}
