package ranking

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestForAttempt(t *testing.T) {
	ws := Weights{{1, 0, 0}, {0.5, 0.3, 0.2}}
	assert.Equal(t, Weight{1, 0, 0}, ws.ForAttempt(0))
	assert.Equal(t, Weight{0.5, 0.3, 0.2}, ws.ForAttempt(1))
	assert.Equal(t, Weight{0.5, 0.3, 0.2}, ws.ForAttempt(9))
	assert.Equal(t, Weight{1, 0, 0}, ws.ForAttempt(-3))
	assert.Equal(t, Weight{}, Weights(nil).ForAttempt(0))
}

func TestParseWeightsJSON(t *testing.T) {
	ws, err := ParseWeights([]byte(`[[1.0, 0.0, 0.0], [0.6, 0.2, 0.2]]`), false)
	require.NoError(t, err)
	assert.Equal(t, Weights{{1, 0, 0}, {0.6, 0.2, 0.2}}, ws)

	data, err := json.Marshal(ws)
	require.NoError(t, err)
	assert.JSONEq(t, `[[1,0,0],[0.6,0.2,0.2]]`, string(data))
}

func TestParseWeightsYAML(t *testing.T) {
	in := "- [1.0, 0.0, 0.0]\n- [0.6, 0.2, 0.2]\n"
	ws, err := ParseWeights([]byte(in), true)
	require.NoError(t, err)
	assert.Equal(t, Weights{{1, 0, 0}, {0.6, 0.2, 0.2}}, ws)

	out, err := yaml.Marshal(ws)
	require.NoError(t, err)
	back, err := ParseWeights(out, true)
	require.NoError(t, err)
	assert.Equal(t, ws, back)
}

func TestParseWeightsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		yaml bool
	}{
		{"short triple", `[[1, 0]]`, false},
		{"long triple", `[[1, 0, 0, 0]]`, false},
		{"not numbers", `[["a", 0, 0]]`, false},
		{"nan yaml", "- [.nan, 0, 0]\n", true},
		{"inf yaml", "- [1, .inf, 0]\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeights([]byte(tt.in), tt.yaml)
			assert.ErrorIs(t, err, ErrBadWeight)
		})
	}

	_, err := ParseWeights([]byte(`[]`), false)
	assert.ErrorIs(t, err, ErrNoWeights)
}

func TestLoadWeights(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "w.json")
	yamlPath := filepath.Join(dir, "w.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[[1,0,0]]`), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte("- [0, 1, 0]\n"), 0o644))

	ws, err := LoadWeights(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, Weights{{1, 0, 0}}, ws)

	ws, err = LoadWeights(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, Weights{{0, 1, 0}}, ws)

	_, err = LoadWeights(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
