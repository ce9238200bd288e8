package neat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-ai/neatroids/neat"
)

func TestDefaultConfigMatchesFixedTuningTable(t *testing.T) {
	cfg := neat.DefaultConfig()

	assert.Equal(t, 300, cfg.PopSize)
	assert.Equal(t, 15, cfg.StaleSpecies)
	assert.InDelta(t, 0.75, cfg.CrossoverChance, 1e-9)
	assert.InDelta(t, float32(0.90), cfg.PerturbChance, 1e-9)
	assert.InDelta(t, 2.0, cfg.Link, 1e-9)
	assert.InDelta(t, 0.5, cfg.Node, 1e-9)
	assert.InDelta(t, float32(0.4), cfg.Bias, 1e-9)
	assert.InDelta(t, float32(0.2), cfg.Enable, 1e-9)
	assert.InDelta(t, float32(0.4), cfg.Disable, 1e-9)
	assert.InDelta(t, 0.25, cfg.Connections, 1e-9)
}

func TestLoadConfigOverridesOnlySpecifiedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "neatroids.ini")
	require.NoError(t, os.WriteFile(path, []byte("[NEAT]\npop_size = 150\n"), 0644))

	cfg, err := neat.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 150, cfg.PopSize)
	assert.Equal(t, 15, cfg.StaleSpecies, "keys absent from the file keep the spec default")
}

func TestLoadConfigRejectsInvalidCrossoverChance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "neatroids.ini")
	require.NoError(t, os.WriteFile(path, []byte("[NEAT]\ncrossover_chance = 1.5\n"), 0644))

	_, err := neat.LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := neat.LoadConfig("/nonexistent/path.ini")
	assert.Error(t, err)
}
