package neat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-ai/neatroids/neat"
)

func TestMarshalUnmarshalPoolRoundTrip(t *testing.T) {
	cfg := neat.DefaultConfig()
	original := neat.NewPool(cfg, neat.NewRng(1), 8)
	original.Generation = 3
	original.MaxFitness = 123

	g := &neat.Genome{
		Fitness:   7,
		MaxNeuron: 9,
		MutationRates: map[string]float32{
			"connections": 0.25, "link": 2.0, "bias": 0.4, "node": 0.5, "enable": 0.2, "disable": 0.4, "step": 0.1,
		},
		Genes: []neat.Gene{
			{Into: 0, Out: neat.MaxNodes, Weight: 1.25, Enabled: true, Innovation: 5},
			{Into: 1, Out: neat.MaxNodes + 1, Weight: -0.5, Enabled: false, Innovation: 6},
		},
	}
	original.Species = []*neat.Species{
		{Genomes: []*neat.Genome{g}, TopFitness: 7, Staleness: 2},
	}

	data, err := neat.MarshalPool(original)
	require.NoError(t, err)

	restored := neat.NewPool(cfg, neat.NewRng(1), 8)
	require.NoError(t, neat.UnmarshalPool(data, restored))

	assert.Equal(t, original.Generation, restored.Generation)
	assert.Equal(t, original.MaxFitness, restored.MaxFitness)
	require.Len(t, restored.Species, 1)
	require.Len(t, restored.Species[0].Genomes, 1)
	assert.Equal(t, g.Genes, restored.Species[0].Genomes[0].Genes)
	assert.Equal(t, g.MutationRates, restored.Species[0].Genomes[0].MutationRates)

	// Cursors and the innovation counter must reset, per the load contract.
	assert.Equal(t, 0, restored.CurrentSpecies)
	assert.Equal(t, 0, restored.CurrentGenome)
	assert.Equal(t, 0, restored.CurrentFrame)
	assert.Equal(t, uint32(neat.Outputs), restored.Innovation)
}

func TestUnmarshalPoolRejectsBadVersion(t *testing.T) {
	cfg := neat.DefaultConfig()
	p := neat.NewPool(cfg, neat.NewRng(1), 8)

	err := neat.UnmarshalPool([]byte(`{"version": 99, "species": []}`), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, neat.ErrMalformedSnapshot)
}

func TestUnmarshalPoolRejectsGarbage(t *testing.T) {
	cfg := neat.DefaultConfig()
	p := neat.NewPool(cfg, neat.NewRng(1), 8)

	err := neat.UnmarshalPool([]byte(`not json`), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, neat.ErrMalformedSnapshot)
}
