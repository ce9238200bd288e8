package neat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-ai/neatroids/neat"
)

func countGenomes(p *neat.Pool) int {
	total := 0
	for _, s := range p.Species {
		total += len(s.Genomes)
	}
	return total
}

func TestInitDeterminism(t *testing.T) {
	cfg := neat.DefaultConfig()
	pool := neat.NewPool(cfg, neat.NewRng(42), 64)
	pool.Init()

	require.GreaterOrEqual(t, len(pool.Species), 1)
	require.LessOrEqual(t, len(pool.Species), cfg.PopSize)
	assert.Equal(t, cfg.PopSize, countGenomes(pool))

	for _, s := range pool.Species {
		for _, g := range s.Genomes {
			g.Fitness = int32(len(g.Genes)) + 1 // every genome must carry a fitness before new_generation
		}
	}

	require.NoError(t, pool.NewGeneration())
	assert.Equal(t, cfg.PopSize, countGenomes(pool))
}

func TestNewGenerationAdvancesGenerationCounter(t *testing.T) {
	cfg := neat.DefaultConfig()
	cfg.PopSize = 30
	pool := neat.NewPool(cfg, neat.NewRng(1), 16)
	pool.Init()
	for _, s := range pool.Species {
		for _, g := range s.Genomes {
			g.Fitness = 1
		}
	}

	require.NoError(t, pool.NewGeneration())
	assert.Equal(t, uint32(1), pool.Generation)
}

func TestAddToSpeciesStartsNewSpeciesWhenIncompatible(t *testing.T) {
	cfg := neat.DefaultConfig()
	pool := neat.NewPool(cfg, neat.NewRng(1), 4)

	a := &neat.Genome{MutationRates: map[string]float32{}}
	pool.AddToSpecies(a)
	require.Len(t, pool.Species, 1)

	// A genome with wildly different genes relative to the representative
	// exceeds DeltaThreshold and must start a second species.
	b := &neat.Genome{
		MutationRates: map[string]float32{},
		Genes: []neat.Gene{
			{Into: 0, Out: 1, Weight: 2, Enabled: true, Innovation: 1},
			{Into: 0, Out: 2, Weight: -2, Enabled: true, Innovation: 2},
		},
	}
	pool.AddToSpecies(b)
	assert.Len(t, pool.Species, 2)
}

func TestRemoveStaleSpeciesProtectsIncumbentBest(t *testing.T) {
	cfg := neat.DefaultConfig()
	cfg.StaleSpecies = 1
	pool := neat.NewPool(cfg, neat.NewRng(1), 4)
	pool.MaxFitness = 50

	best := &neat.Genome{Fitness: 50, MutationRates: map[string]float32{}}
	s := &neat.Species{Genomes: []*neat.Genome{best}, TopFitness: 50, Staleness: 5}
	pool.Species = []*neat.Species{s}

	pool.RemoveStaleSpecies()
	require.Len(t, pool.Species, 1, "incumbent best must survive even when stale")
}

func TestRemoveStaleSpeciesDropsNonBestStaleSpecies(t *testing.T) {
	cfg := neat.DefaultConfig()
	cfg.StaleSpecies = 1
	pool := neat.NewPool(cfg, neat.NewRng(1), 4)
	pool.MaxFitness = 1000

	weak := &neat.Genome{Fitness: 1, MutationRates: map[string]float32{}}
	s := &neat.Species{Genomes: []*neat.Genome{weak}, TopFitness: 1, Staleness: 5}
	pool.Species = []*neat.Species{s}

	pool.RemoveStaleSpecies()
	assert.Len(t, pool.Species, 0)
}
