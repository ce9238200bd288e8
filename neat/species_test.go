package neat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-ai/neatroids/neat"
)

func genomeWithInnovations(innovations []uint32, weights []float32) *neat.Genome {
	g := &neat.Genome{MutationRates: map[string]float32{}}
	for i, inn := range innovations {
		w := float32(0)
		if i < len(weights) {
			w = weights[i]
		}
		g.Genes = append(g.Genes, neat.Gene{Innovation: inn, Weight: w, Enabled: true})
	}
	return g
}

func TestDisjointMath(t *testing.T) {
	g1 := genomeWithInnovations([]uint32{1, 2, 3}, nil)
	g2 := genomeWithInnovations([]uint32{2, 3, 4, 5}, nil)

	assert.InDelta(t, 0.75, neat.Disjoint(g1, g2), 1e-6)
}

func TestDisjointBothEmpty(t *testing.T) {
	g1 := genomeWithInnovations(nil, nil)
	g2 := genomeWithInnovations(nil, nil)
	assert.Equal(t, float32(0), neat.Disjoint(g1, g2))
}

func TestWeightsMath(t *testing.T) {
	g1 := genomeWithInnovations([]uint32{1, 2}, []float32{1.0, -1.0})
	g2 := genomeWithInnovations([]uint32{1, 2}, []float32{0.5, 0.0})

	assert.InDelta(t, 0.75, neat.Weights(g1, g2), 1e-6)
}

func TestWeightsNoCoincidence(t *testing.T) {
	g1 := genomeWithInnovations([]uint32{1}, []float32{1.0})
	g2 := genomeWithInnovations([]uint32{2}, []float32{5.0})
	assert.Equal(t, float32(0), neat.Weights(g1, g2))
}

func TestSameSpeciesReflexive(t *testing.T) {
	cfg := neat.DefaultConfig()
	g := genomeWithInnovations([]uint32{1, 2, 3}, []float32{0.1, 0.2, 0.3})
	assert.True(t, neat.SameSpecies(cfg, g, g))
}

func TestCrossoverInheritsFromFitterParent(t *testing.T) {
	cfg := neat.DefaultConfig()
	pool := neat.NewPool(cfg, neat.NewRng(1), 4)

	g1 := genomeWithInnovations([]uint32{1, 2}, []float32{1.0, 2.0})
	g1.Fitness = 10
	g1.MaxNeuron = 7
	g1.MutationRates["step"] = 0.42
	g2 := genomeWithInnovations([]uint32{1}, []float32{9.0})
	g2.Fitness = 5
	g2.MaxNeuron = 3

	// g1 is already the fitter parent, so Crossover must not swap it with
	// g2 internally; the child's gene count tracks g1 (the relabeled
	// "a" side) regardless of which gene's weight the coin selects.
	child := neat.Crossover(pool, g1, g2)
	require.Len(t, child.Genes, 2)
	assert.Equal(t, neat.NeuronId(7), child.MaxNeuron, "MaxNeuron takes the larger of the two parents")
	assert.Equal(t, float32(0.42), child.MutationRates["step"], "mutation rates inherit from the fitter parent")
}

func TestCrossoverRelabelsWhenSecondParentIsFitter(t *testing.T) {
	cfg := neat.DefaultConfig()
	pool := neat.NewPool(cfg, neat.NewRng(1), 4)

	weak := genomeWithInnovations([]uint32{1}, []float32{1.0})
	weak.Fitness = 1
	strong := genomeWithInnovations([]uint32{1, 2, 3}, []float32{1.0, 2.0, 3.0})
	strong.Fitness = 99
	strong.MaxNeuron = 11

	// Calling Crossover(pool, weak, strong) must relabel internally so the
	// fitter genome (strong) drives gene count and MaxNeuron, regardless
	// of argument order.
	child := neat.Crossover(pool, weak, strong)
	require.Len(t, child.Genes, 3)
	assert.Equal(t, neat.NeuronId(11), child.MaxNeuron)
}

func TestBreedChildPanicsOnEmptySpecies(t *testing.T) {
	cfg := neat.DefaultConfig()
	pool := neat.NewPool(cfg, neat.NewRng(1), 4)
	s := &neat.Species{}

	assert.Panics(t, func() {
		s.BreedChild(pool)
	})
}
