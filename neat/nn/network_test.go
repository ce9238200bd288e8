package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-ai/neatroids/neat"
	"github.com/fenwick-ai/neatroids/neat/nn"
)

func TestEvaluateRejectsWrongArity(t *testing.T) {
	g := &neat.Genome{MutationRates: map[string]float32{}}
	net, err := nn.Build(g, 4)
	require.NoError(t, err)

	out, err := net.Evaluate([]int32{1, 2, 3})
	assert.Nil(t, out, "a mismatched call must return a nil slice, never a partial one")
	assert.ErrorIs(t, err, neat.ErrInputArityMismatch)
}

func TestEvaluateDirectInputToOutput(t *testing.T) {
	g := &neat.Genome{
		MutationRates: map[string]float32{},
		Genes: []neat.Gene{
			{Into: 0, Out: neat.MaxNodes, Weight: 10, Enabled: true, Innovation: 1},
		},
	}
	net, err := nn.Build(g, 1)
	require.NoError(t, err)

	out, err := net.Evaluate([]int32{1})
	require.NoError(t, err)
	require.Len(t, out, neat.Outputs)
	// sigmoid(10*1) is close to +1, well above the 0 threshold.
	assert.True(t, out[0])
	assert.False(t, out[1])
}

func TestEvaluateIgnoresDisabledGenes(t *testing.T) {
	g := &neat.Genome{
		MutationRates: map[string]float32{},
		Genes: []neat.Gene{
			{Into: 0, Out: neat.MaxNodes, Weight: 10, Enabled: false, Innovation: 1},
		},
	}
	net, err := nn.Build(g, 1)
	require.NoError(t, err)

	out, err := net.Evaluate([]int32{1})
	require.NoError(t, err)
	assert.False(t, out[0], "a disabled gene must not drive its output neuron")
}

func TestEvaluateLengthAlwaysFour(t *testing.T) {
	g := &neat.Genome{MutationRates: map[string]float32{}}
	net, err := nn.Build(g, 2)
	require.NoError(t, err)

	out, err := net.Evaluate([]int32{0, 0})
	require.NoError(t, err)
	assert.Len(t, out, neat.Outputs)
}
