// Package nn builds and evaluates the phenotype derived from a genome's
// gene list: a single-pass feed-forward network, not a fixpoint solver.
package nn

import (
	"math"
	"sort"

	"github.com/fenwick-ai/neatroids/neat"
)

// neuron holds one node's accumulated value and the genes feeding into it.
type neuron struct {
	incoming []neat.Gene
	value    float32
}

// Network is the phenotype built from a Genome's gene list. It is rebuilt
// from scratch before every episode and never persisted — only the genes
// that produced it are durable state.
type Network struct {
	neurons   map[neat.NeuronId]*neuron
	order     []neat.NeuronId
	inputSize uint32
}

// Build constructs the phenotype: empty neurons for every input and output
// id, then for every enabled gene (processed in ascending Out order) it
// ensures both endpoints exist and appends the gene to its Out neuron's
// incoming list.
func Build(genome *neat.Genome, inputSize uint32) (*Network, error) {
	genome.SortGenes()

	net := &Network{
		neurons:   make(map[neat.NeuronId]*neuron),
		inputSize: inputSize,
	}

	for i := neat.NeuronId(0); i < neat.NeuronId(inputSize); i++ {
		net.ensure(i)
	}
	for o := neat.NeuronId(0); o < neat.Outputs; o++ {
		net.ensure(neat.MaxNodes + o)
	}

	for _, gene := range genome.Genes {
		if !gene.Enabled {
			continue
		}
		out := net.ensure(gene.Out)
		out.incoming = append(out.incoming, gene)
		net.ensure(gene.Into)
	}

	net.pinTraversalOrder()
	return net, nil
}

func (n *Network) ensure(id neat.NeuronId) *neuron {
	if nr, ok := n.neurons[id]; ok {
		return nr
	}
	nr := &neuron{}
	n.neurons[id] = nr
	return nr
}

// pinTraversalOrder fixes the evaluation order to ascending neuron id. The
// source iterated an unordered map; this is the documented, deterministic
// replacement (see the design notes on non-acyclic feed-forward
// evaluation): a single pass in this order, not a fixpoint, so the
// network's effective depth equals exactly one traversal.
func (n *Network) pinTraversalOrder() {
	n.order = n.order[:0]
	for id := range n.neurons {
		n.order = append(n.order, id)
	}
	sort.Slice(n.order, func(i, j int) bool { return n.order[i] < n.order[j] })
}

// sigmoid is the fixed activation used by every neuron with at least one
// incoming edge: not the standard logistic function, but a steeper
// variant scaled to [-1, 1].
func sigmoid(x float32) float32 {
	return float32(2/(1+math.Exp(float64(-4.9*x))) - 1)
}

// Evaluate runs one single-pass forward evaluation. It fails with
// ErrInputArityMismatch (returning a nil, not partial, output slice) if
// inputs does not have exactly inputSize elements.
func (n *Network) Evaluate(inputs []int32) ([]bool, error) {
	if uint32(len(inputs)) != n.inputSize {
		return nil, neat.ErrInputArityMismatch
	}

	for i, v := range inputs {
		n.neurons[neat.NeuronId(i)].value = float32(v)
	}

	for _, id := range n.order {
		if id < neat.NeuronId(n.inputSize) {
			continue
		}
		nr := n.neurons[id]
		if len(nr.incoming) == 0 {
			continue
		}
		var sum float32
		for _, gene := range nr.incoming {
			sum += gene.Weight * n.neurons[gene.Into].value
		}
		nr.value = sigmoid(sum)
	}

	outputs := make([]bool, neat.Outputs)
	for o := neat.NeuronId(0); o < neat.Outputs; o++ {
		outputs[o] = n.neurons[neat.MaxNodes+o].value > 0
	}
	return outputs, nil
}
