package neat

// NeuronId identifies a neuron by role and position. Ids partition into
// three disjoint ranges:
//
//   - [0, inputSize)                 input neurons (id 0 is the bias)
//   - [inputSize, MaxNodes)          hidden neurons, allocated via max_neuron
//   - [MaxNodes, MaxNodes+Outputs)   output neurons
//
// MaxNodes is a reserved gap, not a hard cap on hidden-neuron count: hidden
// ids must stay below it, but nothing sizes a container to it.
type NeuronId uint32

// MaxNodes separates the hidden-neuron id range from the output-neuron id
// range. See the NeuronId doc comment for the full partition.
const MaxNodes NeuronId = 1_000_000

// Outputs is the fixed width of the controller output vector, in the order
// [THRUST, RIGHT, LEFT, SHOOT].
const Outputs = 4

// Gene is a directed, weighted, optionally disabled edge between two
// neurons, tagged with the historical marking (innovation number) used to
// align genes across genomes during crossover and compatibility distance.
type Gene struct {
	Into       NeuronId
	Out        NeuronId
	Weight     float32
	Enabled    bool
	Innovation uint32
}

// Copy returns an independent copy of the gene. Genes are small value-like
// records; the only reason this exists as a method rather than relying on
// plain assignment is to keep gene-copying call sites self-documenting
// about intent (see Crossover).
func (g Gene) Copy() Gene {
	return g
}

// SameEndpoints reports whether two genes connect the same ordered pair of
// neurons, the uniqueness key enforced within a single genome's gene list.
func (g Gene) SameEndpoints(other Gene) bool {
	return g.Into == other.Into && g.Out == other.Out
}
