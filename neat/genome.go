package neat

import "sort"

// Genome is an ordered gene list plus the per-genome mutation-rate map that
// drives its own future variation. The phenotype (nn.Network) is derived
// from Genes on demand, once per episode, and is never itself persisted.
type Genome struct {
	Genes []Gene

	// Fitness is 0 until measured. A genome whose raw fitness legitimately
	// computes to 0 is coerced to -1 by the Driver at episode end, so 0
	// unambiguously means "not yet evaluated this generation."
	Fitness         int32
	AdjustedFitness int32
	GlobalRank      int32
	MaxNeuron       NeuronId
	MutationRates   map[string]float32
}

// biasNeuron is the input neuron force_bias routes a new link from. The
// error taxonomy's NoEligibleNeuron fallback ("return the bias input id
// (0)") pins bias to input index 0.
const biasNeuron NeuronId = 0

// mutationRateKeys fixes the iteration order over a Genome's MutationRates
// map. The original iterated a sorted-key Map<String, float>; Go map
// iteration order is randomized per process, so Mutate's rate-jitter loop
// must walk this fixed slice instead of ranging over the map directly, or
// the same seed would jitter rates in a different order on every run.
var mutationRateKeys = []string{"bias", "connections", "disable", "enable", "link", "node", "step"}

// NewGenome builds an empty genome seeded with cfg's initial mutation
// rates. Callers that want an initial-population member still need to set
// MaxNeuron and call Mutate once, per Pool.Init.
func NewGenome(cfg *Config) *Genome {
	return &Genome{
		MutationRates: map[string]float32{
			"connections": cfg.Connections,
			"link":        cfg.Link,
			"bias":        cfg.Bias,
			"node":        cfg.Node,
			"enable":      cfg.Enable,
			"disable":     cfg.Disable,
			"step":        cfg.StepSize,
		},
	}
}

// Copy returns an independent clone of the genome: a fresh gene slice and a
// fresh mutation-rate map. The source's Genome::copy pushed
// genome.genes.copy(genes) inside a loop, which could duplicate genes
// |n| times over; this is a straightforward clone instead, per the
// documented fix.
func (g *Genome) Copy() *Genome {
	genes := make([]Gene, len(g.Genes))
	copy(genes, g.Genes)
	rates := make(map[string]float32, len(g.MutationRates))
	for k, v := range g.MutationRates {
		rates[k] = v
	}
	return &Genome{
		Genes:     genes,
		MaxNeuron: g.MaxNeuron,
		MutationRates: rates,
	}
}

// ContainsLink reports whether the genome already has a gene connecting the
// same ordered pair of neurons as l.
func (g *Genome) ContainsLink(l Gene) bool {
	for _, gene := range g.Genes {
		if gene.SameEndpoints(l) {
			return true
		}
	}
	return false
}

// sortedNeuronIds returns the distinct ids in the given set in ascending
// order. random_neuron must draw from a sorted slice, not a map, so that
// the draw is reproducible given the same Rng state — Go map iteration
// order is randomized per process and would otherwise break determinism.
func sortedNeuronIds(set map[NeuronId]struct{}) []NeuronId {
	ids := make([]NeuronId, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RandomNeuron returns a uniformly chosen neuron id from the candidate set:
// inputs (unless nonInput), every output slot, and every into/out endpoint
// referenced by a gene (restricted to non-input ids when nonInput is set).
// An empty candidate set returns the bias input id, per the NoEligibleNeuron
// convention.
func (g *Genome) RandomNeuron(pool *Pool, nonInput bool) NeuronId {
	seen := make(map[NeuronId]struct{})
	if !nonInput {
		for i := NeuronId(0); i < NeuronId(pool.InputSize); i++ {
			seen[i] = struct{}{}
		}
	}
	for o := NeuronId(0); o < Outputs; o++ {
		seen[MaxNodes+o] = struct{}{}
	}
	for _, gene := range g.Genes {
		if !nonInput || gene.Into >= NeuronId(pool.InputSize) {
			seen[gene.Into] = struct{}{}
		}
		if !nonInput || gene.Out >= NeuronId(pool.InputSize) {
			seen[gene.Out] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return biasNeuron
	}
	ids := sortedNeuronIds(seen)
	return ids[pool.Rng.IntN(len(ids))]
}

// PointMutate perturbs or randomizes every gene's weight.
func (g *Genome) PointMutate(pool *Pool) {
	step := g.MutationRates["step"]
	for i := range g.Genes {
		if pool.Rng.F32() < PerturbChance {
			g.Genes[i].Weight += pool.Rng.F32()*2*step - step
		} else {
			g.Genes[i].Weight = pool.Rng.F32()*4 - 2
		}
	}
}

// LinkMutate tries to add a single new edge between two random neurons. It
// aborts silently (a no-op, not an error) whenever both candidates are
// inputs or the resulting pair already exists — both are expected, frequent
// outcomes of the random draw, not failures.
func (g *Genome) LinkMutate(pool *Pool, forceBias bool) {
	n1 := g.RandomNeuron(pool, false)
	n2 := g.RandomNeuron(pool, true)

	if n1 < NeuronId(pool.InputSize) && n2 < NeuronId(pool.InputSize) {
		return
	}
	if n2 < NeuronId(pool.InputSize) {
		n1, n2 = n2, n1
	}
	if forceBias {
		n1 = biasNeuron
	}

	candidate := Gene{Into: n1, Out: n2, Weight: pool.Rng.F32()*4 - 2, Enabled: true}
	if g.ContainsLink(candidate) {
		return
	}
	candidate.Innovation = pool.NewInnovation()
	g.Genes = append(g.Genes, candidate)
}

// NodeMutate splits a randomly chosen enabled gene in two, inserting a
// fresh hidden neuron between its endpoints. The split gene is disabled,
// not removed, so its innovation number and weight history remain part of
// the genome's lineage.
func (g *Genome) NodeMutate(pool *Pool) {
	if len(g.Genes) == 0 {
		return
	}

	var enabled []int
	for i, gene := range g.Genes {
		if gene.Enabled {
			enabled = append(enabled, i)
		}
	}
	if len(enabled) == 0 {
		return
	}

	g.MaxNeuron++
	idx := enabled[pool.Rng.IntN(len(enabled))]
	split := g.Genes[idx]
	g.Genes[idx].Enabled = false

	into := Gene{
		Into:       split.Into,
		Out:        g.MaxNeuron,
		Weight:     1.0,
		Enabled:    true,
		Innovation: pool.NewInnovation(),
	}
	out := Gene{
		Into:       g.MaxNeuron,
		Out:        split.Out,
		Weight:     split.Weight,
		Enabled:    true,
		Innovation: pool.NewInnovation(),
	}
	g.Genes = append(g.Genes, into, out)
}

// EnableDisableMutate flips one gene whose Enabled state differs from
// enable, chosen uniformly at random among the candidates. A no-op if no
// gene qualifies.
func (g *Genome) EnableDisableMutate(pool *Pool, enable bool) {
	var candidates []int
	for i, gene := range g.Genes {
		if gene.Enabled != enable {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	idx := candidates[pool.Rng.IntN(len(candidates))]
	g.Genes[idx].Enabled = enable
}

// Mutate jitters every mutation rate and then applies the five operators a
// probabilistic number of times each, following the original's
// "decrement p by 1 until p <= 0" loop: an operator with rate p > 1 always
// fires floor(p) times and fires one more time with probability frac(p).
func (g *Genome) Mutate(pool *Pool) {
	for _, k := range mutationRateKeys {
		v := g.MutationRates[k]
		if pool.Rng.F32() < 0.5 {
			g.MutationRates[k] = 0.95 * v
		} else {
			g.MutationRates[k] = 1.05263 * v
		}
	}

	if pool.Rng.F32() < g.MutationRates["connections"] {
		g.PointMutate(pool)
	}

	for p := g.MutationRates["link"]; p > 0; p-- {
		if pool.Rng.F32() < p {
			g.LinkMutate(pool, false)
		}
	}
	for p := g.MutationRates["bias"]; p > 0; p-- {
		if pool.Rng.F32() < p {
			g.LinkMutate(pool, true)
		}
	}
	for p := g.MutationRates["node"]; p > 0; p-- {
		if pool.Rng.F32() < p {
			g.NodeMutate(pool)
		}
	}
	for p := g.MutationRates["enable"]; p > 0; p-- {
		if pool.Rng.F32() < p {
			g.EnableDisableMutate(pool, true)
		}
	}
	for p := g.MutationRates["disable"]; p > 0; p-- {
		if pool.Rng.F32() < p {
			g.EnableDisableMutate(pool, false)
		}
	}
}

// SortGenes orders genes ascending by Out, the ordering nn.Build relies on.
// Snapshots write genes in whatever order they are stored.
func (g *Genome) SortGenes() {
	sort.Slice(g.Genes, func(i, j int) bool { return g.Genes[i].Out < g.Genes[j].Out })
}
