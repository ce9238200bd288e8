package neat

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Pool owns the whole population: every Species, the monotonic innovation
// counter, and the traversal cursor the Driver advances frame by frame.
// Species and Genome carry no back-pointer to their owning Pool (see
// the design notes in DESIGN.md) — anything needing the rng
// or the innovation counter takes *Pool explicitly.
type Pool struct {
	Species []*Species

	Innovation uint32
	Generation uint32
	MaxFitness int32
	InputSize  uint32

	CurrentSpecies int
	CurrentGenome  int
	CurrentFrame   int

	Rng    *Rng
	Config *Config

	// RunID tags every snapshot this pool writes so that backup files from
	// distinct runs, once collected together, are never confused with one
	// another. Pure metadata; no invariant depends on it.
	RunID string
}

// NewPool builds an empty pool. Innovation starts at Outputs, mirroring the
// source's reservation of innovations [0, Outputs) for the fixed output
// neurons before any structural mutation runs.
func NewPool(cfg *Config, rng *Rng, inputSize uint32) *Pool {
	return &Pool{
		Innovation: Outputs,
		InputSize:  inputSize,
		Rng:        rng,
		Config:     cfg,
		RunID:      uuid.NewString(),
	}
}

// NewInnovation allocates and returns the next innovation number. Allocation
// is strictly monotonic and per-event: applying the same structural
// mutation twice never collapses to the same innovation number.
func (p *Pool) NewInnovation() uint32 {
	p.Innovation++
	return p.Innovation
}

// Init seeds the population: PopSize basic genomes, each with MaxNeuron set
// to InputSize and mutated once, then speciated. This mirrors the source's
// initializeRun/basicGenome behavior.
func (p *Pool) Init() {
	for i := 0; i < p.Config.PopSize; i++ {
		g := NewGenome(p.Config)
		g.MaxNeuron = NeuronId(p.InputSize)
		g.Mutate(p)
		p.AddToSpecies(g)
	}
	fmt.Printf("Info: initialized pool with %s genomes across %d species\n",
		humanize.Comma(int64(p.Config.PopSize)), len(p.Species))

	if err := writeTemp(p); err != nil {
		fmt.Printf("Warning: failed to write temp.json: %v\n", err)
	}
}

// AddToSpecies places child into the first species whose representative
// (Genomes[0]) is compatible with it, or starts a new species if none is.
// Used both during Init and during re-speciation at the end of
// NewGeneration.
func (p *Pool) AddToSpecies(child *Genome) {
	for _, s := range p.Species {
		if len(s.Genomes) > 0 && SameSpecies(p.Config, child, s.Genomes[0]) {
			s.Genomes = append(s.Genomes, child)
			return
		}
	}
	p.Species = append(p.Species, &Species{Genomes: []*Genome{child}})
}

// RankGlobally flattens every genome across every species, sorts ascending
// by fitness, and assigns GlobalRank = its index in that order — the
// fitness-sharing substrate Species.CalculateAverageFitness reduces over.
func (p *Pool) RankGlobally() {
	var all []*Genome
	for _, s := range p.Species {
		all = append(all, s.Genomes...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Fitness < all[j].Fitness })
	for i, g := range all {
		g.GlobalRank = int32(i)
	}
}

// TotalAverageFitness returns the sum of every species's AverageFitness,
// the denominator used to allot breeding counts proportionally.
func (p *Pool) TotalAverageFitness() int32 {
	var total int32
	for _, s := range p.Species {
		total += s.AverageFitness
	}
	return total
}

// CullSpecies trims each species's genome list, sorted fitness-descending.
// With cutToOne it keeps just the champion (step 8); otherwise it keeps the
// ceiling of half (step 1).
func (p *Pool) CullSpecies(cutToOne bool) {
	for _, s := range p.Species {
		sort.Slice(s.Genomes, func(i, j int) bool { return s.Genomes[i].Fitness > s.Genomes[j].Fitness })

		remaining := (len(s.Genomes) + 1) / 2
		if cutToOne || remaining < 1 {
			remaining = 1
		}
		if remaining < len(s.Genomes) {
			s.Genomes = s.Genomes[:remaining]
		}
	}
}

// RemoveStaleSpecies updates each species's staleness tracker and drops any
// species stuck at StaleSpecies-many stagnant generations, unless it holds
// the incumbent best fitness seen so far (always protected).
func (p *Pool) RemoveStaleSpecies() {
	var survivors []*Species
	for _, s := range p.Species {
		best := s.Genomes[0].Fitness
		for _, g := range s.Genomes {
			if g.Fitness > best {
				best = g.Fitness
			}
		}

		if best > s.TopFitness {
			s.TopFitness = best
			s.Staleness = 0
		} else {
			s.Staleness++
		}

		if s.Staleness < uint32(p.Config.StaleSpecies) || s.TopFitness >= p.MaxFitness {
			survivors = append(survivors, s)
		}
	}
	p.Species = survivors
}

// RemoveWeakSpecies drops every species whose proportional breeding
// allotment, floor(avg/total * PopSize), rounds down to less than one
// child.
func (p *Pool) RemoveWeakSpecies() {
	total := p.TotalAverageFitness()
	if total == 0 {
		return
	}

	var survivors []*Species
	for _, s := range p.Species {
		breed := int(float64(s.AverageFitness) / float64(total) * float64(p.Config.PopSize))
		if breed >= 1 {
			survivors = append(survivors, s)
		}
	}
	p.Species = survivors
}

// NewGeneration runs the full 11-step reproduction cycle: cull, rank,
// prune stale and weak species, breed proportionally, cull to champion,
// top up to exactly PopSize, re-speciate the children, and advance the
// generation counter. It writes backup<generation>.json on completion.
func (p *Pool) NewGeneration() error {
	p.CullSpecies(false) // 1
	p.RankGlobally()     // 2
	p.RemoveStaleSpecies() // 3
	p.RankGlobally()     // 4

	for _, s := range p.Species { // 5
		s.CalculateAverageFitness()
	}
	p.RemoveWeakSpecies() // 6

	total := p.TotalAverageFitness()
	var children []*Genome
	for _, s := range p.Species { // 7
		if total == 0 {
			continue
		}
		breed := int(float64(s.AverageFitness)/float64(total)*float64(p.Config.PopSize)) - 1
		for i := 0; i < breed; i++ {
			children = append(children, s.BreedChild(p))
		}
	}

	p.CullSpecies(true) // 8

	for len(children)+len(p.Species) < p.Config.PopSize { // 9
		s := p.Species[p.Rng.IntN(len(p.Species))]
		children = append(children, s.BreedChild(p))
	}

	for _, child := range children { // 10; each species already holds just its champion after step 8
		p.AddToSpecies(child)
	}

	p.Generation++ // 11
	p.logGenerationStats()
	return WriteBackup(p)
}

// logGenerationStats reports the species count and the fitness distribution
// (mean and stdev via gonum/stat) — additive observability, never load-bearing for
// any invariant or reproduction-count arithmetic.
func (p *Pool) logGenerationStats() {
	var fitnesses []float64
	for _, s := range p.Species {
		for _, g := range s.Genomes {
			fitnesses = append(fitnesses, float64(g.Fitness))
		}
	}
	if len(fitnesses) == 0 {
		return
	}
	mean, stdev := stat.MeanStdDev(fitnesses, nil)
	fmt.Printf("Info: generation %s — %d species, %s genomes, fitness mean=%.2f stdev=%.2f, max=%s\n",
		humanize.Comma(int64(p.Generation)), len(p.Species), humanize.Comma(int64(len(fitnesses))),
		mean, stdev, humanize.Comma(int64(p.MaxFitness)))
}
