package neat

// Species is a cohort of genomes whose pairwise compatibility distance
// falls below DeltaThreshold. Species compete for reproductive share via
// fitness sharing (averaged global rank), not raw fitness, so that one
// large species cannot dominate the population.
type Species struct {
	Genomes        []*Genome
	TopFitness     int32
	Staleness      uint32
	AverageFitness int32
}

// Disjoint returns the fraction of innovations present in exactly one of
// the two gene lists, relative to the larger list's length. The source
// types this as int; the spec flags that as a likely bug, so this returns
// float32.
func Disjoint(g1, g2 *Genome) float32 {
	if len(g1.Genes) == 0 && len(g2.Genes) == 0 {
		return 0
	}

	innovations2 := make(map[uint32]struct{}, len(g2.Genes))
	for _, g := range g2.Genes {
		innovations2[g.Innovation] = struct{}{}
	}
	innovations1 := make(map[uint32]struct{}, len(g1.Genes))
	for _, g := range g1.Genes {
		innovations1[g.Innovation] = struct{}{}
	}

	var disjoint int
	for inn := range innovations1 {
		if _, ok := innovations2[inn]; !ok {
			disjoint++
		}
	}
	for inn := range innovations2 {
		if _, ok := innovations1[inn]; !ok {
			disjoint++
		}
	}

	n := len(g1.Genes)
	if len(g2.Genes) > n {
		n = len(g2.Genes)
	}
	if n == 0 {
		return 0
	}
	return float32(disjoint) / float32(n)
}

// Weights returns the mean absolute weight difference across innovations
// present in both gene lists, 0 if none coincide.
func Weights(g1, g2 *Genome) float32 {
	byInnovation := make(map[uint32]float32, len(g2.Genes))
	for _, g := range g2.Genes {
		byInnovation[g.Innovation] = g.Weight
	}

	var sum float32
	var count int
	for _, g := range g1.Genes {
		if w, ok := byInnovation[g.Innovation]; ok {
			diff := g.Weight - w
			if diff < 0 {
				diff = -diff
			}
			sum += diff
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float32(count)
}

// SameSpecies reports whether two genomes are compatible under the fixed
// compatibility distance formula. Reflexive by construction: Disjoint and
// Weights both return 0 when g1 == g2, so SameSpecies(g, g) is always true
// for a non-nil g.
func SameSpecies(cfg *Config, g1, g2 *Genome) bool {
	dd := cfg.DeltaDisjoint * Disjoint(g1, g2)
	dw := cfg.DeltaWeights * Weights(g1, g2)
	return dd+dw < cfg.DeltaThreshold
}

// Crossover combines two genomes into a child. It first relabels g1 and g2
// so g1 is the fitter parent, whatever the argument order; for
// each gene in g1 with a matching, enabled counterpart in g2, a fair coin
// decides whether the child inherits g2's copy.
func Crossover(pool *Pool, g1, g2 *Genome) *Genome {
	if g1.Fitness < g2.Fitness {
		g1, g2 = g2, g1
	}

	byInnovation := make(map[uint32]Gene, len(g2.Genes))
	for _, g := range g2.Genes {
		byInnovation[g.Innovation] = g
	}

	child := &Genome{
		MutationRates: make(map[string]float32, len(g1.MutationRates)),
	}
	for k, v := range g1.MutationRates {
		child.MutationRates[k] = v
	}

	for _, a := range g1.Genes {
		if b, ok := byInnovation[a.Innovation]; ok && b.Enabled && pool.Rng.F32() < 0.5 {
			child.Genes = append(child.Genes, b.Copy())
		} else {
			child.Genes = append(child.Genes, a.Copy())
		}
	}

	child.MaxNeuron = g1.MaxNeuron
	if g2.MaxNeuron > child.MaxNeuron {
		child.MaxNeuron = g2.MaxNeuron
	}
	return child
}

// CalculateAverageFitness sets AverageFitness to the mean GlobalRank across
// the species's genomes — normalized rank, not raw fitness, since fitness
// sharing operates on rank.
func (s *Species) CalculateAverageFitness() {
	if len(s.Genomes) == 0 {
		s.AverageFitness = 0
		return
	}
	var sum int64
	for _, g := range s.Genomes {
		sum += int64(g.GlobalRank)
	}
	s.AverageFitness = int32(sum / int64(len(s.Genomes)))
}

// BreedChild produces one new genome from the species: a crossover of two
// members with probability CrossoverChance, otherwise a clone of one
// member, always followed by a Mutate pass. Calling this on an empty
// species is a pool-bookkeeping bug, not a recoverable condition — it
// panics rather than returning an error, matching the source's assertion.
func (s *Species) BreedChild(pool *Pool) *Genome {
	if len(s.Genomes) == 0 {
		panic(ErrEmptyPopulation)
	}

	var child *Genome
	if pool.Rng.F32() < pool.Config.CrossoverChance {
		g1 := s.Genomes[pool.Rng.IntN(len(s.Genomes))]
		g2 := s.Genomes[pool.Rng.IntN(len(s.Genomes))]
		child = Crossover(pool, g1, g2)
	} else {
		g := s.Genomes[pool.Rng.IntN(len(s.Genomes))]
		child = g.Copy()
	}

	child.Mutate(pool)
	return child
}
