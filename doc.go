// Package neat provides a Go implementation of the NeuroEvolution of Augmenting Topologies (NEAT) algorithm,
// specialized for evolving controllers for the neatroids arcade shooter.
//
// Genomes here are a flat, ordered list of weighted edges tagged with a historical marking
// (innovation number), following the original Stanley & Miikkulainen formulation and its
// well-known single-header C++ ports, rather than the node/connection gene maps used by
// neat-python. The phenotype is a single-pass feed-forward network: evaluation walks the
// neuron container exactly once in a pinned traversal order rather than iterating to a fixpoint.
//
// Basic usage:
//
//	cfg := neat.DefaultConfig()
//	pool := neat.NewPool(cfg, neat.NewRng(42), inputSize)
//	pool.Init()
//
//	d, err := driver.NewDriver(pool, adapter) // adapter implements driver.GameAdapter
//	if err != nil {
//		log.Fatalf("start driver: %v", err)
//	}
//	for pool.Generation < targetGeneration {
//		if err := d.Process(); err != nil {
//			log.Fatalf("process frame: %v", err)
//		}
//	}
//
// Process drives the frame loop itself: it rebuilds the current genome's
// phenotype via nn.Build, evaluates it against the adapter's sensors every
// fifth frame, and advances the pool's (species, genome) cursor — running a
// new generation automatically — once an episode's timeout expires.
package neat
