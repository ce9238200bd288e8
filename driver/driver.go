// Package driver runs the per-frame evaluation loop that ties a Pool's
// population to a live game: selecting the current genome, gathering
// sensors, applying controls, measuring episode fitness, and advancing the
// population cursor.
package driver

import (
	"fmt"

	"github.com/fenwick-ai/neatroids/neat"
	"github.com/fenwick-ai/neatroids/neat/nn"
)

// Output slot indices, fixed by the sensor/actuator protocol.
const (
	Thrust = 0
	Right  = 1
	Left   = 2
	Shoot  = 3
)

// GameAdapter is the external collaborator contract. The core never
// inspects game state directly — only through this interface's opaque
// sensor vector and outcome counters.
type GameAdapter interface {
	// Reset terminates the current episode (if any) and starts a fresh one.
	Reset()
	// Sensors returns the current frame's sensor vector, length
	// matching the Driver's Pool.InputSize.
	Sensors() []int32
	// ApplyControls pushes one frame's button state, in
	// [Thrust, Right, Left, Shoot] order, to the game.
	ApplyControls(outputs []bool)
	// PlayerMoved reports whether the player entity moved this frame.
	PlayerMoved() bool
	// PlayerTicks returns the player's elapsed tick counter.
	PlayerTicks() int
	// Score, Wins, and Losses feed directly into the fitness formula.
	Score() int32
	Wins() int32
	Losses() int32
}

// Driver owns the frame loop and the episode-local bookkeeping
// (FramesSurvived, Timeout) that the fitness formula depends on. The
// Pool's cursor (CurrentSpecies, CurrentGenome, CurrentFrame) is the
// authoritative position; Driver only interprets it.
type Driver struct {
	Pool    *neat.Pool
	Adapter GameAdapter
	network *nn.Network

	FramesSurvived int
	Timeout        int
}

// NewDriver wires a Pool to a GameAdapter and starts the first episode,
// mirroring AI::init calling pool->init() then initializeRun() in
// sequence. pool must already have Init called on it.
func NewDriver(pool *neat.Pool, adapter GameAdapter) (*Driver, error) {
	d := &Driver{Pool: pool, Adapter: adapter}
	if err := d.initializeRun(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) currentGenome() *neat.Genome {
	species := d.Pool.Species[d.Pool.CurrentSpecies]
	return species.Genomes[d.Pool.CurrentGenome]
}

// initializeRun resets the game, the episode counters, and rebuilds the
// phenotype for the current genome, then evaluates the first frame.
func (d *Driver) initializeRun() error {
	d.Adapter.Reset()
	d.FramesSurvived = 0
	d.Timeout = neat.TimeoutConstant
	d.Pool.CurrentFrame = 0

	net, err := nn.Build(d.currentGenome(), d.Pool.InputSize)
	if err != nil {
		return fmt.Errorf("build network: %w", err)
	}
	d.network = net
	return d.evaluateCurrent()
}

// resolveControlConflict forces both LEFT and RIGHT false whenever a
// network yields both at once — the only cross-output constraint the
// actuator protocol imposes; THRUST and SHOOT are always independent.
func resolveControlConflict(outputs []bool) []bool {
	if len(outputs) > Left && outputs[Right] && outputs[Left] {
		outputs[Right] = false
		outputs[Left] = false
	}
	return outputs
}

// evaluateCurrent runs one forward pass through the current genome's
// phenotype and applies the (conflict-resolved) result to the game. An
// arity-mismatched sensor vector — which should never happen once Sensors
// is wired correctly — degrades to all-false controls rather than
// propagating the error into the frame loop.
func (d *Driver) evaluateCurrent() error {
	inputs := d.Adapter.Sensors()
	outputs, err := d.network.Evaluate(inputs)
	if err != nil {
		d.Adapter.ApplyControls(make([]bool, neat.Outputs))
		return nil
	}
	d.Adapter.ApplyControls(resolveControlConflict(outputs))
	return nil
}

func (d *Driver) fitnessAlreadyMeasured() bool {
	return d.currentGenome().Fitness != 0
}

// nextGenome advances to the next genome in (species, genome) order,
// running a new generation whenever the cursor wraps past the last
// species.
func (d *Driver) nextGenome() error {
	d.Pool.CurrentGenome++
	if d.Pool.CurrentGenome >= len(d.Pool.Species[d.Pool.CurrentSpecies].Genomes) {
		d.Pool.CurrentGenome = 0
		d.Pool.CurrentSpecies++
		if d.Pool.CurrentSpecies >= len(d.Pool.Species) {
			if err := d.Pool.NewGeneration(); err != nil {
				return fmt.Errorf("new generation: %w", err)
			}
			d.Pool.CurrentSpecies = 0
		}
	}
	return nil
}

// Process advances exactly one frame: it evaluates the network every 5th
// frame, refreshes the survival clock when the player has made fresh
// progress, and — once the episode's timeout budget is exhausted — scores
// the episode, advances the cursor past every already-measured genome, and
// starts the next run.
func (d *Driver) Process() error {
	if d.Pool.CurrentFrame%5 == 0 {
		if err := d.evaluateCurrent(); err != nil {
			return err
		}
	}

	if d.Adapter.PlayerMoved() && d.Adapter.PlayerTicks() > d.FramesSurvived {
		d.FramesSurvived = d.Adapter.PlayerTicks()
		d.Timeout = neat.TimeoutConstant
	}
	d.Timeout--

	timeoutBonus := d.Pool.CurrentFrame / 4
	if d.Timeout+timeoutBonus <= 0 {
		fitness := int32(d.FramesSurvived) - int32(d.Pool.CurrentFrame/2)
		fitness += d.Adapter.Score() + d.Adapter.Wins()*1000
		fitness -= d.Adapter.Losses() * 100
		// A legitimately-zero episode is indistinguishable from "never
		// measured" unless coerced away from zero; applied exactly once,
		// here, at episode end.
		if fitness == 0 {
			fitness = -1
		}

		genome := d.currentGenome()
		genome.Fitness = fitness
		if fitness > d.Pool.MaxFitness {
			d.Pool.MaxFitness = fitness
		}

		d.Pool.CurrentSpecies = 0
		d.Pool.CurrentGenome = 0
		for d.fitnessAlreadyMeasured() {
			if err := d.nextGenome(); err != nil {
				return err
			}
		}
		if err := d.initializeRun(); err != nil {
			return err
		}
	}

	d.Pool.CurrentFrame++
	return nil
}

// PlayTop scans every genome for the maximum fitness, relocates the
// cursor there, and starts a standard episode against it — used to
// showcase the run's best performer outside the training loop.
func (d *Driver) PlayTop() error {
	var maxFitness int32
	maxSpecies, maxGenome := 0, 0
	for s, species := range d.Pool.Species {
		for g, genome := range species.Genomes {
			if genome.Fitness > maxFitness {
				maxFitness = genome.Fitness
				maxSpecies, maxGenome = s, g
			}
		}
	}

	d.Pool.CurrentSpecies = maxSpecies
	d.Pool.CurrentGenome = maxGenome
	d.Pool.MaxFitness = maxFitness
	if err := d.initializeRun(); err != nil {
		return err
	}
	d.Pool.CurrentFrame++
	return nil
}

// LoadDriver reads a pool snapshot from path, replays the
// fitness-already-measured skip loop exactly as the source's load does
// (not merely resetting cursors to (0,0,0)), and starts the resumed
// genome's episode.
func LoadDriver(path string, cfg *neat.Config, rng *neat.Rng, inputSize uint32, adapter GameAdapter) (*Driver, error) {
	pool, err := neat.LoadPool(path, cfg, rng, inputSize)
	if err != nil {
		return nil, err
	}
	d := &Driver{Pool: pool, Adapter: adapter}

	for d.fitnessAlreadyMeasured() {
		if err := d.nextGenome(); err != nil {
			return nil, err
		}
	}
	if err := d.initializeRun(); err != nil {
		return nil, err
	}
	d.Pool.CurrentFrame++
	return d, nil
}
