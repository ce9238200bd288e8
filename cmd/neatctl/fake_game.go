package main

import "math/rand"

// fakeGame is a minimal in-memory stand-in for the real arcade game,
// letting neatctl exercise the full Driver loop without a window or any
// rendering. A real integration only needs to satisfy driver.GameAdapter
// the same way this does.
type fakeGame struct {
	inputSize uint32
	rng       *rand.Rand

	ticks  int
	moved  bool
	score  int32
	wins   int32
	losses int32
}

func newFakeGame(inputSize uint32) *fakeGame {
	return &fakeGame{
		inputSize: inputSize,
		rng:       rand.New(rand.NewSource(1)),
	}
}

func (g *fakeGame) Reset() {
	g.ticks = 0
	g.moved = false
	g.score = 0
	g.wins = 0
	g.losses = 0
}

func (g *fakeGame) Sensors() []int32 {
	inputs := make([]int32, g.inputSize)
	for i := range inputs {
		switch g.rng.Intn(3) {
		case 0:
			inputs[i] = 1
		case 1:
			inputs[i] = -1
		default:
			inputs[i] = 0
		}
	}
	return inputs
}

func (g *fakeGame) ApplyControls(outputs []bool) {
	g.ticks++
	if len(outputs) > 0 && outputs[0] { // THRUST advances the player
		g.moved = true
		g.score++
	} else {
		g.moved = false
	}
	if len(outputs) > 3 && outputs[3] && g.rng.Intn(10) == 0 { // SHOOT occasionally scores
		g.wins++
	}
}

func (g *fakeGame) PlayerMoved() bool  { return g.moved }
func (g *fakeGame) PlayerTicks() int   { return g.ticks }
func (g *fakeGame) Score() int32       { return g.score }
func (g *fakeGame) Wins() int32        { return g.wins }
func (g *fakeGame) Losses() int32      { return g.losses }
