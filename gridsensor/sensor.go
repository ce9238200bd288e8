// Package gridsensor is a reference implementation of the box-radius
// tiling the original game used to build a driver.Driver's sensor vector. It
// is collaborator-side helper code, not part of the core's evaluation
// contract — the core consumes a plain []int32 and never imports this
// package.
package gridsensor

// Team reports which side an entity belongs to, for the purpose of
// deciding whether the cell it occupies reads +1 or -1.
type Team int

const (
	TeamAlly Team = iota
	TeamHostile
)

// Entity is the minimal shape gridsensor needs from a game object: a
// position, a collision radius, and a team. The game's own entity
// hierarchy (Player/Asteroid/Alien/Bullet/...) stays entirely outside the
// core; this is the only surface gridsensor asks integrators to satisfy.
type Entity struct {
	X, Y   float64
	Radius float64
	Team   Team
}

// GridSensor tiles a board of boardW x boardH cells of BoxRadius units
// centered on the origin, replicating AI::getInputs exactly: each cell
// reports the team of the nearest overlapping entity (+1 ally, -1
// hostile), or 0 if none overlaps, using axis-aligned half-width
// comparison with an 8-unit slack. "Nearest" is by distance from the
// entity's center to the cell's corner point (dx, dy).
type GridSensor struct {
	boardW, boardH int
	boxRadius      int
}

// NewGridSensor builds a sensor for a boardW x boardH grid of cells, each
// boxRadius units wide.
func NewGridSensor(boardW, boardH, boxRadius int) *GridSensor {
	return &GridSensor{boardW: boardW, boardH: boardH, boxRadius: boxRadius}
}

// InputSize is the sensor vector length this grid produces: boardW *
// boardH.
func (s *GridSensor) InputSize() int {
	return s.boardW * s.boardH
}

// Sample tiles the board and returns one int32 per cell, in row-major
// order (dy outer, dx inner), matching the source's nested loop order
// exactly.
func (s *GridSensor) Sample(entities []Entity) []int32 {
	startY := (-s.boardH / 2) * s.boxRadius
	startX := (-s.boardW / 2) * s.boxRadius
	endY := startY + s.boardH*s.boxRadius
	endX := startX + s.boardW*s.boxRadius

	inputs := make([]int32, 0, s.InputSize())
	for dy := startY; dy < endY; dy += s.boxRadius {
		for dx := startX; dx < endX; dx += s.boxRadius {
			var cell int32
			var bestDist float64
			found := false
			for _, e := range entities {
				distX := absFloat(e.X-float64(dx)) - e.Radius
				distY := absFloat(e.Y-float64(dy)) - e.Radius
				if distX <= 8 && distY <= 8 {
					offX, offY := e.X-float64(dx), e.Y-float64(dy)
					d := offX*offX + offY*offY
					if found && d >= bestDist {
						continue
					}
					found, bestDist = true, d
					if e.Team == TeamAlly {
						cell = 1
					} else {
						cell = -1
					}
				}
			}
			inputs = append(inputs, cell)
		}
	}
	return inputs
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
