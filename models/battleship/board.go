package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

// Adjacency decides which neighbours of a new ship must be free.
type Adjacency uint8

const (
	// Ships may touch diagonally but never share an edge.
	AdjacencyEdge Adjacency = iota

	// Ships may not touch at all, not even diagonally.
	AdjacencyStrict
)

const (
	maxPlacementTries = 4000
	maxFleetRestarts  = 50
)

// Board owns one side's fleet and the record of shots fired at it.
type Board struct {
	adjacency Adjacency
	ships     []*Ship

	// index+1 of the ship occupying each cell, 0 for water
	occupancy [GridSize][GridSize]int
	shots     Grid
}

func NewBoard(adjacency Adjacency) *Board {
	return &Board{
		adjacency: adjacency,
		ships:     make([]*Ship, 0, ShipsPerFleet),
	}
}

// ShipCells computes the cells a ship would occupy from its anchor.
// Horizontal ships advance the column, vertical ones advance the row.
func ShipCells(anchor Coordinates, size int, horizontal bool) []Coordinates {
	cells := make([]Coordinates, size)
	for i := 0; i < size; i++ {
		if horizontal {
			cells[i] = NewCoordinates(anchor.Row, anchor.Col+i)
		} else {
			cells[i] = NewCoordinates(anchor.Row+i, anchor.Col)
		}
	}
	return cells
}

// ValidatePlacement checks a candidate ship without mutating the board.
// Bounds are checked for every cell first, then overlap, then adjacency.
func (b *Board) ValidatePlacement(anchor Coordinates, size int, horizontal bool) ([]Coordinates, error) {
	cells := ShipCells(anchor, size, horizontal)

	for _, c := range cells {
		if !c.InBounds() {
			return nil, cerr.ErrOutOfBounds(c.Row, c.Col)
		}
	}

	for _, c := range cells {
		if b.occupied(c) {
			return nil, cerr.ErrOverlap(c.Row, c.Col)
		}
	}

	for _, c := range cells {
		neighbours := c.neighbours4()
		if b.adjacency == AdjacencyStrict {
			neighbours = c.neighbours8()
		}

		for _, nb := range neighbours {
			if b.occupied(nb) {
				return nil, cerr.ErrAdjacentShip(c.Row, c.Col)
			}
		}
	}

	return cells, nil
}

func (b *Board) PlaceShip(anchor Coordinates, size int, horizontal bool) (*Ship, error) {
	cells, err := b.ValidatePlacement(anchor, size, horizontal)
	if err != nil {
		return nil, err
	}

	ship := NewShip(cells)
	b.ships = append(b.ships, ship)
	for _, c := range cells {
		b.occupancy[c.Row][c.Col] = len(b.ships)
	}

	return ship, nil
}

// placeRandomly places every size in order by drawing random anchors and
// orientations until the validator accepts one.
func (b *Board) placeRandomly(sizes []int, rng *rand.Rand) error {
	for _, size := range sizes {
		placed := false

		for try := 0; try < maxPlacementTries; try++ {
			horizontal := rng.Intn(2) == 0

			var anchor Coordinates
			if horizontal {
				anchor = NewCoordinates(rng.Intn(GridSize), rng.Intn(GridSize-size+1))
			} else {
				anchor = NewCoordinates(rng.Intn(GridSize-size+1), rng.Intn(GridSize))
			}

			if _, err := b.PlaceShip(anchor, size, horizontal); err == nil {
				placed = true
				break
			}
		}

		if !placed {
			return cerr.ErrFleetPlacementFailed(maxPlacementTries)
		}
	}
	return nil
}

// NewRandomFleetBoard returns a board holding a complete randomly placed
// fleet. A pass that gets stuck starts over on an empty board.
func NewRandomFleetBoard(adjacency Adjacency, rng *rand.Rand) (*Board, error) {
	for restart := 0; restart < maxFleetRestarts; restart++ {
		board := NewBoard(adjacency)
		if err := board.placeRandomly(NewPlacementQueue(), rng); err == nil {
			return board, nil
		}
	}
	return nil, cerr.ErrFleetPlacementFailed(maxFleetRestarts * maxPlacementTries)
}

// Ships are shared with the original, which is only safe before any shot
// has been fired at the board.
func (b *Board) clone() *Board {
	cp := *b
	cp.ships = make([]*Ship, len(b.ships))
	copy(cp.ships, b.ships)
	return &cp
}

func (b *Board) occupied(c Coordinates) bool {
	return b.occupancy[c.Row][c.Col] != 0
}

func (b *Board) ShipAt(c Coordinates) *Ship {
	if !c.InBounds() || !b.occupied(c) {
		return nil
	}
	return b.ships[b.occupancy[c.Row][c.Col]-1]
}

func (b *Board) Ships() []*Ship {
	out := make([]*Ship, len(b.ships))
	copy(out, b.ships)
	return out
}

// FleetCells lists the cells of every ship in placement order.
func (b *Board) FleetCells() [][]Coordinates {
	out := make([][]Coordinates, 0, len(b.ships))
	for _, ship := range b.ships {
		out = append(out, ship.Cells())
	}
	return out
}

// SunkShipCells lists the cells of sunk ships only.
func (b *Board) SunkShipCells() [][]Coordinates {
	out := make([][]Coordinates, 0, len(b.ships))
	for _, ship := range b.ships {
		if ship.IsSunk() {
			out = append(out, ship.Cells())
		}
	}
	return out
}

func (b *Board) ShotAt(c Coordinates) PositionState {
	return b.shots.at(c)
}

func (b *Board) Shots() Grid {
	return b.shots
}

func (b *Board) SunkShips() int {
	sunk := 0
	for _, ship := range b.ships {
		if ship.IsSunk() {
			sunk++
		}
	}
	return sunk
}

// IsDefeated reports whether the board has a fleet and all of it is sunk.
func (b *Board) IsDefeated() bool {
	return len(b.ships) > 0 && b.SunkShips() == len(b.ships)
}
