package battleship

import (
	"fmt"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type ShotResult uint8

const (
	ShotResultMiss ShotResult = iota
	ShotResultHit
	ShotResultRepeat
)

func (s ShotResult) String() string {
	switch s {
	case ShotResultHit:
		return "hit"
	case ShotResultRepeat:
		return "repeat"
	default:
		return "miss"
	}
}

func (s ShotResult) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Shot is the outcome of one fired coordinate.
type Shot struct {
	Target    Coordinates
	Result    ShotResult
	Sunk         bool
	SunkShip     []Coordinates
	SunkShipName string
	RingMarks    []Coordinates
}

// ReceiveShot resolves a shot fired at this board. A repeat leaves the
// board untouched.
func (b *Board) ReceiveShot(target Coordinates) (Shot, error) {
	if !target.InBounds() {
		return Shot{}, cerr.ErrInvalidCoordinates(target.Row, target.Col)
	}
	if b.IsDefeated() {
		return Shot{}, cerr.ErrBoardAlreadyDefeated()
	}

	shot := Shot{Target: target, RingMarks: []Coordinates{}}

	if b.shots.at(target) != PositionStateUntried {
		shot.Result = ShotResultRepeat
		return shot, nil
	}

	ship := b.ShipAt(target)
	if ship == nil {
		b.shots.set(target, PositionStateMiss)
		shot.Result = ShotResultMiss
		return shot, nil
	}

	b.shots.set(target, PositionStateHit)
	shot.Result = ShotResultHit

	idx, _ := ship.occupies(target)
	ship.gotHit(idx)

	if ship.IsSunk() {
		shot.Sunk = true
		shot.SunkShip = ship.Cells()
		shot.SunkShipName = ship.Name()
		shot.RingMarks = b.Ring(ship)

		// no ship can sit in the ring, so close it off
		for _, c := range shot.RingMarks {
			b.shots.set(c, PositionStateMiss)
		}
	}

	return shot, nil
}

// Ring returns the untried water cells around ship in row-major order:
// every in-bounds 8-neighbour of its cells that no ship occupies and that
// has not been fired at yet.
func (b *Board) Ring(ship *Ship) []Coordinates {
	var inRing [GridSize][GridSize]bool

	for _, cell := range ship.cells {
		for _, nb := range cell.neighbours8() {
			if b.occupied(nb) || b.shots.at(nb) != PositionStateUntried {
				continue
			}
			inRing[nb.Row][nb.Col] = true
		}
	}

	ring := make([]Coordinates, 0, 2*ship.Size()+6)
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if inRing[r][c] {
				ring = append(ring, NewCoordinates(r, c))
			}
		}
	}
	return ring
}

func (s *ShotResult) UnmarshalText(text []byte) error {
	switch string(text) {
	case "miss":
		*s = ShotResultMiss
	case "hit":
		*s = ShotResultHit
	case "repeat":
		*s = ShotResultRepeat
	default:
		return fmt.Errorf("unknown shot result: %q", text)
	}
	return nil
}
