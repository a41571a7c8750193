package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

// Opponent picks the computer's next target on the player's board.
type Opponent interface {
	NextTarget(playerBoard *Board) (Coordinates, error)
}

// RandomOpponent fires at a uniformly random untried cell. It keeps no
// memory of earlier hits.
type RandomOpponent struct {
	rng *rand.Rand
}

var _ Opponent = (*RandomOpponent)(nil)

func NewRandomOpponent(rng *rand.Rand) *RandomOpponent {
	return &RandomOpponent{rng: rng}
}

func (ro *RandomOpponent) NextTarget(playerBoard *Board) (Coordinates, error) {
	untried := playerBoard.shots.Untried()
	if len(untried) == 0 {
		return Coordinates{}, cerr.ErrNoTargetsLeft()
	}
	return untried[ro.rng.Intn(len(untried))], nil
}
