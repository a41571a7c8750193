package connection

import (
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

// ReqGame is the payload of every request that only names a game.
type ReqGame struct {
	GameUuid string `json:"game_uuid"`
}

// ShipSize is a display hint from the client; the server places the
// head of its own queue and only rejects a mismatch.
type ReqPlaceShip struct {
	GameUuid   string `json:"game_uuid"`
	Row        *int   `json:"row"`
	Col        *int   `json:"col"`
	Horizontal bool   `json:"horizontal"`
	ShipSize   int    `json:"ship_size,omitempty"`
}

func (r ReqPlaceShip) Anchor() (mb.Coordinates, error) {
	return coordinatesOf(r.Row, r.Col)
}

type ReqFire struct {
	GameUuid string `json:"game_uuid"`
	Row      *int   `json:"row"`
	Col      *int   `json:"col"`
}

func (r ReqFire) Target() (mb.Coordinates, error) {
	return coordinatesOf(r.Row, r.Col)
}

func coordinatesOf(row, col *int) (mb.Coordinates, error) {
	if row == nil || col == nil {
		return mb.Coordinates{}, cerr.ErrMissingCoordinates()
	}
	return mb.NewCoordinates(*row, *col), nil
}
