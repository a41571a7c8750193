package error

import (
	"errors"
	"fmt"
)

const (
	KindOutOfBounds uint8 = iota
	KindOverlap
	KindAdjacentShip
	KindShipOutOfOrder
	KindInvalidCoordinates
	KindInvalidPayload

	KindWrongPhase
	KindSetupIncomplete
	KindGameAlreadyOver

	KindUnknownSession

	// Conditions a legal game never reaches
	KindBoardAlreadyDefeated
	KindNoTargetsLeft
	KindFleetPlacementFailed
)

const (
	CategoryValidation = "validation"
	CategoryPhase      = "phase"
	CategorySession    = "session"
	CategoryInternal   = "internal"
)

var kindNames = map[uint8]string{
	KindOutOfBounds:          "out_of_bounds",
	KindOverlap:              "overlap",
	KindAdjacentShip:         "adjacent_ship",
	KindShipOutOfOrder:       "ship_out_of_order",
	KindInvalidCoordinates:   "invalid_coordinates",
	KindInvalidPayload:       "invalid_payload",
	KindWrongPhase:           "wrong_phase",
	KindSetupIncomplete:      "setup_incomplete",
	KindGameAlreadyOver:      "game_already_over",
	KindUnknownSession:       "unknown_session",
	KindBoardAlreadyDefeated: "board_already_defeated",
	KindNoTargetsLeft:        "no_targets_left",
	KindFleetPlacementFailed: "fleet_placement_failed",
}

// GameErr is the error every engine operation returns. None of them
// mutate game state.
type GameErr struct {
	kind uint8
	desc string
}

func NewGameErr(kind uint8) GameErr {
	return GameErr{kind: kind}
}

func (g GameErr) AddDesc(desc string) GameErr {
	g.desc = desc
	return g
}

func (g GameErr) Error() string {
	if g.desc == "" {
		return g.Name()
	}
	return fmt.Sprintf("%s: %s", g.Name(), g.desc)
}

func (g GameErr) Kind() uint8 {
	return g.kind
}

func (g GameErr) Name() string {
	name, prs := kindNames[g.kind]
	if !prs {
		return "unknown"
	}
	return name
}

func (g GameErr) Category() string {
	switch g.kind {
	case KindOutOfBounds, KindOverlap, KindAdjacentShip, KindShipOutOfOrder, KindInvalidCoordinates, KindInvalidPayload:
		return CategoryValidation
	case KindWrongPhase, KindSetupIncomplete, KindGameAlreadyOver:
		return CategoryPhase
	case KindUnknownSession:
		return CategorySession
	default:
		return CategoryInternal
	}
}

// Is matches on kind only, so errors.Is(err, NewGameErr(KindOverlap))
// holds for any overlap error regardless of its description.
func (g GameErr) Is(target error) bool {
	var other GameErr
	if !errors.As(target, &other) {
		return false
	}
	return other.kind == g.kind
}

// KindOf reports the kind of err if it is (or wraps) a GameErr.
func KindOf(err error) (uint8, bool) {
	var gameErr GameErr
	if !errors.As(err, &gameErr) {
		return 0, false
	}
	return gameErr.kind, true
}

func ErrOutOfBounds(row, col int) error {
	return NewGameErr(KindOutOfBounds).AddDesc(fmt.Sprintf("ship cell is out of grid bound\trow: %d\tcol: %d", row, col))
}

func ErrOverlap(row, col int) error {
	return NewGameErr(KindOverlap).AddDesc(fmt.Sprintf("ship cell is already taken by another ship\trow: %d\tcol: %d", row, col))
}

func ErrAdjacentShip(row, col int) error {
	return NewGameErr(KindAdjacentShip).AddDesc(fmt.Sprintf("ship cell touches another ship\trow: %d\tcol: %d", row, col))
}

func ErrShipOutOfOrder(expected, got int) error {
	return NewGameErr(KindShipOutOfOrder).AddDesc(fmt.Sprintf("ship of size %d must be placed next, got %d", expected, got))
}

func ErrInvalidCoordinates(row, col int) error {
	return NewGameErr(KindInvalidCoordinates).AddDesc(fmt.Sprintf("incoming row or col is out of game grid bound\trow: %d\tcol: %d", row, col))
}

func ErrMissingCoordinates() error {
	return NewGameErr(KindInvalidCoordinates).AddDesc("both row and col are required")
}

func ErrInvalidPayload(err error) error {
	return NewGameErr(KindInvalidPayload).AddDesc(err.Error())
}

func ErrWrongPhase(operation, phase string) error {
	return NewGameErr(KindWrongPhase).AddDesc(fmt.Sprintf("%s is not allowed in phase %s", operation, phase))
}

func ErrSetupIncomplete(remaining int) error {
	return NewGameErr(KindSetupIncomplete).AddDesc(fmt.Sprintf("%d ship(s) still to place", remaining))
}

func ErrGameAlreadyOver(gameUuid string) error {
	return NewGameErr(KindGameAlreadyOver).AddDesc("game uuid: " + gameUuid)
}

func ErrGameNotExists(gameUuid string) error {
	return NewGameErr(KindUnknownSession).AddDesc(fmt.Sprintf("game with this uuid does not exist, uuid: %s", gameUuid))
}

func ErrBoardAlreadyDefeated() error {
	return NewGameErr(KindBoardAlreadyDefeated).AddDesc("every ship on the target board is already sunk")
}

func ErrNoTargetsLeft() error {
	return NewGameErr(KindNoTargetsLeft).AddDesc("no untried cell left on the target board")
}

func ErrFleetPlacementFailed(attempts int) error {
	return NewGameErr(KindFleetPlacementFailed).AddDesc(fmt.Sprintf("could not place fleet after %d attempts", attempts))
}
