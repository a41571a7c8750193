package battleship

import (
	"sync"
	"testing"
	"time"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

func (fc *fakeClock) now() time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.t
}

func (fc *fakeClock) advance(d time.Duration) {
	fc.mu.Lock()
	fc.t = fc.t.Add(d)
	fc.mu.Unlock()
}

// Fires at the last untried cell in row-major order.
type reverseOpponent struct{}

func (reverseOpponent) NextTarget(b *Board) (Coordinates, error) {
	untried := b.shots.Untried()
	if len(untried) == 0 {
		return Coordinates{}, cerr.ErrNoTargetsLeft()
	}
	return untried[len(untried)-1], nil
}

type scriptedOpponent struct {
	targets []Coordinates
	next    int
}

func (so *scriptedOpponent) NextTarget(b *Board) (Coordinates, error) {
	if so.next >= len(so.targets) {
		return Coordinates{}, cerr.ErrNoTargetsLeft()
	}
	target := so.targets[so.next]
	so.next++
	return target, nil
}

type placement struct {
	anchor     Coordinates
	size       int
	horizontal bool
}

// carrier at (0,0) across, cruiser at (2,2) down, destroyer at (5,5) across
var standardFleet = []placement{
	{anchor: NewCoordinates(0, 0), size: ShipSizeCarrier, horizontal: true},
	{anchor: NewCoordinates(2, 2), size: ShipSizeCruiser, horizontal: false},
	{anchor: NewCoordinates(5, 5), size: ShipSizeDestroyer, horizontal: true},
}

func standardFleetCells() []Coordinates {
	cells := make([]Coordinates, 0, 10)
	for _, p := range standardFleet {
		cells = append(cells, ShipCells(p.anchor, p.size, p.horizontal)...)
	}
	return cells
}

func mustBoard(t *testing.T, adjacency Adjacency, placements []placement) *Board {
	t.Helper()

	board := NewBoard(adjacency)
	for _, p := range placements {
		if _, err := board.PlaceShip(p.anchor, p.size, p.horizontal); err != nil {
			t.Fatalf("failed to place %d at %+v: %v", p.size, p.anchor, err)
		}
	}
	return board
}

func assertKind(t *testing.T, err error, kind uint8) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	got, ok := cerr.KindOf(err)
	if !ok {
		t.Fatalf("expected game error, got: %v", err)
	}
	if got != kind {
		t.Fatalf("expected kind: %d\tgot: %d (%v)", kind, got, err)
	}
}

// Returns a game in play whose computer fleet is standardFleet.
func newPlayingGame(t *testing.T, opts ...GameOption) *Game {
	t.Helper()

	game := NewGame("test-game", opts...)
	for _, p := range standardFleet {
		if _, err := game.PlaceShip(p.anchor, p.horizontal, p.size); err != nil {
			t.Fatal(err)
		}
	}
	if err := game.Begin(); err != nil {
		t.Fatal(err)
	}

	game.computer.setBoard(mustBoard(t, AdjacencyStrict, standardFleet))
	return game
}
