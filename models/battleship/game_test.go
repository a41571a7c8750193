package battleship

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

func TestSetupThenFirstShot(t *testing.T) {
	game := NewGame("scenario", WithOpponent(reverseOpponent{}), WithRand(rand.New(rand.NewSource(3))))

	if game.Phase() != PhaseSetup || game.NextShipSize() != ShipSizeCarrier {
		t.Fatalf("unexpected initial state: %s, next %d", game.Phase(), game.NextShipSize())
	}

	expectedNext := []int{ShipSizeCruiser, ShipSizeDestroyer, 0}
	for i, p := range standardFleet {
		placed, err := game.PlaceShip(p.anchor, p.horizontal, 0)
		if err != nil {
			t.Fatal(err)
		}
		if placed.NextShipSize != expectedNext[i] {
			t.Fatalf("expected next size: %d\tgot: %d", expectedNext[i], placed.NextShipSize)
		}
		if !reflect.DeepEqual(placed.ShipCells, ShipCells(p.anchor, p.size, p.horizontal)) {
			t.Fatalf("unexpected ship cells: %v", placed.ShipCells)
		}
		if placed.SetupDone != (i == len(standardFleet)-1) {
			t.Fatalf("unexpected setup_done after ship %d", i)
		}
	}

	if err := game.Begin(); err != nil {
		t.Fatal(err)
	}
	if game.Phase() != PhasePlay {
		t.Fatalf("expected play phase, got %s", game.Phase())
	}
	game.computer.setBoard(mustBoard(t, AdjacencyStrict, standardFleet))

	res, err := game.Fire(NewCoordinates(0, 0))
	if err != nil {
		t.Fatal(err)
	}

	if res.PlayerShot.Result != ShotResultHit || res.PlayerShot.Sunk {
		t.Fatalf("expected unsunk hit, got %+v", res.PlayerShot)
	}
	if res.CpuShot == nil || res.CpuShot.Target != NewCoordinates(9, 9) || res.CpuShot.Result != ShotResultMiss {
		t.Fatalf("unexpected computer shot: %+v", res.CpuShot)
	}
	expected := Counters{PlayerHits: 1, CpuMisses: 1}
	if res.Counters != expected {
		t.Fatalf("expected counters: %+v\tgot: %+v", expected, res.Counters)
	}
	if res.GameOver || res.Phase != PhasePlay {
		t.Fatal("game must still be in play")
	}
}

func TestSinkCarrierThenRepeatRing(t *testing.T) {
	game := newPlayingGame(t, WithOpponent(reverseOpponent{}))

	var last FireResult
	for col := 0; col < ShipSizeCarrier; col++ {
		res, err := game.Fire(NewCoordinates(0, col))
		if err != nil {
			t.Fatal(err)
		}
		last = res
	}

	if !last.PlayerShot.Sunk {
		t.Fatal("expected the carrier to be sunk")
	}

	expectedRing := []Coordinates{NewCoordinates(0, 5)}
	for col := 0; col <= 5; col++ {
		expectedRing = append(expectedRing, NewCoordinates(1, col))
	}
	if !reflect.DeepEqual(last.PlayerShot.RingMarks, expectedRing) {
		t.Fatalf("expected ring: %v\tgot: %v", expectedRing, last.PlayerShot.RingMarks)
	}

	counters := game.Counters()
	if counters != (Counters{PlayerHits: 5, CpuMisses: 5}) {
		t.Fatalf("unexpected counters: %+v", counters)
	}

	res, err := game.Fire(NewCoordinates(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if res.PlayerShot.Result != ShotResultRepeat {
		t.Fatalf("expected repeat on ring cell, got %s", res.PlayerShot.Result)
	}
	if res.CpuShot != nil {
		t.Fatal("computer must not fire after a repeat")
	}
	if res.Counters != counters {
		t.Fatalf("repeat changed counters: %+v", res.Counters)
	}
}

func TestPlayerWins(t *testing.T) {
	clock := newFakeClock()

	var summaries []GameSummary
	game := newPlayingGame(t,
		WithOpponent(reverseOpponent{}),
		WithClock(clock.now),
		WithGameOverHook(func(s GameSummary) { summaries = append(summaries, s) }),
	)

	targets := standardFleetCells()
	var last FireResult
	for i, target := range targets {
		if i == len(targets)-1 {
			clock.advance(time.Second * 42)
		}

		res, err := game.Fire(target)
		if err != nil {
			t.Fatal(err)
		}
		if res.PlayerShot.Result != ShotResultHit {
			t.Fatalf("expected hit at %+v", target)
		}
		last = res
	}

	if !last.GameOver || last.Phase != PhaseOver || last.Winner != WinnerPlayer {
		t.Fatalf("expected player win, got %+v", last)
	}
	if last.CpuShot != nil {
		t.Fatal("computer must not fire after losing")
	}
	if last.ElapsedSeconds != 42 {
		t.Fatalf("expected 42 elapsed seconds, got %d", last.ElapsedSeconds)
	}

	expected := GameSummary{
		GameUuid:       "test-game",
		Winner:         WinnerPlayer,
		Counters:       Counters{PlayerHits: 10, CpuMisses: 9},
		ElapsedSeconds: 42,
	}
	if len(summaries) != 1 || summaries[0] != expected {
		t.Fatalf("expected one summary %+v, got %+v", expected, summaries)
	}

	// time keeps moving but the finished game does not
	clock.advance(time.Minute)
	if state := game.State(); state.ElapsedSeconds != 42 {
		t.Fatalf("elapsed changed after game over: %d", state.ElapsedSeconds)
	}

	_, err := game.Fire(NewCoordinates(9, 0))
	assertKind(t, err, cerr.KindGameAlreadyOver)
	if len(summaries) != 1 {
		t.Fatal("game over hook must run once")
	}
}

func TestCpuWins(t *testing.T) {
	var summaries []GameSummary
	game := newPlayingGame(t,
		WithOpponent(&scriptedOpponent{targets: standardFleetCells()}),
		WithGameOverHook(func(s GameSummary) { summaries = append(summaries, s) }),
	)

	var last FireResult
	for col := 0; col < GridSize; col++ {
		res, err := game.Fire(NewCoordinates(9, col))
		if err != nil {
			t.Fatal(err)
		}
		last = res
	}

	if !last.GameOver || last.Winner != WinnerCpu {
		t.Fatalf("expected computer win, got %+v", last)
	}
	if last.CpuShot == nil || !last.CpuShot.Sunk {
		t.Fatal("final computer shot should sink the last ship")
	}
	if last.Counters != (Counters{PlayerMisses: 10, CpuHits: 10}) {
		t.Fatalf("unexpected counters: %+v", last.Counters)
	}
	if len(summaries) != 1 || summaries[0].Winner != WinnerCpu {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	_, err := game.PlaceShip(NewCoordinates(0, 0), true, 0)
	assertKind(t, err, cerr.KindGameAlreadyOver)
	assertKind(t, game.Begin(), cerr.KindGameAlreadyOver)
}

func TestPhaseErrors(t *testing.T) {
	game := NewGame("phases")

	_, err := game.Fire(NewCoordinates(0, 0))
	assertKind(t, err, cerr.KindWrongPhase)

	assertKind(t, game.Begin(), cerr.KindSetupIncomplete)

	if _, err := game.PlaceShip(NewCoordinates(0, 0), true, ShipSizeCarrier); err != nil {
		t.Fatal(err)
	}
	assertKind(t, game.Begin(), cerr.KindSetupIncomplete)

	if _, err := game.AutoPlace(); err != nil {
		t.Fatal(err)
	}

	_, err = game.PlaceShip(NewCoordinates(9, 0), true, 0)
	assertKind(t, err, cerr.KindWrongPhase)

	_, err = game.AutoPlace()
	assertKind(t, err, cerr.KindWrongPhase)

	if err := game.Begin(); err != nil {
		t.Fatal(err)
	}

	_, err = game.PlaceShip(NewCoordinates(9, 0), true, 0)
	assertKind(t, err, cerr.KindWrongPhase)
	assertKind(t, game.Begin(), cerr.KindWrongPhase)

	_, err = game.Fire(NewCoordinates(10, 0))
	assertKind(t, err, cerr.KindInvalidCoordinates)
}

func TestPlacementOrderEnforced(t *testing.T) {
	game := NewGame("order")

	tests := []struct {
		name       string
		anchor     Coordinates
		horizontal bool
		declared   int
		kind       uint8
	}{
		{name: "declared size ahead of queue", anchor: NewCoordinates(0, 0), horizontal: true, declared: ShipSizeDestroyer, kind: cerr.KindShipOutOfOrder},
		{name: "mismatch wins over bad coordinates", anchor: NewCoordinates(0, 9), horizontal: true, declared: ShipSizeCruiser, kind: cerr.KindShipOutOfOrder},
		{name: "queue size off the board", anchor: NewCoordinates(0, 9), horizontal: true, declared: 0, kind: cerr.KindOutOfBounds},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := game.PlaceShip(test.anchor, test.horizontal, test.declared)
			assertKind(t, err, test.kind)

			if game.NextShipSize() != ShipSizeCarrier {
				t.Fatal("rejected placement must not advance the queue")
			}
			if len(game.State().PlayerFleet) != 0 {
				t.Fatal("rejected placement must not place a ship")
			}
		})
	}
}

func TestRejectedPlacementKeepsState(t *testing.T) {
	game := NewGame("reject")
	if _, err := game.PlaceShip(NewCoordinates(0, 0), true, 0); err != nil {
		t.Fatal(err)
	}
	before := game.State()

	_, err := game.PlaceShip(NewCoordinates(1, 0), true, 0)
	assertKind(t, err, cerr.KindAdjacentShip)

	if !reflect.DeepEqual(before, game.State()) {
		t.Fatal("state changed after a rejected placement")
	}
}

func TestAutoPlaceCompletesFleet(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		game := NewGame("auto", WithRand(rand.New(rand.NewSource(seed))))
		if _, err := game.PlaceShip(NewCoordinates(4, 2), true, 0); err != nil {
			t.Fatal(err)
		}

		placed, err := game.AutoPlace()
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !placed.SetupDone || placed.NextShipSize != 0 {
			t.Fatalf("seed %d: setup should be done", seed)
		}
		if len(placed.FleetCells) != ShipsPerFleet {
			t.Fatalf("seed %d: expected full fleet, got %d ships", seed, len(placed.FleetCells))
		}
		if len(placed.ShipCells) != ShipSizeCruiser+ShipSizeDestroyer {
			t.Fatalf("seed %d: expected only the new cells, got %d", seed, len(placed.ShipCells))
		}

		ships := game.human.board.Ships()
		for i := 0; i < len(ships); i++ {
			for j := i + 1; j < len(ships); j++ {
				if shipsTouch(ships[i], ships[j], false) {
					t.Fatalf("seed %d: ships %d and %d share an edge", seed, i, j)
				}
			}
		}
	}
}

func TestSameSeedSameComputerFleet(t *testing.T) {
	fleets := make([][][]Coordinates, 2)
	for i := range fleets {
		game := NewGame("seeded", WithRand(rand.New(rand.NewSource(2024))))
		if _, err := game.AutoPlace(); err != nil {
			t.Fatal(err)
		}
		if err := game.Begin(); err != nil {
			t.Fatal(err)
		}
		fleets[i] = game.computer.board.FleetCells()
	}

	if !reflect.DeepEqual(fleets[0], fleets[1]) {
		t.Fatalf("same seed gave different fleets: %v vs %v", fleets[0], fleets[1])
	}
}

func TestStateHidesComputerFleet(t *testing.T) {
	game := newPlayingGame(t, WithOpponent(reverseOpponent{}))

	state := game.State()
	if len(state.CpuSunkShips) != 0 {
		t.Fatal("no computer ship should be visible before it sinks")
	}
	if len(state.PlayerFleet) != ShipsPerFleet {
		t.Fatalf("expected own fleet, got %d ships", len(state.PlayerFleet))
	}

	for _, c := range ShipCells(NewCoordinates(5, 5), ShipSizeDestroyer, true) {
		if _, err := game.Fire(c); err != nil {
			t.Fatal(err)
		}
	}

	state = game.State()
	if len(state.CpuSunkShips) != 1 || !reflect.DeepEqual(state.CpuSunkShips[0], ShipCells(NewCoordinates(5, 5), ShipSizeDestroyer, true)) {
		t.Fatalf("expected only the destroyer, got %v", state.CpuSunkShips)
	}
	if state.PlayerShots[5][5] != PositionStateHit || state.PlayerShots[4][4] != PositionStateMiss {
		t.Fatal("player shot grid does not show the sink and its ring")
	}
	if state.CpuShots[9][9] != PositionStateMiss || state.CpuShots[9][8] != PositionStateMiss {
		t.Fatal("computer shot grid does not show its misses")
	}
	if state.Counters != (Counters{PlayerHits: 2, CpuMisses: 2}) {
		t.Fatalf("unexpected counters: %+v", state.Counters)
	}
}
