package battleship

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type Phase uint8

const (
	PhaseSetup Phase = iota
	PhasePlay
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlay:
		return "play"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type Winner uint8

const (
	WinnerNone Winner = iota
	WinnerPlayer
	WinnerCpu
)

func (w Winner) String() string {
	switch w {
	case WinnerPlayer:
		return "player"
	case WinnerCpu:
		return "cpu"
	default:
		return "none"
	}
}

func (w Winner) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

type Counters struct {
	PlayerHits   int `json:"player_hits"`
	PlayerMisses int `json:"player_misses"`
	CpuHits      int `json:"cpu_hits"`
	CpuMisses    int `json:"cpu_misses"`
}

// GameSummary is handed to the game over hook exactly once per game.
type GameSummary struct {
	GameUuid       string
	Winner         Winner
	Counters       Counters
	ElapsedSeconds int64
}

type Placement struct {
	ShipCells    []Coordinates
	FleetCells   [][]Coordinates
	NextShipSize int
	SetupDone    bool
}

type FireResult struct {
	PlayerShot     Shot
	CpuShot        *Shot
	Counters       Counters
	Phase          Phase
	Winner         Winner
	GameOver       bool
	ElapsedSeconds int64
}

// GameState is what the human side is allowed to see of a game. Computer
// ships only show up once they are sunk.
type GameState struct {
	GameUuid       string
	Phase          Phase
	Winner         Winner
	SetupDone      bool
	NextShipSize   int
	PlayerFleet    [][]Coordinates
	PlayerShots    Grid
	CpuShots       Grid
	CpuSunkShips   [][]Coordinates
	Counters       Counters
	ElapsedSeconds int64
}

// Game is a single human vs computer session. Every exported method holds
// the game lock while it touches state, so a fire request resolves both
// shots without interleaving with another request on the same game.
type Game struct {
	mu sync.Mutex

	uuid     string
	phase    Phase
	winner   Winner
	human    *Player
	computer *Player
	queue    []int

	rng        *rand.Rand
	opponent   Opponent
	now        func() time.Time
	onGameOver func(GameSummary)

	createdAt    time.Time
	lastActivity time.Time
	startedAt    time.Time
	endedAt      time.Time
}

type GameOption func(*Game)

func WithRand(rng *rand.Rand) GameOption {
	return func(g *Game) {
		g.rng = rng
	}
}

func WithClock(now func() time.Time) GameOption {
	return func(g *Game) {
		g.now = now
	}
}

func WithOpponent(opponent Opponent) GameOption {
	return func(g *Game) {
		g.opponent = opponent
	}
}

func WithGameOverHook(hook func(GameSummary)) GameOption {
	return func(g *Game) {
		g.onGameOver = hook
	}
}

func NewGame(gameUuid string, opts ...GameOption) *Game {
	game := &Game{
		uuid:     gameUuid,
		phase:    PhaseSetup,
		winner:   WinnerNone,
		human:    NewPlayer(false, NewBoard(AdjacencyEdge)),
		computer: NewPlayer(true, NewBoard(AdjacencyStrict)),
		queue:    NewPlacementQueue(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(game)
	}

	if game.rng == nil {
		game.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if game.opponent == nil {
		game.opponent = NewRandomOpponent(game.rng)
	}

	game.createdAt = game.now()
	game.lastActivity = game.createdAt
	return game
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) Winner() Winner {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

func (g *Game) LastActivity() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActivity
}

// NextShipSize is the head of the placement queue, 0 once the fleet is
// complete.
func (g *Game) NextShipSize() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nextShipSizeLocked()
}

func (g *Game) nextShipSizeLocked() int {
	if len(g.queue) == 0 {
		return 0
	}
	return g.queue[0]
}

func (g *Game) checkSetupLocked(operation string) error {
	switch g.phase {
	case PhaseOver:
		return cerr.ErrGameAlreadyOver(g.uuid)
	case PhaseSetup:
		return nil
	default:
		return cerr.ErrWrongPhase(operation, g.phase.String())
	}
}

// PlaceShip places the next queued ship for the human side. The size
// always comes from the queue; declaredSize is only compared against it
// and may be 0 when the client does not send one.
func (g *Game) PlaceShip(anchor Coordinates, horizontal bool, declaredSize int) (Placement, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkSetupLocked("place ship"); err != nil {
		return Placement{}, err
	}
	if len(g.queue) == 0 {
		return Placement{}, cerr.ErrWrongPhase("place ship", "setup (fleet complete)")
	}

	size := g.queue[0]
	if declaredSize != 0 && declaredSize != size {
		return Placement{}, cerr.ErrShipOutOfOrder(size, declaredSize)
	}

	ship, err := g.human.board.PlaceShip(anchor, size, horizontal)
	if err != nil {
		return Placement{}, err
	}

	g.queue = g.queue[1:]
	g.lastActivity = g.now()
	return g.placementLocked(ship.Cells()), nil
}

// AutoPlace places every ship still in the queue at random.
func (g *Game) AutoPlace() (Placement, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkSetupLocked("auto place"); err != nil {
		return Placement{}, err
	}
	if len(g.queue) == 0 {
		return Placement{}, cerr.ErrWrongPhase("auto place", "setup (fleet complete)")
	}

	// work on a copy so a failed attempt leaves the board as it was
	board := g.human.board.clone()
	placedBefore := len(board.ships)
	if err := board.placeRandomly(g.queue, g.rng); err != nil {
		return Placement{}, err
	}

	g.human.setBoard(board)
	g.queue = g.queue[:0]
	g.lastActivity = g.now()

	newCells := make([]Coordinates, 0, ShipSizeCarrier+ShipSizeCruiser+ShipSizeDestroyer)
	for _, ship := range board.ships[placedBefore:] {
		newCells = append(newCells, ship.Cells()...)
	}
	return g.placementLocked(newCells), nil
}

func (g *Game) placementLocked(shipCells []Coordinates) Placement {
	return Placement{
		ShipCells:    shipCells,
		FleetCells:   g.human.board.FleetCells(),
		NextShipSize: g.nextShipSizeLocked(),
		SetupDone:    len(g.queue) == 0,
	}
}

// Begin places the computer fleet and starts the clock.
func (g *Game) Begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkSetupLocked("begin"); err != nil {
		return err
	}
	if len(g.queue) != 0 {
		return cerr.ErrSetupIncomplete(len(g.queue))
	}

	board, err := NewRandomFleetBoard(AdjacencyStrict, g.rng)
	if err != nil {
		return err
	}

	g.computer.setBoard(board)
	g.phase = PhasePlay
	g.startedAt = g.now()
	g.lastActivity = g.startedAt
	return nil
}

// Fire resolves the human shot and, unless it was a repeat or it ended
// the game, the computer's reply. The game over hook runs after the game
// lock is released.
func (g *Game) Fire(target Coordinates) (FireResult, error) {
	g.mu.Lock()
	result, summary, err := g.fireLocked(target)
	g.mu.Unlock()

	if summary != nil && g.onGameOver != nil {
		g.onGameOver(*summary)
	}
	return result, err
}

// The summary is non-nil only for the shot that ended the game.
func (g *Game) fireLocked(target Coordinates) (FireResult, *GameSummary, error) {
	switch g.phase {
	case PhaseOver:
		return FireResult{}, nil, cerr.ErrGameAlreadyOver(g.uuid)
	case PhaseSetup:
		return FireResult{}, nil, cerr.ErrWrongPhase("fire", g.phase.String())
	}

	if !target.InBounds() {
		return FireResult{}, nil, cerr.ErrInvalidCoordinates(target.Row, target.Col)
	}

	playerShot, err := g.computer.board.ReceiveShot(target)
	if err != nil {
		return FireResult{}, nil, err
	}
	g.lastActivity = g.now()

	result := FireResult{PlayerShot: playerShot}
	if playerShot.Result == ShotResultRepeat {
		return g.fireResultLocked(result), nil, nil
	}

	g.human.recordShot(playerShot.Result)
	if g.computer.IsLoser() {
		summary := g.finishLocked(WinnerPlayer)
		return g.fireResultLocked(result), &summary, nil
	}

	cpuTarget, err := g.opponent.NextTarget(g.human.board)
	if err != nil {
		return FireResult{}, nil, err
	}
	cpuShot, err := g.human.board.ReceiveShot(cpuTarget)
	if err != nil {
		return FireResult{}, nil, err
	}

	g.computer.recordShot(cpuShot.Result)
	result.CpuShot = &cpuShot
	if g.human.IsLoser() {
		summary := g.finishLocked(WinnerCpu)
		return g.fireResultLocked(result), &summary, nil
	}

	return g.fireResultLocked(result), nil, nil
}

func (g *Game) fireResultLocked(result FireResult) FireResult {
	result.Counters = g.countersLocked()
	result.Phase = g.phase
	result.Winner = g.winner
	result.GameOver = g.phase == PhaseOver
	if result.GameOver {
		result.ElapsedSeconds = g.elapsedSecondsLocked()
	}
	return result
}

func (g *Game) finishLocked(winner Winner) GameSummary {
	g.phase = PhaseOver
	g.winner = winner
	g.endedAt = g.now()

	return GameSummary{
		GameUuid:       g.uuid,
		Winner:         winner,
		Counters:       g.countersLocked(),
		ElapsedSeconds: g.elapsedSecondsLocked(),
	}
}

func (g *Game) countersLocked() Counters {
	return Counters{
		PlayerHits:   g.human.Hits(),
		PlayerMisses: g.human.Misses(),
		CpuHits:      g.computer.Hits(),
		CpuMisses:    g.computer.Misses(),
	}
}

func (g *Game) elapsedSecondsLocked() int64 {
	if g.startedAt.IsZero() {
		return 0
	}

	end := g.now()
	if g.phase == PhaseOver {
		end = g.endedAt
	}
	return int64(end.Sub(g.startedAt) / time.Second)
}

func (g *Game) Counters() Counters {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.countersLocked()
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return GameState{
		GameUuid:       g.uuid,
		Phase:          g.phase,
		Winner:         g.winner,
		SetupDone:      len(g.queue) == 0,
		NextShipSize:   g.nextShipSizeLocked(),
		PlayerFleet:    g.human.board.FleetCells(),
		PlayerShots:    g.computer.board.Shots(),
		CpuShots:       g.human.board.Shots(),
		CpuSunkShips:   g.computer.board.SunkShipCells(),
		Counters:       g.countersLocked(),
		ElapsedSeconds: g.elapsedSecondsLocked(),
	}
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "setup":
		*p = PhaseSetup
	case "play":
		*p = PhasePlay
	case "over":
		*p = PhaseOver
	default:
		return fmt.Errorf("unknown phase: %q", text)
	}
	return nil
}

func (w *Winner) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*w = WinnerNone
	case "player":
		*w = WinnerPlayer
	case "cpu":
		*w = WinnerCpu
	default:
		return fmt.Errorf("unknown winner: %q", text)
	}
	return nil
}
