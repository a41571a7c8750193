package battleship

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const defaultGameTTL time.Duration = time.Minute * 30

type GameManager interface {
	CreateGame() *Game
	GetGame(gameUuid string) (*Game, error)
	DeleteGame(gameUuid string)
	CleanupIdle() []string
}

// BattleshipGameManager is the process-wide registry of live games. Each
// game carries its own lock; mu only guards the map.
type BattleshipGameManager struct {
	games map[string]*Game
	mu    sync.RWMutex

	seeder   *rand.Rand
	seederMu sync.Mutex

	ttl        time.Duration
	now        func() time.Time
	onGameOver func(GameSummary)
}

var _ GameManager = (*BattleshipGameManager)(nil)

type ManagerOption func(*BattleshipGameManager)

// WithSeed makes every game created by the manager reproducible.
func WithSeed(seed int64) ManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.seeder = rand.New(rand.NewSource(seed))
	}
}

func WithGameTTL(ttl time.Duration) ManagerOption {
	return func(bgm *BattleshipGameManager) {
		if ttl > 0 {
			bgm.ttl = ttl
		}
	}
}

func WithManagerClock(now func() time.Time) ManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.now = now
	}
}

// WithResultHook is called once for every game that reaches the over
// phase, after that game's lock is released.
func WithResultHook(hook func(GameSummary)) ManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.onGameOver = hook
	}
}

func NewBattleshipGameManager(opts ...ManagerOption) *BattleshipGameManager {
	bgm := &BattleshipGameManager{
		games: make(map[string]*Game, 10),
		ttl:   defaultGameTTL,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(bgm)
	}

	if bgm.seeder == nil {
		bgm.seeder = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return bgm
}

func (bgm *BattleshipGameManager) nextSeed() int64 {
	bgm.seederMu.Lock()
	defer bgm.seederMu.Unlock()
	return bgm.seeder.Int63()
}

func (bgm *BattleshipGameManager) CreateGame() *Game {
	gameUuid := uuid.NewString()
	game := NewGame(
		gameUuid,
		WithRand(rand.New(rand.NewSource(bgm.nextSeed()))),
		WithClock(bgm.now),
		WithGameOverHook(bgm.onGameOver),
	)

	bgm.mu.Lock()
	bgm.games[gameUuid] = game
	bgm.mu.Unlock()

	return game
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) DeleteGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) Len() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}

// CleanupIdle removes the games nobody has touched for longer than the
// manager ttl and returns their ids. Game locks are never taken while the
// registry lock is held.
func (bgm *BattleshipGameManager) CleanupIdle() []string {
	now := bgm.now()

	bgm.mu.RLock()
	snapshot := make(map[string]*Game, len(bgm.games))
	for gameUuid, game := range bgm.games {
		snapshot[gameUuid] = game
	}
	bgm.mu.RUnlock()

	idle := make(map[string]*Game)
	for gameUuid, game := range snapshot {
		if now.Sub(game.LastActivity()) > bgm.ttl {
			idle[gameUuid] = game
		}
	}

	removed := make([]string, 0, len(idle))
	if len(idle) == 0 {
		return removed
	}

	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	for gameUuid, game := range idle {
		// the game may have been deleted since the snapshot
		if current, prs := bgm.games[gameUuid]; prs && current == game {
			delete(bgm.games, gameUuid)
			removed = append(removed, gameUuid)
		}
	}
	return removed
}

// CleanupPeriodically keeps the registry from growing with abandoned
// games until ctx is done.
func (bgm *BattleshipGameManager) CleanupPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := bgm.CleanupIdle()
			if len(removed) > 0 {
				log.Info("idle games removed", "count", len(removed), "remaining", bgm.Len())
			}
		}
	}
}
