package scoreboard

import (
	"context"
	"sync"
)

// Record is the process-wide aggregate over every completed game.
type Record struct {
	GamesPlayed       int64  `json:"games_played"`
	Wins              int64  `json:"wins"`
	Losses            int64  `json:"losses"`
	PlayerHitsTotal   int64  `json:"player_hits_total"`
	PlayerMissesTotal int64  `json:"player_misses_total"`
	CpuHitsTotal      int64  `json:"cpu_hits_total"`
	CpuMissesTotal    int64  `json:"cpu_misses_total"`
	FastestWinSeconds *int64 `json:"fastest_win_seconds"`
}

// Result is the summary of one completed game.
type Result struct {
	PlayerWon      bool
	PlayerHits     int
	PlayerMisses   int
	CpuHits        int
	CpuMisses      int
	ElapsedSeconds int64
}

// Apply returns the record with res folded in. The receiver is not
// modified.
func (r Record) Apply(res Result) Record {
	next := r
	next.GamesPlayed++
	next.PlayerHitsTotal += int64(res.PlayerHits)
	next.PlayerMissesTotal += int64(res.PlayerMisses)
	next.CpuHitsTotal += int64(res.CpuHits)
	next.CpuMissesTotal += int64(res.CpuMisses)

	if !res.PlayerWon {
		next.Losses++
		return next
	}

	next.Wins++
	if r.FastestWinSeconds == nil || res.ElapsedSeconds < *r.FastestWinSeconds {
		fastest := res.ElapsedSeconds
		next.FastestWinSeconds = &fastest
	} else {
		fastest := *r.FastestWinSeconds
		next.FastestWinSeconds = &fastest
	}
	return next
}

// Store persists the whole record at once. Save must either replace the
// durable record completely or leave the previous one intact.
type Store interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, record Record) error
}

// Scoreboard serializes every write across all games.
type Scoreboard struct {
	store   Store
	mu      sync.Mutex
	current Record
}

// New loads the durable record once; an absent record reads as zeros.
func New(ctx context.Context, store Store) (*Scoreboard, error) {
	record, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Scoreboard{store: store, current: record}, nil
}

// RecordResult folds res into the aggregate and rewrites the durable
// record. If the write fails the in-memory aggregate keeps matching the
// last durable one.
func (s *Scoreboard) RecordResult(ctx context.Context, res Result) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Apply(res)
	if err := s.store.Save(ctx, next); err != nil {
		return s.current.clone(), err
	}

	s.current = next
	return next.clone(), nil
}

func (s *Scoreboard) Read() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

func (r Record) clone() Record {
	if r.FastestWinSeconds != nil {
		fastest := *r.FastestWinSeconds
		r.FastestWinSeconds = &fastest
	}
	return r
}
