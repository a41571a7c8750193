package sqlc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/saeidalz13/battleship-solo/internal/scoreboard"
	"github.com/sqlc-dev/pqtype"
)

// ScoreboardManager keeps one scoreboard row per server instance, keyed by
// the server ip. A save is a single upsert, so the row is either fully
// replaced or left as it was.
type ScoreboardManager struct {
	queries     Querier
	serverIpNet pqtype.Inet
}

var _ scoreboard.Store = (*ScoreboardManager)(nil)

func NewScoreboardManager(queries Querier, serverIpNet pqtype.Inet) *ScoreboardManager {
	return &ScoreboardManager{queries: queries, serverIpNet: serverIpNet}
}

func (sm *ScoreboardManager) Load(ctx context.Context) (scoreboard.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	row, err := sm.queries.GetScoreboard(ctx, sm.serverIpNet)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return scoreboard.Record{}, nil
		}
		return scoreboard.Record{}, err
	}

	record := scoreboard.Record{
		GamesPlayed:       row.GamesPlayed,
		Wins:              row.Wins,
		Losses:            row.Losses,
		PlayerHitsTotal:   row.PlayerHitsTotal,
		PlayerMissesTotal: row.PlayerMissesTotal,
		CpuHitsTotal:      row.CpuHitsTotal,
		CpuMissesTotal:    row.CpuMissesTotal,
	}
	if row.FastestWinSeconds.Valid {
		fastest := row.FastestWinSeconds.Int64
		record.FastestWinSeconds = &fastest
	}
	return record, nil
}

func (sm *ScoreboardManager) Save(ctx context.Context, record scoreboard.Record) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	params := UpsertScoreboardParams{
		ServerIp:          sm.serverIpNet,
		GamesPlayed:       record.GamesPlayed,
		Wins:              record.Wins,
		Losses:            record.Losses,
		PlayerHitsTotal:   record.PlayerHitsTotal,
		PlayerMissesTotal: record.PlayerMissesTotal,
		CpuHitsTotal:      record.CpuHitsTotal,
		CpuMissesTotal:    record.CpuMissesTotal,
	}
	if record.FastestWinSeconds != nil {
		params.FastestWinSeconds = sql.NullInt64{Int64: *record.FastestWinSeconds, Valid: true}
	}

	return sm.queries.UpsertScoreboard(ctx, params)
}
