package sqlc

import (
	"time"

	"github.com/sqlc-dev/pqtype"
)

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Scoreboard *ScoreboardManager
}

func NewDbManager(queries Querier, serverIpNet pqtype.Inet) DbManager {
	return DbManager{
		Scoreboard: NewScoreboardManager(queries, serverIpNet),
	}
}
