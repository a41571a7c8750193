package api

import (
	"context"
	"encoding/json"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	"github.com/saeidalz13/battleship-solo/internal/scoreboard"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gm mb.GameManager) mc.Message[mc.RespCreateGame]
	HandlePlaceShip(gm mb.GameManager) mc.Message[mc.RespPlaceShip]
	HandleAutoPlace(gm mb.GameManager) mc.Message[mc.RespPlaceShip]
	HandleBeginPlay(gm mb.GameManager) mc.Message[mc.RespBeginPlay]
	HandleFire(gm mb.GameManager) mc.Message[mc.RespFire]
	HandleGameState(gm mb.GameManager) mc.Message[mc.RespGameState]
	HandleStats(sb *scoreboard.Scoreboard) mc.Message[mc.RespStats]
}

// Every incoming valid request will have this structure.
// The request then is handled in line with RequestHandler interface
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) Request {
	if len(payload) > 1 {
		panic("cannot accept more than one payload")
	}

	req := Request{}
	if len(payload) == 1 {
		req.payload = payload[0]
	}
	return req
}

func decode[T any](payload []byte) (T, error) {
	var msg mc.Message[T]
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg.Payload, cerr.ErrInvalidPayload(err)
	}
	return msg.Payload, nil
}

func (r Request) HandleCreateGame(gm mb.GameManager) mc.Message[mc.RespCreateGame] {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	game := gm.CreateGame()
	resp.AddPayload(mc.RespCreateGame{GameUuid: game.Uuid(), NextShipSize: game.NextShipSize()})
	return resp
}

func (r Request) HandlePlaceShip(gm mb.GameManager) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)

	req, err := decode[mc.ReqPlaceShip](r.payload)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	anchor, err := req.Anchor()
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	game, err := gm.GetGame(req.GameUuid)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	placement, err := game.PlaceShip(anchor, req.Horizontal, req.ShipSize)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	resp.AddPayload(mc.NewRespPlaceShip(placement))
	return resp
}

func (r Request) HandleAutoPlace(gm mb.GameManager) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodeAutoPlace)

	req, err := decode[mc.ReqGame](r.payload)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	game, err := gm.GetGame(req.GameUuid)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	placement, err := game.AutoPlace()
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	resp.AddPayload(mc.NewRespPlaceShip(placement))
	return resp
}

func (r Request) HandleBeginPlay(gm mb.GameManager) mc.Message[mc.RespBeginPlay] {
	resp := mc.NewMessage[mc.RespBeginPlay](mc.CodeBeginPlay)

	req, err := decode[mc.ReqGame](r.payload)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	game, err := gm.GetGame(req.GameUuid)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	if err := game.Begin(); err != nil {
		resp.AddGameError(err)
		return resp
	}

	resp.AddPayload(mc.RespBeginPlay{Phase: game.Phase()})
	return resp
}

func (r Request) HandleFire(gm mb.GameManager) mc.Message[mc.RespFire] {
	resp := mc.NewMessage[mc.RespFire](mc.CodeFire)

	req, err := decode[mc.ReqFire](r.payload)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	target, err := req.Target()
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	game, err := gm.GetGame(req.GameUuid)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	result, err := game.Fire(target)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	resp.AddPayload(mc.NewRespFire(result))
	return resp
}

func (r Request) HandleGameState(gm mb.GameManager) mc.Message[mc.RespGameState] {
	resp := mc.NewMessage[mc.RespGameState](mc.CodeGameState)

	req, err := decode[mc.ReqGame](r.payload)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	game, err := gm.GetGame(req.GameUuid)
	if err != nil {
		resp.AddGameError(err)
		return resp
	}

	resp.AddPayload(mc.NewRespGameState(game.State()))
	return resp
}

func (r Request) HandleStats(sb *scoreboard.Scoreboard) mc.Message[mc.RespStats] {
	resp := mc.NewMessage[mc.RespStats](mc.CodeStats)
	resp.AddPayload(sb.Read())
	return resp
}

// RecordGameResult turns a finished game into a scoreboard entry. A failed
// save is logged and the game result itself still stands.
func RecordGameResult(sb *scoreboard.Scoreboard) func(mb.GameSummary) {
	return func(summary mb.GameSummary) {
		ctx, cancel := context.WithTimeout(context.Background(), scoreboardSaveTimeout)
		defer cancel()

		_, err := sb.RecordResult(ctx, scoreboard.Result{
			PlayerWon:      summary.Winner == mb.WinnerPlayer,
			PlayerHits:     summary.Counters.PlayerHits,
			PlayerMisses:   summary.Counters.PlayerMisses,
			CpuHits:        summary.Counters.CpuHits,
			CpuMisses:      summary.Counters.CpuMisses,
			ElapsedSeconds: summary.ElapsedSeconds,
		})
		if err != nil {
			logScoreboardErr(summary.GameUuid, err)
		}
	}
}
