package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-solo/internal/scoreboard"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

var (
	// allowedOrigins     = map[string]bool{
	// 	"https://www.allowed_url.com": true,
	// }
	upgrader = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more that enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	scoreboard     *scoreboard.Scoreboard
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	sb *scoreboard.Scoreboard,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		scoreboard:     sb,
	}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "err", err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	log.Info("a new connection established", "remote", conn.RemoteAddr().String())
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

// Games are not tied to the connection. An abandoned game stays in the
// registry until the idle cleanup removes it.
func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()
	defer rp.sessionManager.TerminateSession(sessionId)

	resp := mc.NewMessage[mc.RespConnected](mc.CodeConnected)
	resp.AddPayload(mc.RespConnected{ConnectionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// This error happens after retries. If it's not nil,
			// then something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		var respMsg interface{}
		req := NewRequest(payload)

		switch signal.Code {
		case mc.CodeCreateGame:
			respMsg = req.HandleCreateGame(rp.gameManager)

		case mc.CodePlaceShip:
			respMsg = req.HandlePlaceShip(rp.gameManager)

		case mc.CodeAutoPlace:
			respMsg = req.HandleAutoPlace(rp.gameManager)

		case mc.CodeBeginPlay:
			respMsg = req.HandleBeginPlay(rp.gameManager)

		// Resolves the player shot and the computer reply in one round trip
		case mc.CodeFire:
			respMsg = req.HandleFire(rp.gameManager)

		case mc.CodeGameState:
			respMsg = req.HandleGameState(rp.gameManager)

		case mc.CodeStats:
			respMsg = req.HandleStats(rp.scoreboard)

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			respMsg = respInvalidSignal
		}

		if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
			break sessionLoop
		}
	}
}
