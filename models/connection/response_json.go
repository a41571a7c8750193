package connection

import (
	"github.com/saeidalz13/battleship-solo/internal/scoreboard"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

type RespConnected struct {
	ConnectionID string `json:"connection_id"`
}

type RespCreateGame struct {
	GameUuid     string `json:"game_uuid"`
	NextShipSize int    `json:"next_ship_size"`
}

type RespPlaceShip struct {
	ShipCells    []mb.Coordinates   `json:"ship_cells"`
	FleetCells   [][]mb.Coordinates `json:"fleet_cells"`
	NextShipSize int                `json:"next_ship_size,omitempty"`
	SetupDone    bool               `json:"setup_done"`
}

func NewRespPlaceShip(placement mb.Placement) RespPlaceShip {
	return RespPlaceShip{
		ShipCells:    placement.ShipCells,
		FleetCells:   placement.FleetCells,
		NextShipSize: placement.NextShipSize,
		SetupDone:    placement.SetupDone,
	}
}

type RespBeginPlay struct {
	Phase mb.Phase `json:"phase"`
}

type RespShot struct {
	Row          int              `json:"row"`
	Col          int              `json:"col"`
	Result       mb.ShotResult    `json:"result"`
	Sunk         bool             `json:"sunk"`
	SunkShip     []mb.Coordinates `json:"sunk_ship,omitempty"`
	SunkShipName string           `json:"sunk_ship_name,omitempty"`
}

func NewRespShot(shot mb.Shot) RespShot {
	return RespShot{
		Row:          shot.Target.Row,
		Col:          shot.Target.Col,
		Result:       shot.Result,
		Sunk:         shot.Sunk,
		SunkShip:     shot.SunkShip,
		SunkShipName: shot.SunkShipName,
	}
}

type RespFire struct {
	PlayerShot      RespShot         `json:"player_shot"`
	PlayerRingMarks []mb.Coordinates `json:"player_ring_marks"`
	CpuShot         *RespShot        `json:"cpu_shot"`
	CpuRingMarks    []mb.Coordinates `json:"cpu_ring_marks"`
	Counters        mb.Counters      `json:"counters"`
	Phase           mb.Phase         `json:"phase"`
	GameOver        bool             `json:"game_over"`
	Winner          *mb.Winner       `json:"winner,omitempty"`
	ElapsedSeconds  *int64           `json:"elapsed_seconds,omitempty"`
}

func NewRespFire(res mb.FireResult) RespFire {
	resp := RespFire{
		PlayerShot:      NewRespShot(res.PlayerShot),
		PlayerRingMarks: res.PlayerShot.RingMarks,
		CpuRingMarks:    []mb.Coordinates{},
		Counters:        res.Counters,
		Phase:           res.Phase,
		GameOver:        res.GameOver,
	}

	if res.CpuShot != nil {
		cpuShot := NewRespShot(*res.CpuShot)
		resp.CpuShot = &cpuShot
		resp.CpuRingMarks = res.CpuShot.RingMarks
	}

	if res.GameOver {
		winner := res.Winner
		elapsed := res.ElapsedSeconds
		resp.Winner = &winner
		resp.ElapsedSeconds = &elapsed
	}
	return resp
}

type RespGameState struct {
	GameUuid       string             `json:"game_uuid"`
	Phase          mb.Phase           `json:"phase"`
	Winner         mb.Winner          `json:"winner"`
	SetupDone      bool               `json:"setup_done"`
	NextShipSize   int                `json:"next_ship_size,omitempty"`
	PlayerFleet    [][]mb.Coordinates `json:"player_fleet"`
	PlayerShots    [][]string         `json:"player_shots"`
	CpuShots       [][]string         `json:"cpu_shots"`
	CpuSunkShips   [][]mb.Coordinates `json:"cpu_sunk_ships"`
	Counters       mb.Counters        `json:"counters"`
	ElapsedSeconds int64              `json:"elapsed_seconds"`
}

func NewRespGameState(state mb.GameState) RespGameState {
	return RespGameState{
		GameUuid:       state.GameUuid,
		Phase:          state.Phase,
		Winner:         state.Winner,
		SetupDone:      state.SetupDone,
		NextShipSize:   state.NextShipSize,
		PlayerFleet:    state.PlayerFleet,
		PlayerShots:    gridToStrings(state.PlayerShots),
		CpuShots:       gridToStrings(state.CpuShots),
		CpuSunkShips:   state.CpuSunkShips,
		Counters:       state.Counters,
		ElapsedSeconds: state.ElapsedSeconds,
	}
}

func gridToStrings(grid mb.Grid) [][]string {
	out := make([][]string, mb.GridSize)
	for r := range grid {
		out[r] = make([]string, mb.GridSize)
		for c := range grid[r] {
			out[r][c] = grid[r][c].String()
		}
	}
	return out
}

type RespStats = scoreboard.Record

type RespErr struct {
	Kind         string `json:"kind,omitempty"`
	Category     string `json:"category,omitempty"`
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
