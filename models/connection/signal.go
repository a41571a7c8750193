package connection

const (
	// Sent once right after the websocket upgrade
	CodeConnected uint8 = iota

	CodeCreateGame
	CodePlaceShip

	// Places the rest of the fleet at random
	CodeAutoPlace
	CodeBeginPlay
	CodeFire
	CodeGameState
	CodeStats
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}
