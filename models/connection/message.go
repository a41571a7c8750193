package connection

import (
	"errors"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type NoPayload bool

type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// AddGameError reports err with its kind and category when it comes from
// the engine, so clients can tell a bad placement from an unknown game.
func (m *Message[T]) AddGameError(err error) {
	var gameErr cerr.GameErr
	if !errors.As(err, &gameErr) {
		m.AddError(err.Error(), "")
		return
	}

	m.Error = &RespErr{
		Kind:         gameErr.Name(),
		Category:     gameErr.Category(),
		ErrorDetails: gameErr.Error(),
	}
}
