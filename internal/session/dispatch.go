package session

import (
	"errors"
	"fmt"

	"forest-wars/internal/game"
	"forest-wars/internal/protocol"
)

// ErrUnknownOperation is returned for messages that are not operations.
var ErrUnknownOperation = errors.New("unknown operation")

// Dispatch routes an operation message to the matching session method.
// Only malformed messages produce an error; game-illegal inputs are inert.
func (s *Session) Dispatch(msg *protocol.Message) ([]game.Effect, error) {
	switch msg.Type {
	case protocol.TypeInitializeField:
		return s.InitializeGameField(), nil
	case protocol.TypeResetField:
		return s.ResetField(), nil
	case protocol.TypeEndTurn:
		return s.EndTurn(), nil
	case protocol.TypeResume:
		return s.Resume(), nil
	case protocol.TypeCellTapped, protocol.TypeCellDoubleTapped:
		var p protocol.CellPayload
		if err := msg.ParsePayload(&p); err != nil {
			return nil, fmt.Errorf("invalid %s payload: %w", msg.Type, err)
		}
		if msg.Type == protocol.TypeCellTapped {
			return s.CellTapped(p.Row, p.Column), nil
		}
		return s.CellDoubleTapped(p.Row, p.Column), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, msg.Type)
	}
}
