package protocol

import (
	"errors"

	"github.com/mvillota/chesslink/game/engine"
	"github.com/mvillota/chesslink/game/room"
)

// Client to server message types.
const (
	TypeCreateRoom = "createRoom"
	TypeJoinRoom   = "joinRoom"
	TypeMove       = "move"
	TypeUndoMove   = "undoMove"
)

// Server to client message types.
const (
	TypeConnected   = "connected"
	TypeRoomCreated = "roomCreated"
	TypeGameStart   = "gameStart"
	TypeBoardUpdate = "boardUpdate"
	TypeInvalidMove = "invalidMove"
	TypeError       = "errorMessage"
)

// Machine-readable rejection reasons carried on errorMessage replies.
const (
	ReasonBadMessage           = "bad_message"
	ReasonRoomNotFound         = "room_not_found"
	ReasonRoomFull             = "room_full"
	ReasonRoomClosed           = "room_closed"
	ReasonNotAParticipant      = "not_a_participant"
	ReasonNotYourTurn          = "not_your_turn"
	ReasonNoMoveHistory        = "no_move_history"
	ReasonAlreadyInRoom        = "already_in_room"
	ReasonCodesExhausted       = "room_codes_exhausted"
	ReasonOpponentDisconnected = "opponent_disconnected"
)

// ClientMessage is one inbound frame.
type ClientMessage struct {
	Type      string `json:"type"`
	Code      string `json:"code,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Promotion string `json:"promotion,omitempty"`
}

// ServerMessage is one outbound frame. Fields are populated per type; the
// constructors below build well-formed instances.
type ServerMessage struct {
	Type    string       `json:"type"`
	ID      string       `json:"id,omitempty"`
	Code    string       `json:"code,omitempty"`
	FEN     string       `json:"fen,omitempty"`
	White   string       `json:"white,omitempty"`
	Black   string       `json:"black,omitempty"`
	ToMove  string       `json:"toMove,omitempty"`
	Move    *engine.Move `json:"move,omitempty"`
	Outcome string       `json:"outcome,omitempty"`
	Message string       `json:"message,omitempty"`
	Reason  string       `json:"reason,omitempty"`
}

// Connected tells a freshly registered connection its assigned identity so
// it can recognize itself in gameStart seat assignments.
func Connected(id room.ConnID) ServerMessage {
	return ServerMessage{Type: TypeConnected, ID: string(id)}
}

// RoomCreated acknowledges room creation to the creator.
func RoomCreated(code string) ServerMessage {
	return ServerMessage{Type: TypeRoomCreated, Code: code}
}

// GameStart announces to both seats that the game is on, who holds which
// color, and whose side moves first.
func GameStart(info room.Info) ServerMessage {
	return ServerMessage{
		Type:   TypeGameStart,
		Code:   info.Code,
		FEN:    info.FEN,
		White:  string(info.Seats.White),
		Black:  string(info.Seats.Black),
		ToMove: info.ToMove,
	}
}

// BoardUpdate carries the authoritative state after an accepted move or
// undo.
func BoardUpdate(code string, up room.Update) ServerMessage {
	return ServerMessage{
		Type:    TypeBoardUpdate,
		Code:    code,
		FEN:     up.FEN,
		Move:    up.Move,
		ToMove:  up.ToMove,
		Outcome: up.Outcome,
	}
}

// InvalidMove is the bare rejection for an illegal move, sent to the
// submitter alone.
func InvalidMove() ServerMessage {
	return ServerMessage{Type: TypeInvalidMove}
}

// Error builds an errorMessage reply with a human text and a reason code.
func Error(message, reason string) ServerMessage {
	return ServerMessage{Type: TypeError, Message: message, Reason: reason}
}

// rejection maps a room/engine error to its wire reply. Illegal moves keep
// the original bare invalidMove event; everything else becomes an
// errorMessage.
func rejection(err error) ServerMessage {
	switch {
	case errors.Is(err, engine.ErrIllegalMove):
		return InvalidMove()
	case errors.Is(err, room.ErrRoomNotFound):
		return Error("Room does not exist.", ReasonRoomNotFound)
	case errors.Is(err, room.ErrRoomFull):
		return Error("Room full.", ReasonRoomFull)
	case errors.Is(err, room.ErrRoomClosed):
		return Error("Room closed.", ReasonRoomClosed)
	case errors.Is(err, room.ErrNotAParticipant):
		return Error("You are not a participant in this room.", ReasonNotAParticipant)
	case errors.Is(err, room.ErrNotYourTurn):
		return Error("Not your turn.", ReasonNotYourTurn)
	case errors.Is(err, room.ErrAlreadySeated), errors.Is(err, room.ErrAlreadyInRoom):
		return Error("Already in a room.", ReasonAlreadyInRoom)
	case errors.Is(err, room.ErrCodeSpaceExhausted):
		return Error("Could not allocate a room code, try again.", ReasonCodesExhausted)
	case errors.Is(err, engine.ErrNoHistory):
		return Error("No moves to undo.", ReasonNoMoveHistory)
	}
	return Error(err.Error(), ReasonBadMessage)
}
