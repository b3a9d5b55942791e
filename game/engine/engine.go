package engine

import "errors"

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrNoHistory   = errors.New("no move history")
)

// Side identifies one of the two sides of the board. White always moves
// first, so White doubles as the "first seat" of a session.
type Side int

const (
	White Side = iota
	Black
)

// String returns the lowercase side name used on the wire.
func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// Move describes an applied (or reverted) move.
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	SAN       string `json:"san,omitempty"`
	Side      string `json:"color"`
}

// Engine is the rules collaborator the session layer is written against.
// Implementations must reject illegal input with an error value and leave
// their state untouched on any rejection.
type Engine interface {
	// FEN returns a complete, round-trippable snapshot of the game state.
	FEN() string

	// SideToMove reports which side the next accepted move must come from.
	SideToMove() Side

	// TryMove validates and applies a move given in coordinate form
	// ("e2" -> "e4"). The promotion piece ("q", "r", "b", "n") is only
	// consulted when the move is a pawn promotion and defaults to queen.
	// Returns ErrIllegalMove without mutating state when the move is not
	// legal in the current position.
	TryMove(from, to, promotion string) (Move, error)

	// UndoLast reverts the most recently applied move. Returns
	// ErrNoHistory when no move has been applied.
	UndoLast() (Move, error)

	// Outcome reports the game result ("1-0 checkmate", "1/2-1/2
	// stalemate", ...) once the game has ended.
	Outcome() (string, bool)

	// History returns the applied moves in acceptance order.
	History() []Move
}
