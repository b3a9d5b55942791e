package engine

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// chessEngine implements Engine on top of github.com/notnil/chess. Undo is
// implemented by keeping the FEN of every position reached and rewinding to
// the previous one, which keeps the engine itself stateless about history
// format.
type chessEngine struct {
	game    *chess.Game
	history []Move
	fens    []string
}

// New creates an engine at the standard starting position.
func New() Engine {
	g := chess.NewGame()
	return &chessEngine{
		game: g,
		fens: []string{g.FEN()},
	}
}

// NewFromFEN creates an engine from a serialized snapshot. Used by
// client-side mirrors to resynchronize from a broadcast state.
func NewFromFEN(fen string) (Engine, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN %q: %w", fen, err)
	}
	g := chess.NewGame(opt)
	return &chessEngine{
		game: g,
		fens: []string{g.FEN()},
	}, nil
}

func (e *chessEngine) FEN() string {
	return e.game.FEN()
}

func (e *chessEngine) SideToMove() Side {
	if e.game.Position().Turn() == chess.Black {
		return Black
	}
	return White
}

func (e *chessEngine) TryMove(from, to, promotion string) (Move, error) {
	want := promoPiece(promotion)

	var picked *chess.Move
	for _, m := range e.game.ValidMoves() {
		if m.S1().String() != from || m.S2().String() != to {
			continue
		}
		if m.Promo() != chess.NoPieceType && m.Promo() != want {
			continue
		}
		picked = m
		break
	}
	if picked == nil {
		return Move{}, ErrIllegalMove
	}

	applied := Move{
		From: from,
		To:   to,
		SAN:  chess.AlgebraicNotation{}.Encode(e.game.Position(), picked),
		Side: e.SideToMove().String(),
	}
	if picked.Promo() != chess.NoPieceType {
		applied.Promotion = strings.ToLower(picked.Promo().String())
	}

	if err := e.game.Move(picked); err != nil {
		// picked came from ValidMoves, so this only fires on an engine bug
		return Move{}, ErrIllegalMove
	}

	e.history = append(e.history, applied)
	e.fens = append(e.fens, e.game.FEN())
	return applied, nil
}

func (e *chessEngine) UndoLast() (Move, error) {
	if len(e.history) == 0 {
		return Move{}, ErrNoHistory
	}

	prev := e.fens[len(e.fens)-2]
	opt, err := chess.FEN(prev)
	if err != nil {
		return Move{}, fmt.Errorf("corrupt position history: %w", err)
	}

	reverted := e.history[len(e.history)-1]
	e.game = chess.NewGame(opt)
	e.history = e.history[:len(e.history)-1]
	e.fens = e.fens[:len(e.fens)-1]
	return reverted, nil
}

func (e *chessEngine) Outcome() (string, bool) {
	if e.game.Outcome() == chess.NoOutcome {
		return "", false
	}
	return fmt.Sprintf("%s %s", e.game.Outcome(), strings.ToLower(e.game.Method().String())), true
}

func (e *chessEngine) History() []Move {
	out := make([]Move, len(e.history))
	copy(out, e.history)
	return out
}

// promoPiece maps the wire promotion letter to a piece type, defaulting to
// queen the way the original client always did.
func promoPiece(p string) chess.PieceType {
	switch strings.ToLower(p) {
	case "r":
		return chess.Rook
	case "b":
		return chess.Bishop
	case "n":
		return chess.Knight
	default:
		return chess.Queen
	}
}
