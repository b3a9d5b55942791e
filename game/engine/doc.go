// Package engine wraps the chess rules implementation behind a small
// interface the room and protocol layers depend on.
//
// The engine package implements:
//   - Move legality checking and application
//   - Side-to-move and game outcome reporting
//   - Complete state serialization as FEN strings
//   - Undo via an internal position history
//
// Core Types:
//
// Engine is the capability contract: serialize state, report whose turn it
// is, try a move, undo the last one. The concrete implementation is backed
// by github.com/notnil/chess.
//
// State Serialization:
//
// FEN strings are the only state representation crossing the engine
// boundary. A FEN produced by one engine instance loads into a fresh
// instance via NewFromFEN and reports the same side to move and the same
// legal follow-up moves, which is what lets clients resynchronize from a
// broadcast snapshot.
//
// Usage:
//
//	eng := engine.New()
//
//	mv, err := eng.TryMove("e2", "e4", "")
//	if err != nil {
//		// engine.ErrIllegalMove: nothing changed
//	}
//
//	mirror, err := engine.NewFromFEN(eng.FEN())
//
// Illegal input never panics; rejections are returned as sentinel errors
// and leave the engine state untouched.
package engine
