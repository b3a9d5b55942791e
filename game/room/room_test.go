package room

import (
	"errors"
	"testing"

	"github.com/mvillota/chesslink/game/engine"
)

func TestRoomJoin(t *testing.T) {
	t.Run("creator gets white, second gets black", func(t *testing.T) {
		r := newRoom("AB12C")

		side, err := r.Join("alice")
		if err != nil {
			t.Fatalf("First join failed: %v", err)
		}
		if side != engine.White {
			t.Errorf("Expected creator to seat white, got %v", side)
		}
		if r.Active() {
			t.Error("Room should not be active with one seat")
		}

		side, err = r.Join("bob")
		if err != nil {
			t.Fatalf("Second join failed: %v", err)
		}
		if side != engine.Black {
			t.Errorf("Expected second join to seat black, got %v", side)
		}
		if !r.Active() {
			t.Error("Room should be active with both seats filled")
		}
	})

	t.Run("third join is rejected with room full", func(t *testing.T) {
		r := newRoom("AB12C")
		r.Join("alice")
		r.Join("bob")

		_, err := r.Join("carol")
		if !errors.Is(err, ErrRoomFull) {
			t.Fatalf("Expected ErrRoomFull, got %v", err)
		}
		if n := r.Occupants(); n != 2 {
			t.Errorf("Rejected join changed occupancy: %d", n)
		}
	})

	t.Run("same connection cannot hold both seats", func(t *testing.T) {
		r := newRoom("AB12C")
		r.Join("alice")

		_, err := r.Join("alice")
		if !errors.Is(err, ErrAlreadySeated) {
			t.Fatalf("Expected ErrAlreadySeated, got %v", err)
		}
	})

	t.Run("vacated seat cannot be re-claimed", func(t *testing.T) {
		r := newRoom("AB12C")
		r.Join("alice")
		r.Join("bob")

		if _, err := r.Leave("alice"); err != nil {
			t.Fatalf("Leave failed: %v", err)
		}

		_, err := r.Join("carol")
		if !errors.Is(err, ErrRoomClosed) {
			t.Fatalf("Expected ErrRoomClosed, got %v", err)
		}
	})
}

func TestRoomSubmitMove(t *testing.T) {
	setup := func(t *testing.T) *Room {
		t.Helper()
		r := newRoom("AB12C")
		if _, err := r.Join("alice"); err != nil {
			t.Fatalf("join failed: %v", err)
		}
		if _, err := r.Join("bob"); err != nil {
			t.Fatalf("join failed: %v", err)
		}
		return r
	}

	t.Run("accepted move is broadcast material for both seats", func(t *testing.T) {
		r := setup(t)

		up, err := r.SubmitMove("alice", "e2", "e4", "")
		if err != nil {
			t.Fatalf("Legal move rejected: %v", err)
		}
		if up.Move == nil || up.Move.From != "e2" || up.Move.To != "e4" {
			t.Errorf("Unexpected applied move: %+v", up.Move)
		}
		if up.ToMove != "black" {
			t.Errorf("Expected black to move next, got %q", up.ToMove)
		}
		if up.FEN == "" {
			t.Error("Update missing serialized state")
		}
	})

	t.Run("out of turn is rejected without state change", func(t *testing.T) {
		r := setup(t)
		before := r.Snapshot().FEN

		_, err := r.SubmitMove("bob", "e7", "e5", "")
		if !errors.Is(err, ErrNotYourTurn) {
			t.Fatalf("Expected ErrNotYourTurn, got %v", err)
		}
		if r.Snapshot().FEN != before {
			t.Error("Rejected move mutated state")
		}
	})

	t.Run("non-participant is rejected", func(t *testing.T) {
		r := setup(t)

		_, err := r.SubmitMove("carol", "e2", "e4", "")
		if !errors.Is(err, ErrNotAParticipant) {
			t.Fatalf("Expected ErrNotAParticipant, got %v", err)
		}
	})

	t.Run("illegal move is rejected without state change", func(t *testing.T) {
		r := setup(t)
		if _, err := r.SubmitMove("alice", "e2", "e4", ""); err != nil {
			t.Fatalf("setup move failed: %v", err)
		}
		before := r.Snapshot().FEN

		// no black piece on e2
		_, err := r.SubmitMove("bob", "e2", "e4", "")
		if !errors.Is(err, engine.ErrIllegalMove) {
			t.Fatalf("Expected ErrIllegalMove, got %v", err)
		}
		if r.Snapshot().FEN != before {
			t.Error("Rejected move mutated state")
		}
		if r.Snapshot().ToMove != "black" {
			t.Error("Rejected move flipped the turn")
		}
	})

	t.Run("turn alternates across accepted moves", func(t *testing.T) {
		r := setup(t)

		if _, err := r.SubmitMove("alice", "e2", "e4", ""); err != nil {
			t.Fatalf("white move failed: %v", err)
		}
		up, err := r.SubmitMove("bob", "e7", "e5", "")
		if err != nil {
			t.Fatalf("black move failed: %v", err)
		}
		if up.ToMove != "white" {
			t.Errorf("Expected white to move, got %q", up.ToMove)
		}
	})
}

func TestRoomUndo(t *testing.T) {
	setup := func(t *testing.T) *Room {
		t.Helper()
		r := newRoom("AB12C")
		r.Join("alice")
		r.Join("bob")
		return r
	}

	t.Run("participant undo reverts and reports state", func(t *testing.T) {
		r := setup(t)
		start := r.Snapshot().FEN
		if _, err := r.SubmitMove("alice", "e2", "e4", ""); err != nil {
			t.Fatalf("setup move failed: %v", err)
		}

		up, err := r.Undo("bob")
		if err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if up.FEN != start {
			t.Errorf("Expected starting position after undo, got %q", up.FEN)
		}
		if up.ToMove != "white" {
			t.Errorf("Expected white to move after undo, got %q", up.ToMove)
		}
	})

	t.Run("non-participant undo is rejected", func(t *testing.T) {
		r := setup(t)
		r.SubmitMove("alice", "e2", "e4", "")

		_, err := r.Undo("carol")
		if !errors.Is(err, ErrNotAParticipant) {
			t.Fatalf("Expected ErrNotAParticipant, got %v", err)
		}
	})

	t.Run("empty history is an explicit rejection", func(t *testing.T) {
		r := setup(t)

		_, err := r.Undo("alice")
		if !errors.Is(err, engine.ErrNoHistory) {
			t.Fatalf("Expected ErrNoHistory, got %v", err)
		}
	})
}

func TestRoomLeave(t *testing.T) {
	t.Run("remaining occupant reported", func(t *testing.T) {
		r := newRoom("AB12C")
		r.Join("alice")
		r.Join("bob")

		remaining, err := r.Leave("alice")
		if err != nil {
			t.Fatalf("Leave failed: %v", err)
		}
		if remaining != "bob" {
			t.Errorf("Expected bob to remain, got %q", remaining)
		}
		if n := r.Occupants(); n != 1 {
			t.Errorf("Expected 1 occupant, got %d", n)
		}
	})

	t.Run("last leave empties the room", func(t *testing.T) {
		r := newRoom("AB12C")
		r.Join("alice")

		remaining, err := r.Leave("alice")
		if err != nil {
			t.Fatalf("Leave failed: %v", err)
		}
		if remaining != "" {
			t.Errorf("Expected no remaining occupant, got %q", remaining)
		}
		if n := r.Occupants(); n != 0 {
			t.Errorf("Expected 0 occupants, got %d", n)
		}
	})

	t.Run("leaving a room you are not in fails", func(t *testing.T) {
		r := newRoom("AB12C")
		r.Join("alice")

		if _, err := r.Leave("bob"); !errors.Is(err, ErrNotAParticipant) {
			t.Fatalf("Expected ErrNotAParticipant, got %v", err)
		}
	})
}

func TestRoomSnapshot(t *testing.T) {
	r := newRoom("AB12C")
	r.Join("alice")
	r.Join("bob")
	r.SubmitMove("alice", "e2", "e4", "")

	info := r.Snapshot()
	if info.Code != "AB12C" {
		t.Errorf("Unexpected code %q", info.Code)
	}
	if info.Seats.White != "alice" || info.Seats.Black != "bob" {
		t.Errorf("Unexpected seats %+v", info.Seats)
	}
	if info.Moves != 1 {
		t.Errorf("Expected 1 move, got %d", info.Moves)
	}
	if info.ToMove != "black" {
		t.Errorf("Expected black to move, got %q", info.ToMove)
	}
	if !info.Active || info.Abandoned {
		t.Errorf("Unexpected lifecycle flags: active=%v abandoned=%v", info.Active, info.Abandoned)
	}
}
