package room

import "sync"

// Tracker maps each live connection to the room it occupies. A connection
// may occupy at most one room at a time; further create/join attempts are
// rejected. On disconnect the tracker is the sole source of truth for which
// room needs cleanup, so it is updated in the same event-loop step as the
// seat mutation it mirrors.
type Tracker struct {
	mu    sync.Mutex
	rooms map[ConnID]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{rooms: make(map[ConnID]string)}
}

// Bind records that conn occupies the room with the given code. Returns
// ErrAlreadyInRoom when conn is already bound elsewhere.
func (t *Tracker) Bind(conn ConnID, code string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, bound := t.rooms[conn]; bound {
		return ErrAlreadyInRoom
	}
	t.rooms[conn] = code
	return nil
}

// RoomOf returns the code of the room conn occupies, if any.
func (t *Tracker) RoomOf(conn ConnID) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	code, ok := t.rooms[conn]
	return code, ok
}

// Release drops conn's binding and returns the code it was bound to.
// Releasing an unbound connection is a no-op.
func (t *Tracker) Release(conn ConnID) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	code, ok := t.rooms[conn]
	if ok {
		delete(t.rooms, conn)
	}
	return code, ok
}

// Count returns the number of tracked connections.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rooms)
}
