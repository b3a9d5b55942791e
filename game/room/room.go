package room

import (
	"sync"
	"time"

	"github.com/mvillota/chesslink/game/engine"
)

// ConnID is the opaque identity of one live connection, assigned by the
// transport layer.
type ConnID string

// Seats is the named two-slot structure binding connections to board sides.
// An empty ConnID means the seat is open. White is the creator and moves
// first.
type Seats struct {
	White ConnID `json:"white,omitempty"`
	Black ConnID `json:"black,omitempty"`
}

// Room is one two-participant game session. All mutations go through its
// methods; the game state is owned exclusively by the embedded engine.
type Room struct {
	code string

	mu           sync.Mutex
	seats        Seats
	eng          engine.Engine
	active       bool // both seats have been filled at some point
	abandoned    bool // a seat was vacated after the game went active
	createdAt    time.Time
	lastActiveAt time.Time
}

// Update carries the broadcast material for an accepted move or undo.
type Update struct {
	Move    *engine.Move
	FEN     string
	ToMove  string
	Outcome string
}

// Info is a read-only snapshot of a room for inspection surfaces.
type Info struct {
	Code         string    `json:"code"`
	Seats        Seats     `json:"seats"`
	FEN          string    `json:"fen"`
	ToMove       string    `json:"to_move"`
	Moves        int       `json:"moves"`
	Active       bool      `json:"active"`
	Abandoned    bool      `json:"abandoned"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

func newRoom(code string) *Room {
	now := time.Now()
	return &Room{
		code:         code,
		eng:          engine.New(),
		createdAt:    now,
		lastActiveAt: now,
	}
}

// Code returns the shareable room code.
func (r *Room) Code() string {
	return r.code
}

// Join assigns the next open seat to conn. The first caller gets white, the
// second gets black. Rejections: ErrRoomClosed once a seat has been
// abandoned, ErrAlreadySeated when conn already holds a seat here, and
// ErrRoomFull when both seats are taken.
func (r *Room) Join(conn ConnID) (engine.Side, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.abandoned {
		return 0, ErrRoomClosed
	}
	if r.seats.White == conn || r.seats.Black == conn {
		return 0, ErrAlreadySeated
	}
	if r.seats.White == "" {
		r.seats.White = conn
		r.touch()
		return engine.White, nil
	}
	if r.seats.Black == "" {
		r.seats.Black = conn
		r.active = true
		r.touch()
		return engine.Black, nil
	}
	return 0, ErrRoomFull
}

// SeatOf reports which side conn occupies, if any.
func (r *Room) SeatOf(conn ConnID) (engine.Side, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seatOf(conn)
}

func (r *Room) seatOf(conn ConnID) (engine.Side, bool) {
	switch conn {
	case "":
		return 0, false
	case r.seats.White:
		return engine.White, true
	case r.seats.Black:
		return engine.Black, true
	}
	return 0, false
}

// SubmitMove runs the full acceptance pipeline for a proposed move:
// participant check, turn authority, then engine validation. Any rejection
// leaves the game state untouched. On success the returned Update holds
// everything both seats must be told.
func (r *Room) SubmitMove(conn ConnID, from, to, promotion string) (Update, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	side, ok := r.seatOf(conn)
	if !ok {
		return Update{}, ErrNotAParticipant
	}
	if side != r.eng.SideToMove() {
		return Update{}, ErrNotYourTurn
	}

	mv, err := r.eng.TryMove(from, to, promotion)
	if err != nil {
		return Update{}, err
	}
	r.touch()

	return r.update(&mv), nil
}

// Undo reverts the most recent applied move. Restricted to participants;
// an empty history is an explicit ErrNoHistory rejection, not a silent
// no-op.
func (r *Room) Undo(conn ConnID) (Update, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seatOf(conn); !ok {
		return Update{}, ErrNotAParticipant
	}

	if _, err := r.eng.UndoLast(); err != nil {
		return Update{}, err
	}
	r.touch()

	return r.update(nil), nil
}

// Leave vacates conn's seat and returns the remaining occupant, if any.
// Once the game was active a vacated seat marks the room abandoned; the
// game cannot be resumed.
func (r *Room) Leave(conn ConnID) (remaining ConnID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	side, ok := r.seatOf(conn)
	if !ok {
		return "", ErrNotAParticipant
	}

	if side == engine.White {
		r.seats.White = ""
	} else {
		r.seats.Black = ""
	}
	if r.active {
		r.abandoned = true
	}
	r.touch()

	if r.seats.White != "" {
		return r.seats.White, nil
	}
	return r.seats.Black, nil
}

// Occupants returns the number of filled seats.
func (r *Room) Occupants() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	if r.seats.White != "" {
		n++
	}
	if r.seats.Black != "" {
		n++
	}
	return n
}

// Active reports whether both seats have been filled.
func (r *Room) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Seats returns the current seat assignments.
func (r *Room) Seats() Seats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats
}

// Snapshot returns a read-only view of the room, including the engine's
// serialized state and reported side to move.
func (r *Room) Snapshot() Info {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Info{
		Code:         r.code,
		Seats:        r.seats,
		FEN:          r.eng.FEN(),
		ToMove:       r.eng.SideToMove().String(),
		Moves:        len(r.eng.History()),
		Active:       r.active,
		Abandoned:    r.abandoned,
		CreatedAt:    r.createdAt,
		LastActiveAt: r.lastActiveAt,
	}
}

// LastActiveAt returns the time of the last seat or game-state mutation.
func (r *Room) LastActiveAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActiveAt
}

func (r *Room) update(mv *engine.Move) Update {
	outcome, _ := r.eng.Outcome()
	return Update{
		Move:    mv,
		FEN:     r.eng.FEN(),
		ToMove:  r.eng.SideToMove().String(),
		Outcome: outcome,
	}
}

func (r *Room) touch() {
	r.lastActiveAt = time.Now()
}
