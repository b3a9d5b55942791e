package protocol

import (
	"encoding/json"
	"log"
	"time"

	"github.com/mvillota/chesslink/game/room"
)

// Sender delivers outbound messages to connections. The websocket hub
// implements it; tests use a recording fake. Implementations must preserve
// per-connection ordering.
type Sender interface {
	Send(conn room.ConnID, msg ServerMessage)
}

// Handler dispatches inbound messages to the registry and rooms and emits
// the resulting replies and broadcasts. It owns no state beyond its
// collaborators and expects to be driven from a single event loop.
type Handler struct {
	registry *room.Registry
	tracker  *room.Tracker
	sender   Sender
}

// NewHandler wires a handler to its collaborators.
func NewHandler(registry *room.Registry, tracker *room.Tracker, sender Sender) *Handler {
	return &Handler{
		registry: registry,
		tracker:  tracker,
		sender:   sender,
	}
}

// HandleMessage decodes and dispatches one inbound frame from conn.
// Malformed or unknown frames get an error reply; nothing here panics on
// bad input.
func (h *Handler) HandleMessage(conn room.ConnID, data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sender.Send(conn, Error("Malformed message.", ReasonBadMessage))
		return
	}

	switch msg.Type {
	case TypeCreateRoom:
		h.handleCreate(conn)
	case TypeJoinRoom:
		h.handleJoin(conn, msg.Code)
	case TypeMove:
		h.handleMove(conn, msg)
	case TypeUndoMove:
		h.handleUndo(conn, msg.Code)
	default:
		h.sender.Send(conn, Error("Unknown message type.", ReasonBadMessage))
	}
}

// handleCreate makes a new room with the creator seated as white.
func (h *Handler) handleCreate(conn room.ConnID) {
	if _, bound := h.tracker.RoomOf(conn); bound {
		h.sender.Send(conn, rejection(room.ErrAlreadyInRoom))
		return
	}

	r, err := h.registry.Create()
	if err != nil {
		h.sender.Send(conn, rejection(err))
		return
	}

	if _, err := r.Join(conn); err != nil {
		// fresh room, cannot be full; fail the creation rather than leak it
		h.registry.Destroy(r.Code())
		h.sender.Send(conn, rejection(err))
		return
	}
	if err := h.tracker.Bind(conn, r.Code()); err != nil {
		h.registry.Destroy(r.Code())
		h.sender.Send(conn, rejection(err))
		return
	}

	h.sender.Send(conn, RoomCreated(r.Code()))
	log.Printf("Room created: %s by %s", r.Code(), conn)
}

// handleJoin seats conn in an existing room and, when this fills the second
// seat, broadcasts gameStart to both participants.
func (h *Handler) handleJoin(conn room.ConnID, code string) {
	if _, bound := h.tracker.RoomOf(conn); bound {
		h.sender.Send(conn, rejection(room.ErrAlreadyInRoom))
		return
	}

	r, err := h.registry.Get(code)
	if err != nil {
		h.sender.Send(conn, rejection(err))
		return
	}

	if _, err := r.Join(conn); err != nil {
		h.sender.Send(conn, rejection(err))
		return
	}
	if err := h.tracker.Bind(conn, r.Code()); err != nil {
		h.sender.Send(conn, rejection(err))
		return
	}

	info := r.Snapshot()
	log.Printf("Player %s joined room %s", conn, r.Code())

	if info.Active {
		h.broadcast(info.Seats, GameStart(info))
	}
}

// handleMove runs the move pipeline and broadcasts the accepted result to
// both seats. Rejections go to the submitter alone.
func (h *Handler) handleMove(conn room.ConnID, msg ClientMessage) {
	r, err := h.registry.Get(msg.Code)
	if err != nil {
		h.sender.Send(conn, rejection(err))
		return
	}

	up, err := r.SubmitMove(conn, msg.From, msg.To, msg.Promotion)
	if err != nil {
		h.sender.Send(conn, rejection(err))
		return
	}

	h.broadcast(r.Seats(), BoardUpdate(r.Code(), up))
}

// handleUndo reverts the last move and broadcasts the restored state.
func (h *Handler) handleUndo(conn room.ConnID, code string) {
	r, err := h.registry.Get(code)
	if err != nil {
		h.sender.Send(conn, rejection(err))
		return
	}

	up, err := r.Undo(conn)
	if err != nil {
		h.sender.Send(conn, rejection(err))
		return
	}

	h.broadcast(r.Seats(), BoardUpdate(r.Code(), up))
}

// HandleDisconnect cleans up after a dropped connection: the tracker names
// the room, the seat is vacated, the opponent (if any) is notified, and an
// emptied room is destroyed so its code frees up.
func (h *Handler) HandleDisconnect(conn room.ConnID) {
	code, bound := h.tracker.Release(conn)
	if !bound {
		return
	}

	r, err := h.registry.Get(code)
	if err != nil {
		// already reaped (idle cleanup); nothing left to do
		return
	}

	remaining, err := r.Leave(conn)
	if err != nil {
		return
	}

	if remaining != "" {
		h.sender.Send(remaining, Error("Opponent disconnected.", ReasonOpponentDisconnected))
		return
	}

	h.registry.Destroy(code)
	log.Printf("Deleted empty room: %s", code)
}

// ReapIdle destroys rooms idle for longer than maxAge. Occupants of a
// reaped room have their bindings released and are told the room closed,
// so a still-live connection is free to create or join again. Must run on
// the event loop like every other mutation.
func (h *Handler) ReapIdle(maxAge time.Duration) int {
	reaped := h.registry.CleanupIdle(maxAge)
	for _, info := range reaped {
		for _, conn := range []room.ConnID{info.Seats.White, info.Seats.Black} {
			if conn == "" {
				continue
			}
			h.tracker.Release(conn)
			h.sender.Send(conn, Error("Room closed.", ReasonRoomClosed))
		}
		log.Printf("Reaped idle room: %s", info.Code)
	}
	return len(reaped)
}

// broadcast delivers msg to both occupied seats, white first. Both sends
// happen within the same event-loop step, so every accepted update reaches
// the two seats in identical order.
func (h *Handler) broadcast(seats room.Seats, msg ServerMessage) {
	if seats.White != "" {
		h.sender.Send(seats.White, msg)
	}
	if seats.Black != "" {
		h.sender.Send(seats.Black, msg)
	}
}
