// Package protocol implements the message-level protocol between clients
// and the room server.
//
// The protocol package implements:
//   - The JSON wire message types for both directions
//   - The per-inbound-message dispatcher (Handler)
//   - The rejection taxonomy as machine-readable reason codes
//
// Message Protocol:
//
// Client to server, discriminated by "type":
//   - {type: "createRoom"}
//   - {type: "joinRoom", code: "AB12C"}
//   - {type: "move", code: "AB12C", from: "e2", to: "e4", promotion: "q"}
//   - {type: "undoMove", code: "AB12C"}
//
// Server to client:
//   - {type: "connected", id} assigned connection identity
//   - {type: "roomCreated", code}
//   - {type: "gameStart", fen, white, black, toMove}
//   - {type: "boardUpdate", fen, move, toMove, outcome}
//   - {type: "invalidMove"}
//   - {type: "errorMessage", message, reason}
//
// Dispatching:
//
// Handler is a stateless dispatcher: each inbound (connection, message)
// pair performs exactly one registry/room operation and emits the resulting
// outbound messages through a Sender. Accepted moves and undos are
// broadcast to both seats; every rejection goes only to the originating
// connection and never mutates room state. Intents arriving in a
// nonsensical order (a move for an unknown room, a join while already
// seated) degrade to an error reply, never a crash.
//
// The Handler holds no per-message state of its own, so it is safe to
// invoke from the transport's event loop; it relies on that loop to process
// one message to completion before the next begins.
package protocol
