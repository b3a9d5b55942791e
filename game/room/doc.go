// Package room provides room lifecycle management for two-player sessions.
//
// The room package implements:
//   - Thread-safe room storage keyed by short shareable codes
//   - Collision-resistant code generation with a bounded retry loop
//   - Seat (color) assignment with turn-authority enforcement
//   - Connection-to-room tracking for disconnect cleanup
//   - Room cleanup and idle expiration
//
// Core Types:
//
// Registry owns the code -> Room map for the life of the process; there is
// no package-level state, callers pass the instance explicitly. Room is one
// in-progress pairing: two named seats, one engine-backed game state. The
// side to move is always read back from the engine, never cached on the
// room. Tracker records which room each live connection occupies and is the
// single source of truth during disconnect cleanup.
//
// Room Codes:
//
// Rooms use 5-character uppercase alphanumeric codes generated from
// cryptographic randomness. Lookups are case-insensitive. Generation
// retries on collision a bounded number of times and fails closed with
// ErrCodeSpaceExhausted rather than overwriting an existing room.
//
// Seats:
//
// The two seats are the named pair {White, Black} rather than array
// positions. White is always the creator and moves first. Once a seat is
// vacated the game is abandoned; the slot can never be re-claimed.
//
// Concurrency:
//
// All seat and game-state mutations arrive from a single event loop, one
// message at a time. The mutexes here exist because the REST and MCP read
// paths take snapshots from other goroutines.
package room
