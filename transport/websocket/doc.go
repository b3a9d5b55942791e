// Package websocket provides the WebSocket transport for the room server.
//
// The websocket package implements:
//   - Connection upgrade and lifecycle management
//   - A per-connection opaque identity (UUID) assigned at registration
//   - The single-threaded event loop serializing all protocol handling
//   - Per-connection FIFO outbound queues
//
// Architecture:
//
// The package uses a hub-and-spoke model. Each client connection runs a
// read pump and a write pump; the read pump feeds inbound frames into the
// hub, whose Run loop processes register, unregister, and inbound events
// one at a time and hands frames to the protocol handler. Because the loop
// processes each message to completion before the next begins, room and
// seat state is never mutated concurrently and the handler needs no
// locking of its own.
//
// Ordering:
//
// Outbound messages are enqueued into per-client buffered channels in the
// order the handler emits them, and the write pump drains each queue in
// FIFO order, one message per frame. Accepted moves therefore reach both
// seats in exactly the order they were accepted.
//
// Usage:
//
//	hub := websocket.NewHub()
//	handler := protocol.NewHandler(registry, tracker, hub)
//	hub.SetHandler(handler)
//	go hub.Run()
//
//	router.HandleFunc("/ws", hub.ServeWS)
package websocket
