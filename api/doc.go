// Package api provides the HTTP surface of the room server.
//
// The api package implements:
//   - Read-only REST endpoints for room inspection
//   - A health endpoint for probes
//   - The WebSocket upgrade endpoint
//
// Endpoints:
//
//	GET /healthz            - liveness probe
//	GET /api/rooms          - list open rooms
//	GET /api/rooms/{code}   - inspect one room (case-insensitive code)
//	GET /api/stats          - room and connection counts
//	GET /ws                 - WebSocket upgrade; all gameplay happens here
//
// Room mutation is deliberately absent from REST: seats are bound to live
// WebSocket connections, so rooms can only be created and joined over the
// socket protocol.
//
// Request/Response Format:
//
// All endpoints return JSON. Errors are returned as JSON with appropriate
// HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
