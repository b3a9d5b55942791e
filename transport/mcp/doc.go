// Package mcp exposes read-only room inspection over the Model Context
// Protocol.
//
// The package wraps an MCP tool server around the room registry so agents
// and tooling can observe the server without speaking the WebSocket
// protocol:
//
//   - list_rooms: all open rooms with occupancy and move counts
//   - get_room: one room's full snapshot by code
//   - server_stats: room and connection totals
//
// Gameplay is intentionally not reachable from here; seats are bound to
// live WebSocket connections.
//
// The server is mounted by handing raw JSON-RPC bodies to
// Server.HandleMessage from an HTTP endpoint.
package mcp
