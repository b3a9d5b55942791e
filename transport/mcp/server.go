package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvillota/chesslink/game/room"
)

// ConnectionCounter reports live connection totals; implemented by the
// websocket hub.
type ConnectionCounter interface {
	ClientCount() int
}

// Server is the MCP tool server over the room registry.
type Server struct {
	registry    *room.Registry
	connections ConnectionCounter
	mcpServer   *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(registry *room.Registry, connections ConnectionCounter, version string) *Server {
	s := &Server{
		registry:    registry,
		connections: connections,
	}

	s.mcpServer = server.NewMCPServer(
		"Chesslink Room Server",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Chesslink - MCP Interface

Read-only inspection of the two-player chess room server.

AVAILABLE TOOLS:
- list_rooms: List all open rooms
- get_room: Get one room's snapshot (seats, FEN, side to move)
- server_stats: Room and connection counts

Gameplay happens over the WebSocket protocol; these tools only observe.`),
	)

	s.registerTools()
	return s
}

// HandleMessage feeds one raw JSON-RPC message to the MCP server.
func (s *Server) HandleMessage(ctx context.Context, body []byte) interface{} {
	return s.mcpServer.HandleMessage(ctx, body)
}

// registerTools registers all MCP tools.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all open rooms with seats, move counts, and activity times",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListRooms)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_room",
		Description: "Get the snapshot of one room: seats, serialized position, side to move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_code": map[string]interface{}{
					"type":        "string",
					"description": "Shareable room code (case-insensitive)",
				},
			},
			Required: []string{"room_code"},
		},
	}, s.handleGetRoom)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "server_stats",
		Description: "Room and connection totals",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleServerStats)
}

func (s *Server) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rooms := s.registry.List()

	result := fmt.Sprintf("Open Rooms (%d):\n\n", len(rooms))
	for _, info := range rooms {
		result += fmt.Sprintf("- %s (occupants: %d, moves: %d, to move: %s, last active: %s)\n",
			info.Code, occupants(info.Seats), info.Moves, info.ToMove,
			info.LastActiveAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleGetRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	code, _ := args["room_code"].(string)

	r, err := s.registry.Get(code)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(r.Snapshot(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleServerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := fmt.Sprintf("Rooms: %d\nConnections: %d\n",
		s.registry.Count(), s.connections.ClientCount())
	return mcp.NewToolResultText(result), nil
}

func occupants(seats room.Seats) int {
	n := 0
	if seats.White != "" {
		n++
	}
	if seats.Black != "" {
		n++
	}
	return n
}
