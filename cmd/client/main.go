// Command client is a terminal client for the chesslink server.
//
// It keeps a local mirror of the game by loading every broadcast FEN into
// its own engine instance, renders the board after each update, and reads
// commands from stdin:
//
//	create            create a room and wait for an opponent
//	join CODE         join an existing room
//	move e2 e4 [q]    submit a move (optional promotion piece)
//	undo              revert the last move
//	quit              exit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/notnil/chess"

	"github.com/mvillota/chesslink/game/protocol"
)

var serverURL = flag.String("server", "ws://localhost:8080/ws", "WebSocket URL of the chesslink server")

// client holds the local view of one session.
type client struct {
	conn *websocket.Conn

	id     string
	code   string
	color  string
	mirror *chess.Game
}

func main() {
	flag.Parse()
	log.SetFlags(0)

	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", *serverURL, err)
	}
	defer conn.Close()

	c := &client{conn: conn}

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.readLoop()
	}()

	go c.inputLoop()

	<-done
	log.Println("Connection closed")
}

// readLoop applies every server frame to the local mirror.
func (c *client) readLoop() {
	for {
		var msg protocol.ServerMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case protocol.TypeConnected:
			c.id = msg.ID

		case protocol.TypeRoomCreated:
			c.code = msg.Code
			fmt.Printf("Room created. Share this code: %s\n", msg.Code)
			fmt.Println("Waiting for an opponent...")

		case protocol.TypeGameStart:
			c.code = msg.Code
			if msg.White == c.id {
				c.color = "white"
			} else {
				c.color = "black"
			}
			fmt.Printf("Game on! You play %s.\n", c.color)
			c.loadAndRender(msg.FEN, msg.ToMove)

		case protocol.TypeBoardUpdate:
			if msg.Move != nil {
				fmt.Printf("Move played: %s -> %s (%s)\n", msg.Move.From, msg.Move.To, msg.Move.SAN)
			} else {
				fmt.Println("Move undone.")
			}
			c.loadAndRender(msg.FEN, msg.ToMove)
			if msg.Outcome != "" {
				fmt.Printf("Game over: %s\n", msg.Outcome)
			}

		case protocol.TypeInvalidMove:
			fmt.Println("Invalid move.")

		case protocol.TypeError:
			fmt.Printf("Server: %s\n", msg.Message)
		}
	}
}

// loadAndRender resynchronizes the mirror from a broadcast snapshot.
func (c *client) loadAndRender(fen, toMove string) {
	opt, err := chess.FEN(fen)
	if err != nil {
		fmt.Printf("Received an unreadable position: %v\n", err)
		return
	}
	c.mirror = chess.NewGame(opt)

	fmt.Println(c.mirror.Position().Board().Draw())
	if toMove == c.color {
		fmt.Println("Your move.")
	} else {
		fmt.Printf("Waiting for %s.\n", toMove)
	}
}

// inputLoop parses stdin commands into protocol messages.
func (c *client) inputLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "create":
			c.send(protocol.ClientMessage{Type: protocol.TypeCreateRoom})

		case "join":
			if len(fields) < 2 {
				fmt.Println("Usage: join CODE")
				continue
			}
			c.send(protocol.ClientMessage{Type: protocol.TypeJoinRoom, Code: fields[1]})

		case "move":
			if len(fields) < 3 {
				fmt.Println("Usage: move FROM TO [PROMOTION]")
				continue
			}
			msg := protocol.ClientMessage{
				Type: protocol.TypeMove,
				Code: c.code,
				From: fields[1],
				To:   fields[2],
			}
			if len(fields) > 3 {
				msg.Promotion = fields[3]
			}
			c.send(msg)

		case "undo":
			c.send(protocol.ClientMessage{Type: protocol.TypeUndoMove, Code: c.code})

		case "quit", "exit":
			c.conn.Close()
			return

		default:
			fmt.Println("Commands: create | join CODE | move FROM TO [PROMOTION] | undo | quit")
		}
	}
}

func (c *client) send(msg protocol.ClientMessage) {
	if err := c.conn.WriteJSON(msg); err != nil {
		fmt.Printf("Send failed: %v\n", err)
	}
}
