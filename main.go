// Command chesslink starts the two-player chess room server.
//
// It exposes a WebSocket endpoint for gameplay (room creation, joining,
// moves, undo), a read-only REST API for room inspection, and an /mcp HTTP
// endpoint for agent tooling. Flags control host/port, debug logging, and
// optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/mvillota/chesslink/api"
	"github.com/mvillota/chesslink/config"
	"github.com/mvillota/chesslink/game/protocol"
	"github.com/mvillota/chesslink/game/room"
	"github.com/mvillota/chesslink/transport/mcp"
	"github.com/mvillota/chesslink/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Chesslink Room Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "chesslink",
		Usage:   "two-player chess room server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "HTTP server host"},
			&cli.IntFlag{Name: "port", Usage: "HTTP server port"},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token (or use NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// run wires the services and serves until a shutdown signal arrives.
func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override the environment
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cmd.Bool("debug") {
		cfg.Debug = true
	}
	if cmd.Bool("ngrok") {
		cfg.NgrokEnabled = true
	}
	if cmd.IsSet("ngrok-auth") {
		cfg.NgrokAuth = cmd.String("ngrok-auth")
	}
	if cmd.IsSet("ngrok-domain") {
		cfg.NgrokDomain = cmd.String("ngrok-domain")
	}

	// Setup logging
	if cfg.Debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	log.Printf("Starting %s v%s", AppName, Version)

	// Core services
	registry := room.NewRegistry()
	registry.SetCodeLength(cfg.CodeLength)
	tracker := room.NewTracker()

	hub := websocket.NewHub()
	handler := protocol.NewHandler(registry, tracker, hub)
	hub.SetHandler(handler)
	go hub.Run()

	// Idle-room hardening
	if cfg.IdleTimeout > 0 && cfg.CleanupInterval > 0 {
		go roomCleanupRoutine(hub, handler, cfg.CleanupInterval, cfg.IdleTimeout)
	}

	apiServer := api.NewServer(registry, hub)
	mcpServer := mcp.NewServer(registry, hub, Version)

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	addr := cfg.Addr()
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Start ngrok tunnel if enabled
	if cfg.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, cfg, mainRouter)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// roomCleanupRoutine periodically reaps rooms with no activity within the
// retention window. The sweep itself runs on the hub's event loop so seat
// and binding cleanup stays serialized with live traffic.
func roomCleanupRoutine(hub *websocket.Hub, handler *protocol.Handler, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		hub.Dispatch(func() {
			if removed := handler.ReapIdle(maxAge); removed > 0 {
				log.Printf("Cleaned up %d idle rooms", removed)
			}
		})
	}
}

// runNgrokTunnel provisions a public tunnel and serves the same router
// through it.
func runNgrokTunnel(ctx context.Context, cfg *config.Config, handler http.Handler) {
	if cfg.NgrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if cfg.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.NgrokDomain))
		log.Printf("Using custom ngrok domain: %s", cfg.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(cfg.NgrokAuth),
	)
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}
