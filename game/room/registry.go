package room

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultCodeLength matches the original 5-character shareable codes.
	DefaultCodeLength = 5

	// DefaultMaxCodeAttempts bounds the regenerate-on-collision loop.
	DefaultMaxCodeAttempts = 5

	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Registry owns the code -> Room map. Codes are case-insensitive; rooms are
// in-memory only and live until their last occupant leaves or they expire
// as idle.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	codeLength  int
	maxAttempts int
	genCode     func(length int) string
}

// NewRegistry creates an empty registry with default code generation.
func NewRegistry() *Registry {
	return &Registry{
		rooms:       make(map[string]*Room),
		codeLength:  DefaultCodeLength,
		maxAttempts: DefaultMaxCodeAttempts,
		genCode:     generateCode,
	}
}

// SetCodeLength overrides the generated code length. Values below 1 are
// ignored.
func (g *Registry) SetCodeLength(n int) {
	if n >= 1 {
		g.codeLength = n
	}
}

// Create generates a fresh unique code and registers an empty room under
// it. Collisions are retried up to the attempt bound; when the bound is
// exhausted creation fails closed with ErrCodeSpaceExhausted instead of
// overwriting an existing room.
func (g *Registry) Create() (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code := strings.ToUpper(g.genCode(g.codeLength))
		if _, taken := g.rooms[code]; taken {
			continue
		}
		r := newRoom(code)
		g.rooms[code] = r
		return r, nil
	}
	return nil, ErrCodeSpaceExhausted
}

// Get looks up a room by code, case-insensitively.
func (g *Registry) Get(code string) (*Room, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	r, ok := g.rooms[strings.ToUpper(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Destroy removes a room. Destroying a nonexistent code is a no-op.
func (g *Registry) Destroy(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rooms, strings.ToUpper(code))
}

// List returns snapshots of all open rooms.
func (g *Registry) List() []Info {
	g.mu.RLock()
	rooms := make([]*Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		rooms = append(rooms, r)
	}
	g.mu.RUnlock()

	infos := make([]Info, 0, len(rooms))
	for _, r := range rooms {
		infos = append(infos, r.Snapshot())
	}
	return infos
}

// Count returns the number of open rooms.
func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// CleanupIdle removes rooms with no activity for longer than maxAge and
// returns snapshots of the removed rooms so the caller can release their
// occupants.
func (g *Registry) CleanupIdle(maxAge time.Duration) []Info {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	var reaped []Info
	for code, r := range g.rooms {
		if r.LastActiveAt().Before(cutoff) {
			delete(g.rooms, code)
			reaped = append(reaped, r.Snapshot())
		}
	}
	return reaped
}

// generateCode produces an uppercase alphanumeric code from cryptographic
// randomness.
func generateCode(length int) string {
	buf := make([]byte, length)
	rand.Read(buf)

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out)
}
