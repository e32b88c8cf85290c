// internal/store/memory.go
//
// In-memory session store for oracle games served over HTTP.
//
// Characteristics:
//   - Stores *game.Game values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Finished games can be swept once they are older than a cutoff.
//   - Save snapshots whether a game is finished; Sweep reads only that
//     snapshot, never the game itself. Callers that mutate a game must Save it
//     under the same lock that guards the mutation.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordler/internal/game"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete forgets a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Len reports how many games are held.
	Len() int
}

type entry struct {
	g        *game.Game
	finished bool
	touched  time.Time
}

// Memory is a map-based Store implementation.
type Memory struct {
	mu    sync.RWMutex
	games map[string]entry
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{games: make(map[string]entry), now: time.Now}
}

func (m *Memory) Save(ctx context.Context, g *game.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = entry{g: g, finished: g.Finished, touched: m.now()}
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*game.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e.g, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Sweep drops games saved as finished more than maxAge ago and returns how
// many went.
func (m *Memory) Sweep(maxAge time.Duration) int {
	cutoff := m.now().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.finished && e.touched.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}
