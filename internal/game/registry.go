package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

// Mode is the interface all game modes implement. A mode owns one or
// more sessions and layers its rules (timers, hint budgets, turn
// alternation) over the base move algorithm. Extras like hints or
// deadlines are exposed through optional interfaces the host
// type-asserts for.
type Mode interface {
	// ID returns a unique identifier (e.g. "classic", "timed").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary for mode listings.
	Description() string

	// Session returns the active session. For turn-based modes this
	// is the session whose turn it is.
	Session() *Session

	// Move applies a move under the mode's rules.
	Move(dir board.Direction) (bool, error)

	// Poll runs the mode's clock checks (move deadlines, autosave).
	Poll(now time.Time)

	// Status returns the overall mode status.
	Status() Status
}

// Hinter is implemented by modes that offer AI move suggestions.
type Hinter interface {
	Hint() (board.Direction, bool)
	HintsLeft() int
}

// Deadliner is implemented by modes with a per-move timer.
type Deadliner interface {
	Deadline() time.Time
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID          string
	Title       string
	Description string
}

// Env carries the shared collaborators handed to mode factories.
type Env struct {
	RNG    *rand.Rand
	Opts   SessionOptions
	Choice string // mode-specific selector, e.g. a challenge name
}

// Factory creates a new instance of a mode.
type Factory func(cfg config.Config, env Env) (Mode, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ModeInfo)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from a mode's init() function.
// Panics if a mode with the same ID is already registered.
func Register(info ModeInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("game: mode %q already registered", info.ID))
	}
	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a mode by its ID.
// Returns an error if the mode ID is not registered.
func Create(id string, cfg config.Config, env Env) (Mode, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("game: unknown mode %q", id)
	}
	if env.RNG == nil {
		env.RNG = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if env.Opts.Mode == "" {
		env.Opts.Mode = id
	}
	return f(cfg, env)
}

// modeInfo returns the registered metadata for a mode ID.
func modeInfo(id string) ModeInfo {
	mu.RLock()
	defer mu.RUnlock()
	return infos[id]
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
