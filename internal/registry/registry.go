// Package registry provides a global registry for renderer backends.
// Backends register themselves in init() functions, allowing the CLI
// to pick one by name without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// Options carries construction parameters. Backends ignore what they
// do not use.
type Options struct {
	// Out receives frames from file-style backends. Nil means discard.
	Out io.Writer
	// Dir, when set, makes file-style backends write one file per frame.
	Dir string
}

// Writer returns Out, or io.Discard when Out is nil.
func (o Options) Writer() io.Writer {
	if o.Out == nil {
		return io.Discard
	}
	return o.Out
}

// Session is what an interactive backend needs to play a game.
type Session struct {
	Controller *engine.Controller
	KeyMap     core.KeyMap
	// NewSeed returns the seed for a restart. Nil means keep the current one.
	NewSeed func() int64
	// Title is shown in the status panel.
	Title string
}

// Handle forwards one player action to the controller. st is the last
// status the frontend displayed. It reports whether the player asked to
// leave the game.
func (s Session) Handle(a core.Action, st engine.Status) (leave bool) {
	switch {
	case a.Gameplay():
		if st.Phase == engine.PhaseFalling && !st.Paused {
			s.Controller.Submit(engine.CommandForAction(a))
		}
	case a == core.ActionPause:
		if st.Phase == engine.PhaseFalling {
			s.Controller.SetPaused(!st.Paused)
		}
	case a == core.ActionRestart:
		seed := st.Seed
		if s.NewSeed != nil {
			seed = s.NewSeed()
		}
		s.Controller.Restart(seed)
	case a == core.ActionBack, a == core.ActionQuit:
		return true
	}
	return false
}

// Frontend is implemented by interactive backends that own the terminal
// and feed player input to the controller.
type Frontend interface {
	engine.Renderer
	// Run blocks until the player quits or ctx is cancelled.
	Run(ctx context.Context, s Session) error
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	ID          string
	Title       string
	Interactive bool
}

// Factory creates a new renderer instance.
type Factory func(opts Options) (engine.Renderer, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]BackendInfo)
	mu        sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend package's init() function.
// Panics if a backend with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", id))
	}

	factories[id] = f

	// Probe a throwaway instance to learn whether it is interactive
	info := BackendInfo{ID: id, Title: title}
	if r, err := f(Options{}); err == nil {
		_, info.Interactive = r.(Frontend)
	}
	infos[id] = info
}

// List returns information about all registered backends, sorted by ID.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a backend by its ID.
// Returns an error if the ID is not registered.
func Create(id string, opts Options) (engine.Renderer, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", id)
	}

	r, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return r, nil
}

// CreateFrontend instantiates an interactive backend by its ID.
func CreateFrontend(id string, opts Options) (Frontend, error) {
	r, err := Create(id, opts)
	if err != nil {
		return nil, err
	}
	f, ok := r.(Frontend)
	if !ok {
		return nil, fmt.Errorf("registry: backend %q is not interactive", id)
	}
	return f, nil
}

// Exists checks if a backend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
