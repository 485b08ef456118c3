package command

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/state"
	"github.com/dshills/blockpad/internal/engine/transform"
	"github.com/dshills/blockpad/internal/input/key"
	"github.com/dshills/blockpad/internal/input/keymap"
)

// ErrUnknownCommand is returned for commands without a handler.
var ErrUnknownCommand = errors.New("unknown command")

// Handler applies a command to a state.
type Handler func(s state.EditorState) (state.EditorState, error)

// Router resolves key events to commands and commands to handlers.
type Router struct {
	mu       sync.RWMutex
	keymaps  *keymap.Registry
	handlers map[Command]Handler
}

// NewRouter creates a router over keymaps with the built-in editing handlers
// registered. A nil registry is replaced by one holding the default keymap.
func NewRouter(keymaps *keymap.Registry) *Router {
	if keymaps == nil {
		keymaps = keymap.NewRegistry()
		_ = keymaps.Register(keymap.Default())
	}
	r := &Router{
		keymaps:  keymaps,
		handlers: make(map[Command]Handler),
	}
	r.registerBuiltins()
	return r
}

// Keymaps returns the registry used for key binding.
func (r *Router) Keymaps() *keymap.Registry {
	return r.keymaps
}

// Register sets the handler for cmd, replacing any previous one.
func (r *Router) Register(cmd Command, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[cmd] = h
}

// Unregister removes the handler for cmd.
func (r *Router) Unregister(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, cmd)
}

// Route returns the handler for cmd.
func (r *Router) Route(cmd Command) (Handler, bool) {
	r.mu.RLock()
	h, ok := r.handlers[cmd]
	r.mu.RUnlock()
	if ok {
		return h, true
	}

	arg := cmd.Argument()
	if arg == "" {
		return nil, false
	}
	switch cmd.Namespace() {
	case StyleNamespace:
		return toggleStyle(document.Style(arg)), true
	case BlockNamespace:
		return toggleBlock(document.BlockType(arg)), true
	}
	return nil, false
}

// KeyBindingFn maps a key event to a command. Unbound events report false
// and are left to default handling.
func (r *Router) KeyBindingFn(ev key.Event) (Command, bool) {
	b, ok := r.keymaps.Lookup(ev)
	if !ok {
		return "", false
	}
	return Command(b.Command), true
}

// HandleKeyCommand applies cmd to s. Unknown commands and commands without
// effect are NotHandled with the state unchanged. Any other failure is
// returned as an error alongside the unchanged state and NotHandled.
func (r *Router) HandleKeyCommand(s state.EditorState, cmd Command) (state.EditorState, Result, error) {
	h, ok := r.Route(cmd)
	if !ok {
		return s, NotHandled, fmt.Errorf("%s: %w", cmd, ErrUnknownCommand)
	}

	next, err := h(s)
	switch {
	case errors.Is(err, transform.ErrNoEffect):
		return s, NotHandled, nil
	case err != nil:
		return s, NotHandled, fmt.Errorf("%s: %w", cmd, err)
	}
	return next, Handled, nil
}

// Commands returns the names of all registered handlers.
func (r *Router) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmds := make([]Command, 0, len(r.handlers))
	for c := range r.handlers {
		cmds = append(cmds, c)
	}
	return cmds
}
