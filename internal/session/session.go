// Package session owns the live editor state and exposes the host-facing
// editing API.
//
// A Session serializes every input event under one lock. Transformations run
// on immutable EditorState values; the resulting state is published with an
// atomic pointer swap so readers such as a renderer never block on edits.
// Engine failures never escape to the host: they are logged and reported as
// not handled.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/blockpad/internal/command"
	"github.com/dshills/blockpad/internal/engine/history"
	"github.com/dshills/blockpad/internal/engine/state"
	"github.com/dshills/blockpad/internal/engine/transform"
	"github.com/dshills/blockpad/internal/input/key"
	"github.com/dshills/blockpad/internal/logging"
	"github.com/dshills/blockpad/internal/store"
	"github.com/dshills/blockpad/internal/trigger"
)

// DefaultKey is the store key used when Options.Key is empty.
const DefaultKey = "contentState"

// DefaultSaveTimeout bounds a save triggered from a key command.
const DefaultSaveTimeout = 5 * time.Second

// ErrNoStore is returned by persistence operations on a session without a
// store.
var ErrNoStore = errors.New("session has no store")

// Options configures a Session.
type Options struct {
	// Router resolves keys and commands. Nil uses the default keymap.
	Router *command.Router

	// Rules are the before-input triggers. Nil uses trigger.DefaultRules.
	Rules trigger.Rules

	// Store persists the document. Nil disables Save, Load and Clear.
	Store store.Store

	// Key is the store key. Empty uses DefaultKey.
	Key string

	// MaxHistory bounds the undo stack. Zero uses the history default.
	MaxHistory int

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// OnChange is called after every published state change.
	OnChange func(state.EditorState)
}

// Session holds the current EditorState.
type Session struct {
	mu      sync.Mutex
	current atomic.Pointer[state.EditorState]

	router   *command.Router
	rules    atomic.Pointer[trigger.Rules]
	history  *history.History
	store    store.Store
	key      string
	logger   *slog.Logger
	onChange func(state.EditorState)
}

// New creates a session holding an empty document.
func New(opts Options) *Session {
	s := &Session{
		router:   opts.Router,
		history:  history.New(opts.MaxHistory),
		store:    opts.Store,
		key:      opts.Key,
		logger:   opts.Logger,
		onChange: opts.OnChange,
	}
	if s.router == nil {
		s.router = command.NewRouter(nil)
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}

	rules := opts.Rules
	if rules == nil {
		rules = trigger.DefaultRules()
	}
	s.rules.Store(&rules)

	empty := state.NewEmpty()
	s.current.Store(&empty)

	s.registerCommands()
	return s
}

// unrecorded commands manage history themselves.
var unrecorded = map[command.Command]bool{
	command.Undo: true,
	command.Redo: true,
}

// registerCommands adds the session-level commands to the router.
func (s *Session) registerCommands() {
	s.router.Register(command.Undo, func(st state.EditorState) (state.EditorState, error) {
		return s.undoFrom(st)
	})
	s.router.Register(command.Redo, func(st state.EditorState) (state.EditorState, error) {
		return s.redoFrom(st)
	})
	s.router.Register(command.Save, func(st state.EditorState) (state.EditorState, error) {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultSaveTimeout)
		defer cancel()
		_, err := s.saveState(ctx, st)
		return st, err
	})
}

// State returns the current state. It never blocks on an edit in progress.
func (s *Session) State() state.EditorState {
	return *s.current.Load()
}

// Router returns the command router.
func (s *Session) Router() *command.Router {
	return s.router
}

// Key returns the store key.
func (s *Session) Key() string {
	return s.key
}

// Rules returns the active trigger rules.
func (s *Session) Rules() trigger.Rules {
	return *s.rules.Load()
}

// SetRules replaces the trigger rules.
func (s *Session) SetRules(rules trigger.Rules) {
	s.rules.Store(&rules)
}

// CanUndo reports whether Undo has an effect.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo has an effect.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// KeyBindingFn maps a key event to a command.
func (s *Session) KeyBindingFn(ev key.Event) (command.Command, bool) {
	return s.router.KeyBindingFn(ev)
}

// HandleKeyCommand applies cmd to the current state.
func (s *Session) HandleKeyCommand(cmd command.Command) command.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commandLocked(cmd)
}

func (s *Session) commandLocked(cmd command.Command) command.Result {
	prev := s.State()
	next, res, err := s.router.HandleKeyCommand(prev, cmd)
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		s.logger.Debug("unknown command", "command", string(cmd))
	case err != nil:
		s.logger.Warn("command failed", "command", string(cmd), "error", err)
	}
	if res != command.Handled {
		return command.NotHandled
	}

	if !unrecorded[cmd] && next.Document() != prev.Document() {
		s.history.Record(prev, next)
	}
	s.publish(next)
	return command.Handled
}

// HandleBeforeInput offers ch to the trigger rules. When a rule matches the
// trigger is applied and ch is consumed.
func (s *Session) HandleBeforeInput(ch string) command.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beforeInputLocked(ch)
}

func (s *Session) beforeInputLocked(ch string) command.Result {
	prev := s.State()
	next, handled, err := transform.HandleBeforeInput(prev, s.Rules(), ch)
	if err != nil {
		s.logger.Warn("before-input failed", "char", ch, "error", err)
		return command.NotHandled
	}
	if !handled {
		return command.NotHandled
	}
	s.logger.Debug("trigger applied", "block", blockKey(next))
	s.history.Record(prev, next)
	s.publish(next)
	return command.Handled
}

// InsertText inserts text at the caret with the current inline style.
func (s *Session) InsertText(text string) command.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(text)
}

func (s *Session) insertLocked(text string) command.Result {
	prev := s.State()
	next, err := transform.InsertCharacters(prev, text)
	switch {
	case errors.Is(err, transform.ErrNoEffect):
		return command.NotHandled
	case err != nil:
		s.logger.Warn("insert failed", "error", err)
		return command.NotHandled
	}
	s.history.Record(prev, next)
	s.publish(next)
	return command.Handled
}

// HandleKey processes one key event: a bound command is tried first, then a
// printable character is offered to the triggers and finally inserted.
func (s *Session) HandleKey(ev key.Event) command.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cmd, ok := s.router.KeyBindingFn(ev); ok {
		if s.commandLocked(cmd) == command.Handled {
			return command.Handled
		}
	}
	if !ev.IsChar() {
		return command.NotHandled
	}

	ch := string(ev.Rune)
	if s.beforeInputLocked(ch) == command.Handled {
		return command.Handled
	}
	return s.insertLocked(ch)
}

// Undo restores the state before the last recorded edit.
func (s *Session) Undo() command.Result {
	return s.HandleKeyCommand(command.Undo)
}

// Redo reapplies the last undone edit.
func (s *Session) Redo() command.Result {
	return s.HandleKeyCommand(command.Redo)
}

func (s *Session) undoFrom(current state.EditorState) (state.EditorState, error) {
	prev, err := s.history.Undo(current)
	if errors.Is(err, history.ErrNothingToUndo) {
		return current, transform.ErrNoEffect
	}
	return prev, err
}

func (s *Session) redoFrom(current state.EditorState) (state.EditorState, error) {
	next, err := s.history.Redo(current)
	if errors.Is(err, history.ErrNothingToRedo) {
		return current, transform.ErrNoEffect
	}
	return next, err
}

// Reset replaces the current state and clears the undo history.
func (s *Session) Reset(st state.EditorState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(st)
}

func (s *Session) resetLocked(st state.EditorState) {
	s.history.Clear()
	s.publish(st)
}

// publish swaps in st and notifies the change callback.
func (s *Session) publish(st state.EditorState) {
	s.current.Store(&st)
	if s.onChange != nil {
		s.onChange(st)
	}
}

func blockKey(st state.EditorState) string {
	if b, ok := st.ActiveBlock(); ok {
		return b.Key()
	}
	return ""
}

func (s *Session) requireStore() error {
	if s.store == nil {
		return fmt.Errorf("%s: %w", s.key, ErrNoStore)
	}
	return nil
}
