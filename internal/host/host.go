// Package host runs a blockpad session in a terminal using tcell.
//
// The host translates terminal key events into key.Events for the session,
// draws the current EditorState with the configured style map, and shows a
// one-line status bar. It owns no editing logic.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blockpad/internal/command"
	"github.com/dshills/blockpad/internal/config"
	"github.com/dshills/blockpad/internal/input/key"
	"github.com/dshills/blockpad/internal/logging"
	"github.com/dshills/blockpad/internal/session"
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("host is closed")

// quitKey ends Run.
var quitKey = key.MustParse("Ctrl+Q")

// Host draws a session on a tcell screen and feeds it key events.
type Host struct {
	mu     sync.Mutex
	screen tcell.Screen
	sess   *session.Session
	styles atomic.Pointer[config.StyleMap]
	logger *slog.Logger

	top    int
	status string
	closed atomic.Bool
}

// New creates a host. The screen must not be initialized yet.
func New(screen tcell.Screen, sess *session.Session, styles config.StyleMap, logger *slog.Logger) *Host {
	if logger == nil {
		logger = logging.Discard()
	}
	if styles == nil {
		styles = config.DefaultStyles()
	}
	h := &Host{
		screen: screen,
		sess:   sess,
		logger: logger,
		status: "Ctrl+S save  Ctrl+Q quit",
	}
	h.styles.Store(&styles)
	return h
}

// NewTerminal creates a host on the process terminal.
func NewTerminal(sess *session.Session, styles config.StyleMap, logger *slog.Logger) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, sess, styles, logger), nil
}

// SetStyles replaces the style map and schedules a redraw. It is safe to
// call from any goroutine.
func (h *Host) SetStyles(styles config.StyleMap) {
	h.styles.Store(&styles)
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

// Styles returns the active style map.
func (h *Host) Styles() config.StyleMap {
	return *h.styles.Load()
}

// Status returns the status bar message.
func (h *Host) Status() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Run initializes the screen and processes events until Ctrl+Q, Close or
// ctx cancellation. The screen is finalized before Run returns.
func (h *Host) Run(ctx context.Context) error {
	if h.closed.Load() {
		return ErrClosed
	}
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer h.screen.Fini()
	h.screen.EnablePaste()

	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
	})
	defer stop()

	h.Draw()
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if h.closed.Load() || ctx.Err() != nil {
			return ctx.Err()
		}
		if !h.handle(ctx, ev) {
			return nil
		}
		h.Draw()
	}
}

// Close makes Run return.
func (h *Host) Close() {
	if h.closed.Swap(true) {
		return
	}
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// handle processes one event. It returns false when the host should exit.
func (h *Host) handle(ctx context.Context, ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := TranslateKey(e)
		if !ok {
			return true
		}
		if k.Matches(quitKey) {
			return false
		}
		h.handleKey(ctx, k)

	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleKey(ctx context.Context, k key.Event) {
	if cmd, ok := h.sess.KeyBindingFn(k); ok && cmd == command.Save {
		h.save(ctx)
		return
	}
	res := h.sess.HandleKey(k)
	h.logger.Debug("key", "event", k.String(), "result", res.String())
}

func (h *Host) save(ctx context.Context) {
	data, err := h.sess.Save(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.logger.Warn("save failed", "error", err)
		h.status = "save failed: " + err.Error()
		return
	}
	h.status = fmt.Sprintf("saved %d bytes", len(data))
}

// Draw renders the current state and status bar.
func (h *Host) Draw() {
	h.mu.Lock()
	defer h.mu.Unlock()

	width, height := h.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	st := h.sess.State()
	frame := Layout(st, h.Styles(), width)

	rows := height - 1
	if frame.CursorY < h.top {
		h.top = frame.CursorY
	}
	if frame.CursorY >= h.top+rows {
		h.top = frame.CursorY - rows + 1
	}

	h.screen.Clear()
	for y := 0; y < rows && h.top+y < len(frame.Lines); y++ {
		for x, c := range frame.Lines[h.top+y] {
			h.screen.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}

	blockType := ""
	if b, ok := st.ActiveBlock(); ok {
		blockType = b.Type().String()
	}
	bar := tcell.StyleDefault.Reverse(true)
	line := []rune(fmt.Sprintf(" %s | %s | %s", h.sess.Key(), blockType, h.status))
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		h.screen.SetContent(x, height-1, r, nil, bar)
	}

	if rows > 0 {
		h.screen.ShowCursor(frame.CursorX, frame.CursorY-h.top)
	}
	h.screen.Show()
}
