package termbridge

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

// deviceOwned is the ownership token for the physical terminal. Only one
// live Terminal may hold it.
var deviceOwned atomic.Bool

// Terminal is a drawing session over a Backend with its event source.
type Terminal struct {
	mu       sync.Mutex
	backend  Backend
	renderer *Renderer
	buf      *Buffer
	cursor   *Position
	events   *EventSource
	log      *slog.Logger
	owner    bool
	closed   bool
	drawing  bool
}

// NewTerminal creates a session over backend. A backend that produces
// input feeds PollEvent. Any other backend runs in test mode.
func NewTerminal(backend Backend, opts Options) *Terminal {
	w, h := backend.Size()
	t := &Terminal{
		backend:  backend,
		renderer: NewRenderer(opts),
		buf:      NewBuffer(w, h),
		events:   NewEventSource(nil),
		log:      opts.logger(),
	}
	if ib, ok := backend.(inputBackend); ok {
		t.events.live = ib.events()
	}
	return t
}

// NewTestTerminal creates a session over an in-memory backend.
func NewTestTerminal(width, height int, opts Options) *Terminal {
	return NewTerminal(NewTestBackend(width, height), opts)
}

// Open starts a live session on the controlling terminal. It fails with
// ErrTerminalInUse while another live session is open.
func Open(opts Options) (*Terminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, &TerminalError{Op: "open", Err: errors.New("stdin or stdout is not a terminal")}
	}
	if !deviceOwned.CompareAndSwap(false, true) {
		return nil, ErrTerminalInUse
	}
	b, err := NewTcellBackend(opts)
	if err != nil {
		deviceOwned.Store(false)
		return nil, err
	}
	t := NewTerminal(b, opts)
	t.owner = true
	t.log.Debug("terminal opened", "width", t.buf.Width(), "height", t.buf.Height())
	return t, nil
}

// Renderer returns the renderer used by Draw.
func (t *Terminal) Renderer() *Renderer {
	return t.renderer
}

// Size returns the backend size.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.backend.Size()
}

// Resize changes the size of a test backend. It is an argument error on
// live backends.
func (t *Terminal) Resize(width, height int) error {
	tb, ok := t.backend.(*TestBackend)
	if !ok {
		return invalidf("resize is only supported on the test backend")
	}
	t.mu.Lock()
	tb.Resize(width, height)
	t.mu.Unlock()
	return nil
}

// Draw runs fn with a Frame covering the terminal and flushes the result.
// The frame is invalid once fn returns. The first error from fn or from
// any widget rendered through the frame is returned after the frame has
// been flushed. Draw and Close fail while another Draw is running,
// including when called from fn.
func (t *Terminal) Draw(fn func(f *Frame) error) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return &TerminalError{Op: "draw", Err: errors.New("terminal closed")}
	}
	if t.drawing {
		t.mu.Unlock()
		return errDrawing("draw")
	}
	t.drawing = true
	w, h := t.backend.Size()
	if w != t.buf.Width() || h != t.buf.Height() {
		t.buf.Resize(w, h)
	}
	t.buf.Reset()
	t.cursor = nil
	f := &Frame{t: t, area: t.buf.Area()}
	f.active.Store(true)
	t.mu.Unlock()

	// fn runs unlocked so it may read the terminal; frame writes lock
	err := fn(f)
	f.active.Store(false)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.drawing = false
	if err == nil {
		err = f.firstErr
	}
	if ferr := t.backend.Flush(t.buf, t.cursor); ferr != nil {
		var te *TerminalError
		if !errors.As(ferr, &te) {
			ferr = &TerminalError{Op: "flush", Err: ferr}
		}
		if err == nil {
			err = ferr
		}
	}
	return err
}

func errDrawing(op string) error {
	return invalidf("%s: a draw is in progress", op)
}

// DrawTree draws node over the whole terminal.
func (t *Terminal) DrawTree(node Node) error {
	return t.Draw(func(f *Frame) error {
		area, err := f.Area()
		if err != nil {
			return err
		}
		return f.RenderWidget(node, area)
	})
}

// PollEvent returns the next event, or nil when none arrives before ctx
// is done or when the terminal is in test mode with an empty queue.
func (t *Terminal) PollEvent(ctx context.Context) (Event, error) {
	return t.events.Poll(ctx)
}

// PollEventTimeout waits at most d for an event.
func (t *Terminal) PollEventTimeout(d time.Duration) (Event, error) {
	return t.events.PollTimeout(d)
}

// InjectTestEvent queues a synthetic event ahead of live input.
func (t *Terminal) InjectTestEvent(kind string, fields map[string]any) error {
	return t.events.InjectTestEvent(kind, fields)
}

// ClearEvents drops every queued synthetic event.
func (t *Terminal) ClearEvents() {
	t.events.Queue().Clear()
}

// Events returns the session's event source.
func (t *Terminal) Events() *EventSource {
	return t.events
}

// BufferContent returns the last drawn frame, one full-width string per
// row. Called from a Draw callback it returns the frame drawn so far.
func (t *Terminal) BufferContent() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]string, t.buf.Height())
	for y := range rows {
		rows[y] = t.buf.line(y)
	}
	return rows
}

// CellAt returns a cell of the last drawn frame.
func (t *Terminal) CellAt(x, y int) Cell {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Get(x, y)
}

// CursorPosition returns where the last frame placed the cursor.
func (t *Terminal) CursorPosition() (Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cursor == nil {
		return Position{}, false
	}
	return *t.cursor, true
}

// Close restores the terminal and releases the device.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	if t.drawing {
		return errDrawing("close")
	}
	t.closed = true
	err := t.backend.Close()
	if t.owner {
		deviceOwned.Store(false)
	}
	if err != nil {
		return &TerminalError{Op: "close", Err: err}
	}
	return nil
}
