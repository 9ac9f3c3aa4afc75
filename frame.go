package termbridge

import "sync/atomic"

// Frame is the drawing handle passed to a Terminal.Draw callback. It is
// only valid while the callback runs; every method fails with
// ErrFrameInvalid afterwards.
type Frame struct {
	t        *Terminal
	area     Rect
	active   atomic.Bool
	firstErr error
}

// Valid reports whether the frame may still be used.
func (f *Frame) Valid() bool {
	return f.active.Load()
}

// Area returns the full drawable area.
func (f *Frame) Area() (Rect, error) {
	if !f.Valid() {
		return Rect{}, ErrFrameInvalid
	}
	return f.area, nil
}

// RenderWidget draws node into area.
func (f *Frame) RenderWidget(node Node, area Rect) error {
	return f.render(node, area, nil)
}

// RenderStatefulWidget draws a list, table or scrollbar against a state
// the host keeps between frames. Selection comes from state and the
// scroll offset is written back to it.
func (f *Frame) RenderStatefulWidget(node Node, area Rect, state any) error {
	if state == nil {
		return invalidf("nil state")
	}
	return f.render(node, area, state)
}

func (f *Frame) render(node Node, area Rect, state any) error {
	f.t.mu.Lock()
	defer f.t.mu.Unlock()
	if !f.Valid() {
		return ErrFrameInvalid
	}
	err := f.t.renderer.render(f.t.buf, area, node, state, func(pos Position) {
		f.t.cursor = &pos
	})
	if err != nil && f.firstErr == nil {
		f.firstErr = err
	}
	return err
}

// SetCursorPosition shows the cursor at (x, y) after the frame is drawn.
func (f *Frame) SetCursorPosition(x, y int) error {
	f.t.mu.Lock()
	defer f.t.mu.Unlock()
	if !f.Valid() {
		return ErrFrameInvalid
	}
	f.t.cursor = &Position{X: x, Y: y}
	return nil
}

// Buffer returns a handle for direct cell writes. The handle shares the
// frame's lifetime.
func (f *Frame) Buffer() (*FrameBuffer, error) {
	if !f.Valid() {
		return nil, ErrFrameInvalid
	}
	return &FrameBuffer{f: f}, nil
}

// FrameBuffer writes into the buffer of the frame it came from.
type FrameBuffer struct {
	f *Frame
}

func (b *FrameBuffer) with(fn func(buf *Buffer)) error {
	t := b.f.t
	t.mu.Lock()
	defer t.mu.Unlock()
	if !b.f.Valid() {
		return ErrFrameInvalid
	}
	fn(t.buf)
	return nil
}

// Area returns the buffer area.
func (b *FrameBuffer) Area() (Rect, error) {
	return b.f.Area()
}

// Get returns the cell at (x, y).
func (b *FrameBuffer) Get(x, y int) (Cell, error) {
	var c Cell
	err := b.with(func(buf *Buffer) { c = buf.Get(x, y) })
	return c, err
}

// Set replaces the cell at (x, y).
func (b *FrameBuffer) Set(x, y int, c Cell) error {
	return b.with(func(buf *Buffer) { buf.Set(x, y, c) })
}

// SetSymbol writes one grapheme at (x, y).
func (b *FrameBuffer) SetSymbol(x, y int, symbol string, style Style) error {
	return b.with(func(buf *Buffer) { buf.SetSymbol(x, y, symbol, style) })
}

// WriteString writes s from (x, y) and returns the columns used.
func (b *FrameBuffer) WriteString(x, y int, s string, style Style) (int, error) {
	var n int
	err := b.with(func(buf *Buffer) { n = buf.WriteString(x, y, s, style) })
	return n, err
}

// SetStyle patches style over every cell of area.
func (b *FrameBuffer) SetStyle(area Rect, style Style) error {
	return b.with(func(buf *Buffer) { buf.SetStyle(area, style) })
}

// Fill sets every cell of area to c.
func (b *FrameBuffer) Fill(area Rect, c Cell) error {
	return b.with(func(buf *Buffer) { buf.Fill(area, c) })
}
