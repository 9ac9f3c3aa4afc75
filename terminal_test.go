package termbridge

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullArea returns the frame area, failing the test on an invalid frame.
func fullArea(t *testing.T, f *Frame) Rect {
	t.Helper()
	area, err := f.Area()
	require.NoError(t, err)
	return area
}

func TestTerminalDraw(t *testing.T) {
	term := NewTestTerminal(6, 2, Options{})
	defer term.Close()

	err := term.Draw(func(f *Frame) error {
		assert.Equal(t, NewRect(0, 0, 6, 2), fullArea(t, f))
		return f.RenderWidget(Paragraph("hello"), fullArea(t, f))
	})
	require.NoError(t, err)

	want := []string{"hello ", "      "}
	if diff := cmp.Diff(want, term.BufferContent()); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "h", term.CellAt(0, 0).Symbol)

	// each draw starts from a blank buffer
	require.NoError(t, term.DrawTree(Paragraph("hi")))
	assert.Equal(t, []string{"hi    ", "      "}, term.BufferContent())
}

func TestTerminalFlushes(t *testing.T) {
	backend := NewTestBackend(4, 1)
	term := NewTerminal(backend, Options{})

	require.NoError(t, term.DrawTree(Paragraph("ab")))
	require.NoError(t, term.DrawTree(Paragraph("cd")))
	assert.Equal(t, 2, backend.Flushes())
	assert.Equal(t, "cd", backend.Screen().GetLine(0))
	assert.Nil(t, backend.Cursor())
}

func TestFrameInvalidAfterDraw(t *testing.T) {
	term := NewTestTerminal(4, 2, Options{})
	var kept *Frame
	var keptBuf *FrameBuffer
	require.NoError(t, term.Draw(func(f *Frame) error {
		assert.True(t, f.Valid())
		kept = f
		var err error
		keptBuf, err = f.Buffer()
		return err
	}))

	assert.False(t, kept.Valid())
	area, err := kept.Area()
	assert.ErrorIs(t, err, ErrFrameInvalid)
	assert.Equal(t, Rect{}, area)
	assert.ErrorIs(t, kept.RenderWidget(Paragraph("x"), NewRect(0, 0, 4, 2)), ErrFrameInvalid)
	assert.ErrorIs(t, kept.RenderStatefulWidget(List("a"), NewRect(0, 0, 4, 2), NewListState()), ErrFrameInvalid)
	assert.ErrorIs(t, kept.SetCursorPosition(1, 1), ErrFrameInvalid)
	_, err = kept.Buffer()
	assert.ErrorIs(t, err, ErrFrameInvalid)

	t.Run("escaped buffer handle", func(t *testing.T) {
		_, err := keptBuf.WriteString(0, 0, "late", Style{})
		assert.ErrorIs(t, err, ErrFrameInvalid)
		assert.ErrorIs(t, keptBuf.Set(0, 0, Cell{Symbol: "L"}), ErrFrameInvalid)
		assert.ErrorIs(t, keptBuf.SetSymbol(1, 0, "L", Style{}), ErrFrameInvalid)
		assert.ErrorIs(t, keptBuf.Fill(NewRect(0, 0, 4, 2), Cell{Symbol: "L"}), ErrFrameInvalid)
		assert.ErrorIs(t, keptBuf.SetStyle(NewRect(0, 0, 4, 2), Style{FG: Red}), ErrFrameInvalid)
		_, err = keptBuf.Get(0, 0)
		assert.ErrorIs(t, err, ErrFrameInvalid)
		_, err = keptBuf.Area()
		assert.ErrorIs(t, err, ErrFrameInvalid)

		assert.Equal(t, " ", term.CellAt(0, 0).Symbol)
		assert.False(t, term.CellAt(0, 0).Style.FG.IsSet())
	})
}

func TestDrawReentrancy(t *testing.T) {
	term := NewTestTerminal(4, 1, Options{})
	done := make(chan struct{})
	var inner, closeErr error
	var rows []string
	var cell Cell

	go func() {
		defer close(done)
		_ = term.Draw(func(f *Frame) error {
			area, _ := f.Area()
			if err := f.RenderWidget(Paragraph("ab"), area); err != nil {
				return err
			}
			rows = term.BufferContent()
			cell = term.CellAt(1, 0)
			_, _ = term.CursorPosition()
			_, _ = term.Size()
			inner = term.Draw(func(*Frame) error { return nil })
			closeErr = term.Close()
			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("terminal call from a draw callback did not return")
	}
	assert.Equal(t, []string{"ab  "}, rows)
	assert.Equal(t, "b", cell.Symbol)
	assert.ErrorIs(t, inner, ErrInvalidArgument)
	assert.ErrorIs(t, closeErr, ErrInvalidArgument)

	// the terminal is still usable afterwards
	require.NoError(t, term.DrawTree(Paragraph("ok")))
	assert.Equal(t, []string{"ok  "}, term.BufferContent())
	require.NoError(t, term.Close())
}

func TestConcurrentReads(t *testing.T) {
	term := NewTestTerminal(8, 2, Options{})
	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = term.BufferContent()
			}
		}
	}()
	for i := 0; i < 20; i++ {
		require.NoError(t, term.DrawTree(List("a", "b")))
	}
	close(stop)
	wg.Wait()
	assert.Equal(t, "a       ", term.BufferContent()[0])
}

func TestFrameErrors(t *testing.T) {
	term := NewTestTerminal(8, 2, Options{})

	t.Run("first widget error is returned after flush", func(t *testing.T) {
		err := term.Draw(func(f *Frame) error {
			_ = f.RenderWidget(NewNode(KindGauge, map[string]any{"ratio": 3.0}), NewRect(0, 0, 8, 1))
			return f.RenderWidget(Paragraph("after"), NewRect(0, 1, 8, 1))
		})
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, "after   ", term.BufferContent()[1])
	})

	t.Run("callback error wins", func(t *testing.T) {
		boom := errors.New("boom")
		err := term.Draw(func(f *Frame) error {
			_ = f.RenderWidget(NewNode(KindGauge, map[string]any{"ratio": 3.0}), fullArea(t, f))
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil state", func(t *testing.T) {
		err := term.Draw(func(f *Frame) error {
			return f.RenderStatefulWidget(List("a"), fullArea(t, f), nil)
		})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestFrameStatefulWidget(t *testing.T) {
	term := NewTestTerminal(6, 2, Options{})
	state := NewListState()
	state.Select(3)

	node := List("a", "b", "c", "d")
	require.NoError(t, term.Draw(func(f *Frame) error {
		return f.RenderStatefulWidget(node, fullArea(t, f), state)
	}))
	assert.Equal(t, []string{"  c   ", "> d   "}, term.BufferContent())
	assert.Equal(t, 2, state.Offset())

	state.SelectFirst()
	require.NoError(t, term.Draw(func(f *Frame) error {
		return f.RenderStatefulWidget(node, fullArea(t, f), state)
	}))
	assert.Equal(t, []string{"> a   ", "  b   "}, term.BufferContent())
	assert.Equal(t, 0, state.Offset())
}

func TestFrameCursor(t *testing.T) {
	backend := NewTestBackend(10, 3)
	term := NewTerminal(backend, Options{})

	require.NoError(t, term.Draw(func(f *Frame) error {
		return f.SetCursorPosition(2, 1)
	}))
	pos, ok := term.CursorPosition()
	require.True(t, ok)
	assert.Equal(t, Position{X: 2, Y: 1}, pos)
	assert.Equal(t, &Position{X: 2, Y: 1}, backend.Cursor())

	t.Run("cursor node is relative to its area", func(t *testing.T) {
		tree := Layout(Vertical, []Constraint{Length(1), Fill(1)}, Paragraph("top"), Cursor(3, 1))
		require.NoError(t, term.DrawTree(tree))
		pos, ok := term.CursorPosition()
		require.True(t, ok)
		assert.Equal(t, Position{X: 3, Y: 2}, pos)
	})

	t.Run("hidden unless set", func(t *testing.T) {
		require.NoError(t, term.DrawTree(Paragraph("x")))
		_, ok := term.CursorPosition()
		assert.False(t, ok)
		assert.Nil(t, backend.Cursor())
	})
}

func TestFrameBuffer(t *testing.T) {
	term := NewTestTerminal(5, 1, Options{})
	require.NoError(t, term.Draw(func(f *Frame) error {
		buf, err := f.Buffer()
		if err != nil {
			return err
		}
		n, err := buf.WriteString(1, 0, "raw", Style{FG: Red})
		assert.Equal(t, 3, n)
		if err != nil {
			return err
		}
		c, err := buf.Get(2, 0)
		assert.Equal(t, "a", c.Symbol)
		return err
	}))
	assert.Equal(t, " raw ", term.BufferContent()[0])
	assert.Equal(t, Red, term.CellAt(1, 0).Style.FG)
}

func TestTerminalResize(t *testing.T) {
	term := NewTestTerminal(4, 1, Options{})
	require.NoError(t, term.Resize(8, 3))

	w, h := term.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 3, h)

	require.NoError(t, term.Draw(func(f *Frame) error {
		assert.Equal(t, NewRect(0, 0, 8, 3), fullArea(t, f))
		return f.RenderWidget(Paragraph("resized"), fullArea(t, f))
	}))
	assert.Equal(t, []string{"resized ", "        ", "        "}, term.BufferContent())
}

func TestTerminalEvents(t *testing.T) {
	term := NewTestTerminal(4, 1, Options{})
	assert.False(t, term.Events().Live())

	ev, err := term.PollEventTimeout(time.Second)
	require.NoError(t, err)
	assert.Nil(t, ev)

	require.NoError(t, term.InjectTestEvent("key", map[string]any{"code": "q", "modifiers": []any{"ctrl"}}))
	require.NoError(t, term.InjectTestEvent("focus_gained", nil))
	ev, err = term.PollEventTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "key ctrl+q", ev.String())

	term.ClearEvents()
	ev, err = term.PollEventTimeout(time.Second)
	require.NoError(t, err)
	assert.Nil(t, ev)

	assert.ErrorIs(t, term.InjectTestEvent("key", nil), ErrMissingField)
}

func TestTerminalClose(t *testing.T) {
	term := NewTestTerminal(4, 1, Options{})
	require.NoError(t, term.Close())
	require.NoError(t, term.Close())

	err := term.DrawTree(Paragraph("x"))
	var te *TerminalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "draw", te.Op)
}
