package termbridge

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedItems(n int) []any {
	items := make([]any, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i)
	}
	return items
}

func renderListState(t *testing.T, node Node, state *ListState, width, height int) *Buffer {
	t.Helper()
	buf := NewBuffer(width, height)
	err := NewRenderer(Options{}).render(buf, buf.Area(), node, state, nil)
	require.NoError(t, err)
	return buf
}

func TestListInline(t *testing.T) {
	t.Run("no selection reserves nothing", func(t *testing.T) {
		got := renderString(t, List("a", "b"), 5, 2)
		assert.Equal(t, "a\nb", got)
	})

	t.Run("selected index", func(t *testing.T) {
		got := renderString(t, List("a", "b").Set("selected_index", 1), 5, 2)
		assert.Equal(t, "  a\n> b", got)
	})

	t.Run("always spacing", func(t *testing.T) {
		got := renderString(t, List("a").Set("highlight_spacing", "always"), 5, 1)
		assert.Equal(t, "  a", got)
	})

	t.Run("custom symbol", func(t *testing.T) {
		node := List("a", "b").Set("selected_index", 0).Set("highlight_symbol", ">> ")
		assert.Equal(t, ">> a\n   b", renderString(t, node, 6, 2))
	})

	t.Run("bottom to top", func(t *testing.T) {
		got := renderString(t, List("a", "b").Set("direction", "bottom_to_top"), 3, 3)
		assert.Equal(t, "\nb\na", got)
	})

	t.Run("highlight style", func(t *testing.T) {
		node := List("a", "b").
			Set("selected_index", 1).
			Set("highlight_style", map[string]any{"fg": "yellow", "modifiers": []any{"bold"}})
		buf := NewBuffer(5, 2)
		require.NoError(t, NewRenderer(Options{}).Render(buf, buf.Area(), node))
		assert.Equal(t, Style{}, buf.Get(2, 0).Style)
		assert.Equal(t, Style{FG: Yellow, Mod: ModBold}, buf.Get(2, 1).Style)
	})

	t.Run("inline offset is not kept", func(t *testing.T) {
		node := List(numberedItems(10)...).Set("selected_index", 8)
		got := renderString(t, node, 10, 2)
		assert.Equal(t, "  item 7\n> item 8", got)
	})

	t.Run("bad direction", func(t *testing.T) {
		buf := NewBuffer(3, 1)
		err := NewRenderer(Options{}).Render(buf, buf.Area(), List("a").Set("direction", "sideways"))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestListStateScrolling(t *testing.T) {
	node := List(numberedItems(10)...)
	state := NewListState()

	tests := []struct {
		name   string
		move   func()
		offset int
		first  string
	}{
		{"select below the window", func() { state.Select(5) }, 3, "  item 3"},
		{"inside the window keeps offset", func() { state.Select(4) }, 3, "  item 3"},
		{"above the window", func() { state.Select(1) }, 1, "> item 1"},
		{"next stays put", func() { state.SelectNext() }, 1, "  item 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.move()
			buf := renderListState(t, node, state, 10, 3)
			if state.Offset() != tt.offset {
				t.Errorf("expected offset %d, got %d", tt.offset, state.Offset())
			}
			if got := buf.GetLine(0); got != tt.first {
				t.Errorf("expected first row %q, got %q", tt.first, got)
			}
		})
	}
}

func TestListStateScrollPadding(t *testing.T) {
	node := List(numberedItems(10)...).Set("scroll_padding", 1)
	state := NewListState()
	state.Select(3)
	renderListState(t, node, state, 10, 3)
	assert.Equal(t, 2, state.Offset())
}

func TestListStateClamping(t *testing.T) {
	node := List("a", "b", "c")

	t.Run("past the end", func(t *testing.T) {
		state := NewListState()
		state.Select(99)
		buf := renderListState(t, node, state, 5, 3)
		i, ok := state.Selected()
		assert.True(t, ok)
		assert.Equal(t, 2, i)
		assert.Equal(t, "> c", buf.GetLine(2))
	})

	t.Run("previous from nothing selects last", func(t *testing.T) {
		state := NewListState()
		state.SelectPrevious()
		i, _ := state.Selected()
		assert.Equal(t, math.MaxInt, i)
		renderListState(t, node, state, 5, 3)
		i, _ = state.Selected()
		assert.Equal(t, 2, i)
	})

	t.Run("empty list clears selection", func(t *testing.T) {
		state := NewListState()
		state.Select(1)
		state.SetOffset(4)
		renderListState(t, List(), state, 5, 3)
		_, ok := state.Selected()
		assert.False(t, ok)
		assert.Equal(t, 0, state.Offset())
	})
}

func TestListStateMoves(t *testing.T) {
	state := NewListState()
	state.SelectNext()
	i, ok := state.Selected()
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	state.ScrollDownBy(3)
	i, _ = state.Selected()
	assert.Equal(t, 3, i)

	state.ScrollUpBy(10)
	i, _ = state.Selected()
	assert.Equal(t, 0, i)

	state.SelectPrevious()
	i, _ = state.Selected()
	assert.Equal(t, 0, i)

	state.SelectNone()
	_, ok = state.Selected()
	assert.False(t, ok)
}

func TestStateBorrowConflict(t *testing.T) {
	state := NewListState()
	r := NewRenderer(Options{})
	var inner error
	err := state.borrowed(func(*selection) error {
		buf := NewBuffer(5, 1)
		inner = r.render(buf, buf.Area(), List("a"), state, nil)
		return nil
	})
	require.NoError(t, err)
	if !errors.Is(inner, ErrStateBorrowed) {
		t.Errorf("expected ErrStateBorrowed, got %v", inner)
	}

	// The borrow ends with the render call.
	renderListState(t, List("a"), state, 5, 1)
}

func TestStatefulWrongPairing(t *testing.T) {
	buf := NewBuffer(5, 1)
	err := NewRenderer(Options{}).render(buf, buf.Area(), Paragraph("x"), NewListState(), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
