package termbridge

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// areaRecorder returns a custom node that appends the area it is given.
func areaRecorder(into *[]Rect) Node {
	return Custom(func(area Rect) ([]DrawCommand, error) {
		*into = append(*into, area)
		return nil, nil
	})
}

func renderString(t *testing.T, node Node, width, height int) string {
	t.Helper()
	buf := NewBuffer(width, height)
	err := NewRenderer(Options{}).Render(buf, buf.Area(), node)
	require.NoError(t, err)
	return buf.StringTrimmed()
}

func TestRenderLayoutMatchesLayoutAreas(t *testing.T) {
	var got []Rect
	layout := NewNode(KindLayout, map[string]any{
		"direction":   "horizontal",
		"flex":        "space_evenly",
		"constraints": []any{"len:10", "pct:20", "fill:1"},
		"children":    []any{areaRecorder(&got), areaRecorder(&got), areaRecorder(&got)},
	})
	r := NewRenderer(Options{})
	area := NewRect(2, 1, 77, 5)

	want, err := r.LayoutAreas(layout, area)
	require.NoError(t, err)
	buf := NewBuffer(80, 6)
	require.NoError(t, r.Render(buf, area, layout))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dispatched areas differ from LayoutAreas (-want +got):\n%s", diff)
	}
}

func TestRenderChildFailureIsolation(t *testing.T) {
	var logs bytes.Buffer
	r := NewRenderer(Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	layout := Layout(Vertical, []Constraint{Length(1), Length(1), Length(1)},
		Paragraph("one"),
		NewNode(KindCursor, nil),
		Paragraph("three"),
	)
	buf := NewBuffer(10, 3)
	err := r.Render(buf, buf.Area(), layout)

	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	assert.Contains(t, err.Error(), "layout child 1 (cursor)")
	assert.Equal(t, "one", buf.GetLine(0))
	assert.Equal(t, "three", buf.GetLine(2))
	assert.Contains(t, logs.String(), "child render failed")
}

func TestRenderFirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	failing := Custom(func(Rect) ([]DrawCommand, error) { return nil, boom })
	overlay := Overlay(failing, NewNode(KindCursor, nil))
	buf := NewBuffer(4, 1)
	err := NewRenderer(Options{}).Render(buf, buf.Area(), overlay)
	if !errors.Is(err, boom) {
		t.Errorf("expected first child error, got %v", err)
	}
}

func TestRenderCenter(t *testing.T) {
	var got []Rect
	buf := NewBuffer(100, 100)
	err := NewRenderer(Options{}).Render(buf, buf.Area(), Center(areaRecorder(&got), 50, 50))
	require.NoError(t, err)
	require.Len(t, got, 1)
	if want := NewRect(25, 25, 50, 50); got[0] != want {
		t.Errorf("expected %v, got %v", want, got[0])
	}
	assert.Equal(t, NewRect(25, 25, 50, 50), CenterArea(NewRect(0, 0, 100, 100), 50, 50))
}

func TestCenterAreaRounding(t *testing.T) {
	tests := []struct {
		name string
		area Rect
		w, h int
		want Rect
	}{
		// 33% of 10 is 3.3: edges land on 3.3 and 6.6 and round outwards
		{"odd percentage", NewRect(0, 0, 10, 10), 33, 33, NewRect(3, 3, 4, 4)},
		{"odd percentage offset", NewRect(5, 2, 10, 10), 33, 33, NewRect(8, 5, 4, 4)},
		{"odd width only", NewRect(0, 0, 10, 4), 33, 100, NewRect(3, 0, 4, 4)},
		{"full", NewRect(0, 0, 7, 3), 100, 100, NewRect(0, 0, 7, 3)},
		{"zero", NewRect(0, 0, 10, 10), 0, 0, NewRect(5, 5, 0, 0)},
		{"clamped", NewRect(0, 0, 10, 10), 150, -20, NewRect(0, 5, 10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenterArea(tt.area, tt.w, tt.h); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("center node uses the same rect", func(t *testing.T) {
		var got []Rect
		buf := NewBuffer(10, 10)
		require.NoError(t, NewRenderer(Options{}).Render(buf, buf.Area(), Center(areaRecorder(&got), 33, 33)))
		require.Len(t, got, 1)
		assert.Equal(t, NewRect(3, 3, 4, 4), got[0])
	})
}

func TestRenderCenterClearsBeneath(t *testing.T) {
	node := Overlay(
		Paragraph("xxxx\nxxxx\nxxxx\nxxxx"),
		Center(Paragraph(""), 50, 50),
	)
	want := "xxxx\nx  x\nx  x\nxxxx"
	if got := renderString(t, node, 4, 4); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestRenderOverlay(t *testing.T) {
	got := renderString(t, Overlay(Paragraph("aaaa"), Paragraph("b")), 4, 1)
	if got != "baaa" {
		t.Errorf("expected %q, got %q", "baaa", got)
	}
}

func TestRenderBlockNode(t *testing.T) {
	node := NewNode(KindBlock, map[string]any{
		"title": "T",
		"child": Paragraph("hi"),
	})
	want := "┌T──┐\n│hi │\n└───┘"
	if got := renderString(t, node, 5, 3); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestRenderCursor(t *testing.T) {
	var pos []Position
	buf := NewBuffer(10, 10)
	r := NewRenderer(Options{})
	err := r.render(buf, NewRect(2, 3, 5, 5), Cursor(1, 1), nil, func(p Position) { pos = append(pos, p) })
	require.NoError(t, err)
	assert.Equal(t, []Position{{X: 3, Y: 4}}, pos)

	// Without a frame the cursor is ignored.
	require.NoError(t, r.Render(buf, buf.Area(), Cursor(0, 0)))
}

func TestRenderUnknownKind(t *testing.T) {
	buf := NewBuffer(4, 1)
	r := NewRenderer(Options{})

	err := r.Render(buf, buf.Area(), NewNode(Kind(200), nil))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	err = r.Render(buf, buf.Area(), NewNode(KindCustom, nil))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	err = r.Render(buf, buf.Area(), nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for nil node, got %v", err)
	}
}

func TestRenderStrictLayout(t *testing.T) {
	node := Layout(Vertical, []Constraint{Length(1)}, Paragraph("a"), Paragraph("b"))
	buf := NewBuffer(4, 2)

	require.NoError(t, NewRenderer(Options{}).Render(buf, buf.Area(), node))
	assert.Equal(t, "a\nb", buf.StringTrimmed())

	err := NewRenderer(Options{StrictLayout: true}).Render(NewBuffer(4, 2), buf.Area(), node)
	assert.ErrorIs(t, err, ErrConstraintMismatch)
}

func TestRenderStateAttribute(t *testing.T) {
	state := NewListState()
	state.Select(2)
	node := List("a", "b", "c").Set("state", state)
	got := renderString(t, node, 6, 2)
	assert.Equal(t, "  b\n> c", got)
	assert.Equal(t, 1, state.Offset())

	buf := NewBuffer(6, 2)
	err := NewRenderer(Options{}).Render(buf, buf.Area(), List("a").Set("state", NewTableState()))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDrawCommands(t *testing.T) {
	t.Run("custom node writes", func(t *testing.T) {
		node := Custom(func(area Rect) ([]DrawCommand, error) {
			return []DrawCommand{
				WriteString(area.X, area.Y, "hey", Style{FG: Red}),
				WriteCell(area.X+4, area.Y, "!", Style{}),
			}, nil
		})
		buf := NewBuffer(8, 2)
		require.NoError(t, NewRenderer(Options{}).Render(buf, NewRect(1, 1, 7, 1), node))
		assert.Equal(t, " hey !", buf.GetLine(1))
		assert.Equal(t, Red, buf.Get(1, 1).Style.FG)
	})

	t.Run("out of bounds cell is dropped", func(t *testing.T) {
		buf := NewBuffer(3, 3)
		before := buf.String()
		for _, c := range []DrawCommand{
			WriteCell(3, 0, "x", Style{}),
			WriteCell(0, 3, "x", Style{}),
			WriteCell(-1, 0, "x", Style{}),
			WriteString(-5, 0, "x", Style{}),
			WriteString(0, 9, "x", Style{}),
		} {
			require.NoError(t, c.Apply(buf))
		}
		assert.Equal(t, before, buf.String())
	})

	t.Run("unknown command", func(t *testing.T) {
		err := DrawCommand{Kind: CommandKind(99)}.Apply(NewBuffer(1, 1))
		if !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("expected ErrUnknownCommand, got %v", err)
		}
	})

	t.Run("unknown command aborts node", func(t *testing.T) {
		node := Custom(func(area Rect) ([]DrawCommand, error) {
			return []DrawCommand{WriteString(0, 0, "ok", Style{}), {}}, nil
		})
		buf := NewBuffer(4, 1)
		err := NewRenderer(Options{}).Render(buf, buf.Area(), node)
		assert.ErrorIs(t, err, ErrUnknownCommand)
		assert.True(t, strings.HasPrefix(buf.GetLine(0), "ok"))
	})
}
