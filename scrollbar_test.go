package termbridge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// column returns the symbols of column x from top to bottom.
func column(buf *Buffer, x int) string {
	var sb strings.Builder
	for y := 0; y < buf.Height(); y++ {
		sb.WriteString(buf.Get(x, y).Symbol)
	}
	return sb.String()
}

func TestScrollbar(t *testing.T) {
	r := NewRenderer(Options{})

	t.Run("vertical at the top", func(t *testing.T) {
		buf := NewBuffer(1, 10)
		node := NewNode(KindScrollbar, map[string]any{"content_length": 10})
		require.NoError(t, r.Render(buf, buf.Area(), node))
		assert.Equal(t, "▲████║║║║▼", column(buf, 0))
	})

	t.Run("vertical at the end", func(t *testing.T) {
		buf := NewBuffer(1, 10)
		node := NewNode(KindScrollbar, map[string]any{"content_length": 10, "position": 9})
		require.NoError(t, r.Render(buf, buf.Area(), node))
		assert.Equal(t, "▲║║║║████▼", column(buf, 0))
	})

	t.Run("vertical left edge", func(t *testing.T) {
		buf := NewBuffer(3, 10)
		node := NewNode(KindScrollbar, map[string]any{"content_length": 10, "orientation": "vertical_left"})
		require.NoError(t, r.Render(buf, buf.Area(), node))
		assert.Equal(t, "▲████║║║║▼", column(buf, 0))
		assert.Equal(t, "          ", column(buf, 2))
	})

	t.Run("horizontal", func(t *testing.T) {
		node := NewNode(KindScrollbar, map[string]any{"content_length": 10, "orientation": "horizontal"})
		assert.Equal(t, "◄████════►", renderString(t, node, 10, 1))
	})

	t.Run("horizontal top", func(t *testing.T) {
		node := NewNode(KindScrollbar, map[string]any{"content_length": 10, "orientation": "horizontal_top"})
		assert.Equal(t, "◄████════►", renderString(t, node, 10, 2))
	})

	t.Run("no arrows", func(t *testing.T) {
		node := NewNode(KindScrollbar, map[string]any{
			"content_length": 10,
			"orientation":    "horizontal",
			"begin_symbol":   "",
			"end_symbol":     "",
		})
		assert.Equal(t, "█████═════", renderString(t, node, 10, 1))
	})

	t.Run("no content draws nothing", func(t *testing.T) {
		node := NewNode(KindScrollbar, map[string]any{"content_length": 0})
		assert.Equal(t, "", renderString(t, node, 1, 5))
	})

	t.Run("unknown orientation", func(t *testing.T) {
		buf := NewBuffer(1, 5)
		err := r.Render(buf, buf.Area(), NewNode(KindScrollbar, map[string]any{"orientation": "diagonal"}))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestScrollbarState(t *testing.T) {
	state := NewScrollbarState(10)
	node := NewNode(KindScrollbar, map[string]any{"content_length": 99, "position": 50})
	buf := NewBuffer(1, 10)

	state.Last()
	require.NoError(t, NewRenderer(Options{}).render(buf, buf.Area(), node, state, nil))
	assert.Equal(t, "▲║║║║████▼", column(buf, 0))

	state.Next()
	assert.Equal(t, 9, state.Position())
	state.First()
	state.Prev()
	assert.Equal(t, 0, state.Position())

	state.SetContentLength(-3)
	assert.Equal(t, 0, state.ContentLength())
}

func TestThumbParts(t *testing.T) {
	tests := []struct {
		name                 string
		v                    scrollbarValues
		trackLen, viewport   int
		before, thumb, after int
	}{
		{"top", scrollbarValues{contentLength: 10}, 8, 10, 0, 4, 4},
		{"end", scrollbarValues{contentLength: 10, position: 9}, 8, 10, 4, 4, 0},
		{"position past content", scrollbarValues{contentLength: 10, position: 40}, 8, 10, 4, 4, 0},
		{"explicit viewport", scrollbarValues{contentLength: 100, viewport: 1}, 10, 10, 0, 1, 9},
		{"no track", scrollbarValues{contentLength: 10}, 0, 2, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, th, a := thumbParts(tt.v, tt.trackLen, tt.viewport)
			if b != tt.before || th != tt.thumb || a != tt.after {
				t.Errorf("expected %d/%d/%d, got %d/%d/%d", tt.before, tt.thumb, tt.after, b, th, a)
			}
		})
	}
}
