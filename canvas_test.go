package termbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canvasNode(marker string, xb, yb []any, shapes ...any) *Element {
	return NewNode(KindCanvas, map[string]any{
		"marker":   marker,
		"x_bounds": xb,
		"y_bounds": yb,
		"shapes":   shapes,
	})
}

func TestCanvasBraille(t *testing.T) {
	tests := []struct {
		name  string
		shape any
		want  string
	}{
		{"top left dot", map[string]any{"type": "point", "x": 0, "y": 100}, "⠁"},
		{"bottom right dot", map[string]any{"type": "point", "x": 100, "y": 0}, "⢀"},
		{"left column", map[string]any{"type": "line", "x1": 0, "y1": 0, "x2": 0, "y2": 100}, "⡇"},
		{"outside bounds", map[string]any{"type": "point", "x": 200, "y": 0}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := canvasNode("braille", []any{0, 100}, []any{0, 100}, tt.shape)
			assert.Equal(t, tt.want, renderString(t, node, 1, 1))
		})
	}
}

func TestCanvasMarkers(t *testing.T) {
	t.Run("block line", func(t *testing.T) {
		node := canvasNode("block", []any{0, 100}, []any{0, 100},
			map[string]any{"type": "line", "x1": 0, "y1": 0, "x2": 100, "y2": 0})
		assert.Equal(t, "\n\n███", renderString(t, node, 3, 3))
	})

	t.Run("half blocks", func(t *testing.T) {
		top := map[string]any{"type": "point", "x": 0, "y": 1}
		bottom := map[string]any{"type": "point", "x": 0, "y": 0}
		assert.Equal(t, "▀", renderString(t, canvasNode("half_block", []any{0, 1}, []any{0, 1}, top), 1, 1))
		assert.Equal(t, "▄", renderString(t, canvasNode("half_block", []any{0, 1}, []any{0, 1}, bottom), 1, 1))
		assert.Equal(t, "█", renderString(t, canvasNode("half_block", []any{0, 1}, []any{0, 1}, top, bottom), 1, 1))
	})

	t.Run("rectangle outline", func(t *testing.T) {
		node := canvasNode("block", []any{0, 2}, []any{0, 2},
			map[string]any{"type": "rectangle", "x": 0, "y": 0, "width": 2, "height": 2})
		assert.Equal(t, "███\n█ █\n███", renderString(t, node, 3, 3))
	})

	t.Run("points", func(t *testing.T) {
		node := canvasNode("dot", []any{0, 2}, []any{0, 2},
			map[string]any{"type": "points", "coords": []any{[]any{0, 2}, []any{2, 0}}})
		assert.Equal(t, "•\n\n  •", renderString(t, node, 3, 3))
	})
}

func TestCanvasLabelAndColor(t *testing.T) {
	node := canvasNode("braille", []any{0, 100}, []any{0, 100},
		map[string]any{"type": "circle", "x": 50, "y": 50, "radius": 200, "color": "red"},
		map[string]any{"type": "label", "x": 0, "y": 100, "text": "hi", "style": map[string]any{"fg": "green"}},
	).Set("background_color", "blue")

	buf := NewBuffer(4, 2)
	require.NoError(t, NewRenderer(Options{}).Render(buf, buf.Area(), node))
	assert.Equal(t, "hi", buf.GetLine(0))
	assert.Equal(t, Style{FG: Green, BG: Blue}, buf.Get(0, 0).Style)
	assert.Equal(t, Blue, buf.Get(3, 1).Style.BG)
}

func TestCanvasShapeValues(t *testing.T) {
	node := NewNode(KindCanvas, map[string]any{
		"marker":   "block",
		"x_bounds": [2]float64{0, 1},
		"y_bounds": [2]float64{0, 1},
		"shapes":   []any{CanvasPoints{Coords: [][2]float64{{1, 1}}, Color: Yellow}},
	})
	buf := NewBuffer(2, 2)
	require.NoError(t, NewRenderer(Options{}).Render(buf, buf.Area(), node))
	assert.Equal(t, "█", buf.Get(1, 0).Symbol)
	assert.Equal(t, Yellow, buf.Get(1, 0).Style.FG)
}

func TestCanvasErrors(t *testing.T) {
	r := NewRenderer(Options{})
	for name, node := range map[string]Node{
		"unknown shape":  canvasNode("braille", []any{0, 1}, []any{0, 1}, map[string]any{"type": "blob"}),
		"unknown marker": canvasNode("sparkles", []any{0, 1}, []any{0, 1}),
		"bad bounds":     canvasNode("braille", []any{0}, []any{0, 1}),
		"bad coords":     canvasNode("dot", []any{0, 1}, []any{0, 1}, map[string]any{"type": "points", "coords": []any{"x"}}),
	} {
		t.Run(name, func(t *testing.T) {
			buf := NewBuffer(2, 2)
			assert.ErrorIs(t, r.Render(buf, buf.Area(), node), ErrInvalidArgument)
		})
	}
}

func TestCanvasMap(t *testing.T) {
	low, high := worldCoast(MapLow), worldCoast(MapHigh)
	require.NotEmpty(t, low)
	assert.Greater(t, len(high), len(low))

	for _, p := range low {
		row := int((90 - p[1]) / worldCell)
		col := int((p[0] + 180) / worldCell)
		if !isLand(row, col) {
			t.Errorf("expected coast point %v on land, got sea cell %d,%d", p, row, col)
		}
	}
	for _, p := range high {
		if p[0] < -180 || p[0] > 180 || p[1] < -90 || p[1] > 90 {
			t.Errorf("expected point inside the globe, got %v", p)
		}
	}

	// inland polar cells are not coast; the Ross sea shore is
	assert.Contains(t, low, [2]float64{-155, -85})
	assert.NotContains(t, low, [2]float64{-5, -85})

	assert.Equal(t, MapHigh, ParseMapResolution("high"))
	assert.Equal(t, MapLow, ParseMapResolution("fine"))

	node := canvasNode("dot", []any{-180, 180}, []any{-90, 90},
		map[string]any{"type": "map", "resolution": "high", "color": "green"})
	buf := NewBuffer(36, 18)
	require.NoError(t, NewRenderer(Options{}).Render(buf, buf.Area(), node))
	painted := 0
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			if c := buf.Get(x, y); c.Symbol == "•" {
				painted++
				assert.Equal(t, Green, c.Style.FG)
			}
		}
	}
	assert.Greater(t, painted, 50)
}
