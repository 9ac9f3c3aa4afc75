package termbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGauge(t *testing.T) {
	t.Run("half with default label", func(t *testing.T) {
		node := NewNode(KindGauge, map[string]any{"ratio": 0.5})
		assert.Equal(t, "███50%", renderString(t, node, 10, 1))
	})

	t.Run("percent and custom label", func(t *testing.T) {
		node := NewNode(KindGauge, map[string]any{"percent": 100, "label": "ok"})
		assert.Equal(t, "████ok████", renderString(t, node, 10, 1))
	})

	t.Run("empty", func(t *testing.T) {
		node := NewNode(KindGauge, map[string]any{"ratio": 0})
		assert.Equal(t, "   0%", renderString(t, node, 8, 1))
	})

	t.Run("unicode partial block", func(t *testing.T) {
		node := NewNode(KindGauge, map[string]any{"ratio": 0.25, "use_unicode": true, "label": ""})
		assert.Equal(t, "█▌", renderString(t, node, 6, 1))
	})

	t.Run("label row is centered", func(t *testing.T) {
		node := NewNode(KindGauge, map[string]any{"ratio": 1, "label": "x"})
		assert.Equal(t, "███\n█x█\n███", renderString(t, node, 3, 3))
	})

	t.Run("gauge style", func(t *testing.T) {
		node := NewNode(KindGauge, map[string]any{
			"ratio":       0.5,
			"label":       "",
			"gauge_style": map[string]any{"fg": "green", "bg": "black"},
		})
		buf := NewBuffer(4, 1)
		require.NoError(t, NewRenderer(Options{}).Render(buf, buf.Area(), node))
		assert.Equal(t, Style{FG: Green, BG: Black}, buf.Get(0, 0).Style)
	})

	t.Run("out of range", func(t *testing.T) {
		buf := NewBuffer(4, 1)
		err := NewRenderer(Options{}).Render(buf, buf.Area(), NewNode(KindGauge, map[string]any{"ratio": 1.5}))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestLineGauge(t *testing.T) {
	node := NewNode(KindLineGauge, map[string]any{"ratio": 0.5})
	assert.Equal(t, "50% ███░░░", renderString(t, node, 10, 1))

	custom := NewNode(KindLineGauge, map[string]any{
		"ratio":           0.25,
		"label":           "L",
		"filled_symbol":   "=",
		"unfilled_symbol": "-",
	})
	assert.Equal(t, "L ==------", renderString(t, custom, 10, 1))
}

func TestTabs(t *testing.T) {
	node := NewNode(KindTabs, map[string]any{
		"titles":         []any{"A", "B", "C"},
		"selected_index": 1,
		"padding_left":   1,
		"padding_right":  1,
	})

	t.Run("render", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		require.NoError(t, NewRenderer(Options{}).Render(buf, buf.Area(), node))
		assert.Equal(t, " A|B|C", buf.GetLine(0))
		assert.True(t, buf.Get(3, 0).Style.Mod.Has(ModReversed))
		assert.False(t, buf.Get(1, 0).Style.Mod.Has(ModReversed))
	})

	t.Run("width", func(t *testing.T) {
		w, err := TabsWidth(node)
		require.NoError(t, err)
		assert.Equal(t, 7, w)

		w, err = TabsWidth(NewNode(KindTabs, map[string]any{
			"titles":  []any{"one", "two"},
			"divider": " | ",
		}))
		require.NoError(t, err)
		assert.Equal(t, 9, w)
	})

	t.Run("clipped", func(t *testing.T) {
		assert.Equal(t, " A|", renderString(t, node, 3, 1))
	})
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		attrs  map[string]any
		width  int
		height int
		want   string
	}{
		{"scaled to max", map[string]any{"data": []any{0, 4, 8}}, 3, 1, " ▄█"},
		{"explicit max", map[string]any{"data": []any{4}, "max": 4}, 1, 1, "█"},
		{"two rows", map[string]any{"data": []any{8, 4}}, 2, 2, "█\n██"},
		{"absent samples", map[string]any{"data": []any{8, nil, 8}}, 3, 1, "█ █"},
		{"right to left", map[string]any{"data": []any{8, 0}, "direction": "right_to_left"}, 3, 1, "  █"},
		{"clipped to width", map[string]any{"data": []int{1, 1, 1, 1}}, 2, 1, "██"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderString(t, NewNode(KindSparkline, tt.attrs), tt.width, tt.height)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	t.Run("negative sample", func(t *testing.T) {
		buf := NewBuffer(3, 1)
		err := NewRenderer(Options{}).Render(buf, buf.Area(), NewNode(KindSparkline, map[string]any{"data": []any{-1}}))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}
