package termbridge

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spans reduces horizontal rects to [x, width] pairs.
func spans(rects []Rect) [][2]int {
	out := make([][2]int, len(rects))
	for i, r := range rects {
		out[i] = [2]int{r.X, r.Width}
	}
	return out
}

func TestSplitLayout(t *testing.T) {
	area := NewRect(0, 0, 100, 10)
	tests := []struct {
		name        string
		constraints []Constraint
		flex        Flex
		want        [][2]int
	}{
		{"fill weights", []Constraint{Fill(1), Fill(3)}, FlexLegacy, [][2]int{{0, 25}, {25, 75}}},
		{"percentages", []Constraint{Percentage(50), Percentage(50)}, FlexLegacy, [][2]int{{0, 50}, {50, 50}}},
		{"legacy stretches last", []Constraint{Length(10), Length(20)}, FlexLegacy, [][2]int{{0, 10}, {10, 90}}},
		{"legacy keeps trailing max", []Constraint{Length(10), Max(30)}, FlexLegacy, [][2]int{{0, 10}, {10, 30}}},
		{"max beside fill", []Constraint{Max(30), Fill(1)}, FlexLegacy, [][2]int{{0, 30}, {30, 70}}},
		{"min grows", []Constraint{Length(10), Min(20)}, FlexStart, [][2]int{{0, 10}, {10, 90}}},
		{"start", []Constraint{Length(10), Length(10)}, FlexStart, [][2]int{{0, 10}, {10, 10}}},
		{"end", []Constraint{Length(10), Length(10)}, FlexEnd, [][2]int{{80, 10}, {90, 10}}},
		{"center", []Constraint{Length(20)}, FlexCenter, [][2]int{{40, 20}}},
		{"center three", []Constraint{Length(10), Length(10), Length(10)}, FlexCenter,
			[][2]int{{35, 10}, {45, 10}, {55, 10}}},
		{"space between", []Constraint{Length(10), Length(10), Length(10)}, FlexSpaceBetween,
			[][2]int{{0, 10}, {45, 10}, {90, 10}}},
		{"space evenly", []Constraint{Length(10), Length(10), Length(10)}, FlexSpaceEvenly,
			[][2]int{{18, 10}, {45, 10}, {73, 10}}},
		{"space around", []Constraint{Length(10), Length(10)}, FlexSpaceAround,
			[][2]int{{20, 10}, {70, 10}}},
		{"ratio", []Constraint{Ratio(1, 4), Fill(1)}, FlexLegacy, [][2]int{{0, 25}, {25, 75}}},
		{"overflow shrinks non-min first", []Constraint{Length(60), Min(60)}, FlexLegacy,
			[][2]int{{0, 40}, {40, 60}}},
		{"overflow shrinks evenly", []Constraint{Length(60), Length(60)}, FlexLegacy,
			[][2]int{{0, 50}, {50, 50}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := spans(SplitLayout(area, Horizontal, tt.constraints, tt.flex))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitLayoutVertical(t *testing.T) {
	rects := SplitLayout(NewRect(5, 2, 20, 10), Vertical, []Constraint{Length(3), Fill(1)}, FlexLegacy)
	want := []Rect{NewRect(5, 2, 20, 3), NewRect(5, 5, 20, 7)}
	if diff := cmp.Diff(want, rects); diff != "" {
		t.Errorf("rects mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitLayoutStaysInside(t *testing.T) {
	area := NewRect(3, 4, 17, 9)
	for _, flex := range []Flex{FlexLegacy, FlexStart, FlexCenter, FlexEnd, FlexSpaceBetween, FlexSpaceAround, FlexSpaceEvenly} {
		rects := SplitLayout(area, Horizontal, []Constraint{Percentage(33), Min(2), Ratio(1, 3), Length(40)}, flex)
		for i, r := range rects {
			if r.X < area.X || r.Right() > area.Right() || r.Y != area.Y || r.Height != area.Height {
				t.Errorf("%s: rect %d %v escapes %v", flex, i, r, area)
			}
		}
	}
}

func TestSplitLayoutIsPure(t *testing.T) {
	cs := []Constraint{Percentage(30), Min(5), Fill(2), Max(10)}
	a := SplitLayout(NewRect(0, 0, 77, 3), Horizontal, cs, FlexSpaceAround)
	b := SplitLayout(NewRect(0, 0, 77, 3), Horizontal, cs, FlexSpaceAround)
	assert.Equal(t, a, b)
}

func TestLayoutAreas(t *testing.T) {
	children := []Node{Paragraph("a"), Paragraph("b"), Paragraph("c")}
	spec := LayoutSpec{
		Direction:   Horizontal,
		Constraints: []Constraint{Length(10), Length(10)},
		Children:    children,
	}

	t.Run("mismatch falls back to even split", func(t *testing.T) {
		rects, err := spec.Areas(NewRect(0, 0, 100, 1), false)
		require.NoError(t, err)
		assert.Equal(t, [][2]int{{0, 33}, {33, 33}, {66, 34}}, spans(rects))
	})

	t.Run("strict mismatch", func(t *testing.T) {
		_, err := spec.Areas(NewRect(0, 0, 100, 1), true)
		if !errors.Is(err, ErrConstraintMismatch) {
			t.Errorf("expected ErrConstraintMismatch, got %v", err)
		}
	})

	t.Run("no children", func(t *testing.T) {
		rects, err := LayoutSpec{}.Areas(NewRect(0, 0, 10, 10), false)
		require.NoError(t, err)
		assert.Empty(t, rects)
	})
}

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		in   string
		want Constraint
	}{
		{"len:10", Length(10)},
		{"length:3", Length(3)},
		{"pct:50", Percentage(50)},
		{"min:5", Min(5)},
		{"max:30", Max(30)},
		{"fill:2", Fill(2)},
		{"ratio:1/3", Ratio(1, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConstraint(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "len", "len:-1", "wide:3", "ratio:1", "pct:x"} {
		if _, err := ParseConstraint(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for %q, got %v", bad, err)
		}
	}
}

func TestParseLayoutNode(t *testing.T) {
	node := NewNode(KindLayout, map[string]any{
		"direction": "horizontal",
		"flex":      "space-between",
		"constraints": []any{
			"len:10",
			map[string]any{"type": "percentage", "value": 50},
			map[string]any{"ratio": []any{1, 4}},
		},
		"children": []any{Paragraph("a"), Paragraph("b"), Paragraph("c")},
	})
	spec, err := parseLayout(node)
	require.NoError(t, err)
	assert.Equal(t, Horizontal, spec.Direction)
	assert.Equal(t, FlexSpaceBetween, spec.Flex)
	assert.Equal(t, []Constraint{Length(10), Percentage(50), Ratio(1, 4)}, spec.Constraints)
	assert.Len(t, spec.Children, 3)

	_, err = parseLayout(NewNode(KindLayout, map[string]any{"flex": "sideways"}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
