package termbridge

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Borders is a mask of block edges.
type Borders uint8

const (
	BorderTop Borders = 1 << iota
	BorderRight
	BorderBottom
	BorderLeft

	BordersNone Borders = 0
	BordersAll          = BorderTop | BorderRight | BorderBottom | BorderLeft
)

// Has reports whether every edge in e is set.
func (b Borders) Has(e Borders) bool {
	return b&e == e
}

// BorderSet holds the eight glyphs used to draw a block border.
type BorderSet struct {
	TopLeft          string
	TopRight         string
	BottomLeft       string
	BottomRight      string
	VerticalLeft     string
	VerticalRight    string
	HorizontalTop    string
	HorizontalBottom string
}

func borderSetOf(b lipgloss.Border) BorderSet {
	return BorderSet{
		TopLeft:          b.TopLeft,
		TopRight:         b.TopRight,
		BottomLeft:       b.BottomLeft,
		BottomRight:      b.BottomRight,
		VerticalLeft:     b.Left,
		VerticalRight:    b.Right,
		HorizontalTop:    b.Top,
		HorizontalBottom: b.Bottom,
	}
}

// Named border sets.
var (
	BorderPlain           = borderSetOf(lipgloss.NormalBorder())
	BorderRounded         = borderSetOf(lipgloss.RoundedBorder())
	BorderDouble          = borderSetOf(lipgloss.DoubleBorder())
	BorderThick           = borderSetOf(lipgloss.ThickBorder())
	BorderQuadrantInside  = borderSetOf(lipgloss.InnerHalfBlockBorder())
	BorderQuadrantOutside = borderSetOf(lipgloss.OuterHalfBlockBorder())
)

var borderTypes = map[string]BorderSet{
	"plain":            BorderPlain,
	"rounded":          BorderRounded,
	"double":           BorderDouble,
	"thick":            BorderThick,
	"quadrant_inside":  BorderQuadrantInside,
	"quadrant_outside": BorderQuadrantOutside,
}

// TitlePosition places a title on the top or bottom border.
type TitlePosition uint8

const (
	TitleTop TitlePosition = iota
	TitleBottom
)

// Title is a block title.
type Title struct {
	Line      Line
	Alignment Alignment
	Position  TitlePosition
}

// Padding is the space between the border and the block content.
type Padding struct {
	Left, Right, Top, Bottom int
}

// Block is the chrome around a widget: borders, titles and padding.
type Block struct {
	Titles         []Title
	TitleAlignment Alignment
	TitleStyle     Style
	Borders        Borders
	BorderSet      BorderSet
	BorderStyle    Style
	Style          Style
	Padding        Padding
}

// NewBlock returns a block with all borders drawn in the plain set.
func NewBlock() *Block {
	return &Block{Borders: BordersAll, BorderSet: BorderPlain}
}

// Inner returns the content area of the block within area.
func (b *Block) Inner(area Rect) Rect {
	if b == nil {
		return area
	}
	var l, r, t, bo int
	if b.Borders.Has(BorderLeft) {
		l = 1
	}
	if b.Borders.Has(BorderRight) {
		r = 1
	}
	if b.Borders.Has(BorderTop) || b.hasTitles(TitleTop) {
		t = 1
	}
	if b.Borders.Has(BorderBottom) || b.hasTitles(TitleBottom) {
		bo = 1
	}
	inner := area.Shrink(l, r, t, bo)
	p := b.Padding
	return inner.Shrink(p.Left, p.Right, p.Top, p.Bottom)
}

// VerticalSpace returns the rows taken by border, titles and padding.
func (b *Block) VerticalSpace() int {
	if b == nil {
		return 0
	}
	n := b.Padding.Top + b.Padding.Bottom
	if b.Borders.Has(BorderTop) || b.hasTitles(TitleTop) {
		n++
	}
	if b.Borders.Has(BorderBottom) || b.hasTitles(TitleBottom) {
		n++
	}
	return n
}

// HorizontalSpace returns the columns taken by border and padding.
func (b *Block) HorizontalSpace() int {
	if b == nil {
		return 0
	}
	n := b.Padding.Left + b.Padding.Right
	if b.Borders.Has(BorderLeft) {
		n++
	}
	if b.Borders.Has(BorderRight) {
		n++
	}
	return n
}

func (b *Block) hasTitles(pos TitlePosition) bool {
	for _, t := range b.Titles {
		if t.Position == pos {
			return true
		}
	}
	return false
}

// Render draws the block chrome into area.
func (b *Block) Render(buf *Buffer, area Rect) {
	if b == nil {
		return
	}
	area = area.Intersect(buf.Area())
	if area.IsEmpty() {
		return
	}
	buf.SetStyle(area, b.Style)
	b.renderBorders(buf, area)
	b.renderTitles(buf, area, TitleTop)
	b.renderTitles(buf, area, TitleBottom)
}

func (b *Block) renderBorders(buf *Buffer, area Rect) {
	set, style := b.BorderSet, b.BorderStyle
	left, right := area.X, area.Right()-1
	top, bottom := area.Y, area.Bottom()-1
	if b.Borders.Has(BorderTop) {
		buf.HLine(left, top, area.Width, set.HorizontalTop, style)
	}
	if b.Borders.Has(BorderBottom) {
		buf.HLine(left, bottom, area.Width, set.HorizontalBottom, style)
	}
	if b.Borders.Has(BorderLeft) {
		buf.VLine(left, top, area.Height, set.VerticalLeft, style)
	}
	if b.Borders.Has(BorderRight) {
		buf.VLine(right, top, area.Height, set.VerticalRight, style)
	}
	if b.Borders.Has(BorderTop | BorderLeft) {
		buf.SetSymbol(left, top, set.TopLeft, style)
	}
	if b.Borders.Has(BorderTop | BorderRight) {
		buf.SetSymbol(right, top, set.TopRight, style)
	}
	if b.Borders.Has(BorderBottom | BorderLeft) {
		buf.SetSymbol(left, bottom, set.BottomLeft, style)
	}
	if b.Borders.Has(BorderBottom | BorderRight) {
		buf.SetSymbol(right, bottom, set.BottomRight, style)
	}
}

// renderTitles lays out the titles of one border row: left aligned titles
// from the left, right aligned from the right, centered ones in the middle,
// each separated by a space.
func (b *Block) renderTitles(buf *Buffer, area Rect, pos TitlePosition) {
	row := area.Y
	if pos == TitleBottom {
		row = area.Bottom() - 1
	}
	x0, x1 := area.X, area.Right()
	if b.Borders.Has(BorderLeft) {
		x0++
	}
	if b.Borders.Has(BorderRight) {
		x1--
	}
	if x1 <= x0 {
		return
	}
	byAlign := map[Alignment][]Title{}
	for _, t := range b.Titles {
		if t.Position != pos {
			continue
		}
		a := t.Alignment
		if a == AlignInherit {
			a = b.TitleAlignment
		}
		if a == AlignInherit {
			a = AlignLeft
		}
		byAlign[a] = append(byAlign[a], t)
	}

	x := x0
	for _, t := range byAlign[AlignLeft] {
		if x >= x1 {
			break
		}
		x += b.drawTitle(buf, Rect{X: x, Y: row, Width: x1 - x, Height: 1}, t) + 1
	}
	leftEnd := x

	right := byAlign[AlignRight]
	rx := x1
	for i := len(right) - 1; i >= 0; i-- {
		w := min(right[i].Line.Width(), rx-leftEnd)
		if w <= 0 {
			break
		}
		rx -= w
		b.drawTitle(buf, Rect{X: rx, Y: row, Width: w, Height: 1}, right[i])
		rx--
	}

	centered := byAlign[AlignCenter]
	if len(centered) == 0 {
		return
	}
	total := len(centered) - 1
	for _, t := range centered {
		total += t.Line.Width()
	}
	cx := x0 + max((x1-x0-total)/2, 0)
	for _, t := range centered {
		if cx >= x1 {
			break
		}
		cx += b.drawTitle(buf, Rect{X: cx, Y: row, Width: x1 - cx, Height: 1}, t) + 1
	}
}

func (b *Block) drawTitle(buf *Buffer, area Rect, t Title) int {
	line := t.Line
	line.Style = b.TitleStyle.Patch(line.Style)
	return drawLine(buf, area, area.Y, line, AlignLeft)
}

// Block resolves a block descriptor. A nil descriptor yields a nil block.
func (r *StyleResolver) Block(desc any) (*Block, error) {
	switch d := desc.(type) {
	case nil:
		return nil, nil
	case *Block:
		return d, nil
	case Block:
		return &d, nil
	case Node:
		return r.blockFrom(d)
	case map[string]any:
		return r.blockFrom(NewNode(KindBlock, d))
	}
	return nil, invalidf("block: expected mapping, got %T", desc)
}

func (r *StyleResolver) blockFrom(n Node) (*Block, error) {
	ar := newAttrReader(n, r)
	b := NewBlock()
	b.Style = ar.style("style")
	b.TitleStyle = ar.style("title_style")
	b.TitleAlignment = ar.alignment("title_alignment", AlignInherit)

	if v, ok := ar.raw("title"); ok {
		line, err := r.Line(v)
		if err != nil {
			return nil, fmt.Errorf("block.title: %w", err)
		}
		b.Titles = append(b.Titles, Title{Line: line})
	}
	for i, v := range ar.list("titles") {
		t, err := r.title(v)
		if err != nil {
			return nil, fmt.Errorf("block.titles[%d]: %w", i, err)
		}
		b.Titles = append(b.Titles, t)
	}

	if v, ok := ar.raw("borders"); ok {
		borders, err := parseBorders(v)
		if err != nil {
			return nil, err
		}
		b.Borders = borders
	}

	// border_style wins over border_color.
	if ar.has("border_style") {
		b.BorderStyle = ar.style("border_style")
	} else if ar.has("border_color") {
		b.BorderStyle = Style{FG: ar.color("border_color")}
	}

	// border_set wins over border_type.
	if v, ok := ar.raw("border_set"); ok {
		set, err := parseBorderSet(v)
		if err != nil {
			return nil, err
		}
		b.BorderSet = set
	} else if name := ar.str("border_type", ""); name != "" {
		set, ok := borderTypes[name]
		if !ok {
			if err := r.unknown("border_type", name); err != nil {
				return nil, err
			}
			set = BorderPlain
		}
		b.BorderSet = set
	}

	if v, ok := ar.raw("padding"); ok {
		p, err := parsePadding(v)
		if err != nil {
			return nil, err
		}
		b.Padding = p
	}
	if err := ar.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *StyleResolver) title(v any) (Title, error) {
	m, ok := v.(map[string]any)
	if !ok {
		line, err := r.Line(v)
		return Title{Line: line}, err
	}
	var t Title
	line, err := r.Line(m["content"])
	if err != nil {
		return t, err
	}
	style, err := r.Style(m["style"])
	if err != nil {
		return t, err
	}
	line.Style = line.Style.Patch(style)
	t.Line = line
	if a, ok := m["alignment"]; ok && a != nil {
		if t.Alignment, err = parseAlignment(a); err != nil {
			return t, err
		}
	}
	if p, ok := m["position"]; ok && p != nil {
		switch s, _ := asString(p); s {
		case "top":
			t.Position = TitleTop
		case "bottom":
			t.Position = TitleBottom
		default:
			return t, invalidf("title.position: unknown value %v", p)
		}
	}
	return t, nil
}

var borderNames = map[string]Borders{
	"all":    BordersAll,
	"none":   BordersNone,
	"top":    BorderTop,
	"right":  BorderRight,
	"bottom": BorderBottom,
	"left":   BorderLeft,
}

func parseBorders(v any) (Borders, error) {
	if b, ok := v.(Borders); ok {
		return b, nil
	}
	if s, ok := asString(v); ok {
		b, ok := borderNames[s]
		if !ok {
			return 0, invalidf("borders: unknown edge %q", s)
		}
		return b, nil
	}
	list, ok := asList(v)
	if !ok {
		return 0, invalidf("borders: expected symbol or array, got %T", v)
	}
	var b Borders
	for _, e := range list {
		s, _ := asString(e)
		edge, ok := borderNames[s]
		if !ok {
			return 0, invalidf("borders: unknown edge %v", e)
		}
		b |= edge
	}
	return b, nil
}

func parseBorderSet(v any) (BorderSet, error) {
	if s, ok := v.(BorderSet); ok {
		return s, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return BorderSet{}, invalidf("border_set: expected mapping, got %T", v)
	}
	set := BorderPlain
	fields := map[string]*string{
		"top_left":          &set.TopLeft,
		"top_right":         &set.TopRight,
		"bottom_left":       &set.BottomLeft,
		"bottom_right":      &set.BottomRight,
		"vertical_left":     &set.VerticalLeft,
		"vertical_right":    &set.VerticalRight,
		"horizontal_top":    &set.HorizontalTop,
		"horizontal_bottom": &set.HorizontalBottom,
	}
	for k, val := range m {
		dst, ok := fields[k]
		if !ok {
			return BorderSet{}, invalidf("border_set: unknown key %q", k)
		}
		s, ok := asString(val)
		if !ok {
			return BorderSet{}, invalidf("border_set.%s: expected string, got %T", k, val)
		}
		*dst = s
	}
	return set, nil
}

func parsePadding(v any) (Padding, error) {
	if p, ok := v.(Padding); ok {
		return p, nil
	}
	if n, ok := asInt(v); ok {
		return Padding{n, n, n, n}, nil
	}
	list, ok := asList(v)
	if !ok || len(list) != 4 {
		return Padding{}, invalidf("padding: expected integer or [left, right, top, bottom], got %v", v)
	}
	var vals [4]int
	for i, e := range list {
		n, ok := asInt(e)
		if !ok {
			return Padding{}, invalidf("padding[%d]: expected integer, got %T", i, e)
		}
		vals[i] = n
	}
	return Padding{Left: vals[0], Right: vals[1], Top: vals[2], Bottom: vals[3]}, nil
}
