package termbridge

import "strings"

type tabsSpec struct {
	titles         []Line
	selected       int
	divider        Line
	style          Style
	highlightStyle Style
	padLeft        int
	padRight       int
	block          *Block
}

func parseTabs(n Node, styles *StyleResolver) (tabsSpec, error) {
	ar := newAttrReader(n, styles)
	spec := tabsSpec{
		selected:       ar.int("selected_index", 0),
		divider:        RawLine("|"),
		style:          ar.style("style"),
		highlightStyle: Style{Mod: ModReversed},
		padLeft:        max(ar.int("padding_left", 0), 0),
		padRight:       max(ar.int("padding_right", 0), 0),
		block:          ar.block(),
	}
	if ar.has("highlight_style") {
		spec.highlightStyle = ar.style("highlight_style")
	}
	if v, ok := ar.raw("divider"); ok {
		d, err := ar.styles.Line(v)
		ar.setErr("divider", err)
		spec.divider = d
	}
	for _, v := range ar.list("titles") {
		l, err := ar.styles.Line(v)
		if err != nil {
			ar.setErr("titles", err)
			break
		}
		spec.titles = append(spec.titles, l)
	}
	return spec, ar.Err()
}

// width mirrors the drawing below.
func (s tabsSpec) width() int {
	w := s.padLeft + s.padRight
	for _, t := range s.titles {
		w += t.Width()
	}
	if len(s.titles) > 1 {
		w += (len(s.titles) - 1) * s.divider.Width()
	}
	return w
}

// TabsWidth returns the number of columns a tabs node draws: titles,
// dividers between them, and the left and right padding.
func TabsWidth(node Node) (int, error) {
	spec, err := parseTabs(node, nil)
	if err != nil {
		return 0, err
	}
	return spec.width(), nil
}

func (p *renderPass) renderTabs(area Rect, node Node) error {
	spec, err := parseTabs(node, p.r.styles)
	if err != nil {
		return err
	}
	p.buf.SetStyle(area, spec.style)
	inner := p.applyBlock(area, spec.block)
	if inner.IsEmpty() {
		return nil
	}
	y := inner.Y
	x := inner.X
	put := func(l Line) int {
		if x >= inner.Right() {
			return 0
		}
		w := drawLine(p.buf, Rect{X: x, Y: y, Width: inner.Right() - x, Height: 1}, y, l, AlignLeft)
		x += w
		return w
	}
	put(RawLine(strings.Repeat(" ", spec.padLeft)))
	for i, title := range spec.titles {
		start := x
		w := put(title)
		if i == spec.selected {
			p.buf.SetStyle(Rect{X: start, Y: y, Width: w, Height: 1}, spec.highlightStyle)
		}
		if i < len(spec.titles)-1 {
			put(spec.divider)
		}
	}
	put(RawLine(strings.Repeat(" ", spec.padRight)))
	return nil
}
