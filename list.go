package termbridge

import "strings"

// HighlightSpacing decides when the column for the highlight symbol is
// reserved.
type HighlightSpacing uint8

const (
	SpacingWhenSelected HighlightSpacing = iota
	SpacingAlways
	SpacingNever
)

func (h HighlightSpacing) reserve(selected bool) bool {
	switch h {
	case SpacingAlways:
		return true
	case SpacingNever:
		return false
	}
	return selected
}

func (r *attrReader) spacing(name string) HighlightSpacing {
	switch s := r.str(name, "when_selected"); s {
	case "when_selected":
		return SpacingWhenSelected
	case "always":
		return SpacingAlways
	case "never":
		return SpacingNever
	default:
		r.fail(name, "always, never or when_selected", s)
	}
	return SpacingWhenSelected
}

type listItem struct {
	lines []Line
	style Style
}

func (i listItem) height() int {
	return max(len(i.lines), 1)
}

type listSpec struct {
	items           []listItem
	sel             selection
	style           Style
	highlightStyle  Style
	highlightSymbol string
	repeatSymbol    bool
	spacing         HighlightSpacing
	bottomToTop     bool
	scrollPadding   int
	block           *Block
}

func parseList(n Node, styles *StyleResolver) (listSpec, error) {
	ar := newAttrReader(n, styles)
	spec := listSpec{
		style:           ar.style("style"),
		highlightStyle:  ar.style("highlight_style"),
		highlightSymbol: ar.str("highlight_symbol", "> "),
		repeatSymbol:    ar.bool("repeat_highlight_symbol", false),
		spacing:         ar.spacing("highlight_spacing"),
		scrollPadding:   max(ar.int("scroll_padding", 0), 0),
		block:           ar.block(),
	}
	if i, ok := ar.optInt("selected_index"); ok && i >= 0 {
		spec.sel.index, spec.sel.has = i, true
	}
	spec.sel.offset = max(ar.int("offset", 0), 0)
	switch d := ar.str("direction", "top_to_bottom"); d {
	case "top_to_bottom":
	case "bottom_to_top":
		spec.bottomToTop = true
	default:
		ar.fail("direction", "top_to_bottom or bottom_to_top", d)
	}
	for _, v := range ar.list("items") {
		item, err := ar.styles.listItem(v)
		if err != nil {
			ar.setErr("items", err)
			break
		}
		spec.items = append(spec.items, item)
	}
	return spec, ar.Err()
}

func (r *StyleResolver) listItem(v any) (listItem, error) {
	if m, ok := v.(map[string]any); ok {
		if _, isLine := m["spans"]; !isLine {
			content := m["content"]
			if content == nil {
				content = m["text"]
			}
			lines, err := r.Text(content)
			if err != nil {
				return listItem{}, err
			}
			style, err := r.Style(m["style"])
			return listItem{lines: lines, style: style}, err
		}
	}
	lines, err := r.Text(v)
	return listItem{lines: lines}, err
}

// visibleBounds returns the first visible index and one past the last for
// items of the given heights in maxHeight rows. The window starts at
// offset and moves as little as possible to keep the selected index (and
// padding items around it) visible.
func visibleBounds(heights []int, sel selection, maxHeight, padding int) (first, last int) {
	n := len(heights)
	if n == 0 || maxHeight <= 0 {
		return 0, 0
	}
	offset := min(sel.offset, n-1)
	first, last = offset, offset
	used := 0
	for _, h := range heights[offset:] {
		if used+h > maxHeight {
			break
		}
		used += h
		last++
	}

	target := offset
	if sel.has {
		target = min(sel.index, n-1)
	}
	padding = min(padding, max((maxHeight-1)/2, 0))
	lo, hi := target, target
	if sel.has {
		lo, hi = max(target-padding, 0), min(target+padding, n-1)
	}

	for hi >= last {
		used += heights[last]
		last++
		for used > maxHeight && first < last-1 {
			used -= heights[first]
			first++
		}
	}
	for lo < first {
		first--
		used += heights[first]
		for used > maxHeight && last > first+1 {
			last--
			used -= heights[last]
		}
	}
	return first, last
}

// renderList draws a list. With a non-nil state the state's selection is
// used and the resulting offset is stored back.
func (p *renderPass) renderList(area Rect, node Node, state *ListState) error {
	spec, err := parseList(node, p.r.styles)
	if err != nil {
		return err
	}
	if state == nil {
		sel := spec.sel
		return p.drawList(area, spec, &sel)
	}
	return state.borrowed(func(sel *selection) error {
		return p.drawList(area, spec, sel)
	})
}

func (p *renderPass) drawList(area Rect, spec listSpec, sel *selection) error {
	p.buf.SetStyle(area, spec.style)
	inner := p.applyBlock(area, spec.block)
	if inner.IsEmpty() {
		return nil
	}
	if len(spec.items) == 0 {
		sel.has, sel.offset = false, 0
		return nil
	}
	if sel.has && sel.index >= len(spec.items) {
		sel.index = len(spec.items) - 1
	}

	heights := make([]int, len(spec.items))
	for i, it := range spec.items {
		heights[i] = it.height()
	}
	first, last := visibleBounds(heights, *sel, inner.Height, spec.scrollPadding)
	sel.offset = first

	symWidth := TextWidth(spec.highlightSymbol)
	blank := strings.Repeat(" ", symWidth)
	reserve := spec.spacing.reserve(sel.has)

	used := 0
	for i := first; i < last; i++ {
		item := spec.items[i]
		h := min(item.height(), inner.Height-used)
		if h <= 0 {
			break
		}
		y := inner.Y + used
		if spec.bottomToTop {
			y = inner.Bottom() - used - h
		}
		used += h
		row := Rect{X: inner.X, Y: y, Width: inner.Width, Height: h}
		itemStyle := spec.style.Patch(item.style)
		p.buf.SetStyle(row, itemStyle)

		content := row
		if reserve {
			content = row.Shrink(symWidth, 0, 0, 0)
		}
		for j, l := range item.lines {
			if j >= h {
				break
			}
			drawLine(p.buf, content, y+j, l, AlignLeft)
		}

		selected := sel.has && sel.index == i
		if reserve {
			for j := 0; j < h; j++ {
				sym := blank
				if selected && (j == 0 || spec.repeatSymbol) {
					sym = spec.highlightSymbol
				}
				p.buf.WriteStringN(row.X, y+j, sym, row.Width, itemStyle)
			}
		}
		if selected {
			p.buf.SetStyle(row, spec.highlightStyle)
		}
	}
	return nil
}
