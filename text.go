package termbridge

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Alignment positions a line horizontally. The zero value inherits the
// alignment of the enclosing widget.
type Alignment uint8

const (
	AlignInherit Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func parseAlignment(v any) (Alignment, error) {
	if a, ok := v.(Alignment); ok {
		return a, nil
	}
	s, ok := asString(v)
	if !ok {
		return AlignInherit, invalidf("alignment: expected string, got %T", v)
	}
	switch s {
	case "left", "":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignInherit, invalidf("alignment: unknown value %q", s)
}

// TextWidth returns the display width of s in terminal columns.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Span is a run of text with one style.
type Span struct {
	Content string
	Style   Style
}

// Width returns the display width of the span.
func (s Span) Width() int {
	return TextWidth(s.Content)
}

// Line is a row of spans.
type Line struct {
	Spans     []Span
	Style     Style
	Alignment Alignment
}

// RawLine creates an unstyled line.
func RawLine(s string) Line {
	return Line{Spans: []Span{{Content: s}}}
}

// Width returns the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Spans {
		w += s.Width()
	}
	return w
}

func (l Line) String() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Content)
	}
	return sb.String()
}

// Text resolves a text descriptor into lines: a string (split on
// newlines), a Span, a Line, a mapping ({content, style} or {spans, style,
// alignment}), or an array of any of those.
func (r *StyleResolver) Text(v any) ([]Line, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return splitLines(t, Style{}), nil
	case Span, Line, map[string]any:
		l, err := r.Line(t)
		if err != nil {
			return nil, err
		}
		return []Line{l}, nil
	}
	list, ok := asList(v)
	if !ok {
		return nil, invalidf("text: unsupported value %T", v)
	}
	var lines []Line
	for _, item := range list {
		if s, ok := item.(string); ok {
			lines = append(lines, splitLines(s, Style{})...)
			continue
		}
		l, err := r.Line(item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func splitLines(s string, style Style) []Line {
	parts := strings.Split(s, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line{Spans: []Span{{Content: strings.TrimSuffix(p, "\r"), Style: style}}}
	}
	return lines
}

// Line resolves a single line descriptor.
func (r *StyleResolver) Line(v any) (Line, error) {
	switch l := v.(type) {
	case string:
		return RawLine(l), nil
	case Line:
		return l, nil
	case Span:
		return Line{Spans: []Span{l}}, nil
	case map[string]any:
		style, err := r.Style(l["style"])
		if err != nil {
			return Line{}, err
		}
		var align Alignment
		if a, ok := l["alignment"]; ok && a != nil {
			if align, err = parseAlignment(a); err != nil {
				return Line{}, err
			}
		}
		if spans, ok := l["spans"]; ok {
			list, ok := asList(spans)
			if !ok {
				return Line{}, invalidf("line.spans: expected array, got %T", spans)
			}
			line := Line{Style: style, Alignment: align}
			for _, s := range list {
				span, err := r.Span(s)
				if err != nil {
					return Line{}, err
				}
				line.Spans = append(line.Spans, span)
			}
			return line, nil
		}
		span, err := r.Span(l)
		if err != nil {
			return Line{}, err
		}
		return Line{Spans: []Span{span}, Alignment: align}, nil
	}
	if list, ok := asList(v); ok {
		var line Line
		for _, s := range list {
			span, err := r.Span(s)
			if err != nil {
				return Line{}, err
			}
			line.Spans = append(line.Spans, span)
		}
		return line, nil
	}
	return Line{}, invalidf("line: unsupported value %T", v)
}

// Span resolves a single span descriptor.
func (r *StyleResolver) Span(v any) (Span, error) {
	switch s := v.(type) {
	case string:
		return Span{Content: s}, nil
	case Span:
		return s, nil
	case map[string]any:
		content, _ := asString(s["content"])
		style, err := r.Style(s["style"])
		if err != nil {
			return Span{}, err
		}
		return Span{Content: content, Style: style}, nil
	}
	return Span{}, invalidf("span: unsupported value %T", v)
}

// grapheme is one styled cluster of a line, the unit of wrapping.
type grapheme struct {
	sym   string
	width int
	style Style
}

func (g grapheme) isSpace() bool {
	for _, r := range g.sym {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func lineGraphemes(l Line) []grapheme {
	var out []grapheme
	for _, s := range l.Spans {
		style := l.Style.Patch(s.Style)
		g := uniseg.NewGraphemes(s.Content)
		for g.Next() {
			sym := g.Str()
			w := runewidth.StringWidth(sym)
			if w == 0 {
				continue
			}
			out = append(out, grapheme{sym: sym, width: w, style: style})
		}
	}
	return out
}

func graphemesWidth(gs []grapheme) int {
	w := 0
	for _, g := range gs {
		w += g.width
	}
	return w
}

// wrapLine word-wraps a line into rows no wider than width, trimming
// whitespace at row boundaries. Words wider than a row are broken.
func wrapLine(l Line, width int) [][]grapheme {
	gs := lineGraphemes(l)
	if len(gs) == 0 || width <= 0 {
		return [][]grapheme{nil}
	}
	var rows [][]grapheme
	var row []grapheme
	rowWidth := 0
	flush := func() {
		for len(row) > 0 && row[len(row)-1].isSpace() {
			rowWidth -= row[len(row)-1].width
			row = row[:len(row)-1]
		}
		rows = append(rows, row)
		row, rowWidth = nil, 0
	}
	for i := 0; i < len(gs); {
		if gs[i].isSpace() {
			if rowWidth > 0 && rowWidth+gs[i].width <= width {
				row = append(row, gs[i])
				rowWidth += gs[i].width
			}
			i++
			continue
		}
		j := i
		for j < len(gs) && !gs[j].isSpace() {
			j++
		}
		word := gs[i:j]
		ww := graphemesWidth(word)
		if rowWidth > 0 && rowWidth+ww > width {
			flush()
		}
		for _, g := range word {
			if rowWidth+g.width > width {
				flush()
			}
			row = append(row, g)
			rowWidth += g.width
		}
		i = j
	}
	if len(row) > 0 || len(rows) == 0 {
		flush()
	}
	return rows
}

// drawGraphemes writes a row of graphemes into area row y, aligned, skipping
// the first skip columns. Returns the columns drawn.
func drawGraphemes(buf *Buffer, area Rect, y int, gs []grapheme, align Alignment, skip int) int {
	width := graphemesWidth(gs)
	x := area.X
	if skip == 0 && width < area.Width {
		switch align {
		case AlignCenter:
			x += (area.Width - width) / 2
		case AlignRight:
			x += area.Width - width
		}
	}
	col := 0
	drawn := 0
	for _, g := range gs {
		if col < skip {
			col += g.width
			continue
		}
		if x+g.width > area.Right() {
			break
		}
		buf.SetSymbol(x, y, g.sym, g.style)
		for i := 1; i < g.width; i++ {
			buf.SetSymbol(x+i, y, "", g.style)
		}
		x += g.width
		drawn += g.width
	}
	return drawn
}

// drawLine renders a line into one row of area.
func drawLine(buf *Buffer, area Rect, y int, l Line, align Alignment) int {
	if l.Alignment != AlignInherit {
		align = l.Alignment
	}
	return drawGraphemes(buf, area, y, lineGraphemes(l), align, 0)
}
