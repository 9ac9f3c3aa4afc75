package termbridge

import (
	"fmt"
	"strings"
)

type tableCell struct {
	lines []Line
	style Style
}

type tableRow struct {
	cells        []tableCell
	style        Style
	height       int
	bottomMargin int
}

func (r tableRow) span() int {
	return r.height + r.bottomMargin
}

type tableSpec struct {
	header        *tableRow
	footer        *tableRow
	rows          []tableRow
	widths        []Constraint
	sel           tableSelection
	style         Style
	rowHighlight  Style
	colHighlight  Style
	cellHighlight Style
	symbol        string
	spacing       HighlightSpacing
	flex          Flex
	columnSpacing int
	block         *Block
}

func parseTable(n Node, styles *StyleResolver) (tableSpec, error) {
	ar := newAttrReader(n, styles)
	spec := tableSpec{
		style:         ar.style("style"),
		rowHighlight:  ar.style("highlight_style"),
		colHighlight:  ar.style("column_highlight_style"),
		cellHighlight: ar.style("cell_highlight_style"),
		symbol:        ar.str("highlight_symbol", "> "),
		spacing:       ar.spacing("highlight_spacing"),
		columnSpacing: max(ar.int("column_spacing", 1), 0),
		block:         ar.block(),
	}
	if i, ok := ar.optInt("selected_row"); ok && i >= 0 {
		spec.sel.index, spec.sel.has = i, true
	}
	if i, ok := ar.optInt("selected_column"); ok && i >= 0 {
		spec.sel.column, spec.sel.hasCol = i, true
	}
	spec.sel.offset = max(ar.int("offset", 0), 0)
	if v, ok := ar.raw("flex"); ok {
		if f, isFlex := v.(Flex); isFlex {
			spec.flex = f
		} else {
			f, err := ParseFlex(ar.str("flex", ""))
			ar.setErr("flex", err)
			spec.flex = f
		}
	}
	for i, w := range ar.list("widths") {
		c, err := parseConstraintValue(w)
		if err != nil {
			ar.setErr(fmt.Sprintf("widths[%d]", i), err)
			break
		}
		spec.widths = append(spec.widths, c)
	}
	for _, name := range []string{"header", "footer"} {
		v, ok := ar.raw(name)
		if !ok {
			continue
		}
		row, err := ar.styles.tableRow(v)
		if err != nil {
			ar.setErr(name, err)
			continue
		}
		if name == "header" {
			spec.header = &row
		} else {
			spec.footer = &row
		}
	}
	for i, v := range ar.list("rows") {
		row, err := ar.styles.tableRow(v)
		if err != nil {
			ar.setErr(fmt.Sprintf("rows[%d]", i), err)
			break
		}
		spec.rows = append(spec.rows, row)
	}
	return spec, ar.Err()
}

func (r *StyleResolver) tableRow(v any) (tableRow, error) {
	var row tableRow
	cells := v
	if m, ok := v.(map[string]any); ok {
		style, err := r.Style(m["style"])
		if err != nil {
			return row, err
		}
		row.style = style
		if h, ok := asInt(m["height"]); ok {
			row.height = max(h, 0)
		}
		if b, ok := asInt(m["bottom_margin"]); ok {
			row.bottomMargin = max(b, 0)
		}
		cells = m["cells"]
	}
	list, ok := asList(cells)
	if !ok {
		return row, invalidf("row: expected array of cells, got %T", cells)
	}
	tallest := 1
	for _, c := range list {
		cell, err := r.tableCell(c)
		if err != nil {
			return row, err
		}
		tallest = max(tallest, len(cell.lines))
		row.cells = append(row.cells, cell)
	}
	if row.height == 0 {
		row.height = tallest
	}
	return row, nil
}

func (r *StyleResolver) tableCell(v any) (tableCell, error) {
	if m, ok := v.(map[string]any); ok {
		if _, isLine := m["spans"]; !isLine {
			lines, err := r.Text(m["content"])
			if err != nil {
				return tableCell{}, err
			}
			style, err := r.Style(m["style"])
			return tableCell{lines: lines, style: style}, err
		}
	}
	switch c := v.(type) {
	case nil:
		return tableCell{}, nil
	case string, Line, Span, []any, map[string]any:
		lines, err := r.Text(c)
		return tableCell{lines: lines}, err
	}
	if s, ok := asString(v); ok {
		return tableCell{lines: splitLines(s, Style{})}, nil
	}
	return tableCell{lines: splitLines(fmt.Sprint(v), Style{})}, nil
}

func (s tableSpec) columnCount() int {
	n := len(s.widths)
	for _, r := range s.rows {
		n = max(n, len(r.cells))
	}
	if s.header != nil {
		n = max(n, len(s.header.cells))
	}
	return n
}

// columns returns the x offset and width of every column within area.
func (s tableSpec) columns(area Rect, count int) []Rect {
	if count == 0 {
		return nil
	}
	widths := s.widths
	if len(widths) == 0 {
		widths = make([]Constraint, count)
		for i := range widths {
			widths[i] = Fill(1)
		}
	}
	gaps := s.columnSpacing * (len(widths) - 1)
	inner := Rect{X: area.X, Y: area.Y, Width: max(area.Width-gaps, 0), Height: area.Height}
	cols := SplitLayout(inner, Horizontal, widths, s.flex)
	for i := range cols {
		cols[i].X += i * s.columnSpacing
		if cols[i].Right() > area.Right() {
			cols[i].Width = max(area.Right()-cols[i].X, 0)
		}
	}
	return cols
}

func (p *renderPass) renderTable(area Rect, node Node, state *TableState) error {
	spec, err := parseTable(node, p.r.styles)
	if err != nil {
		return err
	}
	if state == nil {
		sel := spec.sel
		return p.drawTable(area, spec, &sel)
	}
	return state.borrowed(func(sel *tableSelection) error {
		return p.drawTable(area, spec, sel)
	})
}

func (p *renderPass) drawTable(area Rect, spec tableSpec, sel *tableSelection) error {
	p.buf.SetStyle(area, spec.style)
	inner := p.applyBlock(area, spec.block)
	if inner.IsEmpty() {
		return nil
	}

	symWidth := TextWidth(spec.symbol)
	reserve := spec.spacing.reserve(sel.has)
	content := inner
	if reserve {
		content = inner.Shrink(symWidth, 0, 0, 0)
	}
	cols := spec.columns(content, spec.columnCount())

	rowsArea := inner
	if spec.header != nil {
		h := min(spec.header.span(), rowsArea.Height)
		p.drawRow(Rect{X: inner.X, Y: inner.Y, Width: inner.Width, Height: min(spec.header.height, h)}, cols, *spec.header, spec.style)
		rowsArea = rowsArea.Shrink(0, 0, h, 0)
	}
	if spec.footer != nil {
		h := min(spec.footer.span(), rowsArea.Height)
		y := rowsArea.Bottom() - h
		p.drawRow(Rect{X: inner.X, Y: y, Width: inner.Width, Height: min(spec.footer.height, h)}, cols, *spec.footer, spec.style)
		rowsArea = rowsArea.Shrink(0, 0, 0, h)
	}

	if len(spec.rows) == 0 {
		sel.has, sel.offset = false, 0
		return nil
	}
	if sel.has && sel.index >= len(spec.rows) {
		sel.index = len(spec.rows) - 1
	}
	if sel.hasCol && len(cols) > 0 && sel.column >= len(cols) {
		sel.column = len(cols) - 1
	}
	heights := make([]int, len(spec.rows))
	for i, r := range spec.rows {
		heights[i] = r.span()
	}
	first, last := visibleBounds(heights, sel.selection, rowsArea.Height, 0)
	sel.offset = first

	blank := strings.Repeat(" ", symWidth)
	y := rowsArea.Y
	for i := first; i < last && y < rowsArea.Bottom(); i++ {
		row := spec.rows[i]
		h := min(row.height, rowsArea.Bottom()-y)
		rowRect := Rect{X: inner.X, Y: y, Width: inner.Width, Height: h}
		p.drawRow(rowRect, cols, row, spec.style)
		selected := sel.has && sel.index == i
		if reserve {
			sym := blank
			if selected {
				sym = spec.symbol
			}
			p.buf.WriteStringN(inner.X, y, sym, inner.Width, spec.style.Patch(row.style))
		}
		if selected {
			p.buf.SetStyle(rowRect, spec.rowHighlight)
		}
		y += row.span()
	}
	if sel.hasCol && sel.column < len(cols) {
		col := cols[sel.column]
		p.buf.SetStyle(Rect{X: col.X, Y: rowsArea.Y, Width: col.Width, Height: rowsArea.Height}, spec.colHighlight)
		if sel.has && sel.index >= first && sel.index < last {
			cy := rowsArea.Y
			for i := first; i < sel.index; i++ {
				cy += spec.rows[i].span()
			}
			p.buf.SetStyle(Rect{X: col.X, Y: cy, Width: col.Width, Height: spec.rows[sel.index].height}.Intersect(rowsArea), spec.cellHighlight)
		}
	}
	return nil
}

func (p *renderPass) drawRow(area Rect, cols []Rect, row tableRow, base Style) {
	p.buf.SetStyle(area, base.Patch(row.style))
	for i, cell := range row.cells {
		if i >= len(cols) {
			break
		}
		cellArea := Rect{X: cols[i].X, Y: area.Y, Width: cols[i].Width, Height: area.Height}
		p.buf.SetStyle(cellArea, cell.style)
		for j, l := range cell.lines {
			if j >= area.Height {
				break
			}
			drawLine(p.buf, cellArea, area.Y+j, l, AlignLeft)
		}
	}
}
