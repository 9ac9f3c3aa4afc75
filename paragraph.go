package termbridge

// paragraphSpec is a resolved paragraph node.
type paragraphSpec struct {
	lines     []Line
	style     Style
	block     *Block
	wrap      bool
	alignment Alignment
	scrollRow int
	scrollCol int
}

func parseParagraph(n Node, styles *StyleResolver) (paragraphSpec, error) {
	ar := newAttrReader(n, styles)
	var spec paragraphSpec
	if v, ok := ar.raw("text"); ok {
		lines, err := ar.styles.Text(v)
		if err != nil {
			return spec, err
		}
		spec.lines = lines
	}
	spec.style = ar.style("style")
	spec.block = ar.block()
	spec.wrap = wrapFlag(ar)
	spec.alignment = AlignLeft
	if ar.has("alignment") {
		spec.alignment = ar.alignment("alignment", AlignLeft)
	} else {
		spec.alignment = ar.alignment("align", AlignLeft)
	}
	if v, ok := ar.raw("scroll"); ok {
		l, isList := asList(v)
		if !isList || len(l) != 2 {
			ar.fail("scroll", "[row, col]", v)
		} else {
			row, ok1 := asInt(l[0])
			col, ok2 := asInt(l[1])
			if !ok1 || !ok2 {
				ar.fail("scroll", "[row, col]", v)
			}
			spec.scrollRow, spec.scrollCol = max(row, 0), max(col, 0)
		}
	}
	return spec, ar.Err()
}

// wrapFlag accepts a bool or a {trim: bool} mapping; both wrap with trim.
func wrapFlag(ar *attrReader) bool {
	v, ok := ar.raw("wrap")
	if !ok {
		return false
	}
	switch w := v.(type) {
	case bool:
		return w
	case map[string]any:
		return true
	}
	ar.fail("wrap", "bool", v)
	return false
}

// rows returns the visual rows of the paragraph at width.
func (s paragraphSpec) rows(width int) ([][]grapheme, []Alignment) {
	var rows [][]grapheme
	var aligns []Alignment
	for _, l := range s.lines {
		align := s.alignment
		if l.Alignment != AlignInherit {
			align = l.Alignment
		}
		if s.wrap {
			for _, r := range wrapLine(l, width) {
				rows = append(rows, r)
				aligns = append(aligns, align)
			}
			continue
		}
		rows = append(rows, lineGraphemes(l))
		aligns = append(aligns, align)
	}
	return rows, aligns
}

func (p *renderPass) renderParagraph(area Rect, node Node) error {
	spec, err := parseParagraph(node, p.r.styles)
	if err != nil {
		return err
	}
	p.buf.SetStyle(area, spec.style)
	inner := p.applyBlock(area, spec.block)
	if inner.IsEmpty() {
		return nil
	}
	rows, aligns := spec.rows(inner.Width)
	for i := 0; i < inner.Height; i++ {
		idx := spec.scrollRow + i
		if idx >= len(rows) {
			break
		}
		skip := 0
		if !spec.wrap {
			skip = spec.scrollCol
		}
		drawGraphemes(p.buf, inner, inner.Y+i, rows[idx], aligns[idx], skip)
	}
	return nil
}

// ParagraphLineCount returns how many rows the paragraph needs at width,
// including the rows of its block.
func ParagraphLineCount(node Node, width int) (int, error) {
	spec, err := parseParagraph(node, nil)
	if err != nil {
		return 0, err
	}
	if width < 1 {
		return 0, nil
	}
	inner := width - spec.block.HorizontalSpace()
	rows, _ := spec.rows(max(inner, 1))
	return len(rows) + spec.block.VerticalSpace(), nil
}

// ParagraphLineWidth returns the width of the widest unwrapped line,
// including the columns of its block.
func ParagraphLineWidth(node Node) (int, error) {
	spec, err := parseParagraph(node, nil)
	if err != nil {
		return 0, err
	}
	w := 0
	for _, l := range spec.lines {
		w = max(w, l.Width())
	}
	return w + spec.block.HorizontalSpace(), nil
}
