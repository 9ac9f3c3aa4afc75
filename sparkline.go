package termbridge

var barSymbols = [...]string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// sparkValues reads an array of non-negative numbers where nil marks an
// absent sample.
func sparkValues(ar *attrReader, name string) ([]float64, []bool) {
	list := ar.list(name)
	values := make([]float64, len(list))
	present := make([]bool, len(list))
	for i, v := range list {
		if v == nil {
			continue
		}
		f, ok := asFloat(v)
		if !ok || f < 0 {
			ar.fail(name, "array of non-negative numbers", v)
			return nil, nil
		}
		values[i], present[i] = f, true
	}
	return values, present
}

func (p *renderPass) renderSparkline(area Rect, node Node) error {
	ar := newAttrReader(node, p.r.styles)
	values, present := sparkValues(ar, "data")
	style := ar.style("style")
	block := ar.block()
	maxValue, hasMax := ar.optFloat("max")
	rightToLeft := false
	switch d := ar.str("direction", "left_to_right"); d {
	case "left_to_right":
	case "right_to_left":
		rightToLeft = true
	default:
		ar.fail("direction", "left_to_right or right_to_left", d)
	}
	if err := ar.Err(); err != nil {
		return err
	}

	p.buf.SetStyle(area, style)
	inner := p.applyBlock(area, block)
	if inner.IsEmpty() {
		return nil
	}
	if !hasMax {
		for _, v := range values {
			maxValue = max(maxValue, v)
		}
	}
	if maxValue <= 0 {
		maxValue = 1
	}
	n := min(len(values), inner.Width)
	for i := 0; i < n; i++ {
		if !present[i] {
			continue
		}
		x := inner.X + i
		if rightToLeft {
			x = inner.Right() - i - 1
		}
		eighths := int(min(values[i], maxValue) * float64(inner.Height*8) / maxValue)
		for y := inner.Bottom() - 1; y >= inner.Y && eighths > 0; y-- {
			p.buf.SetSymbol(x, y, barSymbols[min(eighths, 8)], style)
			eighths -= 8
		}
	}
	return nil
}
