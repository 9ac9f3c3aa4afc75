package termbridge

import (
	"fmt"
	"math"
)

var eighthBlocks = [...]string{" ", "▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"}

// gaugeRatio reads ratio (0..1) or percent (0..100), clamped.
func gaugeRatio(ar *attrReader) float64 {
	ratio := ar.float("ratio", 0)
	if pct, ok := ar.optFloat("percent"); ok {
		ratio = pct / 100
	}
	if ratio < 0 || ratio > 1 || math.IsNaN(ratio) {
		ar.fail("ratio", "value between 0 and 1", ratio)
		return 0
	}
	return ratio
}

func gaugeLabel(ar *attrReader, ratio float64) Line {
	v, ok := ar.raw("label")
	if !ok {
		return RawLine(fmt.Sprintf("%d%%", int(math.Round(ratio*100))))
	}
	switch v.(type) {
	case Line, Span, map[string]any, []any:
		l, err := ar.styles.Line(v)
		ar.setErr("label", err)
		return l
	}
	return RawLine(fmt.Sprint(v))
}

func (p *renderPass) renderGauge(area Rect, node Node) error {
	ar := newAttrReader(node, p.r.styles)
	ratio := gaugeRatio(ar)
	label := gaugeLabel(ar, ratio)
	style := ar.style("style")
	gaugeStyle := ar.style("gauge_style")
	unicode := ar.bool("use_unicode", false)
	block := ar.block()
	if err := ar.Err(); err != nil {
		return err
	}

	p.buf.SetStyle(area, style)
	inner := p.applyBlock(area, block)
	if inner.IsEmpty() {
		return nil
	}
	p.buf.SetStyle(inner, gaugeStyle)

	labelWidth := min(label.Width(), inner.Width)
	labelCol := inner.X + (inner.Width-labelWidth)/2
	labelRow := inner.Y + inner.Height/2

	filled := float64(inner.Width) * ratio
	end := inner.X + int(math.Round(filled))
	if unicode {
		end = inner.X + int(math.Floor(filled))
	}
	solid := Style{FG: gaugeStyle.FG, BG: gaugeStyle.BG}
	inverted := Style{FG: gaugeStyle.BG, BG: gaugeStyle.FG}
	for y := inner.Y; y < inner.Bottom(); y++ {
		for x := inner.X; x < end; x++ {
			if y == labelRow && x >= labelCol && x < labelCol+labelWidth {
				p.buf.SetSymbol(x, y, " ", inverted)
			} else {
				p.buf.SetSymbol(x, y, "█", solid)
			}
		}
		if unicode && ratio < 1 && end < inner.Right() {
			frac := filled - math.Floor(filled)
			p.buf.SetSymbol(end, y, eighthBlocks[int(math.Round(frac*8))], solid)
		}
	}
	drawLine(p.buf, Rect{X: labelCol, Y: labelRow, Width: labelWidth, Height: 1}, labelRow, label, AlignLeft)
	return nil
}

func (p *renderPass) renderLineGauge(area Rect, node Node) error {
	ar := newAttrReader(node, p.r.styles)
	ratio := gaugeRatio(ar)
	label := gaugeLabel(ar, ratio)
	style := ar.style("style")
	filledStyle := ar.style("filled_style")
	unfilledStyle := ar.style("unfilled_style")
	filledSym := ar.str("filled_symbol", "█")
	unfilledSym := ar.str("unfilled_symbol", "░")
	block := ar.block()
	if err := ar.Err(); err != nil {
		return err
	}

	p.buf.SetStyle(area, style)
	inner := p.applyBlock(area, block)
	if inner.IsEmpty() {
		return nil
	}
	col := inner.X + drawLine(p.buf, Rect{X: inner.X, Y: inner.Y, Width: inner.Width, Height: 1}, inner.Y, label, AlignLeft)
	start := col + 1
	if start >= inner.Right() {
		return nil
	}
	end := start + int(math.Floor(float64(inner.Right()-start)*ratio))
	for x := start; x < end; x++ {
		p.buf.SetSymbol(x, inner.Y, filledSym, filledStyle)
	}
	for x := end; x < inner.Right(); x++ {
		p.buf.SetSymbol(x, inner.Y, unfilledSym, unfilledStyle)
	}
	return nil
}
