package termbridge

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

type bar struct {
	value      float64
	label      string
	style      Style
	valueStyle Style
	text       string
}

type barGroup struct {
	label string
	bars  []bar
}

type barChartSpec struct {
	groups     []barGroup
	barWidth   int
	barGap     int
	groupGap   int
	max        float64
	hasMax     bool
	style      Style
	labelStyle Style
	valueStyle Style
	horizontal bool
	block      *Block
}

func parseBarChart(n Node, styles *StyleResolver) (barChartSpec, error) {
	ar := newAttrReader(n, styles)
	spec := barChartSpec{
		barWidth:   max(ar.int("bar_width", 3), 1),
		barGap:     max(ar.int("bar_gap", 1), 0),
		groupGap:   max(ar.int("group_gap", 0), 0),
		style:      ar.style("style"),
		labelStyle: ar.style("label_style"),
		valueStyle: ar.style("value_style"),
		block:      ar.block(),
	}
	spec.max, spec.hasMax = ar.optFloat("max")
	switch d := ar.str("direction", "vertical"); d {
	case "vertical":
	case "horizontal":
		spec.horizontal = true
	default:
		ar.fail("direction", "vertical or horizontal", d)
	}
	if v, ok := ar.raw("data"); ok {
		groups, err := ar.styles.barGroups(v)
		ar.setErr("data", err)
		spec.groups = groups
	}
	return spec, ar.Err()
}

// barGroups accepts a label→value mapping (drawn in label order), an array
// of [label, value] pairs or plain values, or an array of groups
// {label, bars: [{value, label, style, value_style, text_value}]}.
func (r *StyleResolver) barGroups(v any) ([]barGroup, error) {
	if m, ok := v.(map[string]any); ok {
		labels := make([]string, 0, len(m))
		for k := range m {
			labels = append(labels, k)
		}
		slices.Sort(labels)
		var g barGroup
		for _, l := range labels {
			f, ok := asFloat(m[l])
			if !ok {
				return nil, invalidf("bar %q: expected number, got %T", l, m[l])
			}
			g.bars = append(g.bars, bar{value: f, label: l})
		}
		return []barGroup{g}, nil
	}
	list, ok := asList(v)
	if !ok {
		return nil, invalidf("expected mapping or array, got %T", v)
	}
	var groups []barGroup
	var loose barGroup
	for i, item := range list {
		switch it := item.(type) {
		case map[string]any:
			if _, isGroup := it["bars"]; isGroup {
				g, err := r.barGroup(it)
				if err != nil {
					return nil, fmt.Errorf("group %d: %w", i, err)
				}
				groups = append(groups, g)
				continue
			}
			b, err := r.bar(it)
			if err != nil {
				return nil, fmt.Errorf("bar %d: %w", i, err)
			}
			loose.bars = append(loose.bars, b)
		default:
			if f, ok := asFloat(item); ok {
				loose.bars = append(loose.bars, bar{value: f})
				continue
			}
			pair, ok := asList(item)
			if !ok || len(pair) != 2 {
				return nil, invalidf("bar %d: expected [label, value], got %v", i, item)
			}
			f, ok := asFloat(pair[1])
			if !ok {
				return nil, invalidf("bar %d: expected number, got %T", i, pair[1])
			}
			loose.bars = append(loose.bars, bar{value: f, label: fmt.Sprint(pair[0])})
		}
	}
	if len(loose.bars) > 0 {
		groups = append(groups, loose)
	}
	return groups, nil
}

func (r *StyleResolver) barGroup(m map[string]any) (barGroup, error) {
	g := barGroup{}
	g.label, _ = asString(m["label"])
	bars, ok := asList(m["bars"])
	if !ok {
		return g, invalidf("bars: expected array, got %T", m["bars"])
	}
	for _, b := range bars {
		bm, ok := b.(map[string]any)
		if !ok {
			f, isNum := asFloat(b)
			if !isNum {
				return g, invalidf("bar: expected mapping or number, got %T", b)
			}
			g.bars = append(g.bars, bar{value: f})
			continue
		}
		parsed, err := r.bar(bm)
		if err != nil {
			return g, err
		}
		g.bars = append(g.bars, parsed)
	}
	return g, nil
}

func (r *StyleResolver) bar(m map[string]any) (bar, error) {
	var b bar
	f, ok := asFloat(m["value"])
	if !ok {
		return b, fmt.Errorf("%w: value", ErrMissingField)
	}
	b.value = f
	b.label, _ = asString(m["label"])
	b.text, _ = asString(m["text_value"])
	var err error
	if b.style, err = r.Style(m["style"]); err != nil {
		return b, err
	}
	b.valueStyle, err = r.Style(m["value_style"])
	return b, err
}

func (b bar) valueText() string {
	if b.text != "" {
		return b.text
	}
	if b.value == math.Trunc(b.value) {
		return strconv.FormatInt(int64(b.value), 10)
	}
	return strconv.FormatFloat(b.value, 'f', 1, 64)
}

func (s barChartSpec) maxValue() float64 {
	if s.hasMax && s.max > 0 {
		return s.max
	}
	m := 0.0
	for _, g := range s.groups {
		for _, b := range g.bars {
			m = max(m, b.value)
		}
	}
	if m <= 0 {
		return 1
	}
	return m
}

func (p *renderPass) renderBarChart(area Rect, node Node) error {
	spec, err := parseBarChart(node, p.r.styles)
	if err != nil {
		return err
	}
	p.buf.SetStyle(area, spec.style)
	inner := p.applyBlock(area, spec.block)
	if inner.IsEmpty() || len(spec.groups) == 0 {
		return nil
	}
	if spec.horizontal {
		p.drawHorizontalBars(inner, spec)
	} else {
		p.drawVerticalBars(inner, spec)
	}
	return nil
}

func (p *renderPass) drawVerticalBars(area Rect, spec barChartSpec) {
	barLabels, groupLabels := false, false
	for _, g := range spec.groups {
		groupLabels = groupLabels || g.label != ""
		for _, b := range g.bars {
			barLabels = barLabels || b.label != ""
		}
	}
	labelRows := 0
	if barLabels {
		labelRows++
	}
	if groupLabels {
		labelRows++
	}
	barsHeight := max(area.Height-labelRows, 0)
	maxV := spec.maxValue()

	x := area.X
	for gi, g := range spec.groups {
		groupStart := x
		for _, b := range g.bars {
			if x+spec.barWidth > area.Right() {
				return
			}
			style := spec.style.Patch(b.style)
			eighths := int(min(b.value, maxV) * float64(barsHeight*8) / maxV)
			for y := area.Y + barsHeight - 1; y >= area.Y && eighths > 0; y-- {
				p.buf.HLine(x, y, spec.barWidth, barSymbols[min(eighths, 8)], style)
				eighths -= 8
			}
			if barsHeight > 0 {
				text := b.valueText()
				if w := TextWidth(text); w <= spec.barWidth && b.value > 0 {
					vs := spec.valueStyle.Patch(b.valueStyle)
					if vs.IsZero() {
						vs = Style{FG: style.BG, BG: style.FG}
					}
					p.buf.WriteString(x+(spec.barWidth-w)/2, area.Y+barsHeight-1, text, vs)
				}
			}
			if barLabels {
				p.writeCentered(x, area.Y+barsHeight, spec.barWidth, b.label, spec.labelStyle)
			}
			x += spec.barWidth + spec.barGap
		}
		if groupLabels {
			w := max(x-spec.barGap-groupStart, 0)
			p.writeCentered(groupStart, area.Bottom()-1, w, g.label, spec.labelStyle)
		}
		if gi < len(spec.groups)-1 {
			x += spec.groupGap
		}
	}
}

func (p *renderPass) drawHorizontalBars(area Rect, spec barChartSpec) {
	labelWidth := 0
	for _, g := range spec.groups {
		for _, b := range g.bars {
			labelWidth = max(labelWidth, TextWidth(b.label))
		}
	}
	if labelWidth > 0 {
		labelWidth++
	}
	barsWidth := max(area.Width-labelWidth, 0)
	maxV := spec.maxValue()

	y := area.Y
	for gi, g := range spec.groups {
		for _, b := range g.bars {
			if y+spec.barWidth > area.Bottom() {
				return
			}
			style := spec.style.Patch(b.style)
			length := int(math.Round(min(b.value, maxV) * float64(barsWidth) / maxV))
			for row := y; row < y+spec.barWidth; row++ {
				p.buf.HLine(area.X+labelWidth, row, length, "█", style)
			}
			mid := y + spec.barWidth/2
			p.buf.WriteStringN(area.X, mid, b.label, labelWidth, spec.labelStyle)
			text := b.valueText()
			if w := TextWidth(text); w <= length {
				vs := spec.valueStyle.Patch(b.valueStyle)
				if vs.IsZero() {
					vs = Style{FG: style.BG, BG: style.FG}
				}
				p.buf.WriteString(area.X+labelWidth, mid, text, vs)
			}
			y += spec.barWidth + spec.barGap
		}
		if gi < len(spec.groups)-1 {
			y += spec.groupGap
		}
	}
}

// writeCentered writes s centered in a run of width columns.
func (p *renderPass) writeCentered(x, y, width int, s string, style Style) {
	if width <= 0 || s == "" {
		return
	}
	w := min(TextWidth(s), width)
	p.buf.WriteStringN(x+(width-w)/2, y, s, width, style)
}
