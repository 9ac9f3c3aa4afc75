package termbridge

import (
	"fmt"
	"math"
)

// GraphType selects how a dataset's points are joined.
type GraphType uint8

const (
	GraphScatter GraphType = iota
	GraphLine
)

type dataset struct {
	name   string
	data   [][2]float64
	style  Style
	marker Marker
	graph  GraphType
}

type axis struct {
	title     Line
	bounds    [2]float64
	hasBounds bool
	labels    []Line
	style     Style
	align     Alignment
}

type chartSpec struct {
	datasets    []dataset
	x, y        axis
	legendPos   string
	hideLegend  bool
	legendLimit [2]Constraint
	style       Style
	block       *Block
}

var legendPositions = map[string]bool{
	"top_right": true, "top_left": true, "bottom_right": true, "bottom_left": true,
	"top": true, "bottom": true, "left": true, "right": true,
}

func parseChart(node Node, styles *StyleResolver) (chartSpec, error) {
	ar := newAttrReader(node, styles)
	spec := chartSpec{
		legendPos:   ar.str("legend_position", "top_right"),
		hideLegend:  ar.bool("hidden_legend", false),
		legendLimit: [2]Constraint{Ratio(1, 4), Ratio(1, 4)},
		style:       ar.style("style"),
		block:       ar.block(),
	}
	if !legendPositions[spec.legendPos] {
		ar.setErr("legend_position", invalidf("unknown value %q", spec.legendPos))
	}
	if l := ar.list("hidden_legend_constraints"); len(l) == 2 {
		for i, v := range l {
			c, err := parseConstraintValue(v)
			ar.setErr("hidden_legend_constraints", err)
			spec.legendLimit[i] = c
		}
	}
	for i, v := range ar.list("datasets") {
		d, err := ar.styles.dataset(v)
		if err != nil {
			ar.setErr(fmt.Sprintf("datasets[%d]", i), err)
			break
		}
		spec.datasets = append(spec.datasets, d)
	}
	var err error
	if v, ok := ar.raw("x_axis"); ok {
		spec.x, err = ar.styles.axis(v)
		ar.setErr("x_axis", err)
	}
	spec.y.align = AlignRight
	if v, ok := ar.raw("y_axis"); ok {
		spec.y, err = ar.styles.axis(v)
		ar.setErr("y_axis", err)
		if spec.y.align == AlignInherit {
			spec.y.align = AlignRight
		}
	}
	if err := ar.Err(); err != nil {
		return chartSpec{}, err
	}
	spec.deriveBounds()
	return spec, nil
}

func (r *StyleResolver) dataset(v any) (dataset, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return dataset{}, invalidf("dataset: expected mapping, got %T", v)
	}
	n := NewNode(KindUnknown, m)
	ar := newAttrReader(n, r)
	d := dataset{
		name:  ar.str("name", ""),
		style: ar.style("style"),
		graph: GraphScatter,
	}
	if c := ar.color("color"); c.IsSet() {
		d.style.FG = c
	}
	var err error
	d.marker, err = parseMarker(ar.str("marker", "dot"))
	ar.setErr("marker", err)
	switch g := ar.str("graph_type", "scatter"); g {
	case "scatter":
	case "line":
		d.graph = GraphLine
	default:
		ar.setErr("graph_type", invalidf("unknown value %q", g))
	}
	for _, p := range ar.list("data") {
		pt, err := parseFloatPair(p)
		if err != nil {
			ar.setErr("data", err)
			break
		}
		d.data = append(d.data, pt)
	}
	return d, ar.Err()
}

func (r *StyleResolver) axis(v any) (axis, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return axis{}, invalidf("axis: expected mapping, got %T", v)
	}
	ar := newAttrReader(NewNode(KindUnknown, m), r)
	a := axis{style: ar.style("style")}
	a.bounds, a.hasBounds = ar.floatPair("bounds", [2]float64{})
	a.align = ar.alignment("labels_alignment", AlignInherit)
	if t, ok := ar.raw("title"); ok {
		l, err := r.Line(t)
		ar.setErr("title", err)
		a.title = l
	}
	for _, l := range ar.list("labels") {
		line, err := r.Line(l)
		if err != nil {
			ar.setErr("labels", err)
			break
		}
		a.labels = append(a.labels, line)
	}
	return a, ar.Err()
}

// dataBounds returns [min, max] of one coordinate over every dataset,
// widened to a unit range when degenerate.
func dataBounds(sets []dataset, coord int) [2]float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range sets {
		for _, p := range d.data {
			lo = math.Min(lo, p[coord])
			hi = math.Max(hi, p[coord])
		}
	}
	if math.IsInf(lo, 1) {
		return [2]float64{0, 1}
	}
	if lo == hi {
		hi = lo + 1
	}
	return [2]float64{lo, hi}
}

func (s *chartSpec) deriveBounds() {
	if !s.x.hasBounds {
		s.x.bounds = dataBounds(s.datasets, 0)
	}
	if !s.y.hasBounds {
		s.y.bounds = dataBounds(s.datasets, 1)
	}
}

// limit returns the largest size a constraint allows out of total.
func (c Constraint) limit(total int) int {
	switch c.Kind {
	case ConstraintPercentage:
		return total * c.Value / 100
	case ConstraintRatio:
		if c.Den == 0 {
			return 0
		}
		return total * c.Value / c.Den
	case ConstraintFill:
		return total
	}
	return c.Value
}

// chartLayout is the placement of the chart parts inside the inner area.
type chartLayout struct {
	graph     Rect
	axisCol   int
	axisRow   int
	labelRow  int
	labelLeft int
	hasYAxis  bool
	hasXAxis  bool
}

func (s chartSpec) layout(area Rect) chartLayout {
	l := chartLayout{axisCol: -1, axisRow: -1, labelRow: -1}
	top, bottom, left := area.Y, area.Bottom(), area.X
	if s.y.title.Width() > 0 {
		top++
	}
	if len(s.x.labels) > 0 {
		l.hasXAxis = true
		l.labelRow = bottom - 1
		l.axisRow = bottom - 2
		bottom -= 2
	}
	if len(s.y.labels) > 0 {
		w := 0
		for _, lb := range s.y.labels {
			w = max(w, lb.Width())
		}
		if len(s.x.labels) > 0 {
			w = max(w, s.x.labels[0].Width()-1)
		}
		l.hasYAxis = true
		l.labelLeft = left
		left += w
		l.axisCol = left
		left++
	}
	l.graph = NewRect(left, top, area.Right()-left, bottom-top)
	return l
}

func (p *renderPass) renderChart(area Rect, node Node) error {
	spec, err := parseChart(node, p.r.styles)
	if err != nil {
		return err
	}
	p.drawChart(area, spec)
	return nil
}

func (p *renderPass) drawChart(area Rect, spec chartSpec) {
	p.buf.SetStyle(area, spec.style)
	inner := p.applyBlock(area, spec.block)
	if inner.IsEmpty() {
		return
	}
	l := spec.layout(inner)
	if l.graph.IsEmpty() {
		return
	}

	if l.hasYAxis {
		for y := l.graph.Y; y < l.graph.Bottom(); y++ {
			p.buf.SetSymbol(l.axisCol, y, "│", spec.y.style)
		}
		n := len(spec.y.labels)
		for i, lb := range spec.y.labels {
			y := l.graph.Bottom() - 1
			if n > 1 {
				y -= i * (l.graph.Height - 1) / (n - 1)
			}
			drawLine(p.buf, NewRect(l.labelLeft, y, l.axisCol-l.labelLeft, 1), y, lb, spec.y.align)
		}
	}
	if l.hasXAxis && l.axisRow >= inner.Y {
		start := l.graph.X
		if l.hasYAxis {
			start = l.axisCol
		}
		p.buf.HLine(start, l.axisRow, inner.Right()-start, "─", spec.x.style)
		if l.hasYAxis {
			p.buf.SetSymbol(l.axisCol, l.axisRow, "└", spec.x.style)
		}
		p.drawXLabels(inner, l, spec.x)
	}
	if w := spec.y.title.Width(); w > 0 {
		x := inner.X
		if l.hasYAxis {
			x = l.axisCol
		}
		drawLine(p.buf, NewRect(x, inner.Y, inner.Right()-x, 1), inner.Y, spec.y.title, AlignLeft)
	}

	for _, d := range spec.datasets {
		g := newGrid(l.graph, d.marker, spec.x.bounds, spec.y.bounds)
		for i, pt := range d.data {
			if d.graph == GraphLine && i > 0 {
				prev := d.data[i-1]
				g.line(prev[0], prev[1], pt[0], pt[1], d.style.FG)
			} else {
				g.point(pt[0], pt[1], d.style.FG)
			}
		}
		g.flush(p.buf)
		if !d.style.BG.IsSet() && d.style.Mod == 0 {
			continue
		}
		for i, c := range g.cells {
			if c.bits != 0 {
				p.buf.SetSymbol(l.graph.X+i%l.graph.Width, l.graph.Y+i/l.graph.Width, g.symbol(c), d.style)
			}
		}
	}

	if w := spec.x.title.Width(); w > 0 {
		y := l.graph.Bottom() - 1
		drawLine(p.buf, NewRect(l.graph.X, y, l.graph.Width, 1), y, spec.x.title, AlignRight)
	}
	if !spec.hideLegend {
		p.drawLegend(l.graph, spec)
	}
}

func (p *renderPass) drawXLabels(inner Rect, l chartLayout, ax axis) {
	n := len(ax.labels)
	start := l.graph.X
	if l.hasYAxis {
		start = l.labelLeft
	}
	width := inner.Right() - start
	for i, lb := range ax.labels {
		w := lb.Width()
		var x int
		switch {
		case i == 0:
			x = start
		case i == n-1:
			x = inner.Right() - w
		default:
			center := l.graph.X + i*(l.graph.Width-1)/(n-1)
			x = center - w/2
		}
		x = max(x, start)
		if x-start >= width {
			continue
		}
		drawLine(p.buf, NewRect(x, l.labelRow, inner.Right()-x, 1), l.labelRow, lb, AlignLeft)
	}
}

// drawLegend draws named datasets in a bordered box, hidden when the box
// would exceed the configured share of the graph.
func (p *renderPass) drawLegend(graph Rect, spec chartSpec) {
	var names []dataset
	w := 0
	for _, d := range spec.datasets {
		if d.name == "" {
			continue
		}
		names = append(names, d)
		w = max(w, TextWidth(d.name))
	}
	if len(names) == 0 {
		return
	}
	lw, lh := w+2, len(names)+2
	if lw > spec.legendLimit[0].limit(graph.Width) || lh > spec.legendLimit[1].limit(graph.Height) {
		return
	}
	x, y := graph.Right()-lw, graph.Y
	switch spec.legendPos {
	case "top_left":
		x = graph.X
	case "bottom_right":
		y = graph.Bottom() - lh
	case "bottom_left":
		x, y = graph.X, graph.Bottom()-lh
	case "top":
		x = graph.X + (graph.Width-lw)/2
	case "bottom":
		x, y = graph.X+(graph.Width-lw)/2, graph.Bottom()-lh
	case "left":
		x, y = graph.X, graph.Y+(graph.Height-lh)/2
	case "right":
		y = graph.Y + (graph.Height-lh)/2
	}
	box := NewRect(x, y, lw, lh)
	p.buf.Fill(box, EmptyCell())
	b := NewBlock()
	b.Render(p.buf, box)
	inner := b.Inner(box)
	for i, d := range names {
		p.buf.WriteStringN(inner.X, inner.Y+i, d.name, inner.Width, d.style)
	}
}

// renderLineChart draws the compact line chart form: named series over
// derived x bounds and fixed y bounds, joined with braille lines.
func (p *renderPass) renderLineChart(area Rect, node Node) error {
	ar := newAttrReader(node, p.r.styles)
	spec := chartSpec{
		legendPos:   "top_right",
		legendLimit: [2]Constraint{Ratio(1, 4), Ratio(1, 4)},
		style:       ar.style("style"),
		block:       ar.block(),
	}
	for i, v := range ar.list("datasets") {
		d, err := ar.styles.dataset(v)
		if err != nil {
			ar.setErr(fmt.Sprintf("datasets[%d]", i), err)
			break
		}
		d.marker = MarkerBraille
		d.graph = GraphLine
		spec.datasets = append(spec.datasets, d)
	}
	spec.y.bounds, _ = ar.floatPair("y_bounds", [2]float64{0, 100})
	spec.y.hasBounds = true
	spec.y.align = AlignRight
	for _, name := range []string{"x_labels", "y_labels"} {
		for _, v := range ar.list(name) {
			l, err := ar.styles.Line(v)
			ar.setErr(name, err)
			if name == "x_labels" {
				spec.x.labels = append(spec.x.labels, l)
			} else {
				spec.y.labels = append(spec.y.labels, l)
			}
		}
	}
	if err := ar.Err(); err != nil {
		return err
	}
	spec.deriveBounds()
	p.drawChart(area, spec)
	return nil
}
