package termbridge

import (
	"fmt"
	"math"
)

// Marker selects how plotted points map onto cells.
type Marker uint8

const (
	MarkerBraille Marker = iota
	MarkerDot
	MarkerBlock
	MarkerBar
	MarkerHalfBlock
)

func parseMarker(s string) (Marker, error) {
	switch s {
	case "braille", "":
		return MarkerBraille, nil
	case "dot":
		return MarkerDot, nil
	case "block":
		return MarkerBlock, nil
	case "bar":
		return MarkerBar, nil
	case "half_block", "quadrant":
		return MarkerHalfBlock, nil
	}
	return MarkerBraille, invalidf("marker: unknown value %q", s)
}

// resolution returns the dots per cell horizontally and vertically.
func (m Marker) resolution() (int, int) {
	switch m {
	case MarkerBraille:
		return 2, 4
	case MarkerHalfBlock:
		return 1, 2
	}
	return 1, 1
}

var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type gridCell struct {
	bits  uint8
	color Color
}

// grid is a dot raster over a cell area with its own world coordinates.
type grid struct {
	area    Rect
	marker  Marker
	xBounds [2]float64
	yBounds [2]float64
	cells   []gridCell
	labels  []canvasLabel
}

func newGrid(area Rect, marker Marker, xb, yb [2]float64) *grid {
	return &grid{
		area:    area,
		marker:  marker,
		xBounds: xb,
		yBounds: yb,
		cells:   make([]gridCell, area.Area()),
	}
}

func (g *grid) dots() (int, int) {
	sx, sy := g.marker.resolution()
	return g.area.Width * sx, g.area.Height * sy
}

// toDot converts world coordinates to a dot position.
func (g *grid) toDot(x, y float64) (int, int, bool) {
	if x < g.xBounds[0] || x > g.xBounds[1] || y < g.yBounds[0] || y > g.yBounds[1] {
		return 0, 0, false
	}
	w, h := g.dots()
	dx, dy := g.xBounds[1]-g.xBounds[0], g.yBounds[1]-g.yBounds[0]
	if w == 0 || h == 0 || dx == 0 || dy == 0 {
		return 0, 0, false
	}
	px := int((x - g.xBounds[0]) / dx * float64(w-1))
	py := int((g.yBounds[1] - y) / dy * float64(h-1))
	return px, py, true
}

func (g *grid) setDot(px, py int, c Color) {
	sx, sy := g.marker.resolution()
	cx, cy := px/sx, py/sy
	if cx < 0 || cy < 0 || cx >= g.area.Width || cy >= g.area.Height {
		return
	}
	cell := &g.cells[cy*g.area.Width+cx]
	switch g.marker {
	case MarkerBraille:
		cell.bits |= brailleBits[py%4][px%2]
	case MarkerHalfBlock:
		cell.bits |= 1 << (py % 2)
	default:
		cell.bits = 1
	}
	cell.color = c
}

func (g *grid) point(x, y float64, c Color) {
	if px, py, ok := g.toDot(x, y); ok {
		g.setDot(px, py, c)
	}
}

// line draws a segment between two world points, clipped to the bounds by
// sampling along the segment in dot space.
func (g *grid) line(x1, y1, x2, y2 float64, c Color) {
	w, h := g.dots()
	dx, dy := g.xBounds[1]-g.xBounds[0], g.yBounds[1]-g.yBounds[0]
	if w == 0 || h == 0 || dx == 0 || dy == 0 {
		return
	}
	fx1 := (x1 - g.xBounds[0]) / dx * float64(w-1)
	fy1 := (g.yBounds[1] - y1) / dy * float64(h-1)
	fx2 := (x2 - g.xBounds[0]) / dx * float64(w-1)
	fy2 := (g.yBounds[1] - y2) / dy * float64(h-1)
	steps := int(math.Max(math.Abs(fx2-fx1), math.Abs(fy2-fy1)))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		px := math.Round(fx1 + (fx2-fx1)*t)
		py := math.Round(fy1 + (fy2-fy1)*t)
		if px < 0 || py < 0 || px >= float64(w) || py >= float64(h) {
			continue
		}
		g.setDot(int(px), int(py), c)
	}
}

func (g *grid) symbol(cell gridCell) string {
	switch g.marker {
	case MarkerBraille:
		return string(rune(0x2800 + int(cell.bits)))
	case MarkerHalfBlock:
		switch cell.bits {
		case 1:
			return "▀"
		case 2:
			return "▄"
		}
		return "█"
	case MarkerDot:
		return "•"
	case MarkerBar:
		return "▄"
	}
	return "█"
}

// flush writes every painted cell and then the labels.
func (g *grid) flush(buf *Buffer) {
	for i, cell := range g.cells {
		if cell.bits == 0 {
			continue
		}
		x := g.area.X + i%g.area.Width
		y := g.area.Y + i/g.area.Width
		buf.SetSymbol(x, y, g.symbol(cell), Style{FG: cell.color})
	}
	for _, l := range g.labels {
		sx, sy := g.marker.resolution()
		px, py, ok := g.toDot(l.X, l.Y)
		if !ok {
			continue
		}
		cx, cy := g.area.X+px/sx, g.area.Y+py/sy
		drawLine(buf, Rect{X: cx, Y: cy, Width: g.area.Right() - cx, Height: 1}, cy, l.Line, AlignLeft)
	}
}

// Shape is something a canvas can paint.
type Shape interface {
	paint(g *grid)
}

// CanvasPoints is a set of points.
type CanvasPoints struct {
	Coords [][2]float64
	Color  Color
}

func (s CanvasPoints) paint(g *grid) {
	for _, c := range s.Coords {
		g.point(c[0], c[1], s.Color)
	}
}

// CanvasLine is a straight segment.
type CanvasLine struct {
	X1, Y1, X2, Y2 float64
	Color          Color
}

func (s CanvasLine) paint(g *grid) {
	g.line(s.X1, s.Y1, s.X2, s.Y2, s.Color)
}

// CanvasRectangle is an outlined rectangle with its origin bottom-left.
type CanvasRectangle struct {
	X, Y, Width, Height float64
	Color               Color
}

func (s CanvasRectangle) paint(g *grid) {
	x2, y2 := s.X+s.Width, s.Y+s.Height
	g.line(s.X, s.Y, x2, s.Y, s.Color)
	g.line(x2, s.Y, x2, y2, s.Color)
	g.line(x2, y2, s.X, y2, s.Color)
	g.line(s.X, y2, s.X, s.Y, s.Color)
}

// CanvasCircle is an outlined circle.
type CanvasCircle struct {
	X, Y, Radius float64
	Color        Color
}

func (s CanvasCircle) paint(g *grid) {
	for deg := 0; deg < 360; deg++ {
		rad := float64(deg) * math.Pi / 180
		g.point(s.X+s.Radius*math.Cos(rad), s.Y+s.Radius*math.Sin(rad), s.Color)
	}
}

type canvasLabel struct {
	X, Y float64
	Line Line
}

// CanvasLabel is text placed at a world position.
type CanvasLabel struct {
	X, Y float64
	Line Line
}

func (s CanvasLabel) paint(g *grid) {
	g.labels = append(g.labels, canvasLabel(s))
}

// shape resolves a shape descriptor: a Shape value or a mapping with a type
// key of point, points, line, rectangle, circle, map or label.
func (r *StyleResolver) shape(v any) (Shape, error) {
	if s, ok := v.(Shape); ok {
		return s, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidf("shape: expected mapping, got %T", v)
	}
	f := func(k string) float64 {
		x, _ := asFloat(m[k])
		return x
	}
	color, err := r.Color(m["color"])
	if err != nil {
		return nil, err
	}
	switch t, _ := asString(m["type"]); t {
	case "point":
		return CanvasPoints{Coords: [][2]float64{{f("x"), f("y")}}, Color: color}, nil
	case "points":
		list, _ := asList(m["coords"])
		pts := CanvasPoints{Color: color}
		for _, c := range list {
			p, err := parseFloatPair(c)
			if err != nil {
				return nil, fmt.Errorf("points: %w", err)
			}
			pts.Coords = append(pts.Coords, p)
		}
		return pts, nil
	case "line":
		return CanvasLine{X1: f("x1"), Y1: f("y1"), X2: f("x2"), Y2: f("y2"), Color: color}, nil
	case "rectangle":
		return CanvasRectangle{X: f("x"), Y: f("y"), Width: f("width"), Height: f("height"), Color: color}, nil
	case "circle":
		return CanvasCircle{X: f("x"), Y: f("y"), Radius: f("radius"), Color: color}, nil
	case "map":
		res, _ := asString(m["resolution"])
		return CanvasMap{Resolution: ParseMapResolution(res), Color: color}, nil
	case "label":
		line, err := r.Line(m["text"])
		if err != nil {
			return nil, err
		}
		style, err := r.Style(m["style"])
		if err != nil {
			return nil, err
		}
		line.Style = line.Style.Patch(style)
		return CanvasLabel{X: f("x"), Y: f("y"), Line: line}, nil
	default:
		return nil, invalidf("shape: unknown type %q", t)
	}
}

func (p *renderPass) renderCanvas(area Rect, node Node) error {
	ar := newAttrReader(node, p.r.styles)
	xb, _ := ar.floatPair("x_bounds", [2]float64{0, 100})
	yb, _ := ar.floatPair("y_bounds", [2]float64{0, 100})
	marker, err := parseMarker(ar.str("marker", "braille"))
	ar.setErr("marker", err)
	bg := ar.color("background_color")
	block := ar.block()
	var shapes []Shape
	for i, v := range ar.list("shapes") {
		s, err := ar.styles.shape(v)
		if err != nil {
			ar.setErr(fmt.Sprintf("shapes[%d]", i), err)
			break
		}
		shapes = append(shapes, s)
	}
	if err := ar.Err(); err != nil {
		return err
	}

	inner := p.applyBlock(area, block)
	if inner.IsEmpty() {
		return nil
	}
	if bg.IsSet() {
		p.buf.SetStyle(inner, Style{BG: bg})
	}
	g := newGrid(inner, marker, xb, yb)
	for _, s := range shapes {
		s.paint(g)
	}
	g.flush(p.buf)
	return nil
}
