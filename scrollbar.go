package termbridge

import "math"

// ScrollbarOrientation places a scrollbar along one edge of its area.
type ScrollbarOrientation uint8

const (
	ScrollbarVerticalRight ScrollbarOrientation = iota
	ScrollbarVerticalLeft
	ScrollbarHorizontalBottom
	ScrollbarHorizontalTop
)

var scrollbarOrientations = map[string]ScrollbarOrientation{
	"vertical":          ScrollbarVerticalRight,
	"vertical_right":    ScrollbarVerticalRight,
	"vertical_left":     ScrollbarVerticalLeft,
	"horizontal":        ScrollbarHorizontalBottom,
	"horizontal_bottom": ScrollbarHorizontalBottom,
	"horizontal_top":    ScrollbarHorizontalTop,
}

func (o ScrollbarOrientation) vertical() bool {
	return o == ScrollbarVerticalRight || o == ScrollbarVerticalLeft
}

type scrollbarPart struct {
	symbol string
	style  Style
}

type scrollbarSpec struct {
	orientation ScrollbarOrientation
	values      scrollbarValues
	thumb       scrollbarPart
	track       scrollbarPart
	begin       scrollbarPart
	end         scrollbarPart
	style       Style
	block       *Block
}

func parseScrollbar(node Node, styles *StyleResolver) (scrollbarSpec, error) {
	ar := newAttrReader(node, styles)
	o := ar.str("orientation", "vertical")
	orientation, ok := scrollbarOrientations[o]
	if !ok {
		ar.setErr("orientation", invalidf("unknown value %q", o))
	}
	track, begin, end := "║", "▲", "▼"
	if !orientation.vertical() {
		track, begin, end = "═", "◄", "►"
	}
	spec := scrollbarSpec{
		orientation: orientation,
		values: scrollbarValues{
			contentLength: ar.int("content_length", 0),
			position:      ar.int("position", 0),
			viewport:      ar.int("viewport_content_length", 0),
		},
		thumb: scrollbarPart{ar.str("thumb_symbol", "█"), ar.style("thumb_style")},
		track: scrollbarPart{ar.str("track_symbol", track), ar.style("track_style")},
		begin: scrollbarPart{ar.str("begin_symbol", begin), ar.style("begin_style")},
		end:   scrollbarPart{ar.str("end_symbol", end), ar.style("end_style")},
		style: ar.style("style"),
		block: ar.block(),
	}
	return spec, ar.Err()
}

// thumbParts returns the track cells before the thumb, the thumb length and
// the track cells after it, for a track of trackLen cells showing viewport
// cells of content.
func thumbParts(v scrollbarValues, trackLen, viewport int) (int, int, int) {
	if trackLen <= 0 {
		return 0, 0, 0
	}
	if v.viewport > 0 {
		viewport = v.viewport
	}
	content := float64(v.contentLength)
	pos := float64(max(min(v.position, v.contentLength-1), 0))
	maxPos := math.Max(content+float64(viewport)-1, 1)
	track := float64(trackLen)
	start := math.Round(pos * track / maxPos)
	end := math.Round((pos + float64(viewport)) * track / maxPos)
	start = math.Min(math.Max(start, 0), track-1)
	end = math.Min(math.Max(end, 0), track)
	thumb := max(int(end)-int(start), 1)
	after := max(trackLen-int(start)-thumb, 0)
	return int(start), thumb, after
}

func (p *renderPass) renderScrollbar(area Rect, node Node, state *ScrollbarState) error {
	spec, err := parseScrollbar(node, p.r.styles)
	if err != nil {
		return err
	}
	if state == nil {
		p.drawScrollbar(area, spec)
		return nil
	}
	return state.borrowed(func(v scrollbarValues) error {
		spec.values = v
		p.drawScrollbar(area, spec)
		return nil
	})
}

func (p *renderPass) drawScrollbar(area Rect, spec scrollbarSpec) {
	inner := p.applyBlock(area, spec.block)
	if inner.IsEmpty() || spec.values.contentLength <= 0 {
		return
	}
	var bar Rect
	switch spec.orientation {
	case ScrollbarVerticalRight:
		bar = Rect{X: inner.Right() - 1, Y: inner.Y, Width: 1, Height: inner.Height}
	case ScrollbarVerticalLeft:
		bar = Rect{X: inner.X, Y: inner.Y, Width: 1, Height: inner.Height}
	case ScrollbarHorizontalBottom:
		bar = Rect{X: inner.X, Y: inner.Bottom() - 1, Width: inner.Width, Height: 1}
	case ScrollbarHorizontalTop:
		bar = Rect{X: inner.X, Y: inner.Y, Width: inner.Width, Height: 1}
	}
	length := bar.Width
	if spec.orientation.vertical() {
		length = bar.Height
	}
	trackLen := length - TextWidth(spec.begin.symbol) - TextWidth(spec.end.symbol)
	before, thumb, after := thumbParts(spec.values, trackLen, length)

	pos := 0
	put := func(part scrollbarPart, n int) {
		if part.symbol == "" {
			pos += n
			return
		}
		style := spec.style.Patch(part.style)
		for range n {
			x, y := bar.X+pos, bar.Y
			if spec.orientation.vertical() {
				x, y = bar.X, bar.Y+pos
			}
			p.buf.SetSymbol(x, y, part.symbol, style)
			pos++
		}
	}
	if spec.begin.symbol != "" {
		put(spec.begin, 1)
	}
	put(spec.track, before)
	put(spec.thumb, thumb)
	put(spec.track, after)
	if spec.end.symbol != "" {
		put(spec.end, 1)
	}
}
