package termbridge

import (
	"fmt"
	"log/slog"
)

// Renderer walks node trees and draws them into a Buffer.
type Renderer struct {
	styles       *StyleResolver
	log          *slog.Logger
	strictLayout bool
}

// NewRenderer creates a renderer from options.
func NewRenderer(opts Options) *Renderer {
	log := opts.logger()
	return &Renderer{
		styles:       &StyleResolver{Strict: opts.StrictStyles, Logger: log, Theme: opts.Theme},
		log:          log,
		strictLayout: opts.StrictLayout,
	}
}

// Styles returns the resolver the renderer uses.
func (r *Renderer) Styles() *StyleResolver {
	return r.styles
}

// LayoutAreas returns the child rects of a layout node for area, exactly
// as the renderer computes them.
func (r *Renderer) LayoutAreas(node Node, area Rect) ([]Rect, error) {
	spec, err := parseLayout(node)
	if err != nil {
		return nil, err
	}
	return spec.Areas(area, r.strictLayout)
}

// Render draws node into buf within area. Failures in container children
// are logged and the first one is returned once the whole tree has been
// attempted.
func (r *Renderer) Render(buf *Buffer, area Rect, node Node) error {
	return r.render(buf, area, node, nil, nil)
}

func (r *Renderer) render(buf *Buffer, area Rect, node Node, state any, setCursor func(Position)) error {
	p := &renderPass{r: r, buf: buf, setCursor: setCursor}
	return p.run(area, node, state)
}

// Position is a cell coordinate.
type Position struct {
	X, Y int
}

// renderPass carries one top-level render call.
type renderPass struct {
	r         *Renderer
	buf       *Buffer
	setCursor func(Position)
	firstErr  error
}

func (p *renderPass) run(area Rect, node Node, state any) error {
	var err error
	if state != nil {
		err = p.renderStateful(area, node, state)
	} else {
		err = p.render(area, node)
	}
	if p.firstErr != nil {
		return p.firstErr
	}
	return err
}

// childFailed logs a container child failure and keeps the first one.
func (p *renderPass) childFailed(parent Kind, index int, child Node, err error) {
	kind := "nil"
	if child != nil {
		kind = child.Kind().String()
	}
	p.r.log.Warn("child render failed",
		"parent", parent.String(),
		"index", index,
		"kind", kind,
		"err", err)
	if p.firstErr == nil {
		p.firstErr = fmt.Errorf("%s child %d (%s): %w", parent, index, kind, err)
	}
}

func (p *renderPass) render(area Rect, node Node) error {
	if node == nil {
		return invalidf("nil node")
	}
	if cr, ok := node.(CustomRenderer); ok {
		return p.renderCustom(area, cr)
	}
	switch node.Kind() {
	case KindList, KindTable, KindScrollbar:
		// a state name left unbound by BindStates renders inline
		if state, ok := node.Attr("state"); ok {
			if _, unbound := state.(string); !unbound {
				return p.renderStateful(area, node, state)
			}
		}
	}

	switch node.Kind() {
	case KindLayout:
		return p.renderLayout(area, node)
	case KindOverlay:
		return p.renderOverlay(area, node)
	case KindCenter:
		return p.renderCenter(area, node)
	case KindBlock:
		return p.renderBlockNode(area, node)
	case KindCursor:
		return p.renderCursor(area, node)
	case KindParagraph:
		return p.renderParagraph(area, node)
	case KindList:
		return p.renderList(area, node, nil)
	case KindTable:
		return p.renderTable(area, node, nil)
	case KindGauge:
		return p.renderGauge(area, node)
	case KindLineGauge:
		return p.renderLineGauge(area, node)
	case KindTabs:
		return p.renderTabs(area, node)
	case KindBarChart:
		return p.renderBarChart(area, node)
	case KindSparkline:
		return p.renderSparkline(area, node)
	case KindChart:
		return p.renderChart(area, node)
	case KindLineChart:
		return p.renderLineChart(area, node)
	case KindCanvas:
		return p.renderCanvas(area, node)
	case KindCalendar:
		return p.renderCalendar(area, node)
	case KindScrollbar:
		return p.renderScrollbar(area, node, nil)
	case KindClear:
		return p.renderClear(area, node)
	case KindLogo:
		return p.renderArt(area, logoArt)
	case KindMascot:
		return p.renderArt(area, mascotArt)
	case KindCustom:
		return invalidf("custom node %T has no RenderCommands", node)
	}
	return fmt.Errorf("%w: %s", ErrUnknownKind, node.Kind())
}

// renderStateful renders a list, table or scrollbar against a host-held
// state. Any other pairing is an argument error.
func (p *renderPass) renderStateful(area Rect, node Node, state any) error {
	switch {
	case node.Kind() == KindList:
		if s, ok := state.(*ListState); ok {
			return p.renderList(area, node, s)
		}
	case node.Kind() == KindTable:
		if s, ok := state.(*TableState); ok {
			return p.renderTable(area, node, s)
		}
	case node.Kind() == KindScrollbar:
		if s, ok := state.(*ScrollbarState); ok {
			return p.renderScrollbar(area, node, s)
		}
	}
	return invalidf("cannot render %s with state %T", node.Kind(), state)
}

func (p *renderPass) renderLayout(area Rect, node Node) error {
	spec, err := parseLayout(node)
	if err != nil {
		return err
	}
	rects, err := spec.Areas(area, p.r.strictLayout)
	if err != nil {
		return err
	}
	for i, child := range spec.Children {
		if err := p.render(rects[i], child); err != nil {
			p.childFailed(KindLayout, i, child, err)
		}
	}
	return nil
}

func (p *renderPass) renderOverlay(area Rect, node Node) error {
	layers, err := nodeList(newAttrReader(node, p.r.styles), "layers")
	if err != nil {
		return err
	}
	for i, layer := range layers {
		if err := p.render(area, layer); err != nil {
			p.childFailed(KindOverlay, i, layer, err)
		}
	}
	return nil
}

// CenterArea returns the centered sub-rect that is widthPercent by
// heightPercent of area. Edges round to the nearest cell on their own, so
// an odd percentage may come out one cell larger than its share
// (33% of 10 is 4 cells at offset 3).
func CenterArea(area Rect, widthPercent, heightPercent int) Rect {
	h := min(max(heightPercent, 0), 100)
	w := min(max(widthPercent, 0), 100)
	rows := SplitLayout(area, Vertical,
		[]Constraint{Percentage((100 - h) / 2), Percentage(h), Percentage((100 - h) / 2)}, FlexLegacy)
	cols := SplitLayout(rows[1], Horizontal,
		[]Constraint{Percentage((100 - w) / 2), Percentage(w), Percentage((100 - w) / 2)}, FlexLegacy)
	return cols[1]
}

func (p *renderPass) renderCenter(area Rect, node Node) error {
	ar := newAttrReader(node, p.r.styles)
	child := ar.child("child")
	w := ar.int("width_percent", 100)
	h := ar.int("height_percent", 100)
	if err := ar.Err(); err != nil {
		return err
	}
	if child == nil {
		return fmt.Errorf("center: %w: child", ErrMissingField)
	}
	inner := CenterArea(area, w, h)
	p.buf.Fill(inner, EmptyCell())
	return p.render(inner, child)
}

func (p *renderPass) renderBlockNode(area Rect, node Node) error {
	block, err := p.r.styles.Block(node)
	if err != nil {
		return err
	}
	block.Render(p.buf, area)
	inner := block.Inner(area)

	ar := newAttrReader(node, p.r.styles)
	children, err := nodeList(ar, "children")
	if err != nil {
		return err
	}
	if c := ar.child("child"); c != nil {
		children = append(children, c)
	}
	for i, child := range children {
		if err := p.render(inner, child); err != nil {
			p.childFailed(KindBlock, i, child, err)
		}
	}
	return ar.Err()
}

func (p *renderPass) renderCursor(area Rect, node Node) error {
	ar := newAttrReader(node, p.r.styles)
	x, okX := ar.optInt("x")
	y, okY := ar.optInt("y")
	if err := ar.Err(); err != nil {
		return err
	}
	if !okX || !okY {
		return fmt.Errorf("cursor: %w: x and y", ErrMissingField)
	}
	if p.setCursor != nil {
		p.setCursor(Position{X: area.X + x, Y: area.Y + y})
	}
	return nil
}

func (p *renderPass) renderClear(area Rect, node Node) error {
	p.buf.Fill(area, EmptyCell())
	ar := newAttrReader(node, p.r.styles)
	ar.block().Render(p.buf, area)
	return ar.Err()
}

// applyBlock draws the optional block of a widget and returns the area left
// for its content.
func (p *renderPass) applyBlock(area Rect, b *Block) Rect {
	if b == nil {
		return area
	}
	b.Render(p.buf, area)
	return b.Inner(area)
}
