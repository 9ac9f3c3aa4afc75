package termbridge

import "fmt"

// Kind identifies a built-in widget or container.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindParagraph
	KindList
	KindTable
	KindGauge
	KindLineGauge
	KindTabs
	KindBarChart
	KindSparkline
	KindChart
	KindLineChart
	KindCanvas
	KindCalendar
	KindScrollbar
	KindClear
	KindLogo
	KindMascot
	KindLayout
	KindOverlay
	KindCenter
	KindBlock
	KindCursor
	KindCustom
)

var kindNames = [...]string{
	KindUnknown:   "unknown",
	KindParagraph: "paragraph",
	KindList:      "list",
	KindTable:     "table",
	KindGauge:     "gauge",
	KindLineGauge: "line_gauge",
	KindTabs:      "tabs",
	KindBarChart:  "bar_chart",
	KindSparkline: "sparkline",
	KindChart:     "chart",
	KindLineChart: "line_chart",
	KindCanvas:    "canvas",
	KindCalendar:  "calendar",
	KindScrollbar: "scrollbar",
	KindClear:     "clear",
	KindLogo:      "logo",
	KindMascot:    "mascot",
	KindLayout:    "layout",
	KindOverlay:   "overlay",
	KindCenter:    "center",
	KindBlock:     "block",
	KindCursor:    "cursor",
	KindCustom:    "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a kind name to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name && Kind(k) != KindUnknown {
			return Kind(k), nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Node is a widget descriptor: a kind tag plus named attributes.
type Node interface {
	Kind() Kind
	Attr(name string) (any, bool)
}

// CustomRenderer is implemented by nodes that draw themselves with
// primitive commands instead of a built-in renderer.
type CustomRenderer interface {
	Node
	RenderCommands(area Rect) ([]DrawCommand, error)
}

// Element is a map-backed Node.
type Element struct {
	kind  Kind
	attrs map[string]any
}

// NewNode creates an element of the given kind. attrs may be nil.
func NewNode(kind Kind, attrs map[string]any) *Element {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return &Element{kind: kind, attrs: attrs}
}

// Kind implements Node.
func (e *Element) Kind() Kind {
	return e.kind
}

// Attr implements Node.
func (e *Element) Attr(name string) (any, bool) {
	v, ok := e.attrs[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Set sets an attribute and returns the element for chaining.
func (e *Element) Set(name string, v any) *Element {
	e.attrs[name] = v
	return e
}

// Block attaches a block descriptor.
func (e *Element) Block(b any) *Element {
	return e.Set("block", b)
}

// Style sets the base style.
func (e *Element) Style(s any) *Element {
	return e.Set("style", s)
}

// CustomFunc draws a node from primitive commands.
type CustomFunc func(area Rect) ([]DrawCommand, error)

type customNode struct {
	fn CustomFunc
}

func (c customNode) Kind() Kind {
	return KindCustom
}

func (c customNode) Attr(string) (any, bool) {
	return nil, false
}

func (c customNode) RenderCommands(area Rect) ([]DrawCommand, error) {
	return c.fn(area)
}

// Custom wraps fn as a custom-rendered node.
func Custom(fn CustomFunc) Node {
	return customNode{fn: fn}
}

// Paragraph creates a paragraph node.
func Paragraph(text any) *Element {
	return NewNode(KindParagraph, map[string]any{"text": text})
}

// List creates a list node.
func List(items ...any) *Element {
	return NewNode(KindList, map[string]any{"items": items})
}

// Layout creates a layout node.
func Layout(dir Direction, constraints []Constraint, children ...Node) *Element {
	return NewNode(KindLayout, map[string]any{
		"direction":   dir,
		"constraints": constraints,
		"children":    children,
	})
}

// Overlay creates an overlay node; later layers draw on top.
func Overlay(layers ...Node) *Element {
	return NewNode(KindOverlay, map[string]any{"layers": layers})
}

// Center creates a center node sized as a percentage of its area.
func Center(child Node, widthPercent, heightPercent int) *Element {
	return NewNode(KindCenter, map[string]any{
		"child":          child,
		"width_percent":  widthPercent,
		"height_percent": heightPercent,
	})
}

// Cursor creates a node that places the terminal cursor at (x, y) relative
// to its area.
func Cursor(x, y int) *Element {
	return NewNode(KindCursor, map[string]any{"x": x, "y": y})
}
