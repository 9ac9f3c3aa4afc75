package termbridge

import (
	"fmt"
	"math"
)

// asInt accepts the integer shapes produced by Go hosts and by YAML/JSON
// decoders. Floats are accepted only when integral.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		return toAny(l), true
	case []int:
		return toAny(l), true
	case []float64:
		return toAny(l), true
	case []Node:
		return toAny(l), true
	case []*Element:
		return toAny(l), true
	case []map[string]any:
		return toAny(l), true
	case [][]any:
		return toAny(l), true
	case [][]float64:
		return toAny(l), true
	case [][2]float64:
		return toAny(l), true
	case []Line:
		return toAny(l), true
	case []Span:
		return toAny(l), true
	case []Constraint:
		return toAny(l), true
	}
	return nil, false
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// attrReader reads typed attributes from a node and keeps the first
// malformed-shape error, so a widget can read all of its attributes and
// check Err once.
type attrReader struct {
	node   Node
	styles *StyleResolver
	err    error
}

func newAttrReader(n Node, styles *StyleResolver) *attrReader {
	if styles == nil {
		styles = defaultResolver
	}
	return &attrReader{node: n, styles: styles}
}

func (r *attrReader) Err() error {
	return r.err
}

func (r *attrReader) fail(name, want string, v any) {
	if r.err == nil {
		r.err = invalidf("%s.%s: expected %s, got %T", r.node.Kind(), name, want, v)
	}
}

func (r *attrReader) setErr(name string, err error) {
	if r.err == nil && err != nil {
		r.err = fmt.Errorf("%s.%s: %w", r.node.Kind(), name, err)
	}
}

func (r *attrReader) has(name string) bool {
	_, ok := r.node.Attr(name)
	return ok
}

func (r *attrReader) raw(name string) (any, bool) {
	return r.node.Attr(name)
}

func (r *attrReader) int(name string, def int) int {
	if v, ok := r.optInt(name); ok {
		return v
	}
	return def
}

func (r *attrReader) optInt(name string) (int, bool) {
	v, ok := r.node.Attr(name)
	if !ok {
		return 0, false
	}
	i, ok := asInt(v)
	if !ok {
		r.fail(name, "integer", v)
		return 0, false
	}
	return i, true
}

func (r *attrReader) float(name string, def float64) float64 {
	if v, ok := r.optFloat(name); ok {
		return v
	}
	return def
}

func (r *attrReader) optFloat(name string) (float64, bool) {
	v, ok := r.node.Attr(name)
	if !ok {
		return 0, false
	}
	f, ok := asFloat(v)
	if !ok {
		r.fail(name, "number", v)
		return 0, false
	}
	return f, true
}

func (r *attrReader) str(name, def string) string {
	v, ok := r.node.Attr(name)
	if !ok {
		return def
	}
	s, ok := asString(v)
	if !ok {
		r.fail(name, "string", v)
		return def
	}
	return s
}

func (r *attrReader) bool(name string, def bool) bool {
	v, ok := r.node.Attr(name)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(name, "bool", v)
		return def
	}
	return b
}

func (r *attrReader) list(name string) []any {
	v, ok := r.node.Attr(name)
	if !ok {
		return nil
	}
	l, ok := asList(v)
	if !ok {
		r.fail(name, "array", v)
		return nil
	}
	return l
}

func (r *attrReader) child(name string) Node {
	v, ok := r.node.Attr(name)
	if !ok {
		return nil
	}
	n, ok := v.(Node)
	if !ok {
		r.fail(name, "node", v)
		return nil
	}
	return n
}

func (r *attrReader) style(name string) Style {
	v, ok := r.node.Attr(name)
	if !ok {
		return Style{}
	}
	s, err := r.styles.Style(v)
	r.setErr(name, err)
	return s
}

func (r *attrReader) color(name string) Color {
	v, ok := r.node.Attr(name)
	if !ok {
		return Color{}
	}
	c, err := r.styles.Color(v)
	r.setErr(name, err)
	return c
}

// block returns the node's block descriptor, or nil when absent.
func (r *attrReader) block() *Block {
	v, ok := r.node.Attr("block")
	if !ok {
		return nil
	}
	b, err := r.styles.Block(v)
	r.setErr("block", err)
	return b
}

// alignment reads a left/center/right token.
func (r *attrReader) alignment(name string, def Alignment) Alignment {
	v, ok := r.node.Attr(name)
	if !ok {
		return def
	}
	a, err := parseAlignment(v)
	r.setErr(name, err)
	if err != nil {
		return def
	}
	return a
}

// floatPair reads a two-element numeric array such as bounds.
func (r *attrReader) floatPair(name string, def [2]float64) ([2]float64, bool) {
	v, ok := r.node.Attr(name)
	if !ok {
		return def, false
	}
	p, err := parseFloatPair(v)
	if err != nil {
		r.fail(name, "[min, max]", v)
		return def, false
	}
	return p, true
}

func parseFloatPair(v any) ([2]float64, error) {
	if p, ok := v.([2]float64); ok {
		return p, nil
	}
	l, ok := asList(v)
	if !ok || len(l) != 2 {
		return [2]float64{}, invalidf("expected two numbers, got %v", v)
	}
	a, ok1 := asFloat(l[0])
	b, ok2 := asFloat(l[1])
	if !ok1 || !ok2 {
		return [2]float64{}, invalidf("expected two numbers, got %v", v)
	}
	return [2]float64{a, b}, nil
}
