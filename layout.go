package termbridge

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Direction is the axis a layout splits along.
type Direction uint8

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseDirection parses "vertical" or "horizontal".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "vertical", "":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return Vertical, invalidf("direction: unknown value %q", s)
}

// Flex decides where leftover space goes once constraints are satisfied.
type Flex uint8

const (
	FlexLegacy Flex = iota
	FlexStart
	FlexCenter
	FlexEnd
	FlexSpaceBetween
	FlexSpaceAround
	FlexSpaceEvenly
)

var flexNames = [...]string{
	FlexLegacy:       "legacy",
	FlexStart:        "start",
	FlexCenter:       "center",
	FlexEnd:          "end",
	FlexSpaceBetween: "space_between",
	FlexSpaceAround:  "space_around",
	FlexSpaceEvenly:  "space_evenly",
}

func (f Flex) String() string {
	if int(f) < len(flexNames) {
		return flexNames[f]
	}
	return "flex(" + strconv.Itoa(int(f)) + ")"
}

// ParseFlex parses a flex mode name; dashes and underscores are equivalent.
func ParseFlex(s string) (Flex, error) {
	s = strings.ReplaceAll(s, "-", "_")
	if s == "" {
		return FlexLegacy, nil
	}
	for i, n := range flexNames {
		if n == s {
			return Flex(i), nil
		}
	}
	return FlexLegacy, invalidf("flex: unknown value %q", s)
}

// ConstraintKind tags a Constraint.
type ConstraintKind uint8

const (
	ConstraintLength ConstraintKind = iota
	ConstraintPercentage
	ConstraintMin
	ConstraintMax
	ConstraintFill
	ConstraintRatio
)

// Constraint is a sizing rule for one segment along a layout axis.
type Constraint struct {
	Kind  ConstraintKind
	Value int
	Den   int // ratio denominator
}

// Length is a fixed size.
func Length(n int) Constraint { return Constraint{Kind: ConstraintLength, Value: n} }

// Percentage is a share of the total size.
func Percentage(p int) Constraint { return Constraint{Kind: ConstraintPercentage, Value: p} }

// Min is a lower bound that grows into leftover space.
func Min(n int) Constraint { return Constraint{Kind: ConstraintMin, Value: n} }

// Max is an upper bound.
func Max(n int) Constraint { return Constraint{Kind: ConstraintMax, Value: n} }

// Fill takes leftover space in proportion to weight.
func Fill(weight int) Constraint { return Constraint{Kind: ConstraintFill, Value: weight} }

// Ratio is num/den of the total size.
func Ratio(num, den int) Constraint { return Constraint{Kind: ConstraintRatio, Value: num, Den: den} }

func (c Constraint) String() string {
	switch c.Kind {
	case ConstraintLength:
		return fmt.Sprintf("len:%d", c.Value)
	case ConstraintPercentage:
		return fmt.Sprintf("pct:%d", c.Value)
	case ConstraintMin:
		return fmt.Sprintf("min:%d", c.Value)
	case ConstraintMax:
		return fmt.Sprintf("max:%d", c.Value)
	case ConstraintFill:
		return fmt.Sprintf("fill:%d", c.Value)
	case ConstraintRatio:
		return fmt.Sprintf("ratio:%d/%d", c.Value, c.Den)
	}
	return "constraint(?)"
}

var constraintPrefixes = map[string]ConstraintKind{
	"len":        ConstraintLength,
	"length":     ConstraintLength,
	"pct":        ConstraintPercentage,
	"percentage": ConstraintPercentage,
	"min":        ConstraintMin,
	"max":        ConstraintMax,
	"fill":       ConstraintFill,
	"ratio":      ConstraintRatio,
}

// ParseConstraint parses the short form used on the command line, e.g.
// "len:10", "pct:50", "min:5", "max:30", "fill:1" or "ratio:1/3".
func ParseConstraint(s string) (Constraint, error) {
	name, val, ok := strings.Cut(s, ":")
	kind, known := constraintPrefixes[name]
	if !ok || !known {
		return Constraint{}, invalidf("constraint: cannot parse %q", s)
	}
	if kind == ConstraintRatio {
		a, b, ok := strings.Cut(val, "/")
		num, err1 := strconv.Atoi(a)
		den, err2 := strconv.Atoi(b)
		if !ok || err1 != nil || err2 != nil {
			return Constraint{}, invalidf("constraint: cannot parse ratio %q", s)
		}
		return Ratio(num, den), nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return Constraint{}, invalidf("constraint: cannot parse %q", s)
	}
	return Constraint{Kind: kind, Value: n}, nil
}

// parseConstraintValue accepts a Constraint, its short string form, or a
// mapping {type, value} / {ratio: [num, den]}.
func parseConstraintValue(v any) (Constraint, error) {
	switch c := v.(type) {
	case Constraint:
		return c, nil
	case string:
		return ParseConstraint(c)
	case map[string]any:
		if r, ok := c["ratio"]; ok {
			l, ok := asList(r)
			if !ok || len(l) != 2 {
				return Constraint{}, invalidf("constraint: ratio must be [num, den], got %v", r)
			}
			num, ok1 := asInt(l[0])
			den, ok2 := asInt(l[1])
			if !ok1 || !ok2 {
				return Constraint{}, invalidf("constraint: ratio must be integers, got %v", r)
			}
			return Ratio(num, den), nil
		}
		t, _ := asString(c["type"])
		kind, ok := constraintPrefixes[t]
		if !ok || kind == ConstraintRatio {
			return Constraint{}, invalidf("constraint: unknown type %v", c["type"])
		}
		n, ok := asInt(c["value"])
		if !ok {
			return Constraint{}, invalidf("constraint: value must be an integer, got %v", c["value"])
		}
		return Constraint{Kind: kind, Value: n}, nil
	}
	return Constraint{}, invalidf("constraint: unsupported value %T", v)
}

// SplitLayout partitions area along dir. It is pure: identical inputs give
// identical rects.
func SplitLayout(area Rect, dir Direction, constraints []Constraint, flex Flex) []Rect {
	total := area.Height
	if dir == Horizontal {
		total = area.Width
	}
	starts, sizes := solve(float64(max(total, 0)), constraints, flex)

	rects := make([]Rect, len(constraints))
	for i := range constraints {
		s := roundHalfAway(starts[i])
		e := roundHalfAway(starts[i] + sizes[i])
		s = min(max(s, 0), total)
		e = min(max(e, s), total)
		if dir == Horizontal {
			rects[i] = Rect{X: area.X + s, Y: area.Y, Width: e - s, Height: area.Height}
		} else {
			rects[i] = Rect{X: area.X, Y: area.Y + s, Width: area.Width, Height: e - s}
		}
	}
	return rects
}

func roundHalfAway(f float64) int {
	return int(math.Round(f))
}

// solve returns the float start offset and size of every segment.
func solve(total float64, cs []Constraint, flex Flex) (starts, sizes []float64) {
	n := len(cs)
	sizes = make([]float64, n)
	starts = make([]float64, n)
	if n == 0 {
		return starts, sizes
	}

	for i, c := range cs {
		v := float64(max(c.Value, 0))
		switch c.Kind {
		case ConstraintLength, ConstraintMin, ConstraintMax:
			sizes[i] = v
		case ConstraintPercentage:
			sizes[i] = total * v / 100
		case ConstraintRatio:
			if c.Den > 0 {
				sizes[i] = total * v / float64(c.Den)
			}
		}
	}

	used := sum(sizes)
	if used > total {
		shrink(total, cs, sizes)
		used = sum(sizes)
	}
	leftover := total - used
	if leftover > 0 {
		leftover = grow(leftover, cs, sizes)
	}

	offset, gap := 0.0, 0.0
	if leftover > 0 {
		switch flex {
		case FlexLegacy:
			if cs[n-1].Kind != ConstraintMax {
				sizes[n-1] += leftover
			}
		case FlexEnd:
			offset = leftover
		case FlexCenter:
			offset = leftover / 2
		case FlexSpaceBetween:
			if n > 1 {
				gap = leftover / float64(n-1)
			}
		case FlexSpaceAround:
			gap = leftover / float64(n)
			offset = gap / 2
		case FlexSpaceEvenly:
			gap = leftover / float64(n+1)
			offset = gap
		}
	}

	pos := offset
	for i := range cs {
		starts[i] = pos
		pos += sizes[i] + gap
	}
	return starts, sizes
}

// shrink scales segments down to fit total: everything but Min first, then
// Min as well if that is not enough.
func shrink(total float64, cs []Constraint, sizes []float64) {
	var minSum, otherSum float64
	for i, c := range cs {
		if c.Kind == ConstraintMin {
			minSum += sizes[i]
		} else {
			otherSum += sizes[i]
		}
	}
	if minSum <= total {
		scale := (total - minSum) / otherSum
		for i, c := range cs {
			if c.Kind != ConstraintMin {
				sizes[i] *= scale
			}
		}
		return
	}
	scale := total / minSum
	for i, c := range cs {
		if c.Kind == ConstraintMin {
			sizes[i] *= scale
		} else {
			sizes[i] = 0
		}
	}
}

// grow hands leftover space to Fill segments by weight, or else to Min
// segments equally. It returns what is still left over.
func grow(leftover float64, cs []Constraint, sizes []float64) float64 {
	var fills []int
	weights := 0.0
	for i, c := range cs {
		if c.Kind == ConstraintFill {
			fills = append(fills, i)
			weights += float64(max(c.Value, 0))
		}
	}
	if len(fills) > 0 {
		for _, i := range fills {
			if weights > 0 {
				sizes[i] += leftover * float64(max(cs[i].Value, 0)) / weights
			} else {
				sizes[i] += leftover / float64(len(fills))
			}
		}
		return 0
	}
	var mins []int
	for i, c := range cs {
		if c.Kind == ConstraintMin {
			mins = append(mins, i)
		}
	}
	if len(mins) > 0 {
		for _, i := range mins {
			sizes[i] += leftover / float64(len(mins))
		}
		return 0
	}
	return leftover
}

func sum(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}

// LayoutSpec is a resolved layout node.
type LayoutSpec struct {
	Direction   Direction
	Flex        Flex
	Constraints []Constraint
	Children    []Node
}

// Areas returns the child rects. When the constraint count does not match
// the child count the constraints are replaced by an even percentage split
// unless strict is set.
func (l LayoutSpec) Areas(area Rect, strict bool) ([]Rect, error) {
	cs := l.Constraints
	if len(cs) != len(l.Children) {
		if strict {
			return nil, fmt.Errorf("%w: %d constraints for %d children",
				ErrConstraintMismatch, len(cs), len(l.Children))
		}
		cs = evenSplit(len(l.Children))
	}
	return SplitLayout(area, l.Direction, cs, l.Flex), nil
}

func evenSplit(n int) []Constraint {
	p := 100 / max(n, 1)
	cs := make([]Constraint, n)
	for i := range cs {
		cs[i] = Percentage(p)
	}
	return cs
}

// parseLayout resolves a layout node.
func parseLayout(n Node) (LayoutSpec, error) {
	ar := newAttrReader(n, nil)
	var spec LayoutSpec
	var err error
	if v, ok := ar.raw("direction"); ok {
		if d, isDir := v.(Direction); isDir {
			spec.Direction = d
		} else if spec.Direction, err = ParseDirection(ar.str("direction", "")); err != nil {
			return spec, err
		}
	}
	if v, ok := ar.raw("flex"); ok {
		if f, isFlex := v.(Flex); isFlex {
			spec.Flex = f
		} else if spec.Flex, err = ParseFlex(ar.str("flex", "")); err != nil {
			return spec, err
		}
	}
	for i, c := range ar.list("constraints") {
		con, err := parseConstraintValue(c)
		if err != nil {
			return spec, fmt.Errorf("constraints[%d]: %w", i, err)
		}
		spec.Constraints = append(spec.Constraints, con)
	}
	children, err := nodeList(ar, "children")
	if err != nil {
		return spec, err
	}
	spec.Children = children
	return spec, ar.Err()
}

// nodeList reads an array attribute whose elements are all nodes.
func nodeList(ar *attrReader, name string) ([]Node, error) {
	var out []Node
	for i, v := range ar.list(name) {
		n, ok := v.(Node)
		if !ok {
			return nil, invalidf("%s[%d]: expected node, got %T", name, i, v)
		}
		out = append(out, n)
	}
	return out, ar.Err()
}
