package termbridge

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Buffer is a 2D grid of cells representing a drawable surface.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a new buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	width, height = max(width, 0), max(height, 0)
	b := &Buffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	b.Reset()
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *Buffer) Height() int {
	return b.height
}

// Area returns the full buffer rect.
func (b *Buffer) Area() Rect {
	return Rect{Width: b.width, Height: b.height}
}

// InBounds returns true if the given coordinates are within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at the given coordinates.
// Returns an empty cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set replaces the cell at the given coordinates.
// Does nothing if out of bounds.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// SetSymbol writes a symbol and patches style onto the existing cell style.
func (b *Buffer) SetSymbol(x, y int, symbol string, style Style) {
	if !b.InBounds(x, y) {
		return
	}
	c := &b.cells[b.index(x, y)]
	c.Symbol = symbol
	c.Style = c.Style.Patch(style)
}

// SetStyle patches style over every cell of area.
func (b *Buffer) SetStyle(area Rect, style Style) {
	if style.IsZero() {
		return
	}
	area = area.Intersect(b.Area())
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			c := &b.cells[b.index(x, y)]
			c.Style = c.Style.Patch(style)
		}
	}
}

// Fill replaces every cell of area with c.
func (b *Buffer) Fill(area Rect, c Cell) {
	area = area.Intersect(b.Area())
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			b.cells[b.index(x, y)] = c
		}
	}
}

// Reset clears the buffer to empty cells with no style.
func (b *Buffer) Reset() {
	empty := EmptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
}

// WriteString writes s at the given coordinates, clipped to the buffer.
// Returns the number of columns written.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	return b.WriteStringN(x, y, s, b.width, style)
}

// WriteStringN writes s at the given coordinates using at most maxWidth
// columns. Graphemes are never split: a wide grapheme that does not fit is
// not drawn. Returns the number of columns consumed.
func (b *Buffer) WriteStringN(x, y int, s string, maxWidth int, style Style) int {
	if y < 0 || y >= b.height || maxWidth <= 0 {
		return 0
	}
	limit := min(b.width, x+maxWidth)
	written := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		sym := g.Str()
		w := runewidth.StringWidth(sym)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		if x >= 0 {
			b.SetSymbol(x, y, sym, style)
			for i := 1; i < w; i++ {
				b.SetSymbol(x+i, y, "", style)
			}
		}
		x += w
		written += w
	}
	return written
}

// HLine draws a horizontal run of symbol.
func (b *Buffer) HLine(x, y, length int, symbol string, style Style) {
	for i := 0; i < length; i++ {
		b.SetSymbol(x+i, y, symbol, style)
	}
}

// VLine draws a vertical run of symbol.
func (b *Buffer) VLine(x, y, length int, symbol string, style Style) {
	for i := 0; i < length; i++ {
		b.SetSymbol(x, y+i, symbol, style)
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{cells: make([]Cell, len(b.cells)), width: b.width, height: b.height}
	copy(c.cells, b.cells)
	return c
}

// GetLine returns the content of a single line with trailing spaces removed.
func (b *Buffer) GetLine(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	return strings.TrimRight(b.line(y), " ")
}

func (b *Buffer) line(y int) string {
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		sb.WriteString(b.cells[b.index(x, y)].Symbol)
	}
	return sb.String()
}

// String returns the buffer contents, one row per line. Trailing spaces are
// preserved.
func (b *Buffer) String() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.line(y)
	}
	return strings.Join(lines, "\n")
}

// StringTrimmed returns the buffer contents with trailing spaces removed per
// line and trailing empty lines dropped.
func (b *Buffer) StringTrimmed() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.GetLine(y)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Resize resizes the buffer to new dimensions.
// Existing content is preserved where it fits.
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == b.width && height == b.height {
		return
	}
	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}
	for y := 0; y < min(height, b.height); y++ {
		for x := 0; x < min(width, b.width); x++ {
			cells[y*width+x] = b.cells[y*b.width+x]
		}
	}
	b.cells = cells
	b.width = width
	b.height = height
}
