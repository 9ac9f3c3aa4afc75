package termbridge

import "fmt"

// Rect is an area of the terminal in character cells, origin top-left.
// A zero width or height is valid and means there is nothing to draw.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a rect, clamping negative values to zero.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: max(x, 0), Y: max(y, 0), Width: max(width, 0), Height: max(height, 0)}
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// IsEmpty reports whether the rect covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the first column past the rect.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the rect.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether the cell (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of two rects.
func (r Rect) Intersect(o Rect) Rect {
	x1, y1 := max(r.X, o.X), max(r.Y, o.Y)
	x2, y2 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Shrink returns the rect with the given insets removed from each side.
func (r Rect) Shrink(left, right, top, bottom int) Rect {
	x := r.X + min(left, r.Width)
	y := r.Y + min(top, r.Height)
	w := max(r.Width-left-right, 0)
	h := max(r.Height-top-bottom, 0)
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Rows returns the rect split into one-row rects from top to bottom.
func (r Rect) Rows() []Rect {
	rows := make([]Rect, 0, max(r.Height, 0))
	for y := r.Y; y < r.Bottom(); y++ {
		rows = append(rows, Rect{X: r.X, Y: y, Width: r.Width, Height: 1})
	}
	return rows
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}
