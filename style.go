package termbridge

// Modifier represents text styling attributes that can be combined.
type Modifier uint16

const (
	ModBold Modifier = 1 << iota
	ModDim
	ModItalic
	ModUnderlined
	ModSlowBlink
	ModRapidBlink
	ModReversed
	ModHidden
	ModCrossedOut

	ModNone Modifier = 0
)

// Has returns true if the modifier set contains m.
func (a Modifier) Has(m Modifier) bool {
	return a&m != 0
}

// With returns a new modifier set with m added.
func (a Modifier) With(m Modifier) Modifier {
	return a | m
}

// Without returns a new modifier set with m removed.
func (a Modifier) Without(m Modifier) Modifier {
	return a &^ m
}

var modifierNames = []struct {
	name string
	mod  Modifier
}{
	{"bold", ModBold},
	{"dim", ModDim},
	{"italic", ModItalic},
	{"underlined", ModUnderlined},
	{"slow_blink", ModSlowBlink},
	{"rapid_blink", ModRapidBlink},
	{"reversed", ModReversed},
	{"hidden", ModHidden},
	{"crossed_out", ModCrossedOut},
}

// Names returns the modifier tokens in a stable order.
func (a Modifier) Names() []string {
	var names []string
	for _, m := range modifierNames {
		if a.Has(m.mod) {
			names = append(names, m.name)
		}
	}
	return names
}

// ColorMode represents the color mode for a color value.
type ColorMode uint8

const (
	ColorNone  ColorMode = iota // unset, inherits whatever is underneath
	ColorReset                  // terminal default
	Color16                     // basic 16 colors (0-15)
	Color256                    // 256 color palette (0-255)
	ColorRGB                    // 24-bit true color
)

// Color represents a terminal color. The zero value is "unset".
type Color struct {
	Mode    ColorMode
	R, G, B uint8 // for RGB mode
	Index   uint8 // for 16/256 mode
}

// ResetColor returns the terminal's default color.
func ResetColor() Color {
	return Color{Mode: ColorReset}
}

// BasicColor returns one of the 16 basic terminal colors.
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index}
}

// IndexedColor returns one of the 256 palette colors.
func IndexedColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Named colors.
var (
	Black        = BasicColor(0)
	Red          = BasicColor(1)
	Green        = BasicColor(2)
	Yellow       = BasicColor(3)
	Blue         = BasicColor(4)
	Magenta      = BasicColor(5)
	Cyan         = BasicColor(6)
	Gray         = BasicColor(7)
	DarkGray     = BasicColor(8)
	LightRed     = BasicColor(9)
	LightGreen   = BasicColor(10)
	LightYellow  = BasicColor(11)
	LightBlue    = BasicColor(12)
	LightMagenta = BasicColor(13)
	LightCyan    = BasicColor(14)
	White        = BasicColor(15)
)

// IsSet reports whether the color carries a value.
func (c Color) IsSet() bool {
	return c.Mode != ColorNone
}

// Style combines optional foreground and background colors with modifiers.
type Style struct {
	FG  Color
	BG  Color
	Mod Modifier
}

// NewStyle returns an empty style.
func NewStyle() Style {
	return Style{}
}

// Foreground returns a new style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns a new style with the given background color.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

// Add returns a new style with m added.
func (s Style) Add(m Modifier) Style {
	s.Mod = s.Mod.With(m)
	return s
}

// Patch layers other on top of s. Colors set in other win, modifiers are
// combined.
func (s Style) Patch(other Style) Style {
	if other.FG.IsSet() {
		s.FG = other.FG
	}
	if other.BG.IsSet() {
		s.BG = other.BG
	}
	s.Mod |= other.Mod
	return s
}

// IsZero reports whether the style sets nothing.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Cell is a single character cell. Symbol holds one grapheme cluster; the
// trailing cell of a wide grapheme holds an empty symbol.
type Cell struct {
	Symbol string
	Style  Style
}

// EmptyCell returns a cell with a space and no style.
func EmptyCell() Cell {
	return Cell{Symbol: " "}
}

// NewCell creates a cell with the given symbol and style.
func NewCell(symbol string, style Style) Cell {
	return Cell{Symbol: symbol, Style: style}
}
