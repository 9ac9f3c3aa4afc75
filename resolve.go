package termbridge

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// StyleDescriptor is implemented by host objects that carry a style.
type StyleDescriptor interface {
	Foreground() any
	Background() any
	Modifiers() []string
}

// StyleResolver turns style, color and block descriptors into renderer
// values. Unknown tokens are dropped unless Strict is set, in which case
// they are reported as ErrUnknownToken. A string style descriptor names a
// Theme slot.
type StyleResolver struct {
	Strict bool
	Logger *slog.Logger
	Theme  *Theme
}

var defaultResolver = &StyleResolver{}

// ParseStyle resolves a style descriptor leniently.
func ParseStyle(desc any) (Style, error) {
	return defaultResolver.Style(desc)
}

// ParseBlock resolves a block descriptor leniently.
func ParseBlock(desc any) (*Block, error) {
	return defaultResolver.Block(desc)
}

func (r *StyleResolver) unknown(what, token string) error {
	if r.Strict {
		return fmt.Errorf("%w: %s %q", ErrUnknownToken, what, token)
	}
	if r.Logger != nil {
		r.Logger.Debug("ignoring unknown style token", "what", what, "token", token)
	}
	return nil
}

var namedColors = map[string]Color{
	"black":        Black,
	"red":          Red,
	"green":        Green,
	"yellow":       Yellow,
	"blue":         Blue,
	"magenta":      Magenta,
	"cyan":         Cyan,
	"gray":         Gray,
	"darkgray":     DarkGray,
	"lightred":     LightRed,
	"lightgreen":   LightGreen,
	"lightyellow":  LightYellow,
	"lightblue":    LightBlue,
	"lightmagenta": LightMagenta,
	"lightcyan":    LightCyan,
	"white":        White,
	"reset":        ResetColor(),
}

var colorKeyReplacer = strings.NewReplacer("_", "", "-", "", " ", "")

// ParseColor parses a color token: a name such as "light_blue", a hex
// value "#rrggbb", a palette index "42" or "indexed_42".
func ParseColor(token string) (Color, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return Color{}, false
	}
	if strings.HasPrefix(t, "#") {
		c, err := colorful.Hex(t)
		if err != nil {
			return Color{}, false
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), true
	}
	if idx, ok := strings.CutPrefix(t, "indexed_"); ok {
		t = idx
	}
	if n, err := strconv.Atoi(t); err == nil {
		if n < 0 || n > 255 {
			return Color{}, false
		}
		return IndexedColor(uint8(n)), true
	}
	key := colorKeyReplacer.Replace(t)
	key = strings.ReplaceAll(key, "grey", "gray")
	if rest, ok := strings.CutPrefix(key, "bright"); ok {
		key = "light" + rest
	}
	c, ok := namedColors[key]
	return c, ok
}

// Token returns the canonical token for c, or "" when unset.
func (c Color) Token() string {
	switch c.Mode {
	case ColorReset:
		return "reset"
	case Color16:
		for name, nc := range namedColors {
			if nc == c {
				return canonicalColorNames[name]
			}
		}
	case Color256:
		return "indexed_" + strconv.Itoa(int(c.Index))
	case ColorRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return ""
}

var canonicalColorNames = map[string]string{
	"black": "black", "red": "red", "green": "green", "yellow": "yellow",
	"blue": "blue", "magenta": "magenta", "cyan": "cyan", "gray": "gray",
	"darkgray": "dark_gray", "lightred": "light_red", "lightgreen": "light_green",
	"lightyellow": "light_yellow", "lightblue": "light_blue",
	"lightmagenta": "light_magenta", "lightcyan": "light_cyan", "white": "white",
}

// Color resolves a color value. Absent and unknown values yield an unset
// color.
func (r *StyleResolver) Color(v any) (Color, error) {
	switch c := v.(type) {
	case nil:
		return Color{}, nil
	case Color:
		return c, nil
	case *Color:
		if c == nil {
			return Color{}, nil
		}
		return *c, nil
	case string:
		if col, ok := ParseColor(c); ok {
			return col, nil
		}
		return Color{}, r.unknown("color", c)
	}
	if n, ok := asInt(v); ok && n >= 0 && n <= 255 {
		return IndexedColor(uint8(n)), nil
	}
	return Color{}, invalidf("color: unsupported value %v (%T)", v, v)
}

// Modifier resolves one modifier name.
func (r *StyleResolver) Modifier(name string) (Modifier, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, m := range modifierNames {
		if m.name == n {
			return m.mod, nil
		}
	}
	switch n {
	case "underline":
		return ModUnderlined, nil
	case "reverse", "inverse":
		return ModReversed, nil
	case "strikethrough":
		return ModCrossedOut, nil
	}
	return ModNone, r.unknown("modifier", name)
}

// Style resolves a style descriptor: nil, a Style, a mapping with fg, bg
// and modifiers keys, or a StyleDescriptor.
func (r *StyleResolver) Style(desc any) (Style, error) {
	switch d := desc.(type) {
	case nil:
		return Style{}, nil
	case Style:
		return d, nil
	case *Style:
		if d == nil {
			return Style{}, nil
		}
		return *d, nil
	case map[string]any:
		return r.styleFrom(d["fg"], d["bg"], d["modifiers"])
	case string:
		theme := r.Theme
		if theme == nil {
			theme = &ThemeDark
		}
		if s, ok := theme.Slot(d); ok {
			return s, nil
		}
		return Style{}, r.unknown("theme style", d)
	case StyleDescriptor:
		return r.styleFrom(d.Foreground(), d.Background(), d.Modifiers())
	}
	return Style{}, invalidf("style: expected mapping or style, got %T", desc)
}

func (r *StyleResolver) styleFrom(fg, bg, mods any) (Style, error) {
	var s Style
	var err error
	if s.FG, err = r.Color(fg); err != nil {
		return Style{}, fmt.Errorf("fg: %w", err)
	}
	if s.BG, err = r.Color(bg); err != nil {
		return Style{}, fmt.Errorf("bg: %w", err)
	}
	if mods == nil {
		return s, nil
	}
	list, ok := asList(mods)
	if !ok {
		return Style{}, invalidf("modifiers: expected array, got %T", mods)
	}
	for _, m := range list {
		name, ok := asString(m)
		if !ok {
			return Style{}, invalidf("modifiers: expected string, got %T", m)
		}
		mod, err := r.Modifier(name)
		if err != nil {
			return Style{}, err
		}
		s.Mod |= mod
	}
	return s, nil
}
