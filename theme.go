package termbridge

import "strings"

// Theme is a set of named styles. A style descriptor given as a plain
// string picks one of them, e.g. style: accent.
type Theme struct {
	Base   Style // default text style
	Muted  Style // de-emphasized text
	Accent Style // highlighted/important text
	Error  Style // error messages
	Border Style // border/divider style
}

// ThemeDark is light text for dark backgrounds.
var ThemeDark = Theme{
	Base:   Style{FG: White},
	Muted:  Style{FG: DarkGray},
	Accent: Style{FG: LightCyan},
	Error:  Style{FG: LightRed},
	Border: Style{FG: DarkGray},
}

// ThemeLight is dark text for light backgrounds.
var ThemeLight = Theme{
	Base:   Style{FG: Black},
	Muted:  Style{FG: DarkGray},
	Accent: Style{FG: Blue},
	Error:  Style{FG: Red},
	Border: Style{FG: Gray},
}

// ThemeMonochrome uses modifiers only.
var ThemeMonochrome = Theme{
	Muted:  Style{Mod: ModDim},
	Accent: Style{Mod: ModBold},
	Error:  Style{Mod: ModBold | ModUnderlined},
	Border: Style{Mod: ModDim},
}

var themes = map[string]*Theme{
	"dark":       &ThemeDark,
	"light":      &ThemeLight,
	"mono":       &ThemeMonochrome,
	"monochrome": &ThemeMonochrome,
}

// ThemeByName returns a built-in theme: dark, light or mono.
func ThemeByName(name string) (*Theme, bool) {
	t, ok := themes[strings.ToLower(name)]
	return t, ok
}

// Slot returns the style stored under name.
func (t *Theme) Slot(name string) (Style, bool) {
	switch strings.ToLower(name) {
	case "base":
		return t.Base, true
	case "muted":
		return t.Muted, true
	case "accent":
		return t.Accent, true
	case "error":
		return t.Error, true
	case "border":
		return t.Border, true
	}
	return Style{}, false
}
