package termbridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// Key is a canonical key token: a named key such as "enter" or "f5", or a
// single printable character such as "a".
type Key string

const (
	KeyNull      Key = "null"
	KeyUp        Key = "up"
	KeyDown      Key = "down"
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
	KeyEnter     Key = "enter"
	KeyEsc       Key = "esc"
	KeyBackspace Key = "backspace"
	KeyTab       Key = "tab"
	KeyBackTab   Key = "back_tab"
	KeyHome      Key = "home"
	KeyEnd       Key = "end"
	KeyPageUp    Key = "page_up"
	KeyPageDown  Key = "page_down"
	KeyInsert    Key = "insert"
	KeyDelete    Key = "delete"

	KeyCapsLock   Key = "caps_lock"
	KeyScrollLock Key = "scroll_lock"
	KeyNumLock    Key = "num_lock"

	KeyPrintScreen Key = "print_screen"
	KeyPause       Key = "pause"
	KeyMenu        Key = "menu"
	KeyKeypadBegin Key = "keypad_begin"
)

// FunctionKey returns the token of function key n.
func FunctionKey(n int) Key {
	return Key("f" + strconv.Itoa(n))
}

// maxFunctionKey is the highest function key in the vocabulary.
const maxFunctionKey = 24

// KeyCategory groups keys the way hosts usually branch on them.
type KeyCategory uint8

const (
	CategoryStandard KeyCategory = iota
	CategoryFunction
	CategoryMedia
	CategoryModifier
	CategorySystem
	CategoryLock
)

func (c KeyCategory) String() string {
	switch c {
	case CategoryFunction:
		return "function"
	case CategoryMedia:
		return "media"
	case CategoryModifier:
		return "modifier"
	case CategorySystem:
		return "system"
	case CategoryLock:
		return "lock"
	}
	return "standard"
}

// keyNames maps every named key to its category.
var keyNames = map[Key]KeyCategory{
	KeyNull:      CategoryStandard,
	KeyUp:        CategoryStandard,
	KeyDown:      CategoryStandard,
	KeyLeft:      CategoryStandard,
	KeyRight:     CategoryStandard,
	KeyEnter:     CategoryStandard,
	KeyEsc:       CategoryStandard,
	KeyBackspace: CategoryStandard,
	KeyTab:       CategoryStandard,
	KeyBackTab:   CategoryStandard,
	KeyHome:      CategoryStandard,
	KeyEnd:       CategoryStandard,
	KeyPageUp:    CategoryStandard,
	KeyPageDown:  CategoryStandard,
	KeyInsert:    CategoryStandard,
	KeyDelete:    CategoryStandard,

	KeyCapsLock:   CategoryLock,
	KeyScrollLock: CategoryLock,
	KeyNumLock:    CategoryLock,

	KeyPrintScreen: CategorySystem,
	KeyPause:       CategorySystem,
	KeyMenu:        CategorySystem,
	KeyKeypadBegin: CategorySystem,

	"media_play":           CategoryMedia,
	"media_pause":          CategoryMedia,
	"media_play_pause":     CategoryMedia,
	"media_reverse":        CategoryMedia,
	"media_stop":           CategoryMedia,
	"media_fast_forward":   CategoryMedia,
	"media_rewind":         CategoryMedia,
	"media_track_next":     CategoryMedia,
	"media_track_previous": CategoryMedia,
	"media_record":         CategoryMedia,
	"media_lower_volume":   CategoryMedia,
	"media_raise_volume":   CategoryMedia,
	"media_mute_volume":    CategoryMedia,

	"left_shift":       CategoryModifier,
	"left_control":     CategoryModifier,
	"left_alt":         CategoryModifier,
	"left_super":       CategoryModifier,
	"left_hyper":       CategoryModifier,
	"left_meta":        CategoryModifier,
	"right_shift":      CategoryModifier,
	"right_control":    CategoryModifier,
	"right_alt":        CategoryModifier,
	"right_super":      CategoryModifier,
	"right_hyper":      CategoryModifier,
	"right_meta":       CategoryModifier,
	"iso_level3_shift": CategoryModifier,
	"iso_level5_shift": CategoryModifier,
}

// keyAliases maps alternative spellings onto canonical tokens.
var keyAliases = map[string]Key{
	"escape":    KeyEsc,
	"return":    KeyEnter,
	"backtab":   KeyBackTab,
	"shift_tab": KeyBackTab,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"del":       KeyDelete,
	"ins":       KeyInsert,
	"space":     " ",
}

func init() {
	for n := 1; n <= maxFunctionKey; n++ {
		keyNames[FunctionKey(n)] = CategoryFunction
	}
}

// NamedKeys returns every named token in the vocabulary.
func NamedKeys() []Key {
	keys := make([]Key, 0, len(keyNames))
	for k := range keyNames {
		keys = append(keys, k)
	}
	return keys
}

// ParseKey decodes a token into a Key. Printable single characters decode
// to themselves. Unknown tokens return KeyNull and ErrUnknownToken.
func ParseKey(token string) (Key, error) {
	if _, ok := keyNames[Key(token)]; ok {
		return Key(token), nil
	}
	if k, ok := keyAliases[strings.ToLower(token)]; ok {
		return k, nil
	}
	if _, ok := keyNames[Key(strings.ToLower(token))]; ok && uniseg.GraphemeClusterCount(token) > 1 {
		return Key(strings.ToLower(token)), nil
	}
	if isPrintable(token) {
		return Key(token), nil
	}
	return KeyNull, fmt.Errorf("%w: key %q", ErrUnknownToken, token)
}

// DecodeKey is ParseKey with unknown tokens degraded to KeyNull.
func DecodeKey(token string) Key {
	k, _ := ParseKey(token)
	return k
}

func isPrintable(s string) bool {
	if uniseg.GraphemeClusterCount(s) != 1 {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

// Category reports the key group. Characters are standard.
func (k Key) Category() KeyCategory {
	return keyNames[k]
}

// IsChar reports whether k is a printable character rather than a named
// key.
func (k Key) IsChar() bool {
	if _, named := keyNames[k]; named {
		return false
	}
	return isPrintable(string(k))
}

// KeyModifiers is the set of modifiers held during a key or mouse event.
type KeyModifiers uint8

const (
	KeyModCtrl KeyModifiers = 1 << iota
	KeyModAlt
	KeyModShift
	KeyModSuper
	KeyModHyper
	KeyModMeta

	KeyModNone KeyModifiers = 0
)

var keyModifierNames = []struct {
	name string
	mod  KeyModifiers
}{
	{"ctrl", KeyModCtrl},
	{"alt", KeyModAlt},
	{"shift", KeyModShift},
	{"super", KeyModSuper},
	{"hyper", KeyModHyper},
	{"meta", KeyModMeta},
}

func (m KeyModifiers) Has(o KeyModifiers) bool {
	return m&o == o
}

// Names returns the set modifiers in a stable order.
func (m KeyModifiers) Names() []string {
	var out []string
	for _, n := range keyModifierNames {
		if m&n.mod != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

// ParseKeyModifiers folds modifier names into a set. "control" is accepted
// for ctrl. Unknown names are ignored.
func ParseKeyModifiers(names []string) KeyModifiers {
	var m KeyModifiers
	for _, name := range names {
		name = strings.ToLower(name)
		if name == "control" {
			name = "ctrl"
		}
		for _, n := range keyModifierNames {
			if n.name == name {
				m |= n.mod
			}
		}
	}
	return m
}
