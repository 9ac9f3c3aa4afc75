package termbridge

import (
	"fmt"
	"strings"
)

// Event is one canonical input event: KeyEvent, MouseEvent, ResizeEvent,
// PasteEvent, FocusGainedEvent or FocusLostEvent.
type Event interface {
	fmt.Stringer
	isEvent()
}

// KeyEvent is a key press.
type KeyEvent struct {
	Code      Key
	Modifiers KeyModifiers
}

// Category reports the key group of the code.
func (e KeyEvent) Category() KeyCategory { return e.Code.Category() }

// IsChar reports whether the key is a printable character.
func (e KeyEvent) IsChar() bool { return e.Code.IsChar() }

// Char returns the character typed, or "" for named keys.
func (e KeyEvent) Char() string {
	if e.IsChar() {
		return string(e.Code)
	}
	return ""
}

func (e KeyEvent) String() string {
	parts := append(e.Modifiers.Names(), string(e.Code))
	return "key " + strings.Join(parts, "+")
}

// MouseKind is what a mouse event reports.
type MouseKind uint8

const (
	MouseDown MouseKind = iota
	MouseUp
	MouseDrag
	MouseMoved
	MouseScrollDown
	MouseScrollUp
	MouseScrollLeft
	MouseScrollRight
)

var mouseKindNames = [...]string{
	MouseDown:        "down",
	MouseUp:          "up",
	MouseDrag:        "drag",
	MouseMoved:       "moved",
	MouseScrollDown:  "scroll_down",
	MouseScrollUp:    "scroll_up",
	MouseScrollLeft:  "scroll_left",
	MouseScrollRight: "scroll_right",
}

func (k MouseKind) String() string {
	if int(k) < len(mouseKindNames) {
		return mouseKindNames[k]
	}
	return "unknown"
}

// hasButton reports whether events of this kind carry a button.
func (k MouseKind) hasButton() bool {
	return k == MouseDown || k == MouseUp || k == MouseDrag
}

// ParseMouseKind decodes a mouse kind token.
func ParseMouseKind(s string) (MouseKind, error) {
	for i, n := range mouseKindNames {
		if n == s {
			return MouseKind(i), nil
		}
	}
	return 0, invalidf("unknown mouse kind %q", s)
}

// MouseButton identifies a mouse button. ButtonNone is reported for
// kinds without one.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "none"
}

// ParseMouseButton decodes a button token. Unknown tokens are left.
func ParseMouseButton(s string) MouseButton {
	switch s {
	case "right":
		return ButtonRight
	case "middle":
		return ButtonMiddle
	case "none":
		return ButtonNone
	}
	return ButtonLeft
}

// MouseEvent is a mouse action at a cell.
type MouseEvent struct {
	Kind      MouseKind
	Button    MouseButton
	X, Y      int
	Modifiers KeyModifiers
}

func (e MouseEvent) String() string {
	s := fmt.Sprintf("mouse %s %s %d,%d", e.Kind, e.Button, e.X, e.Y)
	if names := e.Modifiers.Names(); len(names) > 0 {
		s += " " + strings.Join(names, "+")
	}
	return s
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width, Height int
}

func (e ResizeEvent) String() string { return fmt.Sprintf("resize %dx%d", e.Width, e.Height) }

// PasteEvent carries bracketed paste text.
type PasteEvent struct {
	Content string
}

func (e PasteEvent) String() string { return fmt.Sprintf("paste %q", e.Content) }

// FocusGainedEvent reports the terminal gaining focus.
type FocusGainedEvent struct{}

func (FocusGainedEvent) String() string { return "focus_gained" }

// FocusLostEvent reports the terminal losing focus.
type FocusLostEvent struct{}

func (FocusLostEvent) String() string { return "focus_lost" }

func (KeyEvent) isEvent()         {}
func (MouseEvent) isEvent()       {}
func (ResizeEvent) isEvent()      {}
func (PasteEvent) isEvent()       {}
func (FocusGainedEvent) isEvent() {}
func (FocusLostEvent) isEvent()   {}

// KeyAction distinguishes presses from repeats and releases on terminals
// that report them.
type KeyAction uint8

const (
	KeyPress KeyAction = iota
	KeyRepeat
	KeyRelease
)

// rawEvent is an event as it arrives from a source, before translation.
type rawEvent struct {
	event  Event
	action KeyAction
}

// translate turns a raw event into its canonical form. Key repeats and
// releases are swallowed. Mouse kinds without a button report ButtonNone.
func translate(raw rawEvent) (Event, bool) {
	switch ev := raw.event.(type) {
	case nil:
		return nil, false
	case KeyEvent:
		if raw.action != KeyPress {
			return nil, false
		}
		return ev, true
	case MouseEvent:
		if !ev.Kind.hasButton() {
			ev.Button = ButtonNone
		} else if ev.Button == ButtonNone {
			ev.Button = ButtonLeft
		}
		return ev, true
	}
	return raw.event, true
}
