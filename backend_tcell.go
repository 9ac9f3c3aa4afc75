package termbridge

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// TcellBackend draws to a real terminal through tcell and pumps its input
// into canonical events.
type TcellBackend struct {
	screen tcell.Screen
	front  *Buffer // what the device currently shows

	in       chan rawEvent
	quit     chan struct{}
	resized  atomic.Bool
	stopOnce sync.Once

	// pump goroutine only
	prevButtons tcell.ButtonMask
	pasting     bool
	paste       strings.Builder
}

// NewTcellBackend opens the controlling terminal.
func NewTcellBackend(opts Options) (*TcellBackend, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, &TerminalError{Op: "open", Err: err}
	}
	return NewTcellBackendWithScreen(s, opts)
}

// NewTcellBackendWithScreen initializes s and starts reading its input.
// Tests pass a tcell simulation screen.
func NewTcellBackendWithScreen(s tcell.Screen, opts Options) (*TcellBackend, error) {
	if err := s.Init(); err != nil {
		return nil, &TerminalError{Op: "init", Err: err}
	}
	if opts.Mouse {
		s.EnableMouse()
	}
	if opts.BracketedPaste {
		s.EnablePaste()
	}
	if opts.FocusEvents {
		s.EnableFocus()
	}
	s.HideCursor()
	s.Clear()
	b := &TcellBackend{
		screen: s,
		in:     make(chan rawEvent, 64),
		quit:   make(chan struct{}),
	}
	go b.pump()
	return b, nil
}

func (b *TcellBackend) Size() (int, int) {
	return b.screen.Size()
}

// Flush writes the cells that changed since the previous frame. A resize
// forces a full redraw.
func (b *TcellBackend) Flush(buf *Buffer, cursor *Position) error {
	if b.resized.Swap(false) || b.front == nil ||
		b.front.Width() != buf.Width() || b.front.Height() != buf.Height() {
		b.screen.Clear()
		b.front = NewBuffer(buf.Width(), buf.Height())
		b.front.Fill(b.front.Area(), Cell{})
	}
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			cell := buf.Get(x, y)
			if cell == b.front.Get(x, y) {
				continue
			}
			b.front.Set(x, y, cell)
			// trailing half of a wide grapheme
			if cell.Symbol == "" {
				continue
			}
			runes := []rune(cell.Symbol)
			b.screen.SetContent(x, y, runes[0], runes[1:], tcellStyle(cell.Style))
		}
	}
	if cursor != nil {
		b.screen.ShowCursor(cursor.X, cursor.Y)
	} else {
		b.screen.HideCursor()
	}
	b.screen.Show()
	return nil
}

// Close restores the terminal and stops the input pump.
func (b *TcellBackend) Close() error {
	b.stopOnce.Do(func() {
		close(b.quit)
		b.screen.Fini()
	})
	return nil
}

func (b *TcellBackend) events() <-chan rawEvent {
	return b.in
}

func (b *TcellBackend) pump() {
	defer close(b.in)
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		raw, ok := b.translate(ev)
		if !ok {
			continue
		}
		select {
		case b.in <- raw:
		case <-b.quit:
			return
		}
	}
}

func (b *TcellBackend) translate(ev tcell.Event) (rawEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if b.pasting {
			switch ev.Key() {
			case tcell.KeyRune:
				b.paste.WriteRune(ev.Rune())
			case tcell.KeyEnter:
				b.paste.WriteByte('\n')
			case tcell.KeyTab:
				b.paste.WriteByte('\t')
			}
			return rawEvent{}, false
		}
		return rawEvent{event: keyFromTcell(ev)}, true
	case *tcell.EventMouse:
		return rawEvent{event: b.mouseFromTcell(ev)}, true
	case *tcell.EventResize:
		b.resized.Store(true)
		w, h := ev.Size()
		return rawEvent{event: ResizeEvent{Width: w, Height: h}}, true
	case *tcell.EventPaste:
		if ev.Start() {
			b.pasting = true
			b.paste.Reset()
			return rawEvent{}, false
		}
		b.pasting = false
		return rawEvent{event: PasteEvent{Content: b.paste.String()}}, true
	case *tcell.EventFocus:
		if ev.Focused {
			return rawEvent{event: FocusGainedEvent{}}, true
		}
		return rawEvent{event: FocusLostEvent{}}, true
	}
	return rawEvent{}, false
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyEscape:     KeyEsc,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBackTab,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyPrint:      KeyPrintScreen,
	tcell.KeyPause:      KeyPause,
	tcell.KeyCenter:     KeyKeypadBegin,
}

func modsFromTcell(m tcell.ModMask) KeyModifiers {
	var out KeyModifiers
	if m&tcell.ModCtrl != 0 {
		out |= KeyModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= KeyModAlt
	}
	if m&tcell.ModShift != 0 {
		out |= KeyModShift
	}
	if m&tcell.ModMeta != 0 {
		out |= KeyModMeta
	}
	return out
}

func keyFromTcell(ev *tcell.EventKey) KeyEvent {
	mods := modsFromTcell(ev.Modifiers())
	k := ev.Key()
	if k == tcell.KeyRune {
		return KeyEvent{Code: Key(string(ev.Rune())), Modifiers: mods}
	}
	if code, ok := tcellKeys[k]; ok {
		return KeyEvent{Code: code, Modifiers: mods}
	}
	switch {
	case k >= tcell.KeyF1 && k <= tcell.KeyF1+maxFunctionKey-1:
		return KeyEvent{Code: FunctionKey(int(k-tcell.KeyF1) + 1), Modifiers: mods}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return KeyEvent{Code: Key(string(rune('a' + k - tcell.KeyCtrlA))), Modifiers: mods | KeyModCtrl}
	case k == tcell.KeyCtrlSpace:
		return KeyEvent{Code: " ", Modifiers: mods | KeyModCtrl}
	}
	return KeyEvent{Code: KeyNull, Modifiers: mods}
}

const tcellButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

func buttonFromTcell(m tcell.ButtonMask) MouseButton {
	switch {
	case m&tcell.Button1 != 0:
		return ButtonLeft
	case m&tcell.Button2 != 0:
		return ButtonRight
	case m&tcell.Button3 != 0:
		return ButtonMiddle
	}
	return ButtonNone
}

// mouseFromTcell derives down/up/drag from the change in held buttons,
// since tcell reports button state rather than transitions.
func (b *TcellBackend) mouseFromTcell(ev *tcell.EventMouse) MouseEvent {
	x, y := ev.Position()
	out := MouseEvent{X: x, Y: y, Modifiers: modsFromTcell(ev.Modifiers())}
	btns := ev.Buttons()
	switch {
	case btns&tcell.WheelUp != 0:
		out.Kind = MouseScrollUp
		return out
	case btns&tcell.WheelDown != 0:
		out.Kind = MouseScrollDown
		return out
	case btns&tcell.WheelLeft != 0:
		out.Kind = MouseScrollLeft
		return out
	case btns&tcell.WheelRight != 0:
		out.Kind = MouseScrollRight
		return out
	}
	pressed := btns & tcellButtons
	switch {
	case pressed != 0 && b.prevButtons == 0:
		out.Kind, out.Button = MouseDown, buttonFromTcell(pressed)
	case pressed != 0:
		out.Kind, out.Button = MouseDrag, buttonFromTcell(pressed)
	case b.prevButtons != 0:
		out.Kind, out.Button = MouseUp, buttonFromTcell(b.prevButtons)
	default:
		out.Kind = MouseMoved
	}
	b.prevButtons = pressed
	return out
}

func tcellColor(c Color) tcell.Color {
	switch c.Mode {
	case ColorReset:
		return tcell.ColorReset
	case Color16, Color256:
		return tcell.PaletteColor(int(c.Index))
	case ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.ColorDefault
}

// tcellStyle converts a cell style. tcell has no hidden attribute, so
// ModHidden is dropped.
func tcellStyle(s Style) tcell.Style {
	m := s.Mod
	return tcell.StyleDefault.
		Foreground(tcellColor(s.FG)).
		Background(tcellColor(s.BG)).
		Bold(m.Has(ModBold)).
		Dim(m.Has(ModDim)).
		Italic(m.Has(ModItalic)).
		Underline(m.Has(ModUnderlined)).
		Blink(m.Has(ModSlowBlink) || m.Has(ModRapidBlink)).
		Reverse(m.Has(ModReversed)).
		StrikeThrough(m.Has(ModCrossedOut))
}
