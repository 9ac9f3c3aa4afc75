package termbridge

import "fmt"

// CommandKind tags a DrawCommand.
type CommandKind uint8

const (
	CmdWriteString CommandKind = iota + 1
	CmdWriteCell
)

// DrawCommand is a primitive buffer write issued by a custom node.
// Coordinates are absolute buffer cells.
type DrawCommand struct {
	Kind   CommandKind
	X, Y   int
	Text   string // WriteString
	Symbol string // WriteCell
	Style  Style
}

// WriteString writes a run of text starting at (x, y).
func WriteString(x, y int, text string, style Style) DrawCommand {
	return DrawCommand{Kind: CmdWriteString, X: x, Y: y, Text: text, Style: style}
}

// WriteCell writes a single cell at (x, y).
func WriteCell(x, y int, symbol string, style Style) DrawCommand {
	return DrawCommand{Kind: CmdWriteCell, X: x, Y: y, Symbol: symbol, Style: style}
}

// Apply executes the command against buf. Writes outside the buffer are
// dropped. An unknown kind is an error.
func (c DrawCommand) Apply(buf *Buffer) error {
	switch c.Kind {
	case CmdWriteString:
		if c.X >= 0 {
			buf.WriteString(c.X, c.Y, c.Text, c.Style)
		}
	case CmdWriteCell:
		if buf.InBounds(c.X, c.Y) {
			buf.Set(c.X, c.Y, NewCell(c.Symbol, c.Style))
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrUnknownCommand, c.Kind)
	}
	return nil
}

func (p *renderPass) renderCustom(area Rect, node CustomRenderer) error {
	cmds, err := node.RenderCommands(area)
	if err != nil {
		return err
	}
	for i, c := range cmds {
		if err := c.Apply(p.buf); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}
