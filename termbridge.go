// Package termbridge turns declarative widget trees into terminal draw
// operations and terminal input into a canonical event model.
//
// A host builds a tree of Nodes (paragraphs, lists, tables, charts, layouts
// and so on), hands it to Terminal.DrawTree or renders pieces of it from a
// Terminal.Draw callback, and reads input back with Terminal.PollEvent.
// Events can be injected for deterministic tests with InjectTestEvent.
package termbridge

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

var (
	// ErrFrameInvalid is returned when a Frame is used after its draw
	// callback has returned.
	ErrFrameInvalid = errors.New("frame is no longer valid outside its draw callback")

	// ErrStateBorrowed is returned when a widget state is already held by
	// another render call.
	ErrStateBorrowed = errors.New("widget state is already borrowed by a render call")

	ErrUnknownCommand     = errors.New("unknown draw command")
	ErrUnknownToken       = errors.New("unknown style token")
	ErrConstraintMismatch = errors.New("constraint count does not match child count")
	ErrMissingField       = errors.New("missing required field")
	ErrUnknownEventKind   = errors.New("unknown event kind")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnknownKind        = errors.New("unknown node kind")

	// ErrTerminalInUse is returned by Open while another live Terminal
	// holds the device.
	ErrTerminalInUse = errors.New("terminal device already in use")
)

// TerminalError is the single error kind for terminal level failures such
// as entering raw mode or flushing to the device.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

// invalidf builds an ErrInvalidArgument with context.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Options configures a Terminal.
type Options struct {
	// Logger receives render diagnostics. Nil discards them.
	Logger *slog.Logger

	// StrictStyles makes unknown color and modifier tokens an error
	// instead of being dropped.
	StrictStyles bool

	// StrictLayout makes a constraint/child count mismatch an error
	// instead of falling back to an even percentage split.
	StrictLayout bool

	// Theme resolves string style descriptors. Nil means ThemeDark.
	Theme *Theme

	// Live backend toggles.
	Mouse          bool
	BracketedPaste bool
	FocusEvents    bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
