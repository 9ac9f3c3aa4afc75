package termbridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// EventQueue is a FIFO of synthetic events that take priority over live
// input.
type EventQueue struct {
	mu     sync.Mutex
	events []rawEvent
}

// Push appends an event.
func (q *EventQueue) Push(ev Event) {
	q.push(rawEvent{event: ev})
}

func (q *EventQueue) push(raw rawEvent) {
	q.mu.Lock()
	q.events = append(q.events, raw)
	q.mu.Unlock()
}

func (q *EventQueue) pop() (rawEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return rawEvent{}, false
	}
	raw := q.events[0]
	q.events[0] = rawEvent{}
	q.events = q.events[1:]
	return raw, true
}

// Clear drops every queued event.
func (q *EventQueue) Clear() {
	q.mu.Lock()
	q.events = nil
	q.mu.Unlock()
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// EventSource merges the synthetic queue with an optional live input
// stream. Without a live stream it is in test mode.
type EventSource struct {
	queue *EventQueue
	live  <-chan rawEvent
}

// NewEventSource creates a source in test mode over queue.
func NewEventSource(queue *EventQueue) *EventSource {
	if queue == nil {
		queue = &EventQueue{}
	}
	return &EventSource{queue: queue}
}

// Queue returns the synthetic event queue.
func (s *EventSource) Queue() *EventQueue {
	return s.queue
}

// Live reports whether the source reads a live terminal.
func (s *EventSource) Live() bool {
	return s.live != nil
}

// Poll returns the next event. Queued events are returned first without
// waiting. In test mode an empty queue returns nil immediately. Otherwise
// Poll blocks on live input until ctx is done, which returns nil with no
// error.
func (s *EventSource) Poll(ctx context.Context) (Event, error) {
	for {
		raw, ok := s.queue.pop()
		if !ok {
			break
		}
		if ev, ok := translate(raw); ok {
			return ev, nil
		}
	}
	if s.live == nil {
		return nil, nil
	}
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, nil
			}
			return nil, ctx.Err()
		case raw, ok := <-s.live:
			if !ok {
				return nil, &TerminalError{Op: "poll", Err: io.EOF}
			}
			if ev, ok := translate(raw); ok {
				return ev, nil
			}
		}
	}
}

// PollTimeout waits at most d for an event and returns nil on expiry.
func (s *EventSource) PollTimeout(d time.Duration) (Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return s.Poll(ctx)
}

// InjectTestEvent queues a synthetic event described by kind and fields:
//
//	key          {code, modifiers, action}
//	mouse        {kind, button, x, y, modifiers}
//	paste        {content}
//	resize       {width, height}
//	focus_gained
//	focus_lost
func (s *EventSource) InjectTestEvent(kind string, fields map[string]any) error {
	raw, err := parseTestEvent(kind, fields)
	if err != nil {
		return err
	}
	s.queue.push(raw)
	return nil
}

type eventFields struct {
	kind   string
	fields map[string]any
}

func (f eventFields) missing(name string) error {
	return fmt.Errorf("%s event: %w: %s", f.kind, ErrMissingField, name)
}

func (f eventFields) str(name string, required bool) (string, bool, error) {
	v, ok := f.fields[name]
	if !ok || v == nil {
		if required {
			return "", false, f.missing(name)
		}
		return "", false, nil
	}
	s, ok := asString(v)
	if !ok {
		return "", false, invalidf("%s event: %s must be a string, got %T", f.kind, name, v)
	}
	return s, true, nil
}

func (f eventFields) int(name string) (int, error) {
	v, ok := f.fields[name]
	if !ok || v == nil {
		return 0, f.missing(name)
	}
	i, ok := asInt(v)
	if !ok {
		return 0, invalidf("%s event: %s must be an integer, got %T", f.kind, name, v)
	}
	return i, nil
}

func (f eventFields) modifiers() (KeyModifiers, error) {
	v, ok := f.fields["modifiers"]
	if !ok || v == nil {
		return KeyModNone, nil
	}
	list, ok := asList(v)
	if !ok {
		return KeyModNone, invalidf("%s event: modifiers must be an array, got %T", f.kind, v)
	}
	names := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := asString(item)
		if !ok {
			return KeyModNone, invalidf("%s event: modifier must be a string, got %T", f.kind, item)
		}
		names = append(names, s)
	}
	return ParseKeyModifiers(names), nil
}

func parseTestEvent(kind string, fields map[string]any) (rawEvent, error) {
	f := eventFields{kind: kind, fields: fields}
	switch kind {
	case "key":
		code, _, err := f.str("code", true)
		if err != nil {
			return rawEvent{}, err
		}
		mods, err := f.modifiers()
		if err != nil {
			return rawEvent{}, err
		}
		action := KeyPress
		a, _, err := f.str("action", false)
		if err != nil {
			return rawEvent{}, err
		}
		switch a {
		case "", "press":
		case "repeat":
			action = KeyRepeat
		case "release":
			action = KeyRelease
		default:
			return rawEvent{}, invalidf("key event: unknown action %q", a)
		}
		return rawEvent{event: KeyEvent{Code: DecodeKey(code), Modifiers: mods}, action: action}, nil

	case "mouse":
		k, _, err := f.str("kind", true)
		if err != nil {
			return rawEvent{}, err
		}
		mk, err := ParseMouseKind(k)
		if err != nil {
			return rawEvent{}, err
		}
		b, _, err := f.str("button", false)
		if err != nil {
			return rawEvent{}, err
		}
		x, err := f.int("x")
		if err != nil {
			return rawEvent{}, err
		}
		y, err := f.int("y")
		if err != nil {
			return rawEvent{}, err
		}
		mods, err := f.modifiers()
		if err != nil {
			return rawEvent{}, err
		}
		ev := MouseEvent{Kind: mk, Button: ParseMouseButton(b), X: x, Y: y, Modifiers: mods}
		return rawEvent{event: ev}, nil

	case "paste":
		content, _, err := f.str("content", true)
		if err != nil {
			return rawEvent{}, err
		}
		return rawEvent{event: PasteEvent{Content: content}}, nil

	case "resize":
		w, err := f.int("width")
		if err != nil {
			return rawEvent{}, err
		}
		h, err := f.int("height")
		if err != nil {
			return rawEvent{}, err
		}
		return rawEvent{event: ResizeEvent{Width: w, Height: h}}, nil

	case "focus_gained":
		return rawEvent{event: FocusGainedEvent{}}, nil
	case "focus_lost":
		return rawEvent{event: FocusLostEvent{}}, nil
	}
	return rawEvent{}, fmt.Errorf("%w: %q", ErrUnknownEventKind, kind)
}
