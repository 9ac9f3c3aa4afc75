package main

import "termbridge"

// stateSet holds the widget states named in a tree so key presses can
// drive them between frames.
type stateSet struct {
	lists      map[string]*termbridge.ListState
	tables     map[string]*termbridge.TableState
	scrollbars map[string]*termbridge.ScrollbarState
}

func newStateSet() *stateSet {
	return &stateSet{
		lists:      make(map[string]*termbridge.ListState),
		tables:     make(map[string]*termbridge.TableState),
		scrollbars: make(map[string]*termbridge.ScrollbarState),
	}
}

// bind creates or reuses the state named name for a node of kind. New
// lists and tables start with the first row selected.
func (s *stateSet) bind(name string, kind termbridge.Kind) any {
	switch kind {
	case termbridge.KindList:
		st, ok := s.lists[name]
		if !ok {
			st = termbridge.NewListState()
			st.Select(0)
			s.lists[name] = st
		}
		return st
	case termbridge.KindTable:
		st, ok := s.tables[name]
		if !ok {
			st = termbridge.NewTableState()
			st.Select(0)
			s.tables[name] = st
		}
		return st
	case termbridge.KindScrollbar:
		st, ok := s.scrollbars[name]
		if !ok {
			st = termbridge.NewScrollbarState(0)
			s.scrollbars[name] = st
		}
		return st
	}
	return nil
}

// handle applies navigation keys to every state. It reports whether
// anything changed.
func (s *stateSet) handle(ev termbridge.KeyEvent) bool {
	switch ev.Code {
	case termbridge.KeyDown, "j":
		for _, st := range s.lists {
			st.SelectNext()
		}
		for _, st := range s.tables {
			st.SelectNext()
		}
		for _, st := range s.scrollbars {
			st.Next()
		}
	case termbridge.KeyUp, "k":
		for _, st := range s.lists {
			st.SelectPrevious()
		}
		for _, st := range s.tables {
			st.SelectPrevious()
		}
		for _, st := range s.scrollbars {
			st.Prev()
		}
	case termbridge.KeyHome:
		for _, st := range s.lists {
			st.SelectFirst()
		}
		for _, st := range s.tables {
			st.SelectFirst()
		}
		for _, st := range s.scrollbars {
			st.First()
		}
	case termbridge.KeyEnd:
		for _, st := range s.lists {
			st.SelectLast()
		}
		for _, st := range s.tables {
			st.SelectLast()
		}
		for _, st := range s.scrollbars {
			st.Last()
		}
	case termbridge.KeyRight, "l":
		for _, st := range s.tables {
			st.SelectNextColumn()
		}
	case termbridge.KeyLeft, "h":
		for _, st := range s.tables {
			st.SelectPreviousColumn()
		}
	default:
		return false
	}
	return true
}
