package termbridge

import (
	"math"
	"sync"
	"sync/atomic"
)

// borrowFlag guards a state object for the duration of one render call.
type borrowFlag struct {
	inUse atomic.Bool
}

func (b *borrowFlag) acquire() error {
	if !b.inUse.CompareAndSwap(false, true) {
		return ErrStateBorrowed
	}
	return nil
}

func (b *borrowFlag) release() {
	b.inUse.Store(false)
}

// selection is a row selection plus scroll offset. A nil-able index is
// modeled with has.
type selection struct {
	index  int
	has    bool
	offset int
}

func (s *selection) next() {
	if !s.has {
		s.index, s.has = 0, true
		return
	}
	if s.index < math.MaxInt {
		s.index++
	}
}

func (s *selection) previous() {
	if !s.has {
		s.index, s.has = math.MaxInt, true
		return
	}
	s.index = max(s.index-1, 0)
}

func (s *selection) scrollDown(n int) {
	i := 0
	if s.has {
		i = s.index
	}
	s.index, s.has = i+n, true
}

func (s *selection) scrollUp(n int) {
	i := 0
	if s.has {
		i = s.index
	}
	s.index, s.has = max(i-n, 0), true
}

// ListState is the selection and scroll offset of a list, kept by the host
// across frames. Out of range selections are clamped at render time.
type ListState struct {
	mu     sync.Mutex
	borrow borrowFlag
	sel    selection
}

// NewListState returns a state with nothing selected.
func NewListState() *ListState {
	return &ListState{}
}

// Select selects item i. A negative i clears the selection.
func (s *ListState) Select(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 {
		s.sel.has = false
		s.sel.offset = 0
		return
	}
	s.sel.index, s.sel.has = i, true
}

// SelectNone clears the selection and resets the offset.
func (s *ListState) SelectNone() {
	s.Select(-1)
}

// Selected returns the selected index.
func (s *ListState) Selected() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.index, s.sel.has
}

// Offset returns the index of the first visible item.
func (s *ListState) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.offset
}

// SetOffset sets the index of the first visible item.
func (s *ListState) SetOffset(offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.offset = max(offset, 0)
}

func (s *ListState) update(fn func(*selection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.sel)
}

// SelectNext selects the next item, or the first when nothing is selected.
func (s *ListState) SelectNext() { s.update((*selection).next) }

// SelectPrevious selects the previous item, or the last when nothing is
// selected.
func (s *ListState) SelectPrevious() { s.update((*selection).previous) }

// SelectFirst selects the first item.
func (s *ListState) SelectFirst() { s.Select(0) }

// SelectLast selects the last item once the list is rendered.
func (s *ListState) SelectLast() { s.Select(math.MaxInt) }

// ScrollDownBy moves the selection down by n items.
func (s *ListState) ScrollDownBy(n int) {
	s.update(func(sel *selection) { sel.scrollDown(n) })
}

// ScrollUpBy moves the selection up by n items.
func (s *ListState) ScrollUpBy(n int) {
	s.update(func(sel *selection) { sel.scrollUp(n) })
}

// borrowed runs fn with exclusive access to the selection.
func (s *ListState) borrowed(fn func(*selection) error) error {
	if err := s.borrow.acquire(); err != nil {
		return err
	}
	defer s.borrow.release()
	s.mu.Lock()
	sel := s.sel
	s.mu.Unlock()
	err := fn(&sel)
	s.mu.Lock()
	s.sel = sel
	s.mu.Unlock()
	return err
}

// TableState is the row and column selection and scroll offset of a table.
type TableState struct {
	mu     sync.Mutex
	borrow borrowFlag
	sel    selection
	column int
	hasCol bool
}

// NewTableState returns a state with nothing selected.
func NewTableState() *TableState {
	return &TableState{}
}

// Select selects row i. A negative i clears the row selection.
func (s *TableState) Select(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 {
		s.sel.has = false
		s.sel.offset = 0
		return
	}
	s.sel.index, s.sel.has = i, true
}

// Selected returns the selected row.
func (s *TableState) Selected() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.index, s.sel.has
}

// SelectColumn selects column i. A negative i clears the column selection.
func (s *TableState) SelectColumn(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.column, s.hasCol = max(i, 0), i >= 0
}

// SelectedColumn returns the selected column.
func (s *TableState) SelectedColumn() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.column, s.hasCol
}

// Offset returns the index of the first visible row.
func (s *TableState) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.offset
}

// SetOffset sets the index of the first visible row.
func (s *TableState) SetOffset(offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.offset = max(offset, 0)
}

func (s *TableState) update(fn func(*selection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.sel)
}

// SelectNext selects the next row.
func (s *TableState) SelectNext() { s.update((*selection).next) }

// SelectPrevious selects the previous row.
func (s *TableState) SelectPrevious() { s.update((*selection).previous) }

// SelectFirst selects the first row.
func (s *TableState) SelectFirst() { s.Select(0) }

// SelectLast selects the last row once the table is rendered.
func (s *TableState) SelectLast() { s.Select(math.MaxInt) }

// SelectNextColumn selects the next column.
func (s *TableState) SelectNextColumn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCol {
		s.column, s.hasCol = 0, true
		return
	}
	s.column++
}

// SelectPreviousColumn selects the previous column.
func (s *TableState) SelectPreviousColumn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCol {
		s.column, s.hasCol = math.MaxInt, true
		return
	}
	s.column = max(s.column-1, 0)
}

type tableSelection struct {
	selection
	column int
	hasCol bool
}

func (s *TableState) borrowed(fn func(*tableSelection) error) error {
	if err := s.borrow.acquire(); err != nil {
		return err
	}
	defer s.borrow.release()
	s.mu.Lock()
	ts := tableSelection{selection: s.sel, column: s.column, hasCol: s.hasCol}
	s.mu.Unlock()
	err := fn(&ts)
	s.mu.Lock()
	s.sel, s.column, s.hasCol = ts.selection, ts.column, ts.hasCol
	s.mu.Unlock()
	return err
}

// ScrollbarState is the content length and position a scrollbar displays.
type ScrollbarState struct {
	mu                    sync.Mutex
	borrow                borrowFlag
	contentLength         int
	position              int
	viewportContentLength int
}

// NewScrollbarState returns a state for content of the given length.
func NewScrollbarState(contentLength int) *ScrollbarState {
	return &ScrollbarState{contentLength: max(contentLength, 0)}
}

// SetContentLength sets the number of scrollable positions.
func (s *ScrollbarState) SetContentLength(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentLength = max(n, 0)
}

// ContentLength returns the number of scrollable positions.
func (s *ScrollbarState) ContentLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentLength
}

// SetPosition sets the current position.
func (s *ScrollbarState) SetPosition(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = max(p, 0)
}

// Position returns the current position.
func (s *ScrollbarState) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// SetViewportContentLength sets the length of the visible part of the
// content. Zero means the scrollbar's own track length.
func (s *ScrollbarState) SetViewportContentLength(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewportContentLength = max(n, 0)
}

// Next moves one position forward, stopping at the end.
func (s *ScrollbarState) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = min(s.position+1, max(s.contentLength-1, 0))
}

// Prev moves one position back.
func (s *ScrollbarState) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = max(s.position-1, 0)
}

// First moves to the first position.
func (s *ScrollbarState) First() {
	s.SetPosition(0)
}

// Last moves to the last position.
func (s *ScrollbarState) Last() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = max(s.contentLength-1, 0)
}

type scrollbarValues struct {
	contentLength, position, viewport int
}

func (s *ScrollbarState) borrowed(fn func(scrollbarValues) error) error {
	if err := s.borrow.acquire(); err != nil {
		return err
	}
	defer s.borrow.release()
	s.mu.Lock()
	v := scrollbarValues{s.contentLength, s.position, s.viewportContentLength}
	s.mu.Unlock()
	return fn(v)
}
