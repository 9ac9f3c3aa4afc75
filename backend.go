package termbridge

// Backend is the device a Terminal draws to.
type Backend interface {
	// Size returns the drawable size in cells.
	Size() (width, height int)
	// Flush presents buf. A nil cursor hides the cursor.
	Flush(buf *Buffer, cursor *Position) error
	// Close releases the device.
	Close() error
}

// inputBackend is a Backend that also produces live input.
type inputBackend interface {
	Backend
	events() <-chan rawEvent
}

// TestBackend is an in-memory backend for tests and snapshots. It keeps
// the last flushed frame.
type TestBackend struct {
	width, height int
	screen        *Buffer
	cursor        *Position
	flushes       int
}

// NewTestBackend creates a backend of the given size.
func NewTestBackend(width, height int) *TestBackend {
	return &TestBackend{
		width:  width,
		height: height,
		screen: NewBuffer(width, height),
	}
}

func (b *TestBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *TestBackend) Flush(buf *Buffer, cursor *Position) error {
	b.screen = buf.Clone()
	b.cursor = nil
	if cursor != nil {
		c := *cursor
		b.cursor = &c
	}
	b.flushes++
	return nil
}

func (b *TestBackend) Close() error {
	return nil
}

// Resize changes the size reported to the next draw.
func (b *TestBackend) Resize(width, height int) {
	b.width, b.height = max(width, 0), max(height, 0)
}

// Screen returns the last flushed frame.
func (b *TestBackend) Screen() *Buffer {
	return b.screen
}

// Cursor returns the cursor of the last flushed frame, or nil when hidden.
func (b *TestBackend) Cursor() *Position {
	return b.cursor
}

// Flushes returns how many frames have been flushed.
func (b *TestBackend) Flushes() int {
	return b.flushes
}
