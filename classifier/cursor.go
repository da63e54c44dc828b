package classifier

// Cursor is a bounds checked reader over a packet view.
// Every read checks offset+size against the effective end before touching
// the view; a failed check is the "insufficient data" signal.
type Cursor struct {
	view   []byte
	offset int
	end    int
}

// NewCursor returns a cursor at offset whose end is the end of the view.
// An offset outside the view is clamped.
func NewCursor(view []byte, offset int) Cursor {
	if offset < 0 {
		offset = 0
	}
	if offset > len(view) {
		offset = len(view)
	}
	return Cursor{view: view, offset: offset, end: len(view)}
}

// Limit returns a copy of the cursor that cannot read more than n bytes
// past its current offset. The end never extends past the view.
func (c Cursor) Limit(n int) Cursor {
	if n < 0 {
		n = 0
	}
	end := len(c.view)
	if n < end-c.offset {
		end = c.offset + n
	}
	if end < c.offset {
		end = c.offset
	}
	c.end = end
	return c
}

func (c *Cursor) Offset() int {
	return c.offset
}

func (c *Cursor) End() int {
	return c.end
}

// Remaining returns the number of readable bytes, zero when the offset
// has passed the end.
func (c *Cursor) Remaining() int {
	if c.offset >= c.end {
		return 0
	}
	return c.end - c.offset
}

func (c *Cursor) AtEnd() bool {
	return c.offset >= c.end
}

func (c *Cursor) fits(size int) bool {
	return size >= 0 && c.offset <= c.end && size <= c.end-c.offset
}

// Peek returns the next size bytes without consuming them.
func (c *Cursor) Peek(size int) ([]byte, bool) {
	if !c.fits(size) {
		return nil, false
	}
	return c.view[c.offset : c.offset+size], true
}

// Read returns the next size bytes and advances past them.
func (c *Cursor) Read(size int) ([]byte, bool) {
	b, ok := c.Peek(size)
	if ok {
		c.offset += size
	}
	return b, ok
}

func (c *Cursor) PeekByte() (byte, bool) {
	if !c.fits(1) {
		return 0, false
	}
	return c.view[c.offset], true
}

func (c *Cursor) NextByte() (byte, bool) {
	b, ok := c.PeekByte()
	if ok {
		c.offset++
	}
	return b, ok
}

// Advance moves the offset forward by n without checking the end.
// The offset stays within [0, len(view)+1] so later reads keep failing
// closed instead of wrapping around.
func (c *Cursor) Advance(n int) {
	if n <= 0 {
		return
	}
	limit := len(c.view) + 1
	if n > limit-c.offset {
		c.offset = limit
		return
	}
	c.offset += n
}
