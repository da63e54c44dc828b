package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorRead(t *testing.T) {
	view := []byte{1, 2, 3, 4, 5}
	c := NewCursor(view, 1)

	b, ok := c.Read(2)
	assert.True(t, ok)
	assert.Equal(t, []byte{2, 3}, b)
	assert.Equal(t, 3, c.Offset())
	assert.Equal(t, 2, c.Remaining())

	_, ok = c.Read(3)
	assert.False(t, ok, "read past the end")
	assert.Equal(t, 3, c.Offset(), "a failed read does not move the cursor")

	v, ok := c.PeekByte()
	assert.True(t, ok)
	assert.Equal(t, byte(4), v)

	b, ok = c.Read(2)
	assert.True(t, ok)
	assert.Equal(t, []byte{4, 5}, b)
	assert.True(t, c.AtEnd())

	_, ok = c.NextByte()
	assert.False(t, ok)
	_, ok = c.Peek(0)
	assert.True(t, ok)
	_, ok = c.Peek(-1)
	assert.False(t, ok)
}

func TestCursorAdvanceClamp(t *testing.T) {
	view := []byte{1, 2, 3}
	c := NewCursor(view, 0)
	c.Advance(1 << 24)
	assert.Equal(t, len(view)+1, c.Offset())
	assert.True(t, c.AtEnd())
	assert.Equal(t, 0, c.Remaining())

	_, ok := c.Peek(0)
	assert.False(t, ok, "the offset is past the end")
	_, ok = c.NextByte()
	assert.False(t, ok)

	c.Advance(-5)
	assert.Equal(t, len(view)+1, c.Offset())
}

func TestCursorLimit(t *testing.T) {
	view := []byte{1, 2, 3, 4, 5, 6}
	c := NewCursor(view, 2)

	l := c.Limit(2)
	assert.Equal(t, 4, l.End())
	_, ok := l.Read(3)
	assert.False(t, ok)
	b, ok := l.Read(2)
	assert.True(t, ok)
	assert.Equal(t, []byte{3, 4}, b)
	assert.Equal(t, 2, c.Offset(), "Limit returns a copy")

	l = c.Limit(100)
	assert.Equal(t, len(view), l.End(), "the end never passes the view")

	l = c.Limit(-1)
	assert.Equal(t, 2, l.End())
	assert.True(t, l.AtEnd())
}

func TestNewCursorClamp(t *testing.T) {
	view := []byte{1, 2, 3}
	c := NewCursor(view, -4)
	assert.Equal(t, 0, c.Offset())
	c = NewCursor(view, 10)
	assert.Equal(t, 3, c.Offset())
	assert.True(t, c.AtEnd())
}
