package classifier

import (
	"encoding/binary"

	"golang.org/x/net/http2"
)

// FrameHeader is the fixed 9 byte header in front of every HTTP/2 frame.
type FrameHeader struct {
	Length   uint32
	Type     http2.FrameType
	Flags    http2.Flags
	StreamID uint32
}

func (fh FrameHeader) IsHeaders() bool {
	return fh.Type == http2.FrameHeaders
}

// RecordedFrame is the payload window of one HEADERS frame inside the view.
type RecordedFrame struct {
	Offset int
	Length int
}

// ReadFrameHeader decodes a frame header at the cursor and advances past it.
// It fails when fewer than FrameHeaderSize bytes remain, and also on an
// all-zero header or an unknown frame type, neither of which can start a
// real frame.
func ReadFrameHeader(c *Cursor) (FrameHeader, bool) {
	var fh FrameHeader
	buf, ok := c.Peek(FrameHeaderSize)
	if !ok {
		return fh, false
	}

	// Length(24) Type(8) Flags(8) R(1) Stream Identifier(31)
	fh.Length = uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])
	fh.Type = http2.FrameType(buf[3])
	fh.Flags = http2.Flags(buf[4])
	fh.StreamID = binary.BigEndian.Uint32(buf[5:]) & (1<<31 - 1)

	if isEmptyFrameHeader(buf) || fh.Type > http2.FrameContinuation {
		return fh, false
	}
	c.Advance(FrameHeaderSize)
	return fh, true
}

func isEmptyFrameHeader(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}

// SkipPreface advances the cursor past the client connection preface when
// the bytes at the cursor are exactly the preface.
func SkipPreface(c *Cursor) bool {
	buf, ok := c.Peek(ConnectionPrefaceSize)
	if !ok || string(buf) != ConnectionPreface {
		return false
	}
	c.Advance(ConnectionPrefaceSize)
	return true
}

// headerBlockWindow narrows a HEADERS frame payload to its header block
// fragment, dropping the pad length, the priority fields and the padding.
// c is positioned right after the frame header. When the prefix is not
// visible the full payload window is returned.
func headerBlockWindow(c Cursor, fh FrameHeader) RecordedFrame {
	rf := RecordedFrame{Offset: c.Offset(), Length: int(fh.Length)}

	start := 0
	padLength := 0
	if fh.Flags.Has(http2.FlagHeadersPadded) {
		b, ok := c.NextByte()
		if !ok {
			return rf
		}
		padLength = int(b)
		start++
	}
	if fh.Flags.Has(http2.FlagHeadersPriority) {
		start += 5
	}
	if start+padLength > rf.Length {
		return rf
	}
	rf.Offset += start
	rf.Length -= start + padLength
	return rf
}
