package classifier

import "bytes"

var contentTypeSignature = []byte(ContentTypeSignature)

// ScanHeaders looks through the header fields of one recorded frame for a
// content-type or a :method GET field. c must be positioned at the start
// of the frame's header block; frameLength is clamped to the view.
func ScanHeaders(c *Cursor, frameLength int) Verdict {
	return scanHeaders(c, frameLength, nil)
}

func scanHeaders(cur *Cursor, frameLength int, r Reporter) Verdict {
	c := cur.Limit(frameLength)
	defer func() { cur.offset = c.offset }()

	skipTableSizeUpdates(&c, r)

	for i := 0; i < MaxHeadersToProcess; i++ {
		if c.AtEnd() {
			return Undetermined
		}

		raw, ok := c.NextByte()
		if !ok {
			return Undetermined
		}
		field := DecodeFieldIndex(raw)
		index, ok := readIntegerTail(&c, field.Index, field.PrefixMax())
		if !ok {
			return Undetermined
		}

		switch {
		case field.IsLiteral():
			// A literal :method is a method other than the two the
			// static table holds; gRPC only ever sends POST.
			if index == MethodGetIndex {
				return NotGRPC
			}
			if index == ContentTypeIndex {
				return matchContentType(&c, r)
			}
			skipLiteral(&c, index, r)
		case field.IsIndexed():
			if index == MethodGetIndex {
				return NotGRPC
			}
		}
	}

	if !c.AtEnd() {
		report(r, SiteHeaderLimit, ErrLimitReached)
	}
	return Undetermined
}

// skipTableSizeUpdates consumes the dynamic table size updates that may
// open a header block, continuation bytes included.
func skipTableSizeUpdates(c *Cursor, r Reporter) {
	inUpdate := false
	for i := 0; i < MaxTableSizeUpdateSkip; i++ {
		b, ok := c.PeekByte()
		if !ok {
			return
		}
		if inUpdate {
			inUpdate = b&0x80 != 0
			c.Advance(1)
			continue
		}
		if !DecodeFieldIndex(b).IsTableSizeUpdate() {
			return
		}
		// a prefix below 31 fits in the first byte
		inUpdate = b&0x1f == 0x1f
		c.Advance(1)
	}
	if b, ok := c.PeekByte(); ok && (inUpdate || DecodeFieldIndex(b).IsTableSizeUpdate()) {
		report(r, SiteTableSizeUpdate, ErrLimitReached)
	}
}

// matchContentType compares the content-type value at the cursor with the
// encoded gRPC content type. Only the first ContentTypeSignatureLen bytes
// are compared, so "application/grpc+proto" matches as well.
func matchContentType(c *Cursor, r Reporter) Verdict {
	sl, ok := readStringLiteral(c)
	if !ok {
		report(r, SiteContentType, ErrInsufficientData)
		return NotGRPC
	}
	if sl.Length < uint32(ContentTypeSignatureLen) {
		return NotGRPC
	}

	value, ok := c.Peek(ContentTypeSignatureLen)
	if !ok {
		report(r, SiteContentType, ErrInsufficientData)
		return NotGRPC
	}
	c.Advance(int(sl.Length))

	if bytes.Equal(value, contentTypeSignature) {
		return GRPC
	}
	return NotGRPC
}

// skipLiteral moves the cursor past the rest of a literal field whose
// index was already read: the name string when the name is not indexed,
// then the value string.
func skipLiteral(c *Cursor, index uint32, r Reporter) {
	count := 1
	if index == 0 {
		count = 2
	}
	for i := 0; i < count; i++ {
		sl, ok := readStringLiteral(c)
		if !ok {
			report(r, SiteLiteralHeader, ErrInsufficientData)
			return
		}
		c.Advance(int(sl.Length))
	}
}
