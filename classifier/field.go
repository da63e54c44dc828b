package classifier

// FieldKind is the representation of one HPACK header field, as told by
// the high bits of its first byte (RFC 7541, section 6).
type FieldKind uint8

const (
	// 1xxxxxxx
	FieldIndexed FieldKind = iota
	// 01xxxxxx
	FieldLiteralIncremental
	// 0000xxxx
	FieldLiteralNoIndex
	// 0001xxxx
	FieldLiteralNeverIndexed
	// 001xxxxx
	FieldTableSizeUpdate
)

var fieldKindStr = map[FieldKind]string{
	FieldIndexed:             "Indexed",
	FieldLiteralIncremental:  "LiteralIncremental",
	FieldLiteralNoIndex:      "LiteralNoIndex",
	FieldLiteralNeverIndexed: "LiteralNeverIndexed",
	FieldTableSizeUpdate:     "TableSizeUpdate",
}

func (k FieldKind) String() string {
	if name, ok := fieldKindStr[k]; ok {
		return name
	}
	return "UNKNOW"
}

// FieldIndex is a decoded field index byte. Index holds the value carried
// by the prefix bits; it equals PrefixMax() when the value continues in
// the following bytes.
type FieldIndex struct {
	Raw        byte
	Kind       FieldKind
	PrefixBits uint8
	Index      uint32
}

// DecodeFieldIndex classifies the first byte of a header field.
func DecodeFieldIndex(raw byte) FieldIndex {
	fi := FieldIndex{Raw: raw}
	switch {
	case raw&0x80 == 0x80:
		fi.Kind, fi.PrefixBits = FieldIndexed, 7
	case raw&0xc0 == 0x40:
		fi.Kind, fi.PrefixBits = FieldLiteralIncremental, 6
	case raw&0xe0 == 0x20:
		fi.Kind, fi.PrefixBits = FieldTableSizeUpdate, 5
	case raw&0xf0 == 0x10:
		fi.Kind, fi.PrefixBits = FieldLiteralNeverIndexed, 4
	default:
		fi.Kind, fi.PrefixBits = FieldLiteralNoIndex, 4
	}
	fi.Index = uint32(raw) & fi.PrefixMax()
	return fi
}

func (fi FieldIndex) PrefixMax() uint32 {
	return 1<<fi.PrefixBits - 1
}

func (fi FieldIndex) IsIndexed() bool {
	return fi.Kind == FieldIndexed
}

func (fi FieldIndex) IsLiteral() bool {
	switch fi.Kind {
	case FieldLiteralIncremental, FieldLiteralNoIndex, FieldLiteralNeverIndexed:
		return true
	}
	return false
}

func (fi FieldIndex) IsTableSizeUpdate() bool {
	return fi.Kind == FieldTableSizeUpdate
}

// readIntegerTail completes a prefixed integer whose prefix is saturated,
// consuming at most MaxIntegerContinuation continuation bytes. It reports
// false when the tail is cut off or longer than allowed.
func readIntegerTail(c *Cursor, prefix, prefixMax uint32) (uint32, bool) {
	if prefix < prefixMax {
		return prefix, true
	}
	value := prefixMax
	var shift uint
	for i := 0; i < MaxIntegerContinuation; i++ {
		b, ok := c.NextByte()
		if !ok {
			return value, false
		}
		value += uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, true
		}
		shift += 7
	}
	return value, false
}

// StringLiteral is the length prefix of an HPACK string literal.
type StringLiteral struct {
	Huffman bool
	Length  uint32
}

// readStringLiteral reads the length prefix of a string literal. The
// payload is left at the cursor.
func readStringLiteral(c *Cursor) (StringLiteral, bool) {
	var sl StringLiteral
	b, ok := c.NextByte()
	if !ok {
		return sl, false
	}
	sl.Huffman = b&0x80 != 0
	sl.Length, ok = readIntegerTail(c, uint32(b&0x7f), 0x7f)
	return sl, ok
}
