package classifier

const (
	FrameHeaderSize       = 9
	ConnectionPrefaceSize = 24
	ConnectionPreface     = "PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n"
)

const (
	// MaxFramesToFilter bounds the number of frame headers walked per packet.
	MaxFramesToFilter = 45
	// MaxFramesToProcess is the capacity of the recorded HEADERS frames.
	MaxFramesToProcess = 10
	// MaxHeadersToProcess bounds the header fields looked at per frame.
	MaxHeadersToProcess = 20
	// MaxTableSizeUpdateSkip bounds the bytes consumed by leading
	// dynamic table size updates, continuation bytes included.
	MaxTableSizeUpdateSkip = 5
	// MaxIntegerContinuation bounds the continuation bytes of a prefixed integer.
	MaxIntegerContinuation = 4
)

// HPACK static table identifiers (RFC 7541, Appendix A).
const (
	MethodGetIndex   = 2
	MethodPostIndex  = 3
	ContentTypeIndex = 31
)

// ContentTypeSignature is "application/grpc" Huffman encoded as HPACK does it.
// The encoding happens to end on a byte boundary, so it can be compared
// without masking the last byte.
const ContentTypeSignature = "\x1d\x75\xd0\x62\x0d\x26\x3d\x4c\x4d\x65\x64"

const ContentTypeSignatureLen = len(ContentTypeSignature)
