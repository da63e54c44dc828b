package classifier

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/hpack"
)

func hf(name, value string) hpack.HeaderField {
	return hpack.HeaderField{Name: name, Value: value}
}

func grpcRequestFields(contentType string) []hpack.HeaderField {
	return []hpack.HeaderField{
		hf(":method", "POST"),
		hf(":scheme", "http"),
		hf(":path", "/grpc.health.v1.Health/Check"),
		hf(":authority", "localhost:50051"),
		hf("content-type", contentType),
		hf("user-agent", "grpc-go/1.48.0"),
		hf("te", "trailers"),
	}
}

// headerBlock encodes fields with a fresh encoder, so that nothing refers
// to a dynamic table entry added by another block.
func headerBlock(t testing.TB, fields ...hpack.HeaderField) []byte {
	var buf bytes.Buffer
	enc := hpack.NewEncoder(&buf)
	for _, f := range fields {
		require.NoError(t, enc.WriteField(f))
	}
	return buf.Bytes()
}

type packetBuilder struct {
	t   testing.TB
	buf bytes.Buffer
	fr  *http2.Framer
}

func newPacket(t testing.TB) *packetBuilder {
	p := &packetBuilder{t: t}
	p.fr = http2.NewFramer(&p.buf, nil)
	p.fr.AllowIllegalWrites = true
	return p
}

func (p *packetBuilder) raw(b []byte) *packetBuilder {
	p.buf.Write(b)
	return p
}

func (p *packetBuilder) preface() *packetBuilder {
	p.buf.WriteString(http2.ClientPreface)
	return p
}

func (p *packetBuilder) settings() *packetBuilder {
	require.NoError(p.t, p.fr.WriteSettings(http2.Setting{ID: http2.SettingInitialWindowSize, Val: 1 << 20}))
	return p
}

func (p *packetBuilder) windowUpdate() *packetBuilder {
	require.NoError(p.t, p.fr.WriteWindowUpdate(0, 983041))
	return p
}

func (p *packetBuilder) headers(streamID uint32, block []byte) *packetBuilder {
	require.NoError(p.t, p.fr.WriteHeaders(http2.HeadersFrameParam{
		StreamID:      streamID,
		BlockFragment: block,
		EndHeaders:    true,
	}))
	return p
}

func (p *packetBuilder) data(streamID uint32, data []byte) *packetBuilder {
	require.NoError(p.t, p.fr.WriteData(streamID, false, data))
	return p
}

func (p *packetBuilder) bytes() []byte {
	return append([]byte(nil), p.buf.Bytes()...)
}

// grpcMessage is a length prefixed gRPC message with an empty body.
var grpcMessage = []byte{0x00, 0x00, 0x00, 0x00, 0x00}

func grpcRequestPacket(t testing.TB) []byte {
	return newPacket(t).
		preface().
		settings().
		windowUpdate().
		headers(1, headerBlock(t, grpcRequestFields("application/grpc")...)).
		data(1, grpcMessage).
		bytes()
}

type countingReporter struct {
	counts [NumCallSites][4]int
}

func (r *countingReporter) Report(site CallSite, code ErrorCode) {
	r.counts[site][code]++
}
