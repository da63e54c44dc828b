package capture

import (
	"compress/gzip"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearne/grpcsniff/consts"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func tcpFrame(t *testing.T, payload []byte, fin bool) []byte {
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 5},
		DstMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 6},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IP{10, 0, 0, 2},
		DstIP:    net.IP{10, 0, 0, 1},
	}
	tcp := &layers.TCP{
		SrcPort: 52100,
		DstPort: 50051,
		Seq:     1000,
		ACK:     true,
		PSH:     len(payload) > 0,
		FIN:     fin,
		Window:  65535,
	}
	require.NoError(t, tcp.SetNetworkLayerForChecksum(ip))
	return serialize(t, eth, ip, tcp, gopacket.Payload(payload))
}

func tcp6Frame(t *testing.T, payload []byte) []byte {
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 5},
		DstMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 6},
		EthernetType: layers.EthernetTypeIPv6,
	}
	ip := &layers.IPv6{
		Version:    6,
		HopLimit:   64,
		NextHeader: layers.IPProtocolTCP,
		SrcIP:      net.ParseIP("fe80::1"),
		DstIP:      net.ParseIP("fe80::2"),
	}
	tcp := &layers.TCP{SrcPort: 50051, DstPort: 40000, ACK: true, RST: true, Window: 1024}
	require.NoError(t, tcp.SetNetworkLayerForChecksum(ip))
	return serialize(t, eth, ip, tcp, gopacket.Payload(payload))
}

func udpFrame(t *testing.T) []byte {
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 5},
		DstMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 6},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IP{10, 0, 0, 2},
		DstIP:    net.IP{10, 0, 0, 53},
	}
	udp := &layers.UDP{SrcPort: 5353, DstPort: 53}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip))
	return serialize(t, eth, ip, udp, gopacket.Payload([]byte{1, 2, 3}))
}

func serialize(t *testing.T, ls ...gopacket.SerializableLayer) []byte {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, ls...))
	return buf.Bytes()
}

func captureInfo(data []byte, i int) gopacket.CaptureInfo {
	return gopacket.CaptureInfo{
		Timestamp:     epoch.Add(time.Duration(i) * time.Millisecond),
		CaptureLength: len(data),
		Length:        len(data),
	}
}

func writePcap(t *testing.T, w io.Writer, frames ...[]byte) {
	pw := pcapgo.NewWriter(w)
	require.NoError(t, pw.WriteFileHeader(65536, layers.LinkTypeEthernet))
	for i, f := range frames {
		require.NoError(t, pw.WritePacket(captureInfo(f, i), f))
	}
}

func TestDecode(t *testing.T) {
	payload := []byte("PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n")
	frame := tcpFrame(t, payload, true)

	pkt, err := Decode(frame, captureInfo(frame, 0), layers.LinkTypeEthernet)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2:52100 -> 10.0.0.1:50051", pkt.Conn.String())
	assert.Equal(t, payload, pkt.Payload)
	assert.Equal(t, uint32(1000), pkt.Seq)
	assert.True(t, pkt.FIN)
	assert.False(t, pkt.RST)
	assert.Equal(t, epoch, pkt.Timestamp)

	frame = tcp6Frame(t, nil)
	pkt, err = Decode(frame, captureInfo(frame, 0), layers.LinkTypeEthernet)
	require.NoError(t, err)
	assert.Equal(t, "fe80::1:50051 -> fe80::2:40000", pkt.Conn.String())
	assert.True(t, pkt.RST)
	assert.Empty(t, pkt.Payload)

	frame = udpFrame(t)
	_, err = Decode(frame, captureInfo(frame, 0), layers.LinkTypeEthernet)
	assert.Equal(t, consts.ErrNotTCP, err)

	_, err = Decode([]byte{1, 2, 3}, gopacket.CaptureInfo{}, layers.LinkTypeEthernet)
	assert.Equal(t, consts.ErrNotTCP, err)
}

func readAll(t *testing.T, src Source) ([][]byte, int) {
	r := NewReader(src)
	defer r.Close()

	var payloads [][]byte
	for {
		pkt, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		payloads = append(payloads, append([]byte(nil), pkt.Payload...))
	}
	return payloads, r.Skipped()
}

func TestOpenFilePcap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)
	writePcap(t, f, tcpFrame(t, []byte("one"), false), udpFrame(t), tcpFrame(t, []byte("two"), true))
	require.NoError(t, f.Close())

	src, err := OpenFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, layers.LinkTypeEthernet, src.LinkType())

	payloads, skipped := readAll(t, src)
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, payloads)
	assert.Equal(t, 1, skipped)
}

func TestOpenFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.pcap.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	writePcap(t, gz, tcpFrame(t, []byte("zipped"), false))
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	src, err := OpenFile(path, "")
	require.NoError(t, err)
	payloads, _ := readAll(t, src)
	assert.Equal(t, [][]byte{[]byte("zipped")}, payloads)
}

func TestOpenFilePcapng(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.pcapng")
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := pcapgo.NewNgWriter(f, layers.LinkTypeEthernet)
	require.NoError(t, err)
	frame := tcpFrame(t, []byte("ng"), false)
	ci := captureInfo(frame, 0)
	ci.InterfaceIndex = 0
	require.NoError(t, w.WritePacket(ci, frame))
	require.NoError(t, w.Flush())
	require.NoError(t, f.Close())

	src, err := OpenFile(path, "")
	require.NoError(t, err)
	payloads, _ := readAll(t, src)
	assert.Equal(t, [][]byte{[]byte("ng")}, payloads)
}

func TestOpenFileError(t *testing.T) {
	dir := t.TempDir()
	_, err := OpenFile(filepath.Join(dir, "missing.pcap"), "")
	assert.Error(t, err)

	path := filepath.Join(dir, "garbage.pcap")
	require.NoError(t, os.WriteFile(path, []byte("not a capture file"), 0o644))
	_, err = OpenFile(path, "")
	assert.Error(t, err)

	path = filepath.Join(dir, "short.pcap")
	require.NoError(t, os.WriteFile(path, []byte{0xd4}, 0o644))
	_, err = OpenFile(path, "")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	assert.Equal(t, "tcp", Filter("", nil))
	assert.Equal(t, "tcp port 50051", Filter("0.0.0.0", []uint16{50051}))
	assert.Equal(t, "(tcp port 80 or tcp port 443) and (host 10.0.0.1)",
		Filter("10.0.0.1", []uint16{80, 443}))
	assert.Equal(t, "(tcp port 80) and (ip6 host fe80::1)", Filter("fe80::1", []uint16{80}))
}
