package capture

import (
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"

	"github.com/vearne/grpcsniff/consts"
	"github.com/vearne/grpcsniff/model"
)

// Decode extracts the TCP segment of one captured frame. It returns
// consts.ErrNotTCP for anything that is not TCP over IPv4 or IPv6.
func Decode(data []byte, ci gopacket.CaptureInfo, linkType layers.LinkType) (*model.Packet, error) {
	packet := gopacket.NewPacket(data, linkType, gopacket.DecodeOptions{Lazy: true, NoCopy: true})

	var srcIP, dstIP string
	if l := packet.Layer(layers.LayerTypeIPv4); l != nil {
		ip := l.(*layers.IPv4)
		srcIP, dstIP = ip.SrcIP.String(), ip.DstIP.String()
	} else if l := packet.Layer(layers.LayerTypeIPv6); l != nil {
		ip := l.(*layers.IPv6)
		srcIP, dstIP = ip.SrcIP.String(), ip.DstIP.String()
	} else {
		return nil, consts.ErrNotTCP
	}

	tcpLayer := packet.Layer(layers.LayerTypeTCP)
	if tcpLayer == nil {
		return nil, consts.ErrNotTCP
	}
	tcp := tcpLayer.(*layers.TCP)

	return &model.Packet{
		Timestamp: ci.Timestamp,
		Conn:      model.NewDirectConn(srcIP, uint16(tcp.SrcPort), dstIP, uint16(tcp.DstPort)),
		Seq:       tcp.Seq,
		SYN:       tcp.SYN,
		FIN:       tcp.FIN,
		RST:       tcp.RST,
		Payload:   tcp.Payload,
	}, nil
}

// Reader turns a Source into a stream of TCP packets.
type Reader struct {
	src     Source
	skipped int
}

func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// Next returns the next TCP packet, skipping everything else. It returns
// io.EOF once the source is exhausted.
func (r *Reader) Next() (*model.Packet, error) {
	for {
		data, ci, err := r.src.ReadPacketData()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, errors.Wrap(err, "read packet")
		}
		pkt, err := Decode(data, ci, r.src.LinkType())
		if err == consts.ErrNotTCP {
			r.skipped++
			continue
		}
		return pkt, err
	}
}

// Skipped returns the number of non TCP packets seen so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

func (r *Reader) Close() error {
	return r.src.Close()
}
