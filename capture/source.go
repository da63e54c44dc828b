package capture

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// Source is where packets come from: a pcap file or a live device.
type Source interface {
	gopacket.PacketDataSource
	LinkType() layers.LinkType
	Close() error
}

// handleSource adapts a libpcap handle.
type handleSource struct {
	*pcap.Handle
}

func (s handleSource) Close() error {
	s.Handle.Close()
	return nil
}

// readerSource adapts a pcapgo reader and the file underneath it.
type readerSource struct {
	data     gopacket.PacketDataSource
	linkType layers.LinkType
	closers  []func() error
}

func (s *readerSource) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	return s.data.ReadPacketData()
}

func (s *readerSource) LinkType() layers.LinkType {
	return s.linkType
}

func (s *readerSource) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
