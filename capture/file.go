package capture

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"os"
	"strings"

	"github.com/google/gopacket/pcap"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
	slog "github.com/vearne/simplelog"
)

// FileSuffixes are the capture file names OpenFile understands.
var FileSuffixes = []string{".pcap", ".pcapng", ".cap", ".pcap.gz", ".pcapng.gz"}

var pcapngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}

// OpenFile opens a capture file. With an empty bpfFilter the file is read
// by pcapgo, which also handles pcapng and gzip; otherwise libpcap reads it
// and applies the filter.
func OpenFile(path string, bpfFilter string) (Source, error) {
	if bpfFilter != "" {
		return openFileWithFilter(path, bpfFilter)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open pcap file")
	}
	src := &readerSource{closers: []func() error{file.Close}}

	var reader *bufio.Reader
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			src.Close()
			return nil, errors.Wrapf(err, "gzip %v", path)
		}
		src.closers = append(src.closers, gz.Close)
		reader = bufio.NewReader(gz)
	} else {
		reader = bufio.NewReader(file)
	}

	magic, err := reader.Peek(len(pcapngMagic))
	if err != nil {
		src.Close()
		return nil, errors.Wrapf(err, "read header of %v", path)
	}

	if bytes.Equal(magic, pcapngMagic) {
		ng, err := pcapgo.NewNgReader(reader, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			src.Close()
			return nil, errors.Wrapf(err, "pcapng %v", path)
		}
		src.data, src.linkType = ng, ng.LinkType()
	} else {
		r, err := pcapgo.NewReader(reader)
		if err != nil {
			src.Close()
			return nil, errors.Wrapf(err, "pcap %v", path)
		}
		src.data, src.linkType = r, r.LinkType()
	}
	slog.Debug("OpenFile:%v, linkType:%v", path, src.linkType)
	return src, nil
}

func openFileWithFilter(path string, bpfFilter string) (Source, error) {
	handle, err := pcap.OpenOffline(path)
	if err != nil {
		return nil, errors.Wrap(err, "open pcap file")
	}
	if err = handle.SetBPFFilter(bpfFilter); err != nil {
		handle.Close()
		return nil, errors.Wrapf(err, "BPF filter %q", bpfFilter)
	}
	slog.Debug("OpenFile:%v, BPF Filter:%v", path, bpfFilter)
	return handleSource{handle}, nil
}
