/*
Package capture reads packets from pcap files and network devices and
decodes them down to their TCP payload.

Files are read with pcapgo, so classic pcap, pcapng and gzip compressed
captures need no libpcap; a BPF filter on a file and every live capture go
through libpcap.

	src, err := capture.OpenFile("dump.pcap", "")
	r := capture.NewReader(src)
	for {
		pkt, err := r.Next()
		...
	}
*/
package capture
