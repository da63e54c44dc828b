package capture

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/gopacket/pcap"
	"github.com/pkg/errors"
	slog "github.com/vearne/simplelog"

	"github.com/vearne/grpcsniff/util"
)

// LiveOptions are applied to an inactive pcap handle before activation.
type LiveOptions struct {
	Device      string        `json:"device"`
	Snaplen     int           `json:"snaplen"`
	Promiscuous bool          `json:"promisc"`
	Timeout     time.Duration `json:"timeout"`
	BPFFilter   string        `json:"bpf-filter"`
}

// OpenLive starts capturing on a device.
func OpenLive(opts LiveOptions) (Source, error) {
	inactive, err := pcap.NewInactiveHandle(opts.Device)
	if err != nil {
		return nil, errors.Wrapf(err, "inactive handle, interface: %q", opts.Device)
	}
	defer inactive.CleanUp()

	snap := opts.Snaplen
	if snap <= 0 {
		snap = defaultSnaplen(opts.Device)
	}
	if err = inactive.SetSnapLen(snap); err != nil {
		return nil, errors.Wrapf(err, "snapshot length, interface: %q", opts.Device)
	}
	if opts.Promiscuous {
		if err = inactive.SetPromisc(true); err != nil {
			return nil, errors.Wrapf(err, "promiscuous mode, interface: %q", opts.Device)
		}
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 2000 * time.Millisecond
	}
	if err = inactive.SetTimeout(timeout); err != nil {
		return nil, errors.Wrapf(err, "buffer timeout, interface: %q", opts.Device)
	}

	handle, err := inactive.Activate()
	if err != nil {
		return nil, errors.Wrapf(err, "PCAP Activate device, interface: %q", opts.Device)
	}
	if opts.BPFFilter != "" {
		if err = handle.SetBPFFilter(opts.BPFFilter); err != nil {
			handle.Close()
			return nil, errors.Wrapf(err, "BPF filter %q, interface: %q", opts.BPFFilter, opts.Device)
		}
	}
	slog.Info("Interface:%v, snaplen:%v, BPF Filter:%v", opts.Device, snap, opts.BPFFilter)
	return handleSource{handle}, nil
}

func defaultSnaplen(device string) int {
	if ifi, err := net.InterfaceByName(device); err == nil && ifi.MTU > 0 {
		return ifi.MTU + 200
	}
	return 64<<10 + 200
}

// ListenAll reports whether host means every local address.
func ListenAll(host string) bool {
	switch host {
	case "", "0.0.0.0", "[::]", "::":
		return true
	}
	return false
}

// Filter builds a BPF expression matching TCP traffic to and from the
// given ports, restricted to host unless host means every address.
// https://www.tcpdump.org/manpages/pcap-filter.7.html
func Filter(host string, ports []uint16) string {
	filter := portsFilter(ports)
	if ListenAll(host) {
		return filter
	}
	hostFilter := "host " + host
	if util.IsIPv6(host) {
		hostFilter = "ip6 host " + host
	}
	return fmt.Sprintf("(%s) and (%s)", filter, hostFilter)
}

func portsFilter(ports []uint16) string {
	if len(ports) == 0 || ports[0] == 0 {
		return "tcp"
	}

	var filters []string
	for _, port := range ports {
		filters = append(filters, fmt.Sprintf("tcp port %d", port))
	}
	return strings.Join(filters, " or ")
}
