package consts

import "errors"

// set by -ldflags at build time
var (
	Version   = "v0.1.0"
	BuildTime = "unknown"
	GitTag    = "unknown"
)

var (
	ErrProtocol = errors.New("protocol error")
	// ErrStopped is returned by inputs once they have no more packets.
	ErrStopped = errors.New("reading stopped")
	ErrNotTCP  = errors.New("not a TCP packet")
)
