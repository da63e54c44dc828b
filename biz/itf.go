package biz

import (
	"github.com/vearne/grpcsniff/model"
	"github.com/vearne/grpcsniff/protocol"
)

// PluginReader is an interface for input plugins. Read returns
// consts.ErrStopped once the input is exhausted or closed.
type PluginReader interface {
	Read() (pkt *model.Packet, err error)
}

// PluginWriter is an interface for output plugins
type PluginWriter interface {
	Write(msg *protocol.Message) (err error)
}
