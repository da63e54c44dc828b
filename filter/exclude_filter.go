package filter

import (
	"github.com/vearne/grpcsniff/protocol"
)

type VerdictExcludeFilter struct {
	exclude string
}

func NewVerdictExcludeFilter(exclude string) *VerdictExcludeFilter {
	var f VerdictExcludeFilter
	f.exclude = exclude
	return &f
}

// Filter :If ok is true, it means that the message can pass
func (f *VerdictExcludeFilter) Filter(msg *protocol.Message) (*protocol.Message, bool) {
	if msg.Verdict == f.exclude {
		return nil, false
	}
	return msg, true
}

// EmptyPayloadExcludeFilter drops the messages of packets without payload,
// such as bare ACKs.
var EmptyPayloadExcludeFilter = FilterFunc(func(msg *protocol.Message) bool {
	return msg.PayloadLen > 0
})
