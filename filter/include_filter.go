package filter

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/vearne/grpcsniff/classifier"
	"github.com/vearne/grpcsniff/protocol"
	"github.com/vearne/grpcsniff/util"
)

// VerdictIncludeFilter lets through the messages whose verdict is one of
// the configured ones.
type VerdictIncludeFilter struct {
	verdicts *util.StringSet
}

func NewVerdictIncludeFilter(verdicts []string) (*VerdictIncludeFilter, error) {
	var f VerdictIncludeFilter
	f.verdicts = util.NewStringSet()
	for _, v := range verdicts {
		if _, ok := classifier.ParseVerdict(v); !ok {
			return nil, errors.Errorf("unknown verdict %q", v)
		}
		f.verdicts.Add(v)
	}
	return &f, nil
}

// Filter :If ok is true, it means that the message can pass
func (f *VerdictIncludeFilter) Filter(msg *protocol.Message) (*protocol.Message, bool) {
	if f.verdicts.Has(msg.Verdict) {
		return msg, true
	}
	return nil, false
}

type ConnMatchIncludeFilter struct {
	r *regexp.Regexp
}

func NewConnMatchIncludeFilter(expr string) (*ConnMatchIncludeFilter, error) {
	var f ConnMatchIncludeFilter
	var err error
	f.r, err = regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "expr %q", expr)
	}
	return &f, nil
}

// Filter :If ok is true, it means that the message can pass
func (f *ConnMatchIncludeFilter) Filter(msg *protocol.Message) (*protocol.Message, bool) {
	if f.r.MatchString(msg.Conn) {
		return msg, true
	}
	return nil, false
}
