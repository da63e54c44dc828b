// Package biz wires inputs, the classifier and outputs together.
package biz

import (
	"io"
	"sync"

	slog "github.com/vearne/simplelog"

	"github.com/vearne/grpcsniff/classifier"
	"github.com/vearne/grpcsniff/consts"
	"github.com/vearne/grpcsniff/filter"
	"github.com/vearne/grpcsniff/model"
	"github.com/vearne/grpcsniff/protocol"
)

// Emitter reads packets from every input, classifies them and writes one
// message per packet to every output. Each input runs in its own goroutine.
type Emitter struct {
	sync.WaitGroup
	plugins     *InOutPlugins
	classifier  *classifier.Classifier
	tracker     *ConnTracker
	filterChain filter.Filter
	limiter     Limiter
	stats       *Stats
}

// NewEmitter creates an Emitter. tracker, limiter and stats may be nil.
func NewEmitter(cl *classifier.Classifier, tracker *ConnTracker, f filter.Filter,
	lim Limiter, stats *Stats) *Emitter {
	var e Emitter
	e.classifier = cl
	e.tracker = tracker
	e.filterChain = f
	e.limiter = lim
	e.stats = stats
	return &e
}

// Start runs one copy loop per input.
func (e *Emitter) Start(plugins *InOutPlugins) {
	e.plugins = plugins
	for _, in := range plugins.Inputs {
		e.Add(1)
		go func(in PluginReader) {
			defer e.Done()
			if err := e.CopyMulty(in, plugins.Outputs...); err != nil {
				slog.Debug("[EMITTER] error during copy: %q", err)
			}
		}(in)
	}
}

// Close closes every plugin and waits for the copy loops to end.
func (e *Emitter) Close() {
	if e.plugins == nil {
		return
	}
	for _, p := range e.plugins.All {
		if cp, ok := p.(io.Closer); ok {
			cp.Close()
		}
	}
	if len(e.plugins.All) > 0 {
		// wait for everything to stop
		e.Wait()
	}
	e.plugins.All = nil // avoid Close to make changes again
}

// CopyMulty moves packets from src to writers until src is stopped.
func (e *Emitter) CopyMulty(src PluginReader, writers ...PluginWriter) error {
	for {
		pkt, err := src.Read()
		if err != nil {
			if err == consts.ErrStopped || err == io.EOF {
				return nil
			}
			slog.Error("src.Read:%v", err)
			continue
		}

		msg := e.process(pkt)
		msg, ok := e.filterChain.Filter(msg)
		if !ok {
			e.stats.drop("filter")
			continue
		}

		if e.limiter != nil && !e.limiter.Allow() {
			e.stats.drop("rate_limit")
			continue
		}

		for _, dst := range writers {
			if err = dst.Write(msg); err != nil {
				slog.Error("dst.Write:%v", err)
			}
		}
	}
}

func (e *Emitter) process(pkt *model.Packet) *protocol.Message {
	verdict, sticky := e.verdict(pkt)
	e.stats.observe(verdict, sticky)
	slog.Debug("conn:%v, flags:%v, len(payload):%v, verdict:%v, sticky:%v",
		pkt.Conn, pkt.TCPFlags(), len(pkt.Payload), verdict, sticky)
	return protocol.NewMessage(pkt, verdict.String(), sticky)
}

func (e *Emitter) verdict(pkt *model.Packet) (classifier.Verdict, bool) {
	if e.tracker == nil {
		return e.classifier.Classify(pkt.Payload, 0), false
	}
	if pkt.Closing() {
		defer e.tracker.Evict(pkt.Conn)
	}

	if v, ok := e.tracker.Get(pkt.Conn); ok {
		return v, true
	}
	v := e.classifier.Classify(pkt.Payload, 0)
	e.tracker.Set(pkt.Conn, v)
	return v, false
}
