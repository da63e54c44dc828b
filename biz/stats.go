package biz

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vearne/grpcsniff/classifier"
)

// Stats counts the packets going through the emitter.
type Stats struct {
	packets *prometheus.CounterVec
	dropped *prometheus.CounterVec
}

func NewStats(reg prometheus.Registerer, tracker *ConnTracker) (*Stats, error) {
	s := &Stats{
		packets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "grpcsniff",
				Subsystem: "emitter",
				Name:      "packets_total",
				Help:      "Packets classified, by verdict.",
			},
			[]string{"verdict", "sticky"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "grpcsniff",
				Subsystem: "emitter",
				Name:      "dropped_total",
				Help:      "Messages not written, by reason.",
			},
			[]string{"reason"},
		),
	}
	collectors := []prometheus.Collector{s.packets, s.dropped}
	if tracker != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "grpcsniff",
				Subsystem: "tracker",
				Name:      "connections",
				Help:      "Connections with a remembered verdict.",
			},
			func() float64 { return float64(tracker.Len()) },
		))
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Stats) observe(v classifier.Verdict, sticky bool) {
	if s == nil {
		return
	}
	s.packets.WithLabelValues(v.String(), strconv.FormatBool(sticky)).Inc()
}

func (s *Stats) drop(reason string) {
	if s == nil {
		return
	}
	s.dropped.WithLabelValues(reason).Inc()
}
