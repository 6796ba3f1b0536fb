// Package metrics provides Prometheus instrumentation for simulation runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stocksimv1/internal/ledger"
)

// Metrics holds all Prometheus collectors for the simulator.
type Metrics struct {
	TransactionsTotal *prometheus.CounterVec // labels: strategy, action
	ZeroShareBuys     prometheus.Counter
	WriteOffsTotal    prometheus.Counter
	LedgerAppendDur   prometheus.Histogram
}

// New creates and registers the simulator metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TransactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sim_transactions_total",
			Help: "Ledger entries appended, by strategy and action.",
		}, []string{"strategy", "action"}),
		ZeroShareBuys: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_zero_share_buys_total",
			Help: "Buy entries where capital only covered the fee.",
		}),
		WriteOffsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_write_offs_total",
			Help: "Forced liquidations of delisted instruments.",
		}),
		LedgerAppendDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sim_ledger_append_duration_seconds",
			Help:    "Time spent appending one ledger entry across all sinks.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	reg.MustRegister(m.TransactionsTotal, m.ZeroShareBuys, m.WriteOffsTotal, m.LedgerAppendDur)
	return m
}

// WrapSink instruments a ledger sink, counting entries as they pass through.
func (m *Metrics) WrapSink(sink ledger.Sink, strategy string) ledger.Sink {
	return &instrumentedSink{m: m, sink: sink, strategy: strategy}
}

type instrumentedSink struct {
	m        *Metrics
	sink     ledger.Sink
	strategy string
}

func (s *instrumentedSink) Append(e ledger.Entry) error {
	start := time.Now()
	err := s.sink.Append(e)
	s.m.LedgerAppendDur.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	s.m.TransactionsTotal.WithLabelValues(s.strategy, string(e.Action)).Inc()
	if e.Action == ledger.ActionBuy && e.Shares == 0 {
		s.m.ZeroShareBuys.Inc()
	}
	if e.Action == ledger.ActionSell && e.Price == 0 {
		s.m.WriteOffsTotal.Inc()
	}
	return nil
}

func (s *instrumentedSink) Close() error { return s.sink.Close() }

// Serve exposes /metrics on addr. Blocks; run it in a goroutine.
func Serve(addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}
