package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service counters behind a private Prometheus
// registry so /metrics serves only what this process owns.
type Registry struct {
	reg *prometheus.Registry

	OrdersProcessed prometheus.Counter
	OrderFailures   prometheus.Counter
	TierDiscounts   prometheus.Counter
	CodeDiscounts   prometheus.Counter
	ReceiptsSent    prometheus.Counter
	ProcessLatency  prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	processed := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_processed_total"})
	failures := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_process_failures_total"})
	tier := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_tier_discounts_total"})
	code := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_code_discounts_total"})
	receipts := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_receipts_sent_total"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_process_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(processed, failures, tier, code, receipts, latency)
	return &Registry{
		reg:             r,
		OrdersProcessed: processed,
		OrderFailures:   failures,
		TierDiscounts:   tier,
		CodeDiscounts:   code,
		ReceiptsSent:    receipts,
		ProcessLatency:  latency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
