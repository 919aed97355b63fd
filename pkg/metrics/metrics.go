package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records request and cart/checkout activity.
type StorefrontMetrics struct {
	httpDuration     *prometheus.HistogramVec
	cartOps          *prometheus.CounterVec
	checkoutOutcome  *prometheus.CounterVec
	checkoutDuration prometheus.Histogram
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	checkoutOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Checkout flow terminations by outcome.",
	}, []string{"outcome"})
	checkoutDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_processing_seconds",
		Help:    "Time spent in the checkout processing state.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(httpDuration, cartOps, checkoutOutcome, checkoutDuration)
	return &StorefrontMetrics{
		httpDuration:     httpDuration,
		cartOps:          cartOps,
		checkoutOutcome:  checkoutOutcome,
		checkoutDuration: checkoutDuration,
	}
}

// ObserveHTTP records one served request.
func (m *StorefrontMetrics) ObserveHTTP(method, status string, duration time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(normalizeLabel(method), normalizeLabel(status)).Observe(duration.Seconds())
}

// IncCartOp increments the counter for the named cart operation.
func (m *StorefrontMetrics) IncCartOp(op string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckoutOutcome increments the counter for a checkout termination.
func (m *StorefrontMetrics) IncCheckoutOutcome(outcome string) {
	if m == nil || m.checkoutOutcome == nil {
		return
	}
	m.checkoutOutcome.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveCheckoutProcessing records the duration of one processing phase.
func (m *StorefrontMetrics) ObserveCheckoutProcessing(duration time.Duration) {
	if m == nil || m.checkoutDuration == nil {
		return
	}
	m.checkoutDuration.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
