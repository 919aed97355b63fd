package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCountersAndHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.ObserveHTTP("GET", "200", 120*time.Millisecond)
	m.IncCartOp("add")
	m.IncCartOp("add")
	m.IncCheckoutOutcome("completed")
	m.ObserveCheckoutProcessing(2 * time.Second)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_operations_total", "op", "add"); err != nil {
		t.Fatalf("fetch cart ops: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "checkout_outcomes_total", "outcome", "completed"); err != nil {
		t.Fatalf("fetch checkout outcome: %v", err)
	} else if got != 1 {
		t.Fatalf("expected completed=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "method", "get"); err != nil {
		t.Fatalf("fetch http duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected http duration sum > 0, got %f", got)
	}
}

func TestStorefrontMetricsNilSafe(t *testing.T) {
	var m *StorefrontMetrics
	m.ObserveHTTP("GET", "200", time.Second)
	m.IncCartOp("add")
	m.IncCheckoutOutcome("cancelled")
	m.ObserveCheckoutProcessing(time.Second)

	empty := NewStorefrontMetrics(nil)
	empty.IncCartOp("add")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
