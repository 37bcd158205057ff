package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.Deposits == nil || m.Conversions == nil || m.HTTPRequests == nil || m.DBQueries == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.Deposits.Inc()
	m.ConversionFees.WithLabelValues("USD").Add(0.09)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	var found bool
	for _, mf := range metricFamilies {
		if mf.GetName() == "fincore_deposits_total" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected fincore_deposits_total to be registered")
	}
}
