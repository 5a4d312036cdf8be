package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		t.Fatalf("failed to read gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestObserveReview(t *testing.T) {
	counter := reviewResultsTotal.WithLabelValues("UpstreamQuotaExceeded")
	before := counterValue(t, counter)

	ObserveReview("UpstreamQuotaExceeded")
	ObserveReview("UpstreamQuotaExceeded")

	if got := counterValue(t, counter) - before; got != 2 {
		t.Errorf("Expected counter to grow by 2, got %f", got)
	}
}

func TestObserveHTTPRequest(t *testing.T) {
	counter := httpRequestsTotal.WithLabelValues("POST", "/ai/review", "200")
	before := counterValue(t, counter)

	ObserveHTTPRequest("POST", "/ai/review", "200", 150*time.Millisecond)

	if got := counterValue(t, counter) - before; got != 1 {
		t.Errorf("Expected counter to grow by 1, got %f", got)
	}
}

func TestTrackInFlight(t *testing.T) {
	before := gaugeValue(t, httpRequestsInFlight)

	done := TrackInFlight()
	if got := gaugeValue(t, httpRequestsInFlight); got != before+1 {
		t.Errorf("Expected in-flight %f, got %f", before+1, got)
	}

	done()
	if got := gaugeValue(t, httpRequestsInFlight); got != before {
		t.Errorf("Expected in-flight back to %f, got %f", before, got)
	}
}
