package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	before := testutil.ToFloat64(relayRequests.WithLabelValues("ok"))
	SetBuildInfo("1.0.0", "gemini-2.5-flash")
	RecordRelayRequest("ok")
	RecordCredentialSelection(2)
	ObserveProviderCall("gemini-2.5-flash", true, 100*time.Millisecond)

	if v := testutil.ToFloat64(relayRequests.WithLabelValues("ok")); v != before+1 {
		t.Fatalf("relay requests: %v", v)
	}
	if v := testutil.ToFloat64(credentialSelections.WithLabelValues("2")); v < 1 {
		t.Fatalf("credential selections: %v", v)
	}
	if v := testutil.ToFloat64(buildInfo.WithLabelValues("1.0.0", "gemini-2.5-flash")); v != 1 {
		t.Fatalf("build info: %v", v)
	}
	if n := testutil.CollectAndCount(providerDuration); n < 1 {
		t.Fatalf("provider duration series: %d", n)
	}
}

func TestTrackInflight(t *testing.T) {
	base := testutil.ToFloat64(inflight)
	done := TrackInflight()
	if v := testutil.ToFloat64(inflight); v != base+1 {
		t.Fatalf("inflight after start = %v", v)
	}
	done()
	if v := testutil.ToFloat64(inflight); v != base {
		t.Fatalf("inflight after done = %v", v)
	}
}
