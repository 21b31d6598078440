package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "deadchat_build_info",
			Help:        "Build information",
			ConstLabels: prometheus.Labels{"component": "relay"},
		},
		[]string{"version", "model"},
	)

	relayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deadchat_relay_requests_total",
			Help: "Relay requests by outcome",
		},
		[]string{"outcome"},
	)

	providerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deadchat_provider_request_duration_seconds",
			Help:    "Duration of outbound generation calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model", "outcome"},
	)

	credentialSelections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deadchat_credential_selections_total",
			Help: "Times each credential pool slot was drawn",
		},
		[]string{"slot"},
	)

	inflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "deadchat_relay_inflight_requests",
			Help: "Relay requests currently being handled",
		},
	)
)

// Register registers all metrics with the provided registerer.
func Register(r prometheus.Registerer) {
	r.MustRegister(buildInfo, relayRequests, providerDuration, credentialSelections, inflight)
}

// SetBuildInfo sets the build info metric.
func SetBuildInfo(version, model string) {
	buildInfo.WithLabelValues(version, model).Set(1)
}

// RecordRelayRequest increments the request counter for an outcome such as
// "ok", "MissingField" or "ProviderError".
func RecordRelayRequest(outcome string) {
	relayRequests.WithLabelValues(outcome).Inc()
}

// ObserveProviderCall records the duration of one outbound call.
func ObserveProviderCall(model string, success bool, d time.Duration) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	providerDuration.WithLabelValues(model, outcome).Observe(d.Seconds())
}

// RecordCredentialSelection counts a draw from the credential pool.
func RecordCredentialSelection(slot int) {
	credentialSelections.WithLabelValues(strconv.Itoa(slot)).Inc()
}

// TrackInflight increments the in-flight gauge and returns its decrement.
func TrackInflight() func() {
	inflight.Inc()
	return inflight.Dec
}
