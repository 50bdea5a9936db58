package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthai_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthai_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "healthai_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healthai_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)

	// Triage metrics
	triageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthai_triage_total",
			Help: "Messages classified, by emergency type and urgency level",
		},
		[]string{"emergency_type", "urgency"},
	)

	llmAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthai_llm_attempts_total",
			Help: "Language model attempts, by model and outcome",
		},
		[]string{"model", "status"},
	)

	offlineFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthai_offline_fallbacks_total",
			Help: "Turns answered without a language model, by kind",
		},
		[]string{"kind"},
	)

	filterWarnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healthai_filter_warnings_total",
			Help: "Warnings recorded by the response filter",
		},
	)

	unsafeResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healthai_unsafe_responses_total",
			Help: "Generated answers flagged for dangerous advice",
		},
	)

	scopeRedirects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healthai_scope_redirects_total",
			Help: "Off-topic answers replaced with the redirect message",
		},
	)

	hospitalRecommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthai_hospital_recommendations_total",
			Help: "Hospital lists returned, by whether the caller's coordinates were known",
		},
		[]string{"ranked"},
	)

	followUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthai_follow_ups_total",
			Help: "Follow-up questions emitted, by type",
		},
		[]string{"type"},
	)

	modelUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "healthai_model_up",
			Help: "1 when the last probe of a model succeeded",
		},
		[]string{"model"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

func RequestStarted() {
	httpRequestsInFlight.Inc()
}

// RequestFinished records a completed request. path should be the route
// template, not the raw URL.
func RequestFinished(method, path string, status int, duration time.Duration) {
	httpRequestsInFlight.Dec()
	if path == "" {
		path = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordRateLimited() {
	rateLimited.Inc()
}

// --- Triage helpers ---

func RecordTriage(emergencyType, urgency string) {
	triageTotal.WithLabelValues(emergencyType, urgency).Inc()
}

// RecordLLMAttempt is shaped to plug into llm.Chain.OnAttempt.
func RecordLLMAttempt(model string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	llmAttempts.WithLabelValues(model, status).Inc()
}

func RecordOfflineFallback(kind string) {
	offlineFallbacks.WithLabelValues(kind).Inc()
}

func RecordFilterResult(warnings int, valid bool) {
	filterWarnings.Add(float64(warnings))
	if !valid {
		unsafeResponses.Inc()
	}
}

func RecordScopeRedirect() {
	scopeRedirects.Inc()
}

func RecordRecommendation(ranked bool) {
	hospitalRecommendations.WithLabelValues(strconv.FormatBool(ranked)).Inc()
}

func RecordFollowUp(kind string) {
	followUps.WithLabelValues(kind).Inc()
}

func SetModelUp(model string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	modelUp.WithLabelValues(model).Set(v)
}
