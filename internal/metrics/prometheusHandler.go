package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeAnswered = "answered"
	OutcomeRefused  = "refused"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var questionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "questions_total",
	Help: "Chat questions labelled by outcome",
}, []string{"outcome"})

var quotaTrackedClients = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "quota_tracked_clients",
	Help: "Number of clients with a live question counter",
})

var rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "rate_limited_requests_total",
	Help: "Requests rejected by the burst limiter",
})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"service"})

// HttpStatusRecorder remembers the status written by the wrapped handler.
type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func NewHttpStatusRecorder(w http.ResponseWriter) *HttpStatusRecorder {
	return &HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *HttpStatusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func RecordQuestion(outcome string) {
	questionsTotal.WithLabelValues(outcome).Inc()
}

func SetQuotaTrackedClients(count int) {
	quotaTrackedClients.Set(float64(count))
}

func IncrementRateLimited() {
	rateLimitedTotal.Inc()
}

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
