package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interview_coach"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	gatewayCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_gateway_calls_total",
		Help:      "Language model calls by provider and outcome",
	}, []string{"provider", "outcome"})

	gatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_gateway_duration_seconds",
		Help:      "Duration of language model calls in seconds",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60, 120},
	}, []string{"provider"})

	analyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_analyses_total",
		Help:      "Feedback analyses by outcome",
	}, []string{"outcome"})

	reconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pointer_changes_total",
		Help:      "Pointer history entries written, by change type",
	}, []string{"change_type"})

	stalePointers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "plateau_pointers",
		Help:      "Non-completed pointers past the plateau threshold at the last scan",
	})
)

func ObserveGateway(provider string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	gatewayCalls.WithLabelValues(provider, outcome).Inc()
	gatewayLatency.WithLabelValues(provider).Observe(time.Since(started).Seconds())
}

func ObserveAnalysis(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	analyses.WithLabelValues(outcome).Inc()
}

func ObservePointerChange(changeType string) {
	reconciliations.WithLabelValues(changeType).Inc()
}

func SetPlateauPointers(n int) {
	stalePointers.Set(float64(n))
}

// Middleware records request counts and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		httpRequests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpLatency.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the default registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
