package api

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Query outcomes.
const (
	OutcomeAnswered = "answered"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

// Metrics holds Prometheus metrics for the HTTP API.
//
// Metrics:
//   - askdocs_http_requests_total{method,endpoint,status}
//   - askdocs_http_request_duration_seconds{method,endpoint}
//   - askdocs_queries_total{outcome}
//   - askdocs_answer_confidence
//   - askdocs_documents
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	QueriesTotal     *prometheus.CounterVec
	AnswerConfidence prometheus.Histogram
}

// NewMetrics registers the API metrics on reg. The documents gauge reads the
// corpus size from documents at scrape time.
func NewMetrics(reg prometheus.Registerer, documents driving.DocumentService) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "askdocs_http_requests_total",
				Help: "Total HTTP requests by method, endpoint and status code",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "askdocs_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
			},
			[]string{"method", "endpoint"},
		),
		QueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "askdocs_queries_total",
				Help: "Total questions by outcome",
			},
			[]string{"outcome"}, // "answered", "empty" or "error"
		),
		AnswerConfidence: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "askdocs_answer_confidence",
				Help:    "Confidence of returned answers",
				Buckets: prometheus.LinearBuckets(0, 10, 10),
			},
		),
	}

	if documents != nil {
		factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "askdocs_documents",
				Help: "Number of documents in the corpus",
			},
			func() float64 {
				n, err := documents.Count(context.Background())
				if err != nil {
					logger.Warn("Failed to count documents for metrics: %v", err)
					return 0
				}
				return float64(n)
			},
		)
	}

	return m
}

// RecordQuery counts a query by outcome and records answer confidence.
func (m *Metrics) RecordQuery(outcome string, confidence int) {
	m.QueriesTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeError {
		m.AnswerConfidence.Observe(float64(confidence))
	}
}

// Middleware returns an echo middleware that records request metrics.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the status before it is read.
				c.Error(err)
			}

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
			m.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
