// Package monitoring provides Prometheus metrics collection.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	listsGeneratedTotal  *prometheus.CounterVec
	listItemsPerGenerate prometheus.Histogram
	itemsToggledTotal    prometheus.Counter
	mealPlansSavedTotal  prometheus.Counter
	usersRegisteredTotal prometheus.Counter
}

// NewMetricsCollector creates a new metrics collector with its own
// registry so collectors do not collide across instances.
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsCollector{
		logger:   logger,
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		listsGeneratedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopping_lists_generated_total",
				Help: "Total number of shopping-list generations",
			},
			[]string{"status"},
		),
		listItemsPerGenerate: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shopping_list_items_per_generation",
				Help:    "Aggregated item count per generated shopping list",
				Buckets: []float64{5, 10, 20, 40, 80, 160},
			},
		),
		itemsToggledTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shopping_list_items_toggled_total",
				Help: "Total number of shopping-list item toggles",
			},
		),
		mealPlansSavedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "meal_plans_saved_total",
				Help: "Total number of meal-plan saves",
			},
		),
		usersRegisteredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "users_registered_total",
				Help: "Total number of users registered",
			},
		),
	}
}

// RecordHTTPRequest records one completed HTTP request.
func (m *MetricsCollector) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordListGenerated records one successful shopping-list generation.
func (m *MetricsCollector) RecordListGenerated(itemCount int) {
	m.listsGeneratedTotal.WithLabelValues("success").Inc()
	m.listItemsPerGenerate.Observe(float64(itemCount))
}

// RecordListGenerationFailed records a refused or failed generation.
func (m *MetricsCollector) RecordListGenerationFailed(reason string) {
	m.listsGeneratedTotal.WithLabelValues(reason).Inc()
}

// RecordItemToggled records one checked-state toggle.
func (m *MetricsCollector) RecordItemToggled() {
	m.itemsToggledTotal.Inc()
}

// RecordMealPlanSaved records one meal-plan save.
func (m *MetricsCollector) RecordMealPlanSaved() {
	m.mealPlansSavedTotal.Inc()
}

// RecordUserRegistered records one account creation.
func (m *MetricsCollector) RecordUserRegistered() {
	m.usersRegisteredTotal.Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
