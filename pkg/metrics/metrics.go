package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LifecycleEventsTotal *prometheus.CounterVec
	ActiveSessions       prometheus.Gauge
	AvailabilityLoads    *prometheus.CounterVec

	DraftOperationsTotal  *prometheus.CounterVec
	IntentsPublishedTotal *prometheus.CounterVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
}

// New создает коллекторы и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает коллекторы в указанном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LifecycleEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_lifecycle_events_total",
			Help:        "Booking lifecycle events submitted, by type and outcome (accepted/ignored)",
			ConstLabels: labels,
		}, []string{"event", "outcome"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "booking_sessions_active",
			Help:        "Number of booking sessions currently held in memory",
			ConstLabels: labels,
		}),
		AvailabilityLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_availability_loads_total",
			Help:        "Asynchronous availability snapshot loads, by result",
			ConstLabels: labels,
		}, []string{"result"}),
		DraftOperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_draft_operations_total",
			Help:        "Draft continuation operations, by operation and result",
			ConstLabels: labels,
		}, []string{"operation", "result"}),
		IntentsPublishedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_intents_published_total",
			Help:        "Outbound side-effect intents, by kind and result",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established database connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: labels,
		}),
	}
}

// ObserveHTTP записывает результат HTTP-запроса
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveLifecycleEvent учитывает событие машины состояний
func (m *Metrics) ObserveLifecycleEvent(event string, accepted bool) {
	if m == nil {
		return
	}
	outcome := "ignored"
	if accepted {
		outcome = "accepted"
	}
	m.LifecycleEventsTotal.WithLabelValues(event, outcome).Inc()
}

// SetActiveSessions выставляет число активных сессий
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

// ObserveAvailabilityLoad учитывает загрузку снимка доступности
func (m *Metrics) ObserveAvailabilityLoad(result string) {
	if m == nil {
		return
	}
	m.AvailabilityLoads.WithLabelValues(result).Inc()
}

// ObserveDraftOperation учитывает операцию с черновиком
func (m *Metrics) ObserveDraftOperation(operation, result string) {
	if m == nil {
		return
	}
	m.DraftOperationsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveIntent учитывает публикацию намерения
func (m *Metrics) ObserveIntent(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.IntentsPublishedTotal.WithLabelValues(kind, result).Inc()
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats выставляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.Set(float64(open))
	m.DBInUseConnections.Set(float64(inUse))
	m.DBIdleConnections.Set(float64(idle))
}
