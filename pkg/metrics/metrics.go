package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса
// Все методы безопасны для вызова на nil (метрики выключены)
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	txRetries        prometheus.Counter
	slotsGenerated   prometheus.Counter
	overlapConflicts *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики в указанном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		txRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Transactions retried after a serialization failure",
			ConstLabels: constLabels,
		}),
		slotsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "availability_slots_generated_total",
			Help:        "Slots persisted from availability windows",
			ConstLabels: constLabels,
		}),
		overlapConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_overlap_conflicts_total",
			Help:        "Availability writes rejected because of overlapping slots",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.txRetries,
		m.slotsGenerated,
		m.overlapConflicts,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBStats обновляет метрики connection pool
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbIdleConns.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

// IncTxRetry увеличивает счетчик повторов транзакций
func (m *Metrics) IncTxRetry() {
	if m == nil {
		return
	}
	m.txRetries.Inc()
}

// AddSlotsGenerated увеличивает счетчик сгенерированных слотов
func (m *Metrics) AddSlotsGenerated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.slotsGenerated.Add(float64(n))
}

// IncOverlapConflict увеличивает счетчик отказов из-за пересечения слотов
func (m *Metrics) IncOverlapConflict(operation string) {
	if m == nil {
		return
	}
	m.overlapConflicts.WithLabelValues(operation).Inc()
}
