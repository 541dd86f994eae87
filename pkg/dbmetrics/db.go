package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

// DefaultStatsInterval период сбора статистики connection pool
const DefaultStatsInterval = 15 * time.Second

// Collector принимает измерения запросов и статистику пула
type Collector interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
	SetDBStats(stats sql.DBStats)
}

// DB обёртка над *sql.DB, которая пишет длительность запросов в метрики
type DB struct {
	db        *sql.DB
	collector Collector
}

// Wrap оборачивает *sql.DB; m может быть nil (метрики выключены)
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	wrapped := &DB{db: db}
	if m != nil {
		wrapped.collector = m
	}
	return wrapped
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула
// Сбор останавливается при закрытии stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectStats(DefaultStatsInterval, stopCh)
	}
	return wrapped
}

// Unwrap возвращает исходный *sql.DB (нужен для миграций)
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx открывает транзакцию, запросы которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, collector: d.collector}, nil
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.collector == nil {
		return
	}
	d.collector.ObserveDBQuery(operationName(query), time.Since(start), err)
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.collector.SetDBStats(d.db.Stats())
	for {
		select {
		case <-ticker.C:
			d.collector.SetDBStats(d.db.Stats())
		case <-stopCh:
			return
		}
	}
}

// Tx обёртка над *sql.Tx с метриками
type Tx struct {
	tx        *sql.Tx
	collector Collector
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.observe(query, start, err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.observe(query, start, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.observe(query, start, row.Err())
	return row
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func (t *Tx) observe(query string, start time.Time, err error) {
	if t.collector == nil {
		return
	}
	t.collector.ObserveDBQuery(operationName(query), time.Since(start), err)
}

// operationName возвращает тип запроса для лейбла метрики (select, insert, ...)
func operationName(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
