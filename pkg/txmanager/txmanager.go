package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

// DefaultMaxRetries количество повторов сериализуемой транзакции по умолчанию
const DefaultMaxRetries = 3

var (
	// ErrBeginTx возвращается, когда не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, когда не удалось закоммитить транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// SQLSTATE коды, при которых транзакцию можно безопасно повторить
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// RetryObserver получает уведомление о каждом повторе транзакции
type RetryObserver interface {
	IncTxRetry()
}

// TransactionManager выполняет функции внутри транзакций
// Транзакция передается репозиториям через контекст (dbmetrics.WithTx)
type TransactionManager struct {
	db         dbmetrics.TxBeginner
	maxRetries int
	observer   RetryObserver
}

// Option настройка TransactionManager
type Option func(*TransactionManager)

// WithMaxRetries задает количество повторов при ошибке сериализации
func WithMaxRetries(n int) Option {
	return func(m *TransactionManager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithRetryObserver задает получателя уведомлений о повторах (метрики)
func WithRetryObserver(o RetryObserver) Option {
	return func(m *TransactionManager) {
		m.observer = o
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db dbmetrics.TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:         db,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При ошибке сериализации (40001) или deadlock (40P01) транзакция повторяется
// не более maxRetries раз, поэтому fn должна быть идемпотентной
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			if m.observer != nil {
				m.observer.IncTxRetry()
			}
		}

		err = m.run(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}

	return err
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов - используем уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsRetryable возвращает true для ошибок конкурентного доступа PostgreSQL
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
