package slot

import "errors"

var (
	// ErrNotInTransaction возвращается, когда блокировка провайдера запрошена вне транзакции
	ErrNotInTransaction = errors.New("slot.repository: provider lock requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
