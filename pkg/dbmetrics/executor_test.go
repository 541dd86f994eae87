package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &fakeDB{}
	tx := &fakeTx{}

	ctx := context.Background()
	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	txCtx := WithTx(ctx, tx)
	assert.Same(t, tx, GetExecutor(txCtx, db))
	assert.True(t, IsInTransaction(txCtx))
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("SELECT id FROM slots"))
	assert.Equal(t, "insert", operationName("\n\tINSERT INTO x VALUES ($1)"))
	assert.Equal(t, "unknown", operationName("   "))
}

func TestWrap_NilMetrics(t *testing.T) {
	wrapped := Wrap(&sql.DB{}, nil)
	assert.Nil(t, wrapped.collector)
}
