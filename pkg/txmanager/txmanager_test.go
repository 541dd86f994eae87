package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs       []*fakeTx
	opts      []*sql.TxOptions
	commitErr error
	beginErr  error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{commitErr: b.commitErr}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

type countingObserver struct {
	retries int
}

func (o *countingObserver) IncTxRetry() { o.retries++ }

func TestDo_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
	assert.Equal(t, sql.LevelReadCommitted, db.opts[0].Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDo_BeginError(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{beginErr: errors.New("conn refused")})

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	observer := &countingObserver{}
	m := NewTransactionManager(db, WithMaxRetries(3), WithRetryObserver(observer))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("insert slots: %w", &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, observer.retries)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
	assert.True(t, db.txs[2].committed)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithMaxRetries(2))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "40P01"}
	})

	assert.True(t, IsRetryable(err))
	assert.Equal(t, 3, calls)
}

func TestDoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "23505"}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoSerializable_RetriesCommitFailure(t *testing.T) {
	db := &fakeBeginner{commitErr: &pq.Error{Code: "40001"}}
	m := NewTransactionManager(db, WithMaxRetries(1))

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.Len(t, db.txs, 2)
}
