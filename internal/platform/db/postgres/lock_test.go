package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestAdvisoryLocker_LockEmployeeInsideTransaction(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	tm := NewTransactionManager(mock)
	locker := NewAdvisoryLocker()

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("allocation:employee:emp-1").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectCommit()

	err = tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		return locker.LockEmployee(ctx, "emp-1")
	})
	if err != nil {
		t.Fatalf("LockEmployee returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdvisoryLocker_RequiresTransaction(t *testing.T) {
	t.Parallel()

	err := NewAdvisoryLocker().LockEmployee(context.Background(), "emp-1")
	if !errors.Is(err, ErrNoTransaction) {
		t.Fatalf("expected ErrNoTransaction, got %v", err)
	}
}

func TestAdvisoryLocker_LockFailureRollsBack(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	tm := NewTransactionManager(mock)
	locker := NewAdvisoryLocker()
	lockErr := errors.New("lock timeout")

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs("allocation:employee:emp-2").
		WillReturnError(lockErr)
	mock.ExpectRollback()

	err = tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		return locker.LockEmployee(ctx, "emp-2")
	})
	if !errors.Is(err, lockErr) {
		t.Fatalf("expected lock error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
