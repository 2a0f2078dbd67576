package postgres

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoTransaction はトランザクション外でトランザクションスコープのロックを要求した場合に返却されます。
var ErrNoTransaction = errors.New("postgres: advisory lock requires a transaction")

// AdvisoryLocker はトランザクションスコープのアドバイザリロックを取得します。
// ロックは外側のトランザクションのコミットまたはロールバック時に解放されます。
type AdvisoryLocker struct{}

// NewAdvisoryLocker は AdvisoryLocker を生成します。
func NewAdvisoryLocker() *AdvisoryLocker {
	return &AdvisoryLocker{}
}

// Lock は ctx のトランザクションが key のロックを取得するまでブロックします。
func (l *AdvisoryLocker) Lock(ctx context.Context, key string) error {
	tx, ok := txFromContext(ctx)
	if !ok {
		return ErrNoTransaction
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("postgres: advisory lock %s: %w", key, err)
	}
	return nil
}

// LockEmployee は従業員 1 人分の割り当ての書き込みを直列化します。
func (l *AdvisoryLocker) LockEmployee(ctx context.Context, employeeID string) error {
	return l.Lock(ctx, "allocation:employee:"+employeeID)
}
