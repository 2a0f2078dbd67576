// Package unitofwork はコアサービスが利用するストレージのコミット処理を抽象化します。
package unitofwork

import "context"

// TransactionManager は fn を 1 つの作業単位の中で実行します。
// 渡されたコンテキストを使ってリポジトリ経由で保存した内容は、まとめてコミットされるか、
// fn がエラーを返した場合はすべて破棄されます。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// Noop は fn をそのまま実行します。トランザクション対応のストレージがない場合に使います。
type Noop struct{}

// WithinReadOnly は ctx で fn を実行します。
func (Noop) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// WithinReadWrite は ctx で fn を実行します。
func (Noop) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// OrNoop は tx を返します。tx が nil の場合は Noop を返します。
func OrNoop(tx TransactionManager) TransactionManager {
	if tx == nil {
		return Noop{}
	}
	return tx
}
