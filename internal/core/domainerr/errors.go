// Package domainerr はコア層の全パッケージで共有するエラーカテゴリを定義します。
//
// 各パッケージは Validation / NotFound / Conflict で独自のセンチネルエラーを宣言し、
// アダプター層は具体的なエラーを知らなくても errors.Is でカテゴリを判定できます。
package domainerr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation は不正または範囲外の入力を表します。
	ErrValidation = errors.New("validation error")
	// ErrNotFound は参照先の集約が存在しないことを表します。
	ErrNotFound = errors.New("not found")
	// ErrConflict は既存の状態とのビジネスルール上の競合を表します。
	ErrConflict = errors.New("conflict")
	// ErrIntegrity は複数ステップの操作が途中まで適用されたことを表します。
	ErrIntegrity = errors.New("integrity error")
)

// Error はカテゴリ付きのドメインエラーです。同一性で比較されるため、
// パッケージレベルの *Error は errors.Is のセンチネルとして使えます。
type Error struct {
	category error
	msg      string
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap はカテゴリのセンチネルを返します。
func (e *Error) Unwrap() error {
	return e.category
}

// Validation は検証カテゴリのエラーを生成します。
func Validation(msg string) error {
	return &Error{category: ErrValidation, msg: msg}
}

// NotFound は未検出カテゴリのエラーを生成します。
func NotFound(msg string) error {
	return &Error{category: ErrNotFound, msg: msg}
}

// Conflict は競合カテゴリのエラーを生成します。
func Conflict(msg string) error {
	return &Error{category: ErrConflict, msg: msg}
}

// Validationf は個別に判定する必要のない検証エラーを整形して返します。
func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}

// IsValidation は err が検証カテゴリに属するかどうかを返します。
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound は err が未検出カテゴリに属するかどうかを返します。
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict は err が競合カテゴリに属するかどうかを返します。
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsIntegrity は err が整合性カテゴリに属するかどうかを返します。
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrIntegrity)
}

// IsClientError は err が呼び出し側の入力、または呼び出し側で解消できる競合によるものかどうかを返します。
func IsClientError(err error) bool {
	return IsValidation(err) || IsConflict(err)
}
