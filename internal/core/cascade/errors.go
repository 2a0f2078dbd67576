package cascade

import (
	"fmt"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"
)

var (
	ErrEmployeeCountMismatch = domainerr.Conflict("cascade: contract employee count must match facility ideal headcount")
	ErrInvalidPostCount      = domainerr.Validation("cascade: post count must be greater than zero")
	ErrHeadcountNotDivisible = domainerr.Validation("cascade: ideal headcount must be divisible by the post count")
	ErrStartDateInPast       = domainerr.Validation("cascade: start date cannot be in the past")
	ErrEndNotAfterStart      = domainerr.Validation("cascade: end date must be after start date")
	ErrPostSpanMismatch      = domainerr.Validation("cascade: the post count does not produce 12h posts")
)

// HeadcountMismatchError は従業員数の不一致を両方の値とともに表します。
type HeadcountMismatchError struct {
	EmployeeCount  int
	IdealHeadcount int
}

func (e *HeadcountMismatchError) Error() string {
	return fmt.Sprintf(
		"cascade: contract employee count (%d) must match facility ideal headcount (%d)",
		e.EmployeeCount,
		e.IdealHeadcount,
	)
}

// Unwrap は ErrEmployeeCountMismatch を返します。
func (e *HeadcountMismatchError) Unwrap() error {
	return ErrEmployeeCountMismatch
}

// Step はカスケード作成の各ステップを表します。
type Step string

const (
	StepContract Step = "contract"
	StepPosts    Step = "posts"
)

// IntegrityError は施設作成後に失敗したカスケードを表します。
// 先行ステップの取り消しにも失敗した場合は Compensation が設定されます。
type IntegrityError struct {
	Step         Step
	Err          error
	Compensation error
}

func (e *IntegrityError) Error() string {
	msg := fmt.Sprintf("cascade: %s step failed: %v", e.Step, e.Err)
	if e.Compensation != nil {
		msg += fmt.Sprintf(" (compensation failed: %v)", e.Compensation)
	}
	return msg
}

// Unwrap は整合性カテゴリと原因の両方を返します。
func (e *IntegrityError) Unwrap() []error {
	return []error{domainerr.ErrIntegrity, e.Err}
}
