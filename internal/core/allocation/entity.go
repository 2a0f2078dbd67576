package allocation

import "time"

// Status は割り当ての結果を表します。
type Status string

const (
	StatusConfirmed       Status = "CONFIRMED"
	StatusCancelled       Status = "CANCELLED"
	StatusAbsenceRecorded Status = "ABSENCE_RECORDED"
)

// Kind は従業員が割り当てられた理由を分類します。
type Kind string

const (
	KindRegular Kind = "REGULAR"
	// KindPlannedDoubleShift は意図的な連続勤務で、連続日ルールの対象外となる唯一の種別です。
	KindPlannedDoubleShift Kind = "PLANNED_DOUBLE_SHIFT"
	KindSubstitution       Kind = "SUBSTITUTION"
)

// Allocation は 1 人の従業員を 1 つのポストに特定の日付で割り当てます。
// 従業員・ポスト・日付は作成後に変更できません。
type Allocation struct {
	ID         string
	TenantID   string
	EmployeeID string
	PostID     string
	Date       time.Time
	Status     Status
	Kind       Kind
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExemptFromAdjacency は kind が連続日ルールの対象外かどうかを返します。
func (k Kind) ExemptFromAdjacency() bool {
	return k == KindPlannedDoubleShift
}

// IsValidStatus は status が既知の割り当てステータスかどうかを返します。
func IsValidStatus(status Status) bool {
	switch status {
	case StatusConfirmed, StatusCancelled, StatusAbsenceRecorded:
		return true
	default:
		return false
	}
}

// IsValidKind は kind が既知の割り当て種別かどうかを返します。
func IsValidKind(kind Kind) bool {
	switch kind {
	case KindRegular, KindPlannedDoubleShift, KindSubstitution:
		return true
	default:
		return false
	}
}
