package allocation

import (
	"context"
	"time"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
)

// Checker は保存済みの割り当てに対して連続日ルールを検証します。
type Checker struct {
	allocations Repository
}

// NewChecker は Checker を生成します。
func NewChecker(allocations Repository) *Checker {
	return &Checker{allocations: allocations}
}

// Check は date に kind を割り当てると従業員が連続した 2 日に勤務する場合、
// *AdjacentDayError を返します。excludeID は更新対象の割り当てを除外します。
func (c *Checker) Check(ctx context.Context, employeeID string, date time.Time, kind Kind, excludeID string) error {
	if kind.ExemptFromAdjacency() {
		return nil
	}

	existing, err := c.allocations.ListByEmployee(ctx, employeeID)
	if err != nil {
		return err
	}

	if blocking := FindAdjacentConflict(existing, date, excludeID); blocking != nil {
		return &AdjacentDayError{
			EmployeeID:   employeeID,
			Date:         calendar.Normalize(date),
			ConflictID:   blocking.ID,
			ConflictDate: calendar.Normalize(blocking.Date),
		}
	}
	return nil
}

// FindAdjacentConflict は existing のうち date の前日または翌日にある最初の割り当てを返します。
// 計画的ダブルシフトと excludeID は無視し、ステータスは問いません。
func FindAdjacentConflict(existing []*Allocation, date time.Time, excludeID string) *Allocation {
	before := calendar.AddDays(date, -1)
	after := calendar.AddDays(date, 1)

	for _, a := range existing {
		if a == nil || a.ID == excludeID || a.Kind.ExemptFromAdjacency() {
			continue
		}
		if calendar.SameDate(a.Date, before) || calendar.SameDate(a.Date, after) {
			return a
		}
	}
	return nil
}
