package allocation

import (
	"fmt"
	"time"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"
)

var (
	ErrAllocationNotFound = domainerr.NotFound("allocation: not found")
	ErrEmployeeNotFound   = domainerr.NotFound("allocation: employee not found")
	ErrPostNotFound       = domainerr.NotFound("allocation: post not found")
	ErrFacilityMismatch   = domainerr.Conflict("allocation: employee and post belong to different facilities")
	ErrAdjacentAllocation = domainerr.Conflict("allocation: employee already has an allocation on an adjacent day")
	ErrInvalidID          = domainerr.Validation("allocation: invalid id")
	ErrInvalidEmployeeID  = domainerr.Validation("allocation: invalid employee id")
	ErrInvalidPostID      = domainerr.Validation("allocation: invalid post id")
	ErrInvalidDate        = domainerr.Validation("allocation: invalid date")
	ErrInvalidStatus      = domainerr.Validation("allocation: invalid status")
	ErrInvalidKind        = domainerr.Validation("allocation: invalid kind")
)

// AdjacentDayError は指定日を妨げている割り当てを表します。
type AdjacentDayError struct {
	EmployeeID   string
	Date         time.Time
	ConflictID   string
	ConflictDate time.Time
}

func (e *AdjacentDayError) Error() string {
	return fmt.Sprintf(
		"allocation: employee %s already has allocation %s on %s, adjacent to %s",
		e.EmployeeID,
		e.ConflictID,
		e.ConflictDate.Format(calendar.DateLayout),
		e.Date.Format(calendar.DateLayout),
	)
}

// Unwrap は ErrAdjacentAllocation を返します。
func (e *AdjacentDayError) Unwrap() error {
	return ErrAdjacentAllocation
}
