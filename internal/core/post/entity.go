package post

import (
	"fmt"
	"time"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
)

// ShiftSpan はすべての勤務ポストの時間帯の固定長です。
const ShiftSpan = 12 * time.Hour

// WorkPost は人員を必要とする施設の 12 時間固定の時間帯です。
type WorkPost struct {
	ID                string
	FacilityID        string
	ShiftStart        calendar.TimeOfDay
	ShiftEnd          calendar.TimeOfDay
	AllowsDoubleShift bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Span は日付をまたぐ場合も含めた時間帯の長さを返します。
func (p *WorkPost) Span() time.Duration {
	return p.ShiftStart.Until(p.ShiftEnd)
}

// ValidateWindow は start から end までの時間帯が ShiftSpan であることを検証します。
func ValidateWindow(start, end calendar.TimeOfDay) error {
	if span := start.Until(end); span != ShiftSpan {
		return fmt.Errorf("%w: %s to %s spans %s", ErrInvalidShiftSpan, start, end, span)
	}
	return nil
}
