package facility

import (
	"time"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
)

// Facility は警備対象の集合住宅です。
type Facility struct {
	ID                  string
	TenantID            string
	Name                string
	TaxID               string
	Address             *string
	IdealHeadcount      int
	ShiftChangeoverTime calendar.TimeOfDay
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
