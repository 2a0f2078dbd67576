package employee

import "time"

// Status は警備員の在籍状態を表します。
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ShiftPattern は従業員の勤務形態です。
type ShiftPattern string

const (
	// ShiftPatternStandard は通常の日勤です。
	ShiftPatternStandard ShiftPattern = "STANDARD"
	// ShiftPatternTwelveByThirtySix は 12 時間勤務と 36 時間休みを繰り返し、契約の夜勤手当が付きます。
	ShiftPatternTwelveByThirtySix ShiftPattern = "TWELVE_BY_THIRTY_SIX"
)

// Employee は 1 つの施設に所属する警備員です。
type Employee struct {
	ID           string
	TenantID     string
	FacilityID   string
	Name         string
	NationalID   string
	ShiftPattern ShiftPattern
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WorksNightRotation は従業員に夜勤手当が支払われるかどうかを返します。
func (e *Employee) WorksNightRotation() bool {
	return e.ShiftPattern == ShiftPatternTwelveByThirtySix
}
