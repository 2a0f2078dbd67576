package contract

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/pricing"
)

// Status は契約の精算状態を表します。
type Status string

const (
	StatusPaid     Status = "PAID"
	StatusPending  Status = "PENDING"
	StatusInactive Status = "INACTIVE"
)

// Terms は契約の価格計算入力と有効期間です。各率は [0,1] の小数です。
type Terms struct {
	DailyRate                 decimal.Decimal
	NightShiftSurchargeRate   decimal.Decimal
	MonthlyExtraBenefits      decimal.Decimal
	TaxRate                   decimal.Decimal
	EmployeeCount             int
	ProfitMarginRate          decimal.Decimal
	AbsenceCoverageMarginRate decimal.Decimal
	StartDate                 time.Time
	EndDate                   time.Time
}

// PricingInput は価格計算エンジン向けの入力を返します。
func (t Terms) PricingInput() pricing.Input {
	return pricing.Input{
		DailyRate:                 t.DailyRate,
		EmployeeCount:             t.EmployeeCount,
		MonthlyExtraBenefits:      t.MonthlyExtraBenefits,
		TaxRate:                   t.TaxRate,
		ProfitMarginRate:          t.ProfitMarginRate,
		AbsenceCoverageMarginRate: t.AbsenceCoverageMarginRate,
	}
}

// Contract は施設の警備人員配置の価格を定める契約です。MonthlyTotalValue が正式な価格です。
type Contract struct {
	ID                string
	FacilityID        string
	TenantID          string
	Terms             Terms
	MonthlyTotalValue decimal.Decimal
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// InForce は契約が施設の有効な契約として扱われるかどうかを返します。
func (c *Contract) InForce() bool {
	return c.Status != StatusInactive
}

// IsValidStatus は status が既知の契約ステータスかどうかを返します。
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPaid, StatusPending, StatusInactive:
		return true
	default:
		return false
	}
}
