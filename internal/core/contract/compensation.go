package contract

import (
	"github.com/shopspring/decimal"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/pricing"
)

// Compensation は契約から導出される従業員 1 人分の月額報酬です。都度計算し、保存しません。
type Compensation struct {
	SalaryBase          decimal.Decimal
	NightShiftSurcharge decimal.Decimal
	Benefits            decimal.Decimal
	Total               decimal.Decimal
}

// PayrollBase はマージンと福利厚生を差し引いた後に基本給へ充てられる月額です。
func (c *Contract) PayrollBase() decimal.Decimal {
	shares := pricing.SplitMargins(
		c.MonthlyTotalValue,
		c.Terms.TaxRate,
		c.Terms.ProfitMarginRate,
		c.Terms.AbsenceCoverageMarginRate,
	)
	return shares.Residual(c.MonthlyTotalValue, pricing.RoundMoney(c.Terms.MonthlyExtraBenefits))
}

// SalaryBasePerEmployee は給与原資を契約人数で均等に割ります。
func (c *Contract) SalaryBasePerEmployee() (decimal.Decimal, error) {
	if c.Terms.EmployeeCount <= 0 {
		return decimal.Zero, ErrNoEmployeesToCompensate
	}

	payroll := c.PayrollBase()
	if !payroll.IsPositive() {
		return decimal.Zero, ErrNonPositivePayrollBase
	}

	return pricing.RoundMoney(payroll.Div(decimal.NewFromInt(int64(c.Terms.EmployeeCount)))), nil
}

// NightShiftSurcharge は 12x36 勤務の従業員に salaryBase へ上乗せする手当です。
func (c *Contract) NightShiftSurcharge(salaryBase decimal.Decimal) decimal.Decimal {
	return pricing.RoundMoney(salaryBase.Mul(c.Terms.NightShiftSurchargeRate))
}

// BenefitsPerEmployee は月額の福利厚生費を均等に割ります。
func (c *Contract) BenefitsPerEmployee() (decimal.Decimal, error) {
	if c.Terms.EmployeeCount <= 0 {
		return decimal.Zero, ErrNoEmployeesToCompensate
	}
	return pricing.RoundMoney(c.Terms.MonthlyExtraBenefits.Div(decimal.NewFromInt(int64(c.Terms.EmployeeCount)))), nil
}

// CompensationFor は従業員 1 人分の報酬を算出します。夜勤手当は nightShift が true の場合のみ加算します。
func (c *Contract) CompensationFor(nightShift bool) (Compensation, error) {
	salary, err := c.SalaryBasePerEmployee()
	if err != nil {
		return Compensation{}, err
	}

	benefits, err := c.BenefitsPerEmployee()
	if err != nil {
		return Compensation{}, err
	}

	surcharge := decimal.Zero
	if nightShift {
		surcharge = c.NightShiftSurcharge(salary)
	}

	return Compensation{
		SalaryBase:          salary,
		NightShiftSurcharge: surcharge,
		Benefits:            benefits,
		Total:               salary.Add(surcharge).Add(benefits),
	}, nil
}
