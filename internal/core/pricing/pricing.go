// Package pricing は警備契約の運用コストと各種マージン率から月額の契約価格と
// その内訳を求める逆算ロジックを実装します。
//
// 率はすべて [0,1] の小数です。金額の出力はそれぞれ独立に小数第 2 位へ四捨五入し
// (0 から遠い方へ丸めます)、給与原資は丸めた値の差額として求めるため、
// 5 つの内訳の合計は常に丸めた月額と一致します。
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BillingDaysPerMonth は従業員 1 人あたりの月間請求日数です。
const BillingDaysPerMonth = 30

// MoneyPlaces は金額の小数点以下の桁数です。
const MoneyPlaces = 2

var one = decimal.NewFromInt(1)

// Input は契約のコストとマージン率の入力値です。
type Input struct {
	DailyRate                 decimal.Decimal
	EmployeeCount             int
	MonthlyExtraBenefits      decimal.Decimal
	TaxRate                   decimal.Decimal
	ProfitMarginRate          decimal.Decimal
	AbsenceCoverageMarginRate decimal.Decimal
}

// Breakdown は価格計算済みの契約内訳です。
type Breakdown struct {
	MonthlyTotalValue     decimal.Decimal
	BaseCost              decimal.Decimal
	TaxAmount             decimal.Decimal
	ProfitAmount          decimal.Decimal
	AbsenceCoverageAmount decimal.Decimal
	BenefitsAmount        decimal.Decimal
	PayrollBase           decimal.Decimal
}

// Calculate は契約の価格を算出します。副作用はありません。
func Calculate(in Input) (Breakdown, error) {
	if err := ValidateCosts(in.DailyRate, in.EmployeeCount, in.MonthlyExtraBenefits); err != nil {
		return Breakdown{}, err
	}

	marginSum, err := MarginSum(in.TaxRate, in.ProfitMarginRate, in.AbsenceCoverageMarginRate)
	if err != nil {
		return Breakdown{}, err
	}

	baseCost := in.DailyRate.
		Mul(decimal.NewFromInt(BillingDaysPerMonth)).
		Mul(decimal.NewFromInt(int64(in.EmployeeCount))).
		Add(in.MonthlyExtraBenefits)

	total := RoundMoney(baseCost.Div(one.Sub(marginSum)))
	if !total.IsPositive() {
		return Breakdown{}, fmt.Errorf("%w (total %s)", ErrNonPositiveTotal, total.StringFixed(MoneyPlaces))
	}
	shares := SplitMargins(total, in.TaxRate, in.ProfitMarginRate, in.AbsenceCoverageMarginRate)
	benefits := RoundMoney(in.MonthlyExtraBenefits)
	payroll := shares.Residual(total, benefits)
	if !payroll.IsPositive() {
		return Breakdown{}, fmt.Errorf("%w (payroll base %s)", ErrNonPositivePayroll, payroll.StringFixed(MoneyPlaces))
	}

	return Breakdown{
		MonthlyTotalValue:     total,
		BaseCost:              RoundMoney(baseCost),
		TaxAmount:             shares.Tax,
		ProfitAmount:          shares.Profit,
		AbsenceCoverageAmount: shares.AbsenceCoverage,
		BenefitsAmount:        benefits,
		PayrollBase:           payroll,
	}, nil
}

// ValidateCosts は契約のコスト入力を検証します。
func ValidateCosts(dailyRate decimal.Decimal, employeeCount int, monthlyExtraBenefits decimal.Decimal) error {
	if !dailyRate.IsPositive() {
		return ErrInvalidDailyRate
	}
	if employeeCount <= 0 {
		return ErrInvalidEmployeeCount
	}
	if monthlyExtraBenefits.IsNegative() {
		return ErrNegativeBenefits
	}
	return nil
}

// ValidateRate は rate が [0,1] の小数であることを検証します。name はエラーの接頭辞です。
func ValidateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(one) {
		return fmt.Errorf("%s: %w", name, ErrRateOutOfRange)
	}
	return nil
}

// MarginSum は 3 つのマージン率を検証し、その合計を返します。合計は 1 未満である必要があります。
func MarginSum(taxRate, profitMarginRate, absenceCoverageMarginRate decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateRate("tax rate", taxRate); err != nil {
		return decimal.Zero, err
	}
	if err := ValidateRate("profit margin rate", profitMarginRate); err != nil {
		return decimal.Zero, err
	}
	if err := ValidateRate("absence coverage margin rate", absenceCoverageMarginRate); err != nil {
		return decimal.Zero, err
	}

	sum := taxRate.Add(profitMarginRate).Add(absenceCoverageMarginRate)
	if sum.GreaterThanOrEqual(one) {
		return decimal.Zero, fmt.Errorf("%w (sum %s)", ErrMarginsTooHigh, sum.String())
	}
	return sum, nil
}

// MarginShares は契約価格から差し引かれる丸め済みの金額です。
type MarginShares struct {
	Tax             decimal.Decimal
	Profit          decimal.Decimal
	AbsenceCoverage decimal.Decimal
}

// SplitMargins は total に各率を掛け、それぞれ丸めます。
func SplitMargins(total, taxRate, profitMarginRate, absenceCoverageMarginRate decimal.Decimal) MarginShares {
	return MarginShares{
		Tax:             RoundMoney(total.Mul(taxRate)),
		Profit:          RoundMoney(total.Mul(profitMarginRate)),
		AbsenceCoverage: RoundMoney(total.Mul(absenceCoverageMarginRate)),
	}
}

// Residual は total から各マージンと福利厚生費を差し引いた残りです。
func (s MarginShares) Residual(total, benefits decimal.Decimal) decimal.Decimal {
	return total.Sub(s.Tax).Sub(s.Profit).Sub(s.AbsenceCoverage).Sub(benefits)
}

// RoundMoney は小数第 2 位へ四捨五入します(0 から遠い方へ丸めます)。
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
