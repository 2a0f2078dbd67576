package pricing

import "github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"

var (
	ErrInvalidDailyRate     = domainerr.Validation("pricing: daily rate must be greater than zero")
	ErrInvalidEmployeeCount = domainerr.Validation("pricing: employee count must be greater than zero")
	ErrNegativeBenefits     = domainerr.Validation("pricing: monthly extra benefits cannot be negative")
	ErrRateOutOfRange       = domainerr.Validation("pricing: rate must be a fraction between 0 and 1")
	ErrMarginsTooHigh       = domainerr.Validation("pricing: margins cannot total 100% or more")
	ErrNonPositiveTotal     = domainerr.Validation("pricing: monthly total must be greater than zero")
	ErrNonPositivePayroll   = domainerr.Validation("pricing: payroll base must be greater than zero, margins and benefits consume the whole contract value")
)
