package contract

import "github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"

var (
	ErrContractNotFound        = domainerr.NotFound("contract: not found")
	ErrFacilityNotFound        = domainerr.NotFound("contract: facility not found")
	ErrActiveContractExists    = domainerr.Conflict("contract: facility already has an active contract")
	ErrInvalidID               = domainerr.Validation("contract: invalid id")
	ErrInvalidFacilityID       = domainerr.Validation("contract: invalid facility id")
	ErrInvalidStatus           = domainerr.Validation("contract: invalid status")
	ErrInvalidPeriod           = domainerr.Validation("contract: end date cannot be before start date")
	ErrInvalidMonthlyTotal     = domainerr.Validation("contract: monthly total value must be greater than zero")
	ErrNonPositivePayrollBase  = domainerr.Validation("contract: payroll base is non-positive, review tax, margin and benefit inputs")
	ErrNoEmployeesToCompensate = domainerr.Validation("contract: employee count must be greater than zero to derive compensation")
)
