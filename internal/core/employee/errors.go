package employee

import "github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"

var (
	ErrInvalidID               = domainerr.Validation("employee: invalid id")
	ErrInvalidFacilityID       = domainerr.Validation("employee: invalid facility id")
	ErrInvalidName             = domainerr.Validation("employee: invalid name")
	ErrInvalidNationalID       = domainerr.Validation("employee: national id must have 11 digits")
	ErrInvalidShiftPattern     = domainerr.Validation("employee: invalid shift pattern")
	ErrInvalidStatus           = domainerr.Validation("employee: invalid status")
	ErrInvalidPageSize         = domainerr.Validation("employee: invalid page size")
	ErrInvalidPageToken        = domainerr.Validation("employee: invalid page token")
	ErrEmployeeNotFound        = domainerr.NotFound("employee: not found")
	ErrFacilityNotFound        = domainerr.NotFound("employee: facility not found")
	ErrNoContractInForce       = domainerr.NotFound("employee: facility has no contract in force")
	ErrNationalIDAlreadyExists = domainerr.Conflict("employee: national id already exists")
)
