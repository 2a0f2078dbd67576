package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/allocation"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/cascade"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/contract"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/employee"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/pricing"
)

func TestToStatusError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", pricing.ErrMarginsTooHigh, codes.InvalidArgument},
		{"wrapped validation", fmt.Errorf("contract: %w", contract.ErrInvalidPeriod), codes.InvalidArgument},
		{"duplicate national id", employee.ErrNationalIDAlreadyExists, codes.AlreadyExists},
		{"duplicate tax id", facility.ErrTaxIDAlreadyExists, codes.AlreadyExists},
		{"facility mismatch", allocation.ErrFacilityMismatch, codes.FailedPrecondition},
		{"active contract", contract.ErrActiveContractExists, codes.FailedPrecondition},
		{"headcount mismatch", &cascade.HeadcountMismatchError{EmployeeCount: 12, IdealHeadcount: 10}, codes.FailedPrecondition},
		{"not found", allocation.ErrPostNotFound, codes.NotFound},
		{"integrity wrapping not found", &cascade.IntegrityError{Step: cascade.StepContract, Err: contract.ErrFacilityNotFound}, codes.Internal},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"unknown", errors.New("boom"), codes.Internal},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := status.Code(toStatusError(tc.err)); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}

	if toStatusError(nil) != nil {
		t.Fatal("nil error must map to nil")
	}
}
