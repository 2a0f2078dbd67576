package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/employee"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case domainerr.IsIntegrity(err):
		return status.Error(codes.Internal, err.Error())
	case domainerr.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrNationalIDAlreadyExists), errors.Is(err, facility.ErrTaxIDAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case domainerr.IsConflict(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	case domainerr.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func invalidArgument(err error) error {
	return status.Error(codes.InvalidArgument, err.Error())
}
