package handler

import (
	"context"
	"math"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFields_Integer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   *structpb.Value
		want    int
		wantErr bool
	}{
		{name: "number", value: structpb.NewNumberValue(12), want: 12},
		{name: "numeric string", value: structpb.NewStringValue(" 12 "), want: 12},
		{name: "max int32", value: structpb.NewNumberValue(math.MaxInt32), want: math.MaxInt32},
		{name: "fraction", value: structpb.NewNumberValue(1.5), wantErr: true},
		{name: "huge number", value: structpb.NewNumberValue(1e30), wantErr: true},
		{name: "infinity", value: structpb.NewNumberValue(math.Inf(1)), wantErr: true},
		{name: "negative infinity", value: structpb.NewNumberValue(math.Inf(-1)), wantErr: true},
		{name: "above int32", value: structpb.NewNumberValue(math.MaxInt32 + 1), wantErr: true},
		{name: "huge string", value: structpb.NewStringValue("99999999999999999999"), wantErr: true},
		{name: "boolean", value: structpb.NewBoolValue(true), wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := fields{"n": tc.value}.integer("n")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestStaffingGrpcHandler_CalculateContractPrice_EmployeeCountOverflow(t *testing.T) {
	t.Parallel()

	h := NewStaffingGrpcHandler(nil, nil, nil, nil)
	req := referencePriceRequest()
	req["employeeCount"] = 1e30

	_, err := h.CalculateContractPrice(context.Background(), mustStruct(t, req))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
