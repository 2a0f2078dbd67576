package handler

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/allocation"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/cascade"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/contract"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/employee"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/post"
)

type stubAllocations struct {
	createInput allocation.CreateAllocationInput
	createOut   *allocation.Allocation
	createErr   error

	updateInput allocation.UpdateAllocationInput
	updateOut   *allocation.Allocation
	updateErr   error
}

func (s *stubAllocations) CreateAllocation(ctx context.Context, in allocation.CreateAllocationInput) (*allocation.Allocation, error) {
	s.createInput = in
	return s.createOut, s.createErr
}

func (s *stubAllocations) UpdateAllocation(ctx context.Context, in allocation.UpdateAllocationInput) (*allocation.Allocation, error) {
	s.updateInput = in
	return s.updateOut, s.updateErr
}

type stubCascades struct {
	validateInput cascade.Input
	validateOut   *cascade.ValidationResult

	createInput cascade.Input
	createOut   *cascade.Result
	createErr   error
}

func (s *stubCascades) ValidateCascadeCreation(ctx context.Context, in cascade.Input) *cascade.ValidationResult {
	s.validateInput = in
	return s.validateOut
}

func (s *stubCascades) CreateCascade(ctx context.Context, in cascade.Input) (*cascade.Result, error) {
	s.createInput = in
	return s.createOut, s.createErr
}

type stubCompensation struct {
	input employee.GetEmployeeInput
	out   *contract.Compensation
	err   error
}

func (s *stubCompensation) GetCompensation(ctx context.Context, in employee.GetEmployeeInput) (*contract.Compensation, error) {
	s.input = in
	return s.out, s.err
}

type stubCapacity struct {
	input post.GetPostInput
	out   *post.Capacity
	err   error
}

func (s *stubCapacity) GetPostCapacity(ctx context.Context, in post.GetPostInput) (*post.Capacity, error) {
	s.input = in
	return s.out, s.err
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("structpb.NewStruct: %v", err)
	}
	return s
}

func referencePriceRequest() map[string]any {
	return map[string]any{
		"dailyRate":                 "100",
		"employeeCount":             12,
		"monthlyExtraBenefits":      "3600",
		"taxRate":                   "0.15",
		"profitMarginRate":          0.20,
		"absenceCoverageMarginRate": "0.10",
	}
}

func TestStaffingGrpcHandler_CalculateContractPrice(t *testing.T) {
	t.Parallel()

	h := NewStaffingGrpcHandler(nil, nil, nil, nil)

	resp, err := h.CalculateContractPrice(context.Background(), mustStruct(t, referencePriceRequest()))
	if err != nil {
		t.Fatalf("CalculateContractPrice returned error: %v", err)
	}

	want := map[string]string{
		"monthlyTotalValue":     "72000.00",
		"baseCost":              "39600.00",
		"taxAmount":             "10800.00",
		"profitAmount":          "14400.00",
		"absenceCoverageAmount": "7200.00",
		"benefitsAmount":        "3600.00",
		"payrollBase":           "36000.00",
	}
	for key, value := range want {
		if got := resp.GetFields()[key].GetStringValue(); got != value {
			t.Errorf("%s: expected %s, got %s", key, value, got)
		}
	}
}

func TestStaffingGrpcHandler_CalculateContractPrice_MarginsTooHigh(t *testing.T) {
	t.Parallel()

	h := NewStaffingGrpcHandler(nil, nil, nil, nil)
	req := referencePriceRequest()
	req["taxRate"] = "0.5"
	req["profitMarginRate"] = "0.3"
	req["absenceCoverageMarginRate"] = "0.2"

	_, err := h.CalculateContractPrice(context.Background(), mustStruct(t, req))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestStaffingGrpcHandler_CalculateContractPrice_MalformedDecimal(t *testing.T) {
	t.Parallel()

	h := NewStaffingGrpcHandler(nil, nil, nil, nil)
	req := referencePriceRequest()
	req["dailyRate"] = "cem"

	_, err := h.CalculateContractPrice(context.Background(), mustStruct(t, req))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestStaffingGrpcHandler_CreateAllocation(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	stub := &stubAllocations{createOut: &allocation.Allocation{
		ID:         "alloc-1",
		EmployeeID: "emp-1",
		PostID:     "post-1",
		Date:       date,
		Status:     allocation.StatusConfirmed,
		Kind:       allocation.KindRegular,
	}}
	h := NewStaffingGrpcHandler(stub, nil, nil, nil)

	resp, err := h.CreateAllocation(context.Background(), mustStruct(t, map[string]any{
		"employeeId": "emp-1",
		"postId":     "post-1",
		"date":       "2026-03-10",
		"status":     "confirmed",
		"kind":       "REGULAR",
	}))
	if err != nil {
		t.Fatalf("CreateAllocation returned error: %v", err)
	}

	if stub.createInput.Status != allocation.StatusConfirmed {
		t.Fatalf("expected status to be upper-cased, got %s", stub.createInput.Status)
	}
	if !stub.createInput.Date.Equal(date) {
		t.Fatalf("expected date %v, got %v", date, stub.createInput.Date)
	}

	got := resp.GetFields()["allocation"].GetStructValue().GetFields()
	if got["id"].GetStringValue() != "alloc-1" || got["date"].GetStringValue() != "2026-03-10" {
		t.Fatalf("unexpected allocation payload %v", got)
	}
}

func TestStaffingGrpcHandler_CreateAllocation_AdjacentDay(t *testing.T) {
	t.Parallel()

	stub := &stubAllocations{createErr: &allocation.AdjacentDayError{
		EmployeeID:   "emp-1",
		Date:         time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		ConflictID:   "alloc-0",
		ConflictDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}}
	h := NewStaffingGrpcHandler(stub, nil, nil, nil)

	_, err := h.CreateAllocation(context.Background(), mustStruct(t, map[string]any{
		"employeeId": "emp-1",
		"postId":     "post-1",
		"date":       "2026-03-11",
		"status":     "CONFIRMED",
		"kind":       "REGULAR",
	}))
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", err)
	}
}

func TestStaffingGrpcHandler_CreateAllocation_MissingDate(t *testing.T) {
	t.Parallel()

	stub := &stubAllocations{}
	h := NewStaffingGrpcHandler(stub, nil, nil, nil)

	_, err := h.CreateAllocation(context.Background(), mustStruct(t, map[string]any{
		"employeeId": "emp-1",
		"postId":     "post-1",
	}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if stub.createInput.EmployeeID != "" {
		t.Fatal("use case must not be called with a malformed request")
	}
}

func TestStaffingGrpcHandler_UpdateAllocation(t *testing.T) {
	t.Parallel()

	stub := &stubAllocations{updateOut: &allocation.Allocation{
		ID:     "alloc-1",
		Date:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status: allocation.StatusAbsenceRecorded,
		Kind:   allocation.KindSubstitution,
	}}
	h := NewStaffingGrpcHandler(stub, nil, nil, nil)

	resp, err := h.UpdateAllocation(context.Background(), mustStruct(t, map[string]any{
		"id":     "alloc-1",
		"status": "ABSENCE_RECORDED",
		"kind":   "SUBSTITUTION",
	}))
	if err != nil {
		t.Fatalf("UpdateAllocation returned error: %v", err)
	}
	if stub.updateInput.ID != "alloc-1" || stub.updateInput.Kind != allocation.KindSubstitution {
		t.Fatalf("unexpected update input %+v", stub.updateInput)
	}
	if resp.GetFields()["allocation"].GetStructValue().GetFields()["status"].GetStringValue() != "ABSENCE_RECORDED" {
		t.Fatalf("unexpected response %v", resp)
	}
}

func cascadeRequest() map[string]any {
	contractReq := referencePriceRequest()
	contractReq["nightShiftSurchargeRate"] = "0.20"
	contractReq["startDate"] = "2026-03-01"
	contractReq["endDate"] = "2027-02-28"

	return map[string]any{
		"facility": map[string]any{
			"name":                "Residencial Aurora",
			"taxId":               "12.345.678/0001-90",
			"idealHeadcount":      12,
			"shiftChangeoverTime": "07:00",
		},
		"contract":        contractReq,
		"autoCreatePosts": true,
		"postCount":       2,
	}
}

func TestStaffingGrpcHandler_ValidateCascadeCreation(t *testing.T) {
	t.Parallel()

	stub := &stubCascades{validateOut: &cascade.ValidationResult{
		Valid:        false,
		ErrorMessage: "cascade: contract employee count (12) must match facility ideal headcount (10)",
	}}
	h := NewStaffingGrpcHandler(nil, stub, nil, nil)

	resp, err := h.ValidateCascadeCreation(context.Background(), mustStruct(t, cascadeRequest()))
	if err != nil {
		t.Fatalf("ValidateCascadeCreation returned error: %v", err)
	}

	if resp.GetFields()["valid"].GetBoolValue() {
		t.Fatal("expected invalid result")
	}
	if resp.GetFields()["errorMessage"].GetStringValue() == "" {
		t.Fatal("expected error message")
	}

	in := stub.validateInput
	if !in.AutoCreatePosts || in.PostCount != 2 {
		t.Fatalf("unexpected post settings %+v", in)
	}
	if in.Facility.ShiftChangeoverTime != calendar.MustTimeOfDay(7, 0) {
		t.Fatalf("unexpected changeover %s", in.Facility.ShiftChangeoverTime)
	}
	if !in.Contract.Terms.NightShiftSurchargeRate.Equal(decimal.RequireFromString("0.2")) {
		t.Fatalf("unexpected surcharge %s", in.Contract.Terms.NightShiftSurchargeRate)
	}
	if in.Contract.MonthlyTotalValue != nil {
		t.Fatal("monthly total must stay unset when omitted")
	}
}

func TestStaffingGrpcHandler_ValidateCascadeCreation_ValidOmitsMessage(t *testing.T) {
	t.Parallel()

	h := NewStaffingGrpcHandler(nil, &stubCascades{validateOut: &cascade.ValidationResult{Valid: true}}, nil, nil)

	resp, err := h.ValidateCascadeCreation(context.Background(), mustStruct(t, cascadeRequest()))
	if err != nil {
		t.Fatalf("ValidateCascadeCreation returned error: %v", err)
	}
	if _, ok := resp.GetFields()["errorMessage"]; ok {
		t.Fatal("valid result must not carry an error message")
	}
}

func TestStaffingGrpcHandler_CreateCascade(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubCascades{createOut: &cascade.Result{
		Facility: &facility.Facility{ID: "fac-1", Name: "Residencial Aurora", TaxID: "12345678000190", IdealHeadcount: 12, ShiftChangeoverTime: calendar.MustTimeOfDay(7, 0)},
		Contract: &contract.Contract{
			ID:                "ctr-1",
			FacilityID:        "fac-1",
			Terms:             contract.Terms{DailyRate: decimal.NewFromInt(100), EmployeeCount: 12, StartDate: start, EndDate: start.AddDate(1, 0, -1)},
			MonthlyTotalValue: decimal.NewFromInt(72000),
			Status:            contract.StatusPending,
		},
		Posts: []*post.WorkPost{
			{ID: "post-1", FacilityID: "fac-1", ShiftStart: calendar.MustTimeOfDay(7, 0), ShiftEnd: calendar.MustTimeOfDay(19, 0), AllowsDoubleShift: true},
			{ID: "post-2", FacilityID: "fac-1", ShiftStart: calendar.MustTimeOfDay(19, 0), ShiftEnd: calendar.MustTimeOfDay(7, 0), AllowsDoubleShift: true},
		},
	}}
	h := NewStaffingGrpcHandler(nil, stub, nil, nil)

	resp, err := h.CreateCascade(context.Background(), mustStruct(t, cascadeRequest()))
	if err != nil {
		t.Fatalf("CreateCascade returned error: %v", err)
	}

	posts := resp.GetFields()["posts"].GetListValue().GetValues()
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[1].GetStructValue().GetFields()["shiftStart"].GetStringValue() != "19:00" {
		t.Fatalf("unexpected second post %v", posts[1])
	}
	ctr := resp.GetFields()["contract"].GetStructValue().GetFields()
	if ctr["monthlyTotalValue"].GetStringValue() != "72000.00" {
		t.Fatalf("unexpected contract %v", ctr)
	}
}

func TestStaffingGrpcHandler_CreateCascade_IntegrityIsInternal(t *testing.T) {
	t.Parallel()

	stub := &stubCascades{createErr: &cascade.IntegrityError{Step: cascade.StepPosts, Err: post.ErrInvalidShiftSpan}}
	h := NewStaffingGrpcHandler(nil, stub, nil, nil)

	_, err := h.CreateCascade(context.Background(), mustStruct(t, cascadeRequest()))
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestStaffingGrpcHandler_CreateCascade_BadChangeover(t *testing.T) {
	t.Parallel()

	req := cascadeRequest()
	req["facility"].(map[string]any)["shiftChangeoverTime"] = "7h"
	h := NewStaffingGrpcHandler(nil, &stubCascades{}, nil, nil)

	_, err := h.CreateCascade(context.Background(), mustStruct(t, req))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestStaffingGrpcHandler_GetEmployeeCompensation(t *testing.T) {
	t.Parallel()

	stub := &stubCompensation{out: &contract.Compensation{
		SalaryBase:          decimal.NewFromInt(3000),
		NightShiftSurcharge: decimal.NewFromInt(600),
		Benefits:            decimal.NewFromInt(300),
		Total:               decimal.NewFromInt(3900),
	}}
	h := NewStaffingGrpcHandler(nil, nil, stub, nil)

	resp, err := h.GetEmployeeCompensation(context.Background(), mustStruct(t, map[string]any{"employeeId": "emp-1"}))
	if err != nil {
		t.Fatalf("GetEmployeeCompensation returned error: %v", err)
	}
	if stub.input.ID != "emp-1" {
		t.Fatalf("unexpected input %+v", stub.input)
	}
	if resp.GetFields()["total"].GetStringValue() != "3900.00" {
		t.Fatalf("unexpected total %v", resp.GetFields()["total"])
	}
}

func TestStaffingGrpcHandler_GetEmployeeCompensation_NoContract(t *testing.T) {
	t.Parallel()

	h := NewStaffingGrpcHandler(nil, nil, &stubCompensation{err: employee.ErrNoContractInForce}, nil)

	_, err := h.GetEmployeeCompensation(context.Background(), mustStruct(t, map[string]any{"employeeId": "emp-1"}))
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestStaffingGrpcHandler_GetPostCapacity(t *testing.T) {
	t.Parallel()

	stub := &stubCapacity{out: &post.Capacity{IdealEmployeeCount: 6, MaxCapacityWithDoubling: 12}}
	h := NewStaffingGrpcHandler(nil, nil, nil, stub)

	resp, err := h.GetPostCapacity(context.Background(), mustStruct(t, map[string]any{"postId": "post-1"}))
	if err != nil {
		t.Fatalf("GetPostCapacity returned error: %v", err)
	}
	if resp.GetFields()["idealEmployeeCount"].GetNumberValue() != 6 {
		t.Fatalf("unexpected ideal count %v", resp.GetFields()["idealEmployeeCount"])
	}
	if resp.GetFields()["maxCapacityWithDoubling"].GetNumberValue() != 12 {
		t.Fatalf("unexpected max capacity %v", resp.GetFields()["maxCapacityWithDoubling"])
	}
}

func TestStaffingGrpcHandler_NilRequest(t *testing.T) {
	t.Parallel()

	h := NewStaffingGrpcHandler(nil, nil, nil, nil)
	if _, err := h.GetPostCapacity(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
