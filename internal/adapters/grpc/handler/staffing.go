package handler

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/adapters/grpc/staffingv1"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/allocation"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/cascade"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/contract"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/employee"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/post"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/pricing"
)

// AllocationWriter は割り当ての作成と更新を行います。
type AllocationWriter interface {
	CreateAllocation(ctx context.Context, in allocation.CreateAllocationInput) (*allocation.Allocation, error)
	UpdateAllocation(ctx context.Context, in allocation.UpdateAllocationInput) (*allocation.Allocation, error)
}

// CompensationReader は従業員の報酬を算出します。
type CompensationReader interface {
	GetCompensation(ctx context.Context, in employee.GetEmployeeInput) (*contract.Compensation, error)
}

// CapacityReader はポストの配置目標を算出します。
type CapacityReader interface {
	GetPostCapacity(ctx context.Context, in post.GetPostInput) (*post.Capacity, error)
}

// StaffingGrpcHandler は staffingv1.StaffingServiceServer を実装します。
type StaffingGrpcHandler struct {
	allocations AllocationWriter
	cascades    cascade.UseCase
	employees   CompensationReader
	posts       CapacityReader
	staffingv1.UnimplementedStaffingServiceServer
}

// NewStaffingGrpcHandler は StaffingGrpcHandler を生成します。
func NewStaffingGrpcHandler(allocations AllocationWriter, cascades cascade.UseCase, employees CompensationReader, posts CapacityReader) *StaffingGrpcHandler {
	return &StaffingGrpcHandler{
		allocations: allocations,
		cascades:    cascades,
		employees:   employees,
		posts:       posts,
	}
}

// CalculateContractPrice は価格計算エンジンを実行します。副作用はありません。
func (h *StaffingGrpcHandler) CalculateContractPrice(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in, err := pricingInputFrom(fieldsOf(req))
	if err != nil {
		return nil, invalidArgument(err)
	}

	breakdown, err := pricing.Calculate(in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{
		"monthlyTotalValue":     money(breakdown.MonthlyTotalValue),
		"baseCost":              money(breakdown.BaseCost),
		"taxAmount":             money(breakdown.TaxAmount),
		"profitAmount":          money(breakdown.ProfitAmount),
		"absenceCoverageAmount": money(breakdown.AbsenceCoverageAmount),
		"benefitsAmount":        money(breakdown.BenefitsAmount),
		"payrollBase":           money(breakdown.PayrollBase),
	})
}

// CreateAllocation は従業員を指定日のポストに割り当てます。
func (h *StaffingGrpcHandler) CreateAllocation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	f := fieldsOf(req)

	tenantID, err := f.str("tenantId")
	if err != nil {
		return nil, invalidArgument(err)
	}
	employeeID, err := f.str("employeeId")
	if err != nil {
		return nil, invalidArgument(err)
	}
	postID, err := f.str("postId")
	if err != nil {
		return nil, invalidArgument(err)
	}
	date, err := f.date("date")
	if err != nil {
		return nil, invalidArgument(err)
	}
	statusValue, kind, err := allocationStatusAndKind(f)
	if err != nil {
		return nil, invalidArgument(err)
	}

	created, err := h.allocations.CreateAllocation(ctx, allocation.CreateAllocationInput{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		PostID:     postID,
		Date:       date,
		Status:     statusValue,
		Kind:       kind,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"allocation": allocationFields(created)})
}

// UpdateAllocation は割り当てのステータスと種別を変更します。
func (h *StaffingGrpcHandler) UpdateAllocation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	f := fieldsOf(req)

	id, err := f.str("id")
	if err != nil {
		return nil, invalidArgument(err)
	}
	statusValue, kind, err := allocationStatusAndKind(f)
	if err != nil {
		return nil, invalidArgument(err)
	}

	updated, err := h.allocations.UpdateAllocation(ctx, allocation.UpdateAllocationInput{
		ID:     id,
		Status: statusValue,
		Kind:   kind,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"allocation": allocationFields(updated)})
}

// ValidateCascadeCreation はカスケード作成を試行のみ行います。ルール違反はステータスエラーではなくレスポンス本文で返します。
func (h *StaffingGrpcHandler) ValidateCascadeCreation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in, err := cascadeInputFrom(fieldsOf(req))
	if err != nil {
		return nil, invalidArgument(err)
	}

	result := h.cascades.ValidateCascadeCreation(ctx, in)
	out := map[string]any{"valid": result.Valid}
	if !result.Valid {
		out["errorMessage"] = result.ErrorMessage
	}
	return newStruct(out)
}

// CreateCascade は施設、契約、必要に応じてポストを作成します。
func (h *StaffingGrpcHandler) CreateCascade(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in, err := cascadeInputFrom(fieldsOf(req))
	if err != nil {
		return nil, invalidArgument(err)
	}

	created, err := h.cascades.CreateCascade(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	posts := make([]any, 0, len(created.Posts))
	for _, p := range created.Posts {
		posts = append(posts, postFields(p))
	}

	return newStruct(map[string]any{
		"facility": facilityFields(created.Facility),
		"contract": contractFields(created.Contract),
		"posts":    posts,
	})
}

// GetEmployeeCompensation は所属施設の有効な契約に基づく従業員の月額報酬を返します。
func (h *StaffingGrpcHandler) GetEmployeeCompensation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	employeeID, err := fieldsOf(req).str("employeeId")
	if err != nil {
		return nil, invalidArgument(err)
	}

	comp, err := h.employees.GetCompensation(ctx, employee.GetEmployeeInput{ID: employeeID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{
		"salaryBase":          money(comp.SalaryBase),
		"nightShiftSurcharge": money(comp.NightShiftSurcharge),
		"benefits":            money(comp.Benefits),
		"total":               money(comp.Total),
	})
}

// GetPostCapacity はポストの配置目標を返します。
func (h *StaffingGrpcHandler) GetPostCapacity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	postID, err := fieldsOf(req).str("postId")
	if err != nil {
		return nil, invalidArgument(err)
	}

	capacity, err := h.posts.GetPostCapacity(ctx, post.GetPostInput{ID: postID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{
		"idealEmployeeCount":      capacity.IdealEmployeeCount,
		"maxCapacityWithDoubling": capacity.MaxCapacityWithDoubling,
	})
}

func newStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

func pricingInputFrom(f fields) (pricing.Input, error) {
	var (
		in  pricing.Input
		err error
	)
	if in.DailyRate, err = f.decimal("dailyRate"); err != nil {
		return pricing.Input{}, err
	}
	if in.EmployeeCount, err = f.integer("employeeCount"); err != nil {
		return pricing.Input{}, err
	}
	if in.MonthlyExtraBenefits, err = f.decimal("monthlyExtraBenefits"); err != nil {
		return pricing.Input{}, err
	}
	if in.TaxRate, err = f.decimal("taxRate"); err != nil {
		return pricing.Input{}, err
	}
	if in.ProfitMarginRate, err = f.decimal("profitMarginRate"); err != nil {
		return pricing.Input{}, err
	}
	if in.AbsenceCoverageMarginRate, err = f.decimal("absenceCoverageMarginRate"); err != nil {
		return pricing.Input{}, err
	}
	return in, nil
}

func allocationStatusAndKind(f fields) (allocation.Status, allocation.Kind, error) {
	rawStatus, err := f.str("status")
	if err != nil {
		return "", "", err
	}
	rawKind, err := f.str("kind")
	if err != nil {
		return "", "", err
	}
	return allocation.Status(strings.ToUpper(rawStatus)), allocation.Kind(strings.ToUpper(rawKind)), nil
}

func cascadeInputFrom(f fields) (cascade.Input, error) {
	facilityFieldsIn, err := f.object("facility")
	if err != nil {
		return cascade.Input{}, err
	}
	contractFieldsIn, err := f.object("contract")
	if err != nil {
		return cascade.Input{}, err
	}

	fac, err := facilityInputFrom(facilityFieldsIn)
	if err != nil {
		return cascade.Input{}, fmt.Errorf("facility.%w", err)
	}
	ctr, err := contractInputFrom(contractFieldsIn)
	if err != nil {
		return cascade.Input{}, fmt.Errorf("contract.%w", err)
	}

	autoCreate, err := f.boolean("autoCreatePosts")
	if err != nil {
		return cascade.Input{}, err
	}
	postCount, err := f.integer("postCount")
	if err != nil {
		return cascade.Input{}, err
	}

	return cascade.Input{
		Facility:        fac,
		Contract:        ctr,
		AutoCreatePosts: autoCreate,
		PostCount:       postCount,
	}, nil
}

func facilityInputFrom(f fields) (facility.CreateFacilityInput, error) {
	var (
		in  facility.CreateFacilityInput
		err error
	)
	if in.TenantID, err = f.str("tenantId"); err != nil {
		return in, err
	}
	if in.Name, err = f.str("name"); err != nil {
		return in, err
	}
	if in.TaxID, err = f.str("taxId"); err != nil {
		return in, err
	}
	if in.Address, err = f.optionalStr("address"); err != nil {
		return in, err
	}
	if in.IdealHeadcount, err = f.integer("idealHeadcount"); err != nil {
		return in, err
	}
	if in.ShiftChangeoverTime, err = f.timeOfDay("shiftChangeoverTime"); err != nil {
		return in, err
	}
	return in, nil
}

func contractInputFrom(f fields) (cascade.ContractInput, error) {
	var in cascade.ContractInput

	p, err := pricingInputFrom(f)
	if err != nil {
		return in, err
	}
	surcharge, err := f.decimal("nightShiftSurchargeRate")
	if err != nil {
		return in, err
	}
	start, err := f.date("startDate")
	if err != nil {
		return in, err
	}
	end, err := f.date("endDate")
	if err != nil {
		return in, err
	}
	if in.MonthlyTotalValue, err = f.optionalDecimal("monthlyTotalValue"); err != nil {
		return in, err
	}

	rawStatus, err := f.str("status")
	if err != nil {
		return in, err
	}
	if rawStatus != "" {
		s := contract.Status(strings.ToUpper(rawStatus))
		in.Status = &s
	}

	in.Terms = contract.Terms{
		DailyRate:                 p.DailyRate,
		NightShiftSurchargeRate:   surcharge,
		MonthlyExtraBenefits:      p.MonthlyExtraBenefits,
		TaxRate:                   p.TaxRate,
		EmployeeCount:             p.EmployeeCount,
		ProfitMarginRate:          p.ProfitMarginRate,
		AbsenceCoverageMarginRate: p.AbsenceCoverageMarginRate,
		StartDate:                 start,
		EndDate:                   end,
	}
	return in, nil
}

func allocationFields(a *allocation.Allocation) map[string]any {
	return map[string]any{
		"id":         a.ID,
		"tenantId":   a.TenantID,
		"employeeId": a.EmployeeID,
		"postId":     a.PostID,
		"date":       a.Date.Format(calendar.DateLayout),
		"status":     string(a.Status),
		"kind":       string(a.Kind),
	}
}

func facilityFields(f *facility.Facility) map[string]any {
	out := map[string]any{
		"id":                  f.ID,
		"tenantId":            f.TenantID,
		"name":                f.Name,
		"taxId":               f.TaxID,
		"idealHeadcount":      f.IdealHeadcount,
		"shiftChangeoverTime": f.ShiftChangeoverTime.String(),
	}
	if f.Address != nil {
		out["address"] = *f.Address
	}
	return out
}

func contractFields(c *contract.Contract) map[string]any {
	return map[string]any{
		"id":                        c.ID,
		"facilityId":                c.FacilityID,
		"dailyRate":                 money(c.Terms.DailyRate),
		"nightShiftSurchargeRate":   c.Terms.NightShiftSurchargeRate.String(),
		"monthlyExtraBenefits":      money(c.Terms.MonthlyExtraBenefits),
		"taxRate":                   c.Terms.TaxRate.String(),
		"employeeCount":             c.Terms.EmployeeCount,
		"profitMarginRate":          c.Terms.ProfitMarginRate.String(),
		"absenceCoverageMarginRate": c.Terms.AbsenceCoverageMarginRate.String(),
		"monthlyTotalValue":         money(c.MonthlyTotalValue),
		"startDate":                 c.Terms.StartDate.Format(calendar.DateLayout),
		"endDate":                   c.Terms.EndDate.Format(calendar.DateLayout),
		"status":                    string(c.Status),
	}
}

func postFields(p *post.WorkPost) map[string]any {
	return map[string]any{
		"id":                p.ID,
		"facilityId":        p.FacilityID,
		"shiftStart":        p.ShiftStart.String(),
		"shiftEnd":          p.ShiftEnd.String(),
		"allowsDoubleShift": p.AllowsDoubleShift,
	}
}
