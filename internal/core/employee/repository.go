package employee

import (
	"context"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/contract"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
)

// Repository は従業員の永続化を担います。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByNationalID(ctx context.Context, nationalID string) (*Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) ([]*Employee, string, error)
}

// ListEmployeesFilter は List の絞り込み条件です。
type ListEmployeesFilter struct {
	FacilityID string
	Status     *Status
	Limit      int
	Offset     int
}

// FacilityFinder は従業員の勤務先施設を取得します。
type FacilityFinder interface {
	FindByID(ctx context.Context, id string) (*facility.Facility, error)
}

// ContractFinder は施設の従業員の報酬元となる契約を取得します。
type ContractFinder interface {
	FindInForceByFacility(ctx context.Context, facilityID string) (*contract.Contract, error)
}
