package contract

import (
	"context"
	"time"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
)

// Repository は契約の永続化を担います。
type Repository interface {
	Create(ctx context.Context, contract *Contract) (*Contract, error)
	Update(ctx context.Context, contract *Contract) (*Contract, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Contract, error)
	FindInForceByFacility(ctx context.Context, facilityID string) (*Contract, error)
	ListByFacility(ctx context.Context, facilityID string) ([]*Contract, error)
	// MarkExpired は終了日が today より前の有効な契約をすべて INACTIVE にし、変更件数を返します。
	MarkExpired(ctx context.Context, today, updatedAt time.Time) (int64, error)
}

// FacilityFinder は契約が属する施設を取得します。
type FacilityFinder interface {
	FindByID(ctx context.Context, id string) (*facility.Facility, error)
}
