package post

import (
	"context"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
)

// Repository は勤務ポストの永続化を担います。
type Repository interface {
	Create(ctx context.Context, post *WorkPost) (*WorkPost, error)
	Update(ctx context.Context, post *WorkPost) (*WorkPost, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*WorkPost, error)
	ListByFacility(ctx context.Context, facilityID string) ([]*WorkPost, error)
	CountByFacility(ctx context.Context, facilityID string) (int, error)
}

// FacilityFinder はポストを所有する施設を取得します。
type FacilityFinder interface {
	FindByID(ctx context.Context, id string) (*facility.Facility, error)
}
