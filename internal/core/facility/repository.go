package facility

import "context"

// Repository は施設の永続化を担います。
type Repository interface {
	Create(ctx context.Context, facility *Facility) (*Facility, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Facility, error)
	FindByTaxID(ctx context.Context, taxID string) (*Facility, error)
}
