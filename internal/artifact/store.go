package artifact

import "context"

// Store persists artifacts. Lookups for unknown ids return
// *system.NotFoundError.
type Store interface {
	FindAll(ctx context.Context, limit, offset int) ([]Artifact, error)
	FindByID(ctx context.Context, id string) (Artifact, error)
	FindByCriteria(ctx context.Context, c Criteria, limit, offset int) ([]Artifact, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]Artifact, error)
	Create(ctx context.Context, a *Artifact) error
	Update(ctx context.Context, a Artifact) error
	SetOwner(ctx context.Context, id string, ownerID *int64) error
	Delete(ctx context.Context, id string) error
}
