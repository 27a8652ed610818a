package user

import "context"

// Store describes persistence for user aggregates. Lookup misses are reported
// as a system.NotFoundError, not a panic or a nil record.
type Store interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id int64) error
}
