package user

import (
	"context"

	"hogwarts.org/internal/auth"
)

// Accounts adapts a Store to auth.UserSource for the login path. It exists
// as a separate type so the auth service can be wired before the user
// service that depends on it.
type Accounts struct {
	store Store
}

func NewAccounts(store Store) Accounts {
	return Accounts{store: store}
}

func (a Accounts) AccountByUsername(ctx context.Context, username string) (auth.Account, error) {
	u, err := a.store.FindByUsername(ctx, username)
	if err != nil {
		return auth.Account{}, err
	}
	return auth.Account{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.Password,
		Enabled:      u.Enabled,
		Roles:        u.Roles,
	}, nil
}
