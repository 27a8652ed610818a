package user

import (
	"context"
	"strings"

	"hogwarts.org/internal/auth"
	"hogwarts.org/internal/system"
)

// Revoker kills a user's live session. Satisfied by *auth.Service.
type Revoker interface {
	Revoke(ctx context.Context, userID int64) error
}

// Service implements user management under the authorization policy. Every
// guarded operation takes the acting principal explicitly.
type Service struct {
	store   Store
	revoker Revoker
}

// NewService constructs the user service.
func NewService(store Store, revoker Revoker) *Service {
	return &Service{store: store, revoker: revoker}
}

// FindAll lists every user. Admin only.
func (s *Service) FindAll(ctx context.Context, actor auth.Principal) ([]User, error) {
	if err := auth.AuthorizeUserOp(actor, auth.OpListUsers, 0); err != nil {
		return nil, err
	}
	return s.store.FindAll(ctx)
}

// FindByID returns a single user. Admins may read anyone; non-admins only
// themselves.
func (s *Service) FindByID(ctx context.Context, actor auth.Principal, id int64) (User, error) {
	if err := auth.AuthorizeUserOp(actor, auth.OpReadUser, id); err != nil {
		return User{}, err
	}
	return s.store.FindByID(ctx, id)
}

// Create adds a new user with a hashed password. Admin only.
func (s *Service) Create(ctx context.Context, actor auth.Principal, username, password, roles string, enabled bool) (User, error) {
	if err := auth.AuthorizeUserOp(actor, auth.OpCreateUser, 0); err != nil {
		return User{}, err
	}
	if err := validateNewUser(username, password, roles); err != nil {
		return User{}, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}
	u := User{
		Username: strings.TrimSpace(username),
		Password: hash,
		Enabled:  enabled,
		Roles:    strings.TrimSpace(roles),
	}
	if err := s.store.Create(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Update applies an update to the target user under the policy decision
// table. Non-admin actors may only change their own username; enabled and
// role fields in the request are silently ignored for them. When an admin
// changes the target's roles or enabled flag, the target's live session is
// revoked synchronously before the record is persisted.
func (s *Service) Update(ctx context.Context, actor auth.Principal, id int64, upd Update) (User, error) {
	if err := auth.AuthorizeUserOp(actor, auth.OpUpdateUser, id); err != nil {
		return User{}, err
	}
	target, err := s.store.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	username := strings.TrimSpace(upd.Username)
	if username == "" {
		return User{}, system.Validation(map[string]string{"username": "username is required"})
	}
	target.Username = username

	if actor.IsAdmin() {
		credentialsChanged := false
		if upd.Enabled != nil && *upd.Enabled != target.Enabled {
			target.Enabled = *upd.Enabled
			credentialsChanged = true
		}
		if upd.Roles != nil {
			roles := strings.TrimSpace(*upd.Roles)
			if roles == "" {
				return User{}, system.Validation(map[string]string{"roles": "roles are required"})
			}
			if roles != target.Roles {
				target.Roles = roles
				credentialsChanged = true
			}
		}
		// Revocation is deliberately not rolled back if the persistence
		// write below fails; the orphaned logout is the documented
		// trade-off of revoke-before-persist.
		if credentialsChanged {
			if err := s.revoker.Revoke(ctx, id); err != nil {
				return User{}, err
			}
		}
	}

	if err := s.store.Update(ctx, target); err != nil {
		return User{}, err
	}
	return target, nil
}

// Delete removes a user. Admin only.
func (s *Service) Delete(ctx context.Context, actor auth.Principal, id int64) error {
	if err := auth.AuthorizeUserOp(actor, auth.OpDeleteUser, id); err != nil {
		return err
	}
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// ChangePassword rotates the actor's own password. The sequence is: verify
// the old secret, check new/confirm agreement, check the password policy,
// then revoke the live session and persist the new hash — in that order. A
// failure before the revocation step leaves the old session live.
func (s *Service) ChangePassword(ctx context.Context, actor auth.Principal, userID int64, oldPassword, newPassword, confirmNewPassword string) error {
	if err := auth.AuthorizeUserOp(actor, auth.OpChangePassword, userID); err != nil {
		return err
	}
	target, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.VerifyPassword(target.Password, oldPassword); err != nil {
		return auth.ErrOldPasswordIncorrect
	}
	if newPassword != confirmNewPassword {
		return auth.ErrPasswordMismatch
	}
	if err := auth.CheckPasswordPolicy(newPassword); err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	target.Password = hash

	// Revoke before persisting: the old token must die even though the
	// store write can still fail afterwards.
	if err := s.revoker.Revoke(ctx, userID); err != nil {
		return err
	}
	return s.store.Update(ctx, target)
}

func validateNewUser(username, password, roles string) error {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(username) == "" {
		fieldErrors["username"] = "username is required"
	}
	if password == "" {
		fieldErrors["password"] = "password is required"
	}
	if strings.TrimSpace(roles) == "" {
		fieldErrors["roles"] = "roles are required"
	}
	if len(fieldErrors) > 0 {
		return system.Validation(fieldErrors)
	}
	return nil
}
