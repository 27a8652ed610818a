package user

import (
	"context"
	"errors"
	"testing"

	"hogwarts.org/internal/auth"
	"hogwarts.org/internal/system"
)

type recordingRevoker struct {
	revoked []int64
	err     error
}

func (r *recordingRevoker) Revoke(ctx context.Context, userID int64) error {
	if r.err != nil {
		return r.err
	}
	r.revoked = append(r.revoked, userID)
	return nil
}

func seedUsers(t *testing.T) (*Service, *MemoryStore, *recordingRevoker) {
	t.Helper()
	store := NewMemoryStore()
	rev := &recordingRevoker{}
	svc := NewService(store, rev)

	hash, err := auth.HashPassword("Abc12345")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	for _, u := range []User{
		{Username: "albus", Password: hash, Enabled: true, Roles: "admin user"},
		{Username: "harry", Password: hash, Enabled: true, Roles: "user"},
		{Username: "neville", Password: hash, Enabled: false, Roles: "user"},
	} {
		u := u
		if err := store.Create(context.Background(), &u); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return svc, store, rev
}

func admin() auth.Principal { return auth.Principal{ID: 1, Username: "albus", Roles: "admin user"} }
func harry() auth.Principal { return auth.Principal{ID: 2, Username: "harry", Roles: "user"} }

func TestFindAllAdminOnly(t *testing.T) {
	svc, _, _ := seedUsers(t)
	ctx := context.Background()

	users, err := svc.FindAll(ctx, admin())
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("got %d users, want 3", len(users))
	}

	if _, err := svc.FindAll(ctx, harry()); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("non-admin list: got %v, want ErrForbidden", err)
	}
}

func TestFindByIDSelfOnly(t *testing.T) {
	svc, _, _ := seedUsers(t)
	ctx := context.Background()

	if _, err := svc.FindByID(ctx, harry(), 2); err != nil {
		t.Fatalf("self read: %v", err)
	}
	if _, err := svc.FindByID(ctx, harry(), 1); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("other read: got %v, want ErrForbidden", err)
	}
	if _, err := svc.FindByID(ctx, admin(), 2); err != nil {
		t.Fatalf("admin read other: %v", err)
	}
	if _, err := svc.FindByID(ctx, admin(), 99); !system.IsNotFound(err) {
		t.Fatalf("missing user: got %v, want not found", err)
	}
}

func TestCreateHashesPassword(t *testing.T) {
	svc, _, _ := seedUsers(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, admin(), "luna", "Abc12345", "user", true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Password == "Abc12345" {
		t.Fatal("password stored in clear")
	}
	if err := auth.VerifyPassword(u.Password, "Abc12345"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	if _, err := svc.Create(ctx, harry(), "ginny", "Abc12345", "user", true); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("non-admin create: got %v, want ErrForbidden", err)
	}

	_, err = svc.Create(ctx, admin(), "", "", "", true)
	fieldErrs, ok := system.AsValidation(err)
	if !ok {
		t.Fatalf("blank create: got %v, want validation error", err)
	}
	for _, f := range []string{"username", "password", "roles"} {
		if fieldErrs.FieldErrors[f] == "" {
			t.Fatalf("missing field error for %q", f)
		}
	}
}

func TestUpdateNonAdminIgnoresPrivilegedFields(t *testing.T) {
	svc, _, rev := seedUsers(t)
	ctx := context.Background()

	disabled := false
	roles := "admin"
	got, err := svc.Update(ctx, harry(), 2, Update{Username: "harry-potter", Enabled: &disabled, Roles: &roles})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if got.Username != "harry-potter" {
		t.Fatalf("username = %q, want harry-potter", got.Username)
	}
	if !got.Enabled || got.Roles != "user" {
		t.Fatalf("privileged fields applied for non-admin: enabled=%v roles=%q", got.Enabled, got.Roles)
	}
	if len(rev.revoked) != 0 {
		t.Fatalf("non-admin update revoked sessions: %v", rev.revoked)
	}
}

func TestUpdateOtherUserForbiddenAndUnchanged(t *testing.T) {
	svc, store, _ := seedUsers(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, harry(), 1, Update{Username: "hacked"})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	target, err := store.FindByID(ctx, 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if target.Username != "albus" {
		t.Fatalf("target mutated: %q", target.Username)
	}
}

func TestAdminRoleChangeRevokesSession(t *testing.T) {
	svc, _, rev := seedUsers(t)
	ctx := context.Background()

	roles := "admin user"
	got, err := svc.Update(ctx, admin(), 2, Update{Username: "harry", Roles: &roles})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if got.Roles != "admin user" {
		t.Fatalf("roles = %q", got.Roles)
	}
	if len(rev.revoked) != 1 || rev.revoked[0] != 2 {
		t.Fatalf("revoked = %v, want [2]", rev.revoked)
	}
}

func TestAdminNoopUpdateKeepsSession(t *testing.T) {
	svc, _, rev := seedUsers(t)
	ctx := context.Background()

	enabled := true
	roles := "user"
	if _, err := svc.Update(ctx, admin(), 2, Update{Username: "harry", Enabled: &enabled, Roles: &roles}); err != nil {
		t.Fatalf("noop update: %v", err)
	}
	if len(rev.revoked) != 0 {
		t.Fatalf("unchanged credentials revoked session: %v", rev.revoked)
	}
}

func TestAdminDisableRevokesBeforePersist(t *testing.T) {
	store := NewMemoryStore()
	rev := &recordingRevoker{}
	svc := NewService(store, rev)
	u := User{Username: "harry", Password: "x", Enabled: true, Roles: "user"}
	if err := store.Create(context.Background(), &u); err != nil {
		t.Fatalf("seed: %v", err)
	}

	disabled := false
	actor := auth.Principal{ID: 99, Username: "albus", Roles: "admin"}
	got, err := svc.Update(context.Background(), actor, u.ID, Update{Username: "harry", Enabled: &disabled})
	if err != nil {
		t.Fatalf("disable: %v", err)
	}
	if got.Enabled {
		t.Fatal("still enabled")
	}
	if len(rev.revoked) != 1 || rev.revoked[0] != u.ID {
		t.Fatalf("revoked = %v, want [%d]", rev.revoked, u.ID)
	}
}

func TestDeleteAdminOnly(t *testing.T) {
	svc, store, _ := seedUsers(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, harry(), 3); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("non-admin delete: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, admin(), 3); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := store.FindByID(ctx, 3); !system.IsNotFound(err) {
		t.Fatalf("user survived delete: %v", err)
	}
	if err := svc.Delete(ctx, admin(), 3); !system.IsNotFound(err) {
		t.Fatalf("double delete: got %v, want not found", err)
	}
}

func TestChangePasswordHappyPath(t *testing.T) {
	svc, store, rev := seedUsers(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, harry(), 2, "Abc12345", "Xyz98765", "Xyz98765")
	if err != nil {
		t.Fatalf("change: %v", err)
	}
	if len(rev.revoked) != 1 || rev.revoked[0] != 2 {
		t.Fatalf("revoked = %v, want [2]", rev.revoked)
	}
	u, err := store.FindByID(ctx, 2)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := auth.VerifyPassword(u.Password, "Xyz98765"); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
}

func TestChangePasswordFailuresLeaveSessionLive(t *testing.T) {
	svc, _, rev := seedUsers(t)
	ctx := context.Background()

	cases := []struct {
		name                    string
		oldPw, newPw, confirmPw string
		want                    error
	}{
		{"wrong old password", "nope", "Xyz98765", "Xyz98765", auth.ErrOldPasswordIncorrect},
		{"confirmation mismatch", "Abc12345", "Abc12345x", "Abc123456", auth.ErrPasswordMismatch},
		{"policy violation", "Abc12345", "short", "short", auth.ErrPasswordPolicy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ChangePassword(ctx, harry(), 2, tc.oldPw, tc.newPw, tc.confirmPw)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if len(rev.revoked) != 0 {
				t.Fatalf("failed change revoked session: %v", rev.revoked)
			}
		})
	}
}

func TestChangePasswordSelfOnlyEvenForAdmin(t *testing.T) {
	svc, _, _ := seedUsers(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, admin(), 2, "Abc12345", "Xyz98765", "Xyz98765")
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("admin changing another's password: got %v, want ErrForbidden", err)
	}
}
