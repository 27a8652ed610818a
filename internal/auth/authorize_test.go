package auth

import "testing"

func TestAuthorizeUserOpAdmin(t *testing.T) {
	admin := Principal{ID: 1, Username: "albus", Roles: "admin user"}

	ops := []UserOp{OpReadUser, OpListUsers, OpCreateUser, OpUpdateUser, OpDeleteUser}
	for _, op := range ops {
		if err := AuthorizeUserOp(admin, op, 99); err != nil {
			t.Fatalf("admin should be allowed op %d on any target: %v", op, err)
		}
	}
}

func TestAuthorizeUserOpNonAdminSelf(t *testing.T) {
	actor := Principal{ID: 2, Username: "harry", Roles: "user"}

	if err := AuthorizeUserOp(actor, OpReadUser, 2); err != nil {
		t.Fatalf("non-admin should read own record: %v", err)
	}
	if err := AuthorizeUserOp(actor, OpUpdateUser, 2); err != nil {
		t.Fatalf("non-admin should update own record: %v", err)
	}

	denied := []UserOp{OpListUsers, OpCreateUser, OpDeleteUser}
	for _, op := range denied {
		if err := AuthorizeUserOp(actor, op, 2); err != ErrForbidden {
			t.Fatalf("expected ErrForbidden for op %d, got %v", op, err)
		}
	}
}

func TestAuthorizeUserOpNonAdminOther(t *testing.T) {
	actor := Principal{ID: 2, Username: "harry", Roles: "user"}

	denied := []UserOp{OpReadUser, OpUpdateUser, OpDeleteUser}
	for _, op := range denied {
		if err := AuthorizeUserOp(actor, op, 3); err != ErrForbidden {
			t.Fatalf("expected ErrForbidden for op %d on other user, got %v", op, err)
		}
	}
}

func TestAuthorizeChangePasswordSelfOnly(t *testing.T) {
	admin := Principal{ID: 1, Username: "albus", Roles: "admin user"}
	if err := AuthorizeUserOp(admin, OpChangePassword, 1); err != nil {
		t.Fatalf("own password change should be allowed: %v", err)
	}
	if err := AuthorizeUserOp(admin, OpChangePassword, 2); err != ErrForbidden {
		t.Fatalf("password change is self-only even for admins, got %v", err)
	}
}

func TestPrincipalRoles(t *testing.T) {
	p := Principal{ID: 1, Roles: "admin user"}
	if !p.HasRole("admin") || !p.HasRole("user") {
		t.Fatalf("expected both roles in %q", p.Roles)
	}
	if p.HasRole("adm") {
		t.Fatalf("partial label must not match")
	}
	if (Principal{Roles: "user"}).IsAdmin() {
		t.Fatalf("plain user must not be admin")
	}
}
