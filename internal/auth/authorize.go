package auth

// UserOp identifies a user-management operation submitted to the policy.
type UserOp int

const (
	OpReadUser UserOp = iota
	OpListUsers
	OpCreateUser
	OpUpdateUser
	OpDeleteUser
	OpChangePassword
)

// AuthorizeUserOp is the pure decision function for user-record mutations.
// The acting principal is always passed explicitly; there is no ambient
// security context.
//
// Admins may perform any operation on any user. Non-admins may only read and
// update their own record (and only the username field of it; field squashing
// is enforced by the user service, not here). Password changes are self-only
// for every role.
func AuthorizeUserOp(actor Principal, op UserOp, targetID int64) error {
	if op == OpChangePassword {
		if actor.ID == targetID {
			return nil
		}
		return ErrForbidden
	}
	if actor.IsAdmin() {
		return nil
	}
	switch op {
	case OpReadUser, OpUpdateUser:
		if actor.ID == targetID {
			return nil
		}
	}
	return ErrForbidden
}
