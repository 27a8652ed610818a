package auth

import "errors"

var (
	// ErrInvalidCredentials is returned on login failure. The message is the
	// same whether or not the username exists.
	ErrInvalidCredentials = errors.New("username or password is incorrect")

	// ErrInvalidToken indicates the token failed signature, expiry, or
	// whitelist validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden indicates the authorization policy denied the operation.
	// It carries no detail about the specific rule.
	ErrForbidden = errors.New("no permission")

	ErrOldPasswordIncorrect = errors.New("old password is incorrect")
	ErrPasswordMismatch     = errors.New("new password and confirm new password do not match")
	ErrPasswordPolicy       = errors.New("new password does not conform to password policy")
)
