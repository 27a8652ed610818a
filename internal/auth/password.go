package auth

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the previous deployment used.
const bcryptCost = 12

var (
	hasDigit = regexp.MustCompile(`[0-9]`)
	hasLower = regexp.MustCompile(`[a-z]`)
	hasUpper = regexp.MustCompile(`[A-Z]`)
)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) == 0 {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password with a stored hash using the
// hash algorithm's constant-time verification. The hash never leaves this
// function.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return errors.New("password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// CheckPasswordPolicy validates that a new password is at least 8 characters
// and contains at least one digit, one lowercase letter, and one uppercase
// letter. Returns ErrPasswordPolicy on violation.
func CheckPasswordPolicy(password string) error {
	if len(password) < 8 {
		return ErrPasswordPolicy
	}
	if !hasDigit.MatchString(password) || !hasLower.MatchString(password) || !hasUpper.MatchString(password) {
		return ErrPasswordPolicy
	}
	return nil
}
