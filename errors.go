package alumni

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrEmailRegistered is returned when registration hits an existing email.
// Clients receive it as a 400, not a 409.
var ErrEmailRegistered = errors.New("Email already registered", errors.CategoryConflict).
	WithCode(errors.CodeBadRequest).
	WithTextCode("EMAIL_REGISTERED")

// ErrInvalidCredentials covers both an unknown email and a wrong password,
// deliberately indistinguishable to prevent account enumeration.
var ErrInvalidCredentials = errors.New("Incorrect email or password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrUnauthenticated is the single answer for a missing, malformed or
// expired bearer token, and for a token whose subject no longer exists.
var ErrUnauthenticated = errors.New("Could not validate credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("UNAUTHENTICATED")

// ErrForbidden is returned when a valid principal lacks the required role
var ErrForbidden = errors.New("Not enough permissions", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode("FORBIDDEN")

// ErrTokenExpired is the decode failure for an assertion past its expiry
var ErrTokenExpired = errors.New("Authentication token expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed covers bad signatures, foreign algorithms and any
// structurally invalid token
var ErrTokenMalformed = errors.New("Invalid authentication token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrInvalidRole rejects values outside the closed role set
var ErrInvalidRole = errors.New("Invalid role", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest).
	WithTextCode("INVALID_ROLE")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("Identity not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrProfileNotFound is returned when an alumni profile lookup misses
var ErrProfileNotFound = errors.New("Profile not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("PROFILE_NOT_FOUND")

// ErrProfileExists is returned when a user already has a profile
var ErrProfileExists = errors.New("Profile already exists", errors.CategoryConflict).
	WithCode(errors.CodeBadRequest).
	WithTextCode("PROFILE_EXISTS")

// ErrEventNotFound is returned when an event lookup misses
var ErrEventNotFound = errors.New("Event not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("EVENT_NOT_FOUND")

// ErrMismatchedHashAndPassword is the normalized bcrypt comparison failure
var ErrMismatchedHashAndPassword = errors.New("Mismatched hash and password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("PASSWORD_MISMATCH")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// isUniqueViolation detects a storage level uniqueness failure so a racing
// duplicate insert still surfaces as a conflict.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
