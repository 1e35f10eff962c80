package gateway

import "errors"

// Common errors for gateway operations.
var (
	// ErrInvalidToken means the gateway rejected the bearer token
	// (expired, revoked, or malformed).
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials means the email/password sign-in was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSignUpRejected means the gateway refused to register the credential.
	ErrSignUpRejected = errors.New("sign-up rejected")

	// ErrUserNotFound means the admin operation targeted an unknown subject.
	ErrUserNotFound = errors.New("gateway user not found")
)
