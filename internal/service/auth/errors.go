package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType indicates a token was issued for another purpose
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingIdentity indicates a structurally valid token without an email
	ErrMissingIdentity = errors.New("authentication token has no identity")

	// ErrInvalidEmail is returned when asked to issue a token for an empty email
	ErrInvalidEmail = errors.New("email cannot be empty")
)
