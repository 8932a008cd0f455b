package service

import "errors"

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// Unknown email and wrong password both produce this exact value.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a malformed token or one that fails signature,
	// issuer or audience checks.
	ErrInvalidToken = errors.New("invalid authentication token")
	// ErrExpiredToken indicates the token is past its expiration.
	ErrExpiredToken = errors.New("authentication token has expired")
	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
