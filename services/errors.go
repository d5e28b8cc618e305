package services

import "errors"

// Error taxonomy surfaced to the controllers. Each maps to one HTTP status;
// none of them is retried.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrMisconfigured       = errors.New("server misconfigured")
	ErrNotFound            = errors.New("not found")
	ErrUnsupportedMailType = errors.New("unsupported mail type")
	ErrInvalidInput        = errors.New("invalid input")
)
