package authz

import "errors"

var (
	// ErrInvalidID indicates an identifier that is not in canonical form.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrNotAuthorized indicates a policy denial.
	ErrNotAuthorized = errors.New("not authorized")
)
