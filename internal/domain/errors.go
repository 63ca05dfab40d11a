package domain

import "errors"

var (
	// ErrValidation covers bad input content: empty project names, empty
	// task titles, blank comment messages, unknown status values.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated means the caller presented no usable identity.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrInvalidAssignee = errors.New("assignee is not a project member")
)
