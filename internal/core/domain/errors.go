package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these so
// the transport layer can pick a status code with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled or locked")
)

// Error is a client-facing error message tagged with its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// Validationf builds an ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func notFound(what string) *Error {
	return &Error{Kind: ErrNotFound, Msg: what + " not found"}
}

var (
	ErrUserNotFound      = notFound("user")
	ErrSpaceNotFound     = notFound("space")
	ErrBookingNotFound   = notFound("booking")
	ErrTicketNotFound    = notFound("ticket")
	ErrUserExists        = &Error{Kind: ErrConflict, Msg: "email already in use"}
	ErrSpaceNameTaken    = &Error{Kind: ErrConflict, Msg: "space name already in use"}
	ErrSpaceInUse        = &Error{Kind: ErrConflict, Msg: "space is referenced by bookings or tickets"}
	ErrInvalidTimeRange  = &Error{Kind: ErrValidation, Msg: "start time must be before end time"}
	ErrEmptyFile         = &Error{Kind: ErrValidation, Msg: "file is empty"}
	ErrFileTooLarge      = &Error{Kind: ErrValidation, Msg: "file too large (max 5MB)"}
	ErrUnableToStoreFile = &Error{Kind: ErrValidation, Msg: "unable to store file"}
	ErrInvalidCapacity   = &Error{Kind: ErrValidation, Msg: "capacity must be a positive integer"}
	ErrBadCredentials    = &Error{Kind: ErrInvalidCredentials, Msg: "invalid email or password"}
	ErrInvalidToken      = &Error{Kind: ErrInvalidCredentials, Msg: "invalid or expired token"}
	ErrTokenRevoked      = &Error{Kind: ErrInvalidCredentials, Msg: "token has been revoked"}
	ErrAccountLocked     = &Error{Kind: ErrAccountDisabled, Msg: "account is disabled or locked"}
)

// Message returns the client-facing text of err: the innermost *Error message
// when there is one, otherwise err.Error().
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Msg
	}
	return err.Error()
}
