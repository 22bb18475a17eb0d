package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for the HTTP boundary.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindValidation   Kind = "VALIDATION"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindUnavailable  Kind = "UNAVAILABLE"
)

// Dependencies reported by Unavailable errors.
const (
	UserStore           = "user store"
	RestaurantStore     = "restaurant store"
	ReviewStore         = "review store"
	SessionStore        = "session store"
	GeolocationProvider = "geolocation provider"
)

// Error is the error type returned by every service operation.
// Subject is the entity for NotFound/Conflict and the dependency for Unavailable.
type Error struct {
	Kind    Kind
	Subject string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Subject
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports that entity is absent when its presence is required.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Subject: entity, Message: entity + " not found"}
}

// Conflict reports an identity collision, e.g. a duplicate username.
func Conflict(entity, message string) *Error {
	return &Error{Kind: KindConflict, Subject: entity, Message: message}
}

// Validation reports input rejected by domain rules.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Unavailable reports that dependency did not respond successfully.
func Unavailable(dependency string, err error) *Error {
	return &Error{Kind: KindUnavailable, Subject: dependency, Message: dependency + " unavailable", Err: err}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// SubjectOf returns the entity or dependency named by err.
func SubjectOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Subject
	}
	return ""
}
