package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags a failure so the transport layer can pick a status code
// without matching on message text.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindDuplicateEmail
	KindNotFound
	KindInvalidInput
	KindInvalidCredentials
	KindAccountDeleted
	KindAccountInactive
	KindNotAuthenticated
	KindAccessDenied
	KindInvalidRole
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func E(kind ErrorKind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Ef(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err; ok is false for untagged errors.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
