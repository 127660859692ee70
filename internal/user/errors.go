package user

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so the boundary can pick a status code without
// looking at error text.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a classified failure of the update flow.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrEmailRequired = &Error{Kind: KindValidation, Message: "El campo email es obligatorio para identificar al usuario"}
	ErrUserNotFound  = &Error{Kind: KindNotFound, Message: "No se encontró un usuario con el email proporcionado"}
	ErrNoFields      = &Error{Kind: KindValidation, Message: "No se proporcionaron campos para actualizar"}
)

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusFor maps a kind to the HTTP status returned to the caller.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
