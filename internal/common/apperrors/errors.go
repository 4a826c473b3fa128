package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a failure so the HTTP layer can map it to a status code
// without parsing messages.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindPersistence
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a missing or malformed field. Never retried.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound covers both a missing entity and an entity owned by another
// user. The caller cannot tell the two apart.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Persistence wraps a store failure unchanged.
func Persistence(err error) error {
	return &Error{Kind: KindPersistence, Message: "persistence failure", Err: err}
}

func IsValidation(err error) bool { return kindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return kindOf(err) == KindNotFound }

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// StatusCode maps an error kind to the HTTP status the outer layer should
// answer with.
func StatusCode(err error) int {
	switch kindOf(err) {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
