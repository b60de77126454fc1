package httperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation"
	KindInternal     Kind = "internal"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func NotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func InvalidState(code, message string) error {
	return BusinessError{Kind: KindInvalidState, Code: code, Message: message}
}

func Conflict(code, message string, cause error) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message, Err: cause}
}

func Validation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

func StatusFor(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindInvalidState:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Postgres SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
