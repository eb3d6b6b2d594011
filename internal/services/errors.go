package services

import (
	"errors"
	"fmt"

	"github.com/pkaczor/serwisapp/internal/validation"
	"gorm.io/gorm"
)

// ErrorKind distinguishes failures the user can act on (validation) from
// missing references and from store failures that only a retry or a bug fix
// can address. Callers must never retry automatically.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindStore
)

type Error struct {
	Kind       ErrorKind
	Msg        string
	Violations validation.Violations
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationErr wraps form-level violations; no persistence has been touched
// when one of these is returned.
func ValidationErr(v validation.Violations) *Error {
	return &Error{Kind: KindValidation, Msg: "validation_failed", Violations: v}
}

func NotFoundErr(what string) *Error {
	return &Error{Kind: KindNotFound, Msg: what + "_not_found"}
}

func StoreErr(op string, err error) *Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// a load that came back empty is a missing reference, not a store fault
		return &Error{Kind: KindNotFound, Msg: op + "_not_found", Err: err}
	}
	return &Error{Kind: KindStore, Msg: fmt.Sprintf("store_%s_failed", op), Err: err}
}

func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
