package domain

import (
	"errors"
	"fmt"
	"strings"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError carries every violated-field message from one write attempt
// so the API can return them together.
type ValidationError struct {
	Messages []string
}

func (e ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation error"
	}
	return strings.Join(e.Messages, "; ")
}

type BadRequestError struct {
	Msg string
	Err error
}

func (e BadRequestError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "bad request"
}

func (e BadRequestError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsBadRequest(err error) bool {
	var target BadRequestError
	return errors.As(err, &target)
}

// ValidationMessages extracts the per-field messages when err is a
// ValidationError, or nil otherwise.
func ValidationMessages(err error) []string {
	var target ValidationError
	if errors.As(err, &target) {
		return target.Messages
	}
	return nil
}
