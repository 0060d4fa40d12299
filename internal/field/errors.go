package field

import (
	"errors"
	"fmt"
)

// Domain errors for generation and composition.
var (
	// ErrInvalidParameter indicates malformed generation parameters.
	ErrInvalidParameter = errors.New("field: invalid parameter")

	// ErrResourceLimit indicates a request above a documented ceiling.
	ErrResourceLimit = errors.New("field: resource limit exceeded")

	// ErrIncompatibleRenderMode indicates a render mode the field cannot back.
	ErrIncompatibleRenderMode = errors.New("field: incompatible render mode")
)

// ParamError wraps a domain error with the operation and parameter at fault.
type ParamError struct {
	Op     string
	Param  string
	Value  any
	Detail string
	Err    error
}

func (e *ParamError) Error() string {
	msg := fmt.Sprintf("%s: %s=%v", e.Op, e.Param, e.Value)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg + " (" + e.Err.Error() + ")"
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

func invalid(op, param string, value any, format string, args ...any) error {
	return &ParamError{Op: op, Param: param, Value: value, Detail: fmt.Sprintf(format, args...), Err: ErrInvalidParameter}
}

func tooLarge(op, param string, value any, limit int) error {
	return &ParamError{Op: op, Param: param, Value: value, Detail: fmt.Sprintf("ceiling is %d", limit), Err: ErrResourceLimit}
}

// Incompatible reports that mode cannot render a field of the given kind.
func Incompatible(op string, kind Kind, mode string) error {
	return &ParamError{Op: op, Param: "mode", Value: mode, Detail: fmt.Sprintf("not supported for %s fields", kind), Err: ErrIncompatibleRenderMode}
}
