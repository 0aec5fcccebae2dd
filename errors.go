package lazymesh

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAccess reports an out-of-range element or list position.
	ErrInvalidAccess = errors.New("invalid access")
	// ErrComponentDisabled reports access to a disabled optional component.
	ErrComponentDisabled = errors.New("component disabled")
	// ErrComponentMissing reports access to a component the element type does
	// not carry.
	ErrComponentMissing = errors.New("component missing")
	// ErrNotOptional reports an enable/disable request on a component that is
	// not optional.
	ErrNotOptional = errors.New("component not optional")
	// ErrFixedArity reports a growth operation on a fixed-size list.
	ErrFixedArity = errors.New("fixed arity")
	// ErrKindMismatch reports an operation mixing element kinds or types.
	ErrKindMismatch = errors.New("kind mismatch")
	// ErrDuplicateContainer reports two containers of the same kind in a mesh.
	ErrDuplicateContainer = errors.New("duplicate container")
	// ErrDanglingReference reports a reference to a missing or deleted element.
	ErrDanglingReference = errors.New("dangling reference")
)

// AccessError describes a failed accessor call.
type AccessError struct {
	Err       error
	Op        string
	Component string
	Index     int
	Kind      Kind
}

func (e *AccessError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("lazymesh: %s %s[%d].%s: %v", e.Op, e.Kind, e.Index, e.Component, e.Err)
	}
	return fmt.Sprintf("lazymesh: %s %s[%d]: %v", e.Op, e.Kind, e.Index, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

func accessErr(op string, k Kind, component string, i int, err error) error {
	return &AccessError{Op: op, Kind: k, Component: component, Index: i, Err: err}
}
