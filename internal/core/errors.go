package core

import "errors"

// Exported variables.
var (
	// ErrDelegateFailed wraps a panic raised by a spy's real implementation.
	ErrDelegateFailed = errors.New("delegate invocation failed")
	// ErrNilReal is returned when a spy is requested for a nil value.
	ErrNilReal = errors.New("cannot spy on a nil value")
	// ErrNoAdapter is returned when an interface has no generated adapter registered.
	ErrNoAdapter = errors.New("no adapter registered (run stubgen for this interface)")
	// ErrNoPendingCall is raised when a return value is recorded without a preceding
	// intercepted call.
	ErrNoPendingCall = errors.New("no pending call to attach a return value to")
	// ErrNoSuchMethod is returned when a spy's real value has no callee for a method.
	ErrNoSuchMethod = errors.New("no such method on real value")
	// ErrNotSubstitute is raised when WhenOn is given something that is not a substitute.
	ErrNotSubstitute = errors.New("value is not a substitute")
	// ErrReturnType is raised when a recorded value does not fit a result type.
	ErrReturnType = errors.New("recorded value has the wrong type")
	// ErrUnsupportedContractKind is returned when a factory cannot proxy a contract.
	ErrUnsupportedContractKind = errors.New("unsupported contract kind")
)

// unexported variables.
var (
	errTypeMismatch = errors.New("type mismatch")
)
