// Package stubby provides when/thenReturn stubbing for Go tests.
// It builds substitutes for interfaces (through adapters generated by stubgen), func
// types, and structs of func fields, and replays recorded return values for calls whose
// arguments are deeply equal to the recorded ones.
//
//	greeter := stubby.Mock[Greeter](t)
//	stubby.When(greeter.Greet()).ThenReturn("hi")
//
// This is the public API entry point. Implementation lives in internal/core.
package stubby

import (
	"github.com/rs/zerolog"
	"github.com/toejough/stubby/internal/core"
)

// Exported constants.
const (
	// FuncMethodName is the method name recorded for calls to a bare func substitute.
	FuncMethodName = core.FuncMethodName
)

// Exported variables.
var (
	ErrDelegateFailed          = core.ErrDelegateFailed
	ErrNilReal                 = core.ErrNilReal
	ErrNoAdapter               = core.ErrNoAdapter
	ErrNoPendingCall           = core.ErrNoPendingCall
	ErrNoSuchMethod            = core.ErrNoSuchMethod
	ErrNotSubstitute           = core.ErrNotSubstitute
	ErrReturnType              = core.ErrReturnType
	ErrUnsupportedContractKind = core.ErrUnsupportedContractKind
)

// AdapterFactory is the interface-only strategy, backed by generated adapters.
type AdapterFactory = core.AdapterFactory

// Call is a single intercepted invocation.
type Call = core.Call

// Config holds the settings a substitute is created with.
type Config = core.Config

// Continuation attaches a return value to the call captured by When.
type Continuation[T any] = core.Continuation[T]

// Continuation2 attaches two return values to the call captured by When2.
type Continuation2[A, B any] = core.Continuation2[A, B]

// Expectation is a recorded call and the values it returns.
type Expectation = core.Expectation

// Interceptor decides what a substitute's calls return.
type Interceptor = core.Interceptor

// Method identifies an intercepted operation within a contract.
type Method = core.Method

// Option configures a substitute.
type Option = core.Option

// ProxyFactory builds substitutes for a contract.
type ProxyFactory = core.ProxyFactory

// ReflectFactory is the reflection strategy for func types and structs of funcs.
type ReflectFactory = core.ReflectFactory

// Substitute is implemented by generated adapters.
type Substitute = core.Substitute

// TestReporter is the minimal interface stubby needs from test frameworks.
type TestReporter = core.TestReporter

// Mock returns a substitute for T whose unmatched calls return zero values.
func Mock[T any](t TestReporter, opts ...Option) T {
	t.Helper()

	return core.Mock[T](t, opts...)
}

// NewMock returns a substitute for T, or why one cannot be built.
func NewMock[T any](opts ...Option) (T, error) {
	return core.NewMock[T](opts...)
}

// NewSpy returns a substitute for T that forwards unmatched calls to real, or why one
// cannot be built.
func NewSpy[T any](real T, opts ...Option) (T, error) {
	return core.NewSpy(real, opts...)
}

// Register makes ctor the adapter constructor for interface I. Generated code only.
func Register[I any](ctor func(*Interceptor) I) {
	core.Register(ctor)
}

// Result converts a recorded value back into a typed result. Generated code only.
func Result[T any](returns []any, index int) T {
	return core.Result[T](returns, index)
}

// Spy returns a substitute for T whose unmatched calls are forwarded to real.
func Spy[T any](t TestReporter, real T, opts ...Option) T {
	t.Helper()

	return core.Spy(t, real, opts...)
}

// When captures the call evaluated as its argument so a return value can be attached.
func When[T any](value T) *Continuation[T] {
	return core.When(value)
}

// When2 is When for methods with two results.
func When2[A, B any](a A, b B) *Continuation2[A, B] {
	return core.When2(a, b)
}

// WhenOn is When bound explicitly to the substitute sub, which must be a generated
// adapter. Func and func-field substitutes record through When.
func WhenOn[T any](sub any, value T) *Continuation[T] {
	return core.WhenOn(sub, value)
}

// WhenOn2 is WhenOn for methods with two results.
func WhenOn2[A, B any](sub any, a A, b B) *Continuation2[A, B] {
	return core.WhenOn2(sub, a, b)
}

// WithContract overrides the contract name used in method identities and log lines.
func WithContract(name string) Option {
	return core.WithContract(name)
}

// WithFactory forces the proxy factory used to build the substitute.
func WithFactory(factory ProxyFactory) Option {
	return core.WithFactory(factory)
}

// WithLogger sets the logger the substitute writes debug and warning lines to.
func WithLogger(logger zerolog.Logger) Option {
	return core.WithLogger(logger)
}

// WithPropagatedFailures makes spy delegate failures panic instead of returning zero
// values.
func WithPropagatedFailures() Option {
	return core.WithPropagatedFailures()
}
