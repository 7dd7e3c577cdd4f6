package core

import (
	"fmt"
	"sync"
)

// Continuation attaches a return value to the call captured by When.
type Continuation[T any] struct {
	binding
}

// ThenReturn records value as the result of the captured call.
// It panics if the continuation was not bound to an intercepted call.
func (c *Continuation[T]) ThenReturn(value T) {
	c.record([]any{value})
}

// Continuation2 attaches a pair of return values to the call captured by When2.
type Continuation2[A, B any] struct {
	binding
}

// ThenReturn records (a, b) as the results of the captured call.
// It panics if the continuation was not bound to an intercepted call.
func (c *Continuation2[A, B]) ThenReturn(a A, b B) {
	c.record([]any{a, b})
}

// Substitute is implemented by generated adapters so recordings can be bound to them
// without going through the active recorder.
type Substitute interface {
	StubInterceptor() *Interceptor
}

// When captures the call that was just intercepted, so that ThenReturn can attach a
// value to it. The argument is only there to carry the call's result type:
//
//	When(greeter.Greet()).ThenReturn("hi")
//
// The call expression is evaluated before When runs, which is what records it.
func When[T any](_ T) *Continuation[T] {
	return &Continuation[T]{binding: bindActive()}
}

// When2 is When for methods with two results, such as (T, error).
func When2[A, B any](_ A, _ B) *Continuation2[A, B] {
	return &Continuation2[A, B]{binding: bindActive()}
}

// WhenOn is When bound explicitly to sub, independent of which substitute ran last.
// sub must be a generated adapter (a Substitute). Func and func-field substitutes built
// by ReflectFactory have no handle back to their interceptor, so they record through
// When only; WhenOn on them yields ErrNotSubstitute.
func WhenOn[T any](sub any, _ T) *Continuation[T] {
	return &Continuation[T]{binding: bindTo(sub)}
}

// WhenOn2 is WhenOn for methods with two results.
func WhenOn2[A, B any](sub any, _ A, _ B) *Continuation2[A, B] {
	return &Continuation2[A, B]{binding: bindTo(sub)}
}

// binding is the interceptor and call a continuation records into.
type binding struct {
	interceptor *Interceptor
	call        Call
	err         error
}

// Err reports why the continuation cannot record, or nil if it can.
func (b binding) Err() error {
	return b.err
}

// Interceptor returns the interceptor the continuation records into, or nil.
func (b binding) Interceptor() *Interceptor {
	return b.interceptor
}

func (b binding) record(returns []any) {
	if b.err != nil {
		panic(b.err)
	}

	b.interceptor.Record(b.call, returns)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // the most recently called substitute, consumed by When
	active *Interceptor
	//nolint:gochecknoglobals // guards active
	activeMu sync.Mutex
)

// bindActive takes the active recorder and snapshots its pending call.
func bindActive() binding {
	interceptor := takeActive()
	if interceptor == nil {
		return binding{err: fmt.Errorf("%w: call a substitute method inside When", ErrNoPendingCall)}
	}

	return bindPending(interceptor)
}

func bindPending(interceptor *Interceptor) binding {
	call, ok := interceptor.Pending()
	if !ok {
		return binding{err: fmt.Errorf("%w: %s has not been called", ErrNoPendingCall, interceptor.Contract())}
	}

	return binding{interceptor: interceptor, call: call}
}

// bindTo binds to sub's interceptor, clearing the active recorder if it is the same one.
func bindTo(sub any) binding {
	s, ok := sub.(Substitute)
	if !ok || s.StubInterceptor() == nil {
		return binding{err: fmt.Errorf("%w: %T", ErrNotSubstitute, sub)}
	}

	interceptor := s.StubInterceptor()

	activeMu.Lock()
	if active == interceptor {
		active = nil
	}
	activeMu.Unlock()

	return bindPending(interceptor)
}

// publish makes interceptor the active recorder.
func publish(interceptor *Interceptor) {
	activeMu.Lock()
	active = interceptor
	activeMu.Unlock()
}

// takeActive returns the active recorder and clears the slot.
func takeActive() *Interceptor {
	activeMu.Lock()
	defer activeMu.Unlock()

	interceptor := active
	active = nil

	return interceptor
}
