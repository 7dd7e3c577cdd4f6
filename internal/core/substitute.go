package core

import (
	"fmt"
	"reflect"
)

// Mock returns a substitute for T whose unmatched calls return zero values.
// Creation errors fail the test through t.
func Mock[T any](t TestReporter, opts ...Option) T {
	t.Helper()

	sub, err := NewMock[T](opts...)
	if err != nil {
		t.Fatalf("stubby: %v", err)
	}

	return sub
}

// NewMock returns a substitute for T whose unmatched calls return zero values.
// Interfaces need a registered adapter; func types and structs of funcs are proxied
// by reflection.
func NewMock[T any](opts ...Option) (T, error) {
	contract := reflect.TypeFor[T]()
	cfg := newConfig(contract, opts)

	val, _, err := factoryFor(contract, cfg).Mock(contract, cfg)
	if err != nil {
		var zero T

		return zero, err
	}

	return asContract[T](val)
}

// NewSpy returns a substitute for T whose unmatched calls are forwarded to real.
func NewSpy[T any](real T, opts ...Option) (T, error) {
	contract := reflect.TypeFor[T]()
	cfg := newConfig(contract, opts)

	val, _, err := factoryFor(contract, cfg).Spy(contract, reflect.ValueOf(&real).Elem(), cfg)
	if err != nil {
		var zero T

		return zero, err
	}

	return asContract[T](val)
}

// Spy returns a substitute for T whose unmatched calls are forwarded to real.
// Creation errors fail the test through t.
func Spy[T any](t TestReporter, real T, opts ...Option) T {
	t.Helper()

	sub, err := NewSpy(real, opts...)
	if err != nil {
		t.Fatalf("stubby: %v", err)
	}

	return sub
}

// TestReporter is the minimal interface stubby needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

func asContract[T any](val reflect.Value) (T, error) {
	sub, ok := val.Interface().(T)
	if !ok {
		var zero T

		return zero, fmt.Errorf("%w: factory built a %s, which is not a %s",
			ErrUnsupportedContractKind, val.Type(), reflect.TypeFor[T]())
	}

	return sub, nil
}

func factoryFor(contract reflect.Type, cfg Config) ProxyFactory {
	if cfg.Factory != nil {
		return cfg.Factory
	}

	if contract.Kind() == reflect.Interface {
		return AdapterFactory{}
	}

	return ReflectFactory{}
}
