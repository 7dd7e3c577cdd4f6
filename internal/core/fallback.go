package core

import (
	"fmt"
	"reflect"
)

// AlwaysZero is the mock fallback: every unmatched call returns zero values.
type AlwaysZero struct{}

// Default returns no values; callers materialise the zero value of each result.
func (AlwaysZero) Default(Call) ([]any, error) {
	return nil, nil
}

// DelegateToReal is the spy fallback: unmatched calls are forwarded to a real
// implementation and its results are returned.
type DelegateToReal struct {
	resolve func(name string) (reflect.Value, bool)
}

// DelegateToFields forwards calls to the func fields of a real struct, by field name.
func DelegateToFields(real reflect.Value) *DelegateToReal {
	for real.Kind() == reflect.Pointer {
		real = real.Elem()
	}

	return &DelegateToReal{resolve: func(name string) (reflect.Value, bool) {
		field := real.FieldByName(name)
		if !field.IsValid() || field.Kind() != reflect.Func {
			return reflect.Value{}, false
		}

		return field, true
	}}
}

// DelegateToFunc forwards every call to fn, whatever its method name.
func DelegateToFunc(fn reflect.Value) *DelegateToReal {
	return &DelegateToReal{resolve: func(string) (reflect.Value, bool) {
		return fn, fn.IsValid()
	}}
}

// DelegateToMethods forwards calls to the method set of real, by method name.
func DelegateToMethods(real reflect.Value) *DelegateToReal {
	return &DelegateToReal{resolve: func(name string) (reflect.Value, bool) {
		method := real.MethodByName(name)

		return method, method.IsValid()
	}}
}

// Default invokes the real callee. Panics are recovered into ErrDelegateFailed.
func (d *DelegateToReal) Default(call Call) (returns []any, err error) {
	callee, ok := d.resolve(call.Method.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrDelegateFailed, ErrNoSuchMethod, call.Method)
	}

	defer func() {
		if r := recover(); r != nil {
			returns = nil
			err = fmt.Errorf("%w: %s: %v", ErrDelegateFailed, call.Method, r)
		}
	}()

	in, err := toValues(callee.Type(), call.Args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDelegateFailed, call.Method, err)
	}

	var out []reflect.Value
	if callee.Type().IsVariadic() {
		out = callee.CallSlice(in)
	} else {
		out = callee.Call(in)
	}

	return fromValues(out), nil
}

// Fallback decides what an unmatched call returns.
type Fallback interface {
	Default(call Call) ([]any, error)
}

// fromValues unwraps reflect results into a plain vector.
func fromValues(values []reflect.Value) []any {
	if len(values) == 0 {
		return nil
	}

	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v.Interface()
	}

	return out
}

// toValues converts an argument vector into reflect values typed for fnType's
// parameters. A nil argument becomes the zero value of its parameter.
func toValues(fnType reflect.Type, args []any) ([]reflect.Value, error) {
	if len(args) != fnType.NumIn() {
		//nolint:err113 // arity error with dynamic context
		return nil, fmt.Errorf("expected %d args, got %d", fnType.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		typed, err := typedValue(fnType.In(i), arg)
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}

		in[i] = typed
	}

	return in, nil
}

// typedValue returns arg as a value of exactly typ.
func typedValue(typ reflect.Type, arg any) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(typ), nil
	}

	val := reflect.ValueOf(arg)
	if val.Type() == typ {
		return val, nil
	}

	if !val.Type().AssignableTo(typ) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", errTypeMismatch, val.Type(), typ)
	}

	out := reflect.New(typ).Elem()
	out.Set(val)

	return out, nil
}
