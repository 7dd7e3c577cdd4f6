package core

import (
	"fmt"
	"reflect"
)

// AdapterFactory is the interface-only strategy. It builds substitutes from adapters
// generated by stubgen and registered with Register.
type AdapterFactory struct{}

// Mock builds an adapter for contract with an AlwaysZero fallback.
func (AdapterFactory) Mock(contract reflect.Type, cfg Config) (reflect.Value, *Interceptor, error) {
	ctor, err := adapterFor(contract)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	interceptor := newInterceptor(cfg, AlwaysZero{})

	return reflect.ValueOf(ctor(interceptor)), interceptor, nil
}

// Spy builds an adapter for contract whose unmatched calls go to real's methods.
func (AdapterFactory) Spy(contract reflect.Type, real reflect.Value, cfg Config) (reflect.Value, *Interceptor, error) {
	ctor, err := adapterFor(contract)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	if isNil(real) {
		return reflect.Value{}, nil, fmt.Errorf("%w: %s", ErrNilReal, contract)
	}

	if real.Kind() == reflect.Interface {
		real = real.Elem()
	}

	interceptor := newInterceptor(cfg, DelegateToMethods(real))

	return reflect.ValueOf(ctor(interceptor)), interceptor, nil
}

// ProxyFactory builds substitutes for a contract.
type ProxyFactory interface {
	Mock(contract reflect.Type, cfg Config) (reflect.Value, *Interceptor, error)
	Spy(contract reflect.Type, real reflect.Value, cfg Config) (reflect.Value, *Interceptor, error)
}

// ReflectFactory is the reflection strategy. It handles func types and structs whose
// exported func fields act as overridable methods, using reflect.MakeFunc.
type ReflectFactory struct{}

// Mock builds a func or func-field struct whose calls all go to a new interceptor.
func (ReflectFactory) Mock(contract reflect.Type, cfg Config) (reflect.Value, *Interceptor, error) {
	err := checkReflectContract(contract)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	interceptor := newInterceptor(cfg, AlwaysZero{})

	switch contract.Kind() { //nolint:exhaustive // checkReflectContract rejected the rest
	case reflect.Func:
		return makeFunc(contract, FuncMethodName, interceptor), interceptor, nil
	case reflect.Pointer:
		ptr := reflect.New(contract.Elem())
		overrideFuncFields(ptr.Elem(), interceptor)

		return ptr, interceptor, nil
	default:
		val := reflect.New(contract).Elem()
		overrideFuncFields(val, interceptor)

		return val, interceptor, nil
	}
}

// Spy builds a copy of real whose func calls go through a new interceptor and fall back
// to real's own funcs.
func (ReflectFactory) Spy(contract reflect.Type, real reflect.Value, cfg Config) (reflect.Value, *Interceptor, error) {
	err := checkReflectContract(contract)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	if isNil(real) {
		return reflect.Value{}, nil, fmt.Errorf("%w: %s", ErrNilReal, contract)
	}

	switch contract.Kind() { //nolint:exhaustive // checkReflectContract rejected the rest
	case reflect.Func:
		interceptor := newInterceptor(cfg, DelegateToFunc(real))

		return makeFunc(contract, FuncMethodName, interceptor), interceptor, nil
	case reflect.Pointer:
		interceptor := newInterceptor(cfg, DelegateToFields(real.Elem()))
		ptr := reflect.New(contract.Elem())
		ptr.Elem().Set(real.Elem())
		overrideFuncFields(ptr.Elem(), interceptor)

		return ptr, interceptor, nil
	default:
		interceptor := newInterceptor(cfg, DelegateToFields(real))
		val := reflect.New(contract).Elem()
		val.Set(real)
		overrideFuncFields(val, interceptor)

		return val, interceptor, nil
	}
}

// FuncMethodName is the method name recorded for calls to a bare func substitute.
const FuncMethodName = "Call"

func adapterFor(contract reflect.Type) (adapterCtor, error) {
	if contract.Kind() != reflect.Interface {
		return nil, fmt.Errorf("%w: %s is a %s, adapters are for interfaces",
			ErrUnsupportedContractKind, contract, contract.Kind())
	}

	ctor, ok := lookupAdapter(contract)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAdapter, contract)
	}

	return ctor, nil
}

// checkReflectContract accepts func types and (pointers to) structs with at least one
// func field, all of them exported.
func checkReflectContract(contract reflect.Type) error {
	switch contract.Kind() { //nolint:exhaustive // everything else is unsupported
	case reflect.Func:
		return nil
	case reflect.Pointer:
		if contract.Elem().Kind() == reflect.Struct {
			return checkFuncFields(contract.Elem())
		}
	case reflect.Struct:
		return checkFuncFields(contract)
	}

	return fmt.Errorf("%w: %s is a %s, want a func or a struct of funcs",
		ErrUnsupportedContractKind, contract, contract.Kind())
}

func checkFuncFields(structType reflect.Type) error {
	funcs := 0

	for i := range structType.NumField() {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Func {
			continue
		}

		if !field.IsExported() {
			return fmt.Errorf("%w: %s has unexported func field %s, which cannot be overridden",
				ErrUnsupportedContractKind, structType, field.Name)
		}

		funcs++
	}

	if funcs == 0 {
		return fmt.Errorf("%w: %s has no func fields to intercept", ErrUnsupportedContractKind, structType)
	}

	return nil
}

func isNil(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}

	switch val.Kind() { //nolint:exhaustive // only nillable kinds can be nil
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return val.IsNil()
	default:
		return false
	}
}

// makeFunc returns a func of fnType whose every call is intercepted as name.
func makeFunc(fnType reflect.Type, name string, interceptor *Interceptor) reflect.Value {
	return reflect.MakeFunc(fnType, func(in []reflect.Value) []reflect.Value {
		returns := interceptor.Intercept(name, fromValues(in)...)

		out, err := resultValues(fnType, returns)
		if err != nil {
			panic(fmt.Errorf("%s.%s: %w", interceptor.Contract(), name, err))
		}

		return out
	})
}

// overrideFuncFields replaces every func field of structVal with an intercepting proxy
// named after the field.
func overrideFuncFields(structVal reflect.Value, interceptor *Interceptor) {
	structType := structVal.Type()

	for i := range structType.NumField() {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Func {
			continue
		}

		structVal.Field(i).Set(makeFunc(field.Type, field.Name, interceptor))
	}
}
