package core

import (
	"fmt"
	"reflect"
)

// Result returns returns[index] as a T. A missing or nil entry yields the zero value.
// Generated adapters use it to turn ledger values back into typed results.
func Result[T any](returns []any, index int) T {
	var zero T

	if index >= len(returns) || returns[index] == nil {
		return zero
	}

	val, ok := returns[index].(T)
	if !ok {
		panic(fmt.Errorf("%w: result %d: %w: want %s, got %T",
			ErrReturnType, index, errTypeMismatch, reflect.TypeFor[T](), returns[index]))
	}

	return val
}

// resultValues converts returns into reflect values typed for fnType's results.
func resultValues(fnType reflect.Type, returns []any) ([]reflect.Value, error) {
	out := make([]reflect.Value, fnType.NumOut())

	for i := range out {
		var ret any
		if i < len(returns) {
			ret = returns[i]
		}

		typed, err := typedValue(fnType.Out(i), ret)
		if err != nil {
			return nil, fmt.Errorf("%w: result %d: %w", ErrReturnType, i, err)
		}

		out[i] = typed
	}

	return out, nil
}
