package core

import (
	"fmt"
	"reflect"
	"sync"
)

// Register makes ctor the adapter constructor for interface I. Generated adapters call
// it from init, which is how Mock and Spy find them.
// Registering the same interface twice replaces the earlier constructor.
func Register[I any](ctor func(*Interceptor) I) {
	contract := reflect.TypeFor[I]()
	if contract.Kind() != reflect.Interface {
		panic(fmt.Errorf("%w: adapters are for interfaces, got %s", ErrUnsupportedContractKind, contract))
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	registry[contract] = func(interceptor *Interceptor) any {
		return ctor(interceptor)
	}
}

// Registered reports whether an adapter constructor is registered for contract.
func Registered(contract reflect.Type) bool {
	_, ok := lookupAdapter(contract)

	return ok
}

// unexported variables.
var (
	//nolint:gochecknoglobals // adapters register themselves from generated init funcs
	registry = make(map[reflect.Type]adapterCtor)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

type adapterCtor func(*Interceptor) any

func lookupAdapter(contract reflect.Type) (adapterCtor, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	ctor, ok := registry[contract]

	return ctor, ok
}
