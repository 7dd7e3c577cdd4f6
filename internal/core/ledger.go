package core

import (
	"fmt"
	"reflect"
)

// Call is a single invocation: which method, with which arguments.
// Variadic arguments are carried as one trailing slice element.
type Call struct {
	Method Method
	Args   []any
}

// String renders the call for log lines and error messages.
func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Method, c.Args)
}

// Expectation is a recorded call and the values it should return.
// Slices, maps, arrays, and exported struct fields among the recorded arguments are
// copied, so later writes to the caller's values do not change what matches. Pointers,
// and anything reached through them or through unexported fields, are held by reference.
type Expectation struct {
	Call

	Returns []any
}

// Ledger is the append-only list of expectations for one substitute.
// Lookups scan in insertion order and the first match wins.
type Ledger struct {
	entries []Expectation
}

// Entries returns a copy of the recorded expectations, oldest first.
func (l *Ledger) Entries() []Expectation {
	out := make([]Expectation, len(l.entries))

	for i, entry := range l.entries {
		out[i] = Expectation{
			Call:    Call{Method: entry.Method, Args: detachArgs(entry.Args)},
			Returns: cloneArgs(entry.Returns),
		}
	}

	return out
}

// Len returns the number of recorded expectations.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Lookup returns the returns of the first expectation matching call.
func (l *Ledger) Lookup(call Call) ([]any, bool) {
	for _, entry := range l.entries {
		if entry.Method == call.Method && argsEqual(entry.Args, call.Args) {
			return entry.Returns, true
		}
	}

	return nil, false
}

// Record appends an expectation. It reports whether an earlier expectation already
// covers the same call, in which case the new one will never be returned.
func (l *Ledger) Record(call Call, returns []any) (shadowed bool) {
	_, shadowed = l.Lookup(call)

	l.entries = append(l.entries, Expectation{
		Call:    Call{Method: call.Method, Args: detachArgs(call.Args)},
		Returns: cloneArgs(returns),
	})

	return shadowed
}

// Method identifies an intercepted operation within a contract.
type Method struct {
	Contract string
	Name     string
}

// String renders the method as Contract.Name.
func (m Method) String() string {
	return m.Contract + "." + m.Name
}

// argsEqual compares argument vectors structurally. Nil and empty vectors are equal.
func argsEqual(want, got []any) bool {
	if len(want) != len(got) {
		return false
	}

	for i := range want {
		if !reflect.DeepEqual(want[i], got[i]) {
			return false
		}
	}

	return true
}

func cloneArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}

	out := make([]any, len(args))
	copy(out, args)

	return out
}

// detachArgs copies args, along with every slice, map, and array reachable from them
// without passing through a pointer or an unexported field.
func detachArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}

	d := detacher{seen: make(map[containerKey]reflect.Value)}
	out := make([]any, len(args))

	for i, arg := range args {
		if arg == nil {
			continue
		}

		out[i] = d.detach(reflect.ValueOf(arg)).Interface()
	}

	return out
}

// containerKey identifies a slice or map backing store, so shared and self-referencing
// containers are copied once.
type containerKey struct {
	ptr uintptr
	typ reflect.Type
	len int
}

type detacher struct {
	seen map[containerKey]reflect.Value
}

//nolint:cyclop // one case per container kind
func (d detacher) detach(val reflect.Value) reflect.Value {
	switch val.Kind() {
	case reflect.Slice:
		if val.IsNil() {
			return val
		}

		key := containerKey{ptr: val.Pointer(), typ: val.Type(), len: val.Len()}
		if copied, ok := d.seen[key]; ok {
			return copied
		}

		out := reflect.MakeSlice(val.Type(), val.Len(), val.Len())
		d.seen[key] = out

		for i := range val.Len() {
			out.Index(i).Set(d.detach(val.Index(i)))
		}

		return out
	case reflect.Array:
		out := reflect.New(val.Type()).Elem()

		for i := range val.Len() {
			out.Index(i).Set(d.detach(val.Index(i)))
		}

		return out
	case reflect.Map:
		if val.IsNil() {
			return val
		}

		key := containerKey{ptr: val.Pointer(), typ: val.Type()}
		if copied, ok := d.seen[key]; ok {
			return copied
		}

		out := reflect.MakeMapWithSize(val.Type(), val.Len())
		d.seen[key] = out

		iter := val.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), d.detach(iter.Value()))
		}

		return out
	case reflect.Struct:
		out := reflect.New(val.Type()).Elem()
		out.Set(val)

		for i := range val.NumField() {
			if out.Field(i).CanSet() {
				out.Field(i).Set(d.detach(val.Field(i)))
			}
		}

		return out
	case reflect.Interface:
		if val.IsNil() {
			return val
		}

		out := reflect.New(val.Type()).Elem()
		out.Set(d.detach(val.Elem()))

		return out
	default:
		return val
	}
}
