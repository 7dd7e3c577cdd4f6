package core_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/stubby/internal/core"
	"pgregory.net/rapid"
)

func TestLedger_EmptyLookupMisses(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var ledger core.Ledger

	_, ok := ledger.Lookup(call("Echo", "hi"))
	g.Expect(ok).To(BeFalse())
	g.Expect(ledger.Len()).To(BeZero())
}

func TestLedger_FirstMatchWins(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var ledger core.Ledger

	g.Expect(ledger.Record(call("Echo", "hi"), []any{"first"})).To(BeFalse())
	g.Expect(ledger.Record(call("Echo", "hi"), []any{"second"})).To(BeTrue(), "second recording is shadowed")

	returns, ok := ledger.Lookup(call("Echo", "hi"))
	g.Expect(ok).To(BeTrue())
	g.Expect(returns).To(Equal([]any{"first"}))
	g.Expect(ledger.Len()).To(Equal(2), "entries are never deduplicated")
}

func TestLedger_MethodIdentityIncludesContract(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var ledger core.Ledger

	ledger.Record(core.Call{Method: core.Method{Contract: "a.Echoer", Name: "Echo"}}, []any{"a"})

	_, ok := ledger.Lookup(core.Call{Method: core.Method{Contract: "b.Echoer", Name: "Echo"}})
	g.Expect(ok).To(BeFalse())
}

func TestLedger_NilAndEmptyArgsAreEqual(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var ledger core.Ledger

	ledger.Record(core.Call{Method: core.Method{Contract: "c", Name: "Greet"}, Args: nil}, []any{"hi"})

	returns, ok := ledger.Lookup(core.Call{Method: core.Method{Contract: "c", Name: "Greet"}, Args: []any{}})
	g.Expect(ok).To(BeTrue())
	g.Expect(returns).To(Equal([]any{"hi"}))
}

func TestLedger_StructuralArgumentEquality(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var ledger core.Ledger

	recorded := Key{Namespace: "users", Parts: []string{"a", "b"}}
	ledger.Record(call("Put", recorded, map[string][]int{"x": {1}}), []any{true})

	separate := Key{Namespace: "users", Parts: []string{"a", "b"}}

	returns, ok := ledger.Lookup(call("Put", separate, map[string][]int{"x": {1}}))
	g.Expect(ok).To(BeTrue(), "separately constructed equal values match")
	g.Expect(returns).To(Equal([]any{true}))

	_, ok = ledger.Lookup(call("Put", Key{Namespace: "users", Parts: []string{"a"}}, map[string][]int{"x": {1}}))
	g.Expect(ok).To(BeFalse())
}

func TestLedger_EntriesAreCopies(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var ledger core.Ledger

	args := []any{"hi"}
	ledger.Record(core.Call{Method: core.Method{Contract: "c", Name: "Echo"}, Args: args}, []any{"there"})
	args[0] = "changed"

	entries := ledger.Entries()
	entries[0].Returns[0] = "mutated"

	fresh := ledger.Entries()
	g.Expect(fresh[0].Args).To(Equal([]any{"hi"}), "recorded args are not aliased")
	g.Expect(fresh[0].Returns).To(Equal([]any{"there"}), "handed-out entries are not aliased")
	g.Expect(fresh).To(HaveLen(1))
}

func TestLedger_RecordedContainersAreDetached(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type key struct {
		Namespace string
		Parts     []string
	}

	var ledger core.Ledger

	tags := []string{"a"}
	variadic := []any{1, []int{2}}
	labels := map[string][]string{"env": {"prod"}}
	k := key{Namespace: "n", Parts: []string{"p"}}

	ledger.Record(call("Put", k, tags, labels, variadic), []any{true})

	tags[0] = "z"
	variadic[1].([]int)[0] = 9
	labels["env"][0] = "dev"
	k.Parts[0] = "q"

	original := call("Put",
		key{Namespace: "n", Parts: []string{"p"}},
		[]string{"a"},
		map[string][]string{"env": {"prod"}},
		[]any{1, []int{2}},
	)

	_, found := ledger.Lookup(original)
	g.Expect(found).To(BeTrue(), "the recorded call keeps the values it was recorded with")

	_, found = ledger.Lookup(call("Put", k, tags, labels, variadic))
	g.Expect(found).To(BeFalse(), "later writes to the caller's values do not match")

	entries := ledger.Entries()
	entries[0].Args[1].([]string)[0] = "mutated"

	_, found = ledger.Lookup(original)
	g.Expect(found).To(BeTrue(), "handed-out args are not aliased")
}

func TestLedger_SelfReferencingArgs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var ledger core.Ledger

	loop := []any{nil}
	loop[0] = loop

	ledger.Record(call("Walk", loop), []any{"done"})

	g.Expect(ledger.Len()).To(Equal(1))
}

// TestLedger_IndependentBindings_Rapid records distinct argument values and checks each
// replays its own return value regardless of lookup order.
func TestLedger_IndependentBindings_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.SliceOfDistinct(rapid.String(), rapid.ID[string]).Draw(rt, "keys")
		order := rapid.Permutation(keys).Draw(rt, "order")

		var ledger core.Ledger

		for i, key := range keys {
			ledger.Record(call("Echo", key), []any{i})
		}

		for _, key := range order {
			returns, ok := ledger.Lookup(call("Echo", key))
			if !ok {
				rt.Fatalf("no expectation for %q", key)
			}

			want := indexOf(keys, key)
			if returns[0] != want {
				rt.Fatalf("key %q returned %v, want %d", key, returns[0], want)
			}
		}
	})
}

func TestMethod_String(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	c := call("Echo", "hi")
	g.Expect(c.Method.String()).To(Equal("core_test.Echoer.Echo"))
	g.Expect(c.String()).To(Equal(fmt.Sprintf("core_test.Echoer.Echo%v", []any{"hi"})))
}

func call(name string, args ...any) core.Call {
	return core.Call{Method: core.Method{Contract: "core_test.Echoer", Name: name}, Args: args}
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}

	return -1
}
