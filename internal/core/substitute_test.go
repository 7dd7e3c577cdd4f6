package core_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/toejough/stubby/internal/core"
	"pgregory.net/rapid"
)

// TestMock_Greeter walks through stubbing a no-arg method.
//
//nolint:paralleltest // When reads the process-wide active recorder
func TestMock_Greeter(t *testing.T) {
	g := NewWithT(t)

	greeter := core.Mock[Greeter](t)

	g.Expect(greeter.Greet()).To(BeEmpty(), "no expectation returns the zero value")

	core.When(greeter.Greet()).ThenReturn("hi")
	g.Expect(greeter.Greet()).To(Equal("hi"))
}

// TestMock_EchoBindings records two argument bindings and checks both survive.
//
//nolint:paralleltest // When reads the process-wide active recorder
func TestMock_EchoBindings(t *testing.T) {
	g := NewWithT(t)

	echoer := core.Mock[Echoer](t)

	core.When(echoer.Echo("echo")).ThenReturn("echo")
	core.When(echoer.Echo("hello")).ThenReturn("world")

	g.Expect(echoer.Echo("echo")).To(Equal("echo"))
	g.Expect(echoer.Echo("hello")).To(Equal("world"))
	g.Expect(echoer.Echo("echo")).To(Equal("echo"))
	g.Expect(echoer.Echo("other")).To(BeEmpty())
}

// TestMock_AnyCallReturnsZero_Rapid checks a fresh mock returns zero values for any args.
func TestMock_AnyCallReturnsZero_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		store := core.Mock[Store](t)
		id := rapid.Int().Draw(rt, "id")

		data, err := store.Get(id)
		if data != "" || err != nil {
			rt.Fatalf("Get(%d) = (%q, %v), want zero values", id, data, err)
		}

		if store.Put(Key{Namespace: rapid.String().Draw(rt, "ns")}, nil) {
			rt.Fatalf("Put returned true on a fresh mock")
		}
	})
}

//nolint:paralleltest // When reads the process-wide active recorder
func TestMock_TwoResults(t *testing.T) {
	g := NewWithT(t)

	store := core.Mock[Store](t)

	core.When2(store.Get(1)).ThenReturn("one", nil)
	core.When2(store.Get(2)).ThenReturn("", errNotFound)

	data, err := store.Get(1)
	g.Expect(data).To(Equal("one"))
	g.Expect(err).NotTo(HaveOccurred())

	_, err = store.Get(2)
	g.Expect(err).To(MatchError(errNotFound))
}

//nolint:paralleltest // When reads the process-wide active recorder
func TestMock_StructuralArguments(t *testing.T) {
	g := NewWithT(t)

	store := core.Mock[Store](t)

	core.When(store.Put(Key{Namespace: "n", Parts: []string{"a"}}, []string{"t"})).ThenReturn(true)

	g.Expect(store.Put(Key{Namespace: "n", Parts: []string{"a"}}, []string{"t"})).To(BeTrue())
	g.Expect(store.Put(Key{Namespace: "n", Parts: []string{"b"}}, []string{"t"})).To(BeFalse())
}

//nolint:paralleltest // When reads the process-wide active recorder
func TestMock_RecordedArgumentsAreDetached(t *testing.T) {
	g := NewWithT(t)

	store := core.Mock[Store](t)
	tags := []string{"a"}

	core.When(store.Put(Key{Namespace: "n"}, tags)).ThenReturn(true)

	tags[0] = "z"

	g.Expect(store.Put(Key{Namespace: "n"}, []string{"a"})).To(BeTrue())
	g.Expect(store.Put(Key{Namespace: "n"}, tags)).To(BeFalse())
}

func TestMock_VariadicCallsAreIntercepted(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	store := core.Mock[Store](t)
	store.Log("%d-%d", 1, 2)

	pending, ok := store.(core.Substitute).StubInterceptor().Pending()
	g.Expect(ok).To(BeTrue())
	g.Expect(pending.Method.Name).To(Equal("Log"))
	g.Expect(pending.Args).To(Equal([]any{"%d-%d", []any{1, 2}}))
}

// TestSpy_Echo delegates to the real echo until a call is stubbed.
//
//nolint:paralleltest // When reads the process-wide active recorder
func TestSpy_Echo(t *testing.T) {
	g := NewWithT(t)

	spy := core.Spy[Echoer](t, echo{})

	g.Expect(spy.Echo("foo")).To(Equal("foo"))

	core.When(spy.Echo("foo")).ThenReturn("bar")

	g.Expect(spy.Echo("foo")).To(Equal("bar"))
	g.Expect(spy.Echo("echo")).To(Equal("echo"), "other args still delegate")
}

// TestSpy_MatchesReal_Rapid checks an unstubbed spy behaves exactly like the real value.
func TestSpy_MatchesReal_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		real := &flakyStore{}
		spy := core.Spy[Store](t, real)
		id := rapid.IntRange(0, 50).Draw(rt, "id")

		wantData, wantErr := real.Get(id)
		gotData, gotErr := spy.Get(id)

		if gotData != wantData || !errors.Is(gotErr, wantErr) {
			rt.Fatalf("spy.Get(%d) = (%q, %v), real = (%q, %v)", id, gotData, gotErr, wantData, wantErr)
		}
	})
}

func TestSpy_VariadicDelegation(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	real := &flakyStore{}
	spy := core.Spy[Store](t, real)

	spy.Log("a %s", "b")
	spy.Log("c")

	g.Expect(real.logged).To(Equal([]string{"a %s", "c"}))
}

func TestSpy_DelegateFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var logs bytes.Buffer

	spy := core.Spy[Store](t, &flakyStore{}, core.WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))

	data, err := spy.Get(-1)
	g.Expect(data).To(BeEmpty())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(logs.String()).To(ContainSubstring("negative id"))
	g.Expect(logs.String()).To(ContainSubstring(`"contract":"core_test.Store"`))
}

func TestSpy_DelegateFailureCanPropagate(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	spy := core.Spy[Store](t, &flakyStore{}, core.WithPropagatedFailures())

	g.Expect(func() { _, _ = spy.Get(-1) }).To(PanicWith(MatchError(core.ErrDelegateFailed)))
}

func TestSpy_NilRealFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := core.NewSpy[Echoer](nil)
	g.Expect(err).To(MatchError(core.ErrNilReal))
}

func TestNewMock_NoAdapter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type unregistered interface{ Nope() }

	_, err := core.NewMock[unregistered]()
	g.Expect(err).To(MatchError(core.ErrNoAdapter))
}

func TestNewMock_UnsupportedKinds(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := core.NewMock[int]()
	g.Expect(err).To(MatchError(core.ErrUnsupportedContractKind))

	_, err = core.NewMock[Greeter](core.WithFactory(core.ReflectFactory{}))
	g.Expect(err).To(MatchError(core.ErrUnsupportedContractKind), "reflection cannot build interfaces")

	_, err = core.NewMock[func() string](core.WithFactory(core.AdapterFactory{}))
	g.Expect(err).To(MatchError(core.ErrUnsupportedContractKind), "adapters are interface-only")
}

func TestMock_FatalfOnError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &fakeReporter{}
	sub := core.Mock[int](reporter)

	g.Expect(sub).To(BeZero())
	g.Expect(reporter.fatal).To(ContainSubstring(core.ErrUnsupportedContractKind.Error()))
	g.Expect(reporter.helpers).To(BeNumerically(">", 0))
}

func TestWithContract_RenamesMethodIdentity(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	greeter := core.Mock[Greeter](t, core.WithContract("custom"))
	greeter.Greet()

	pending, _ := greeter.(core.Substitute).StubInterceptor().Pending()
	g.Expect(pending.Method).To(Equal(core.Method{Contract: "custom", Name: "Greet"}))
}

type fakeReporter struct {
	fatal   string
	helpers int
}

func (r *fakeReporter) Fatalf(format string, args ...any) {
	r.fatal = fmt.Sprintf(format, args...)
}

func (r *fakeReporter) Helper() {
	r.helpers++
}
