package generate_test

import (
	"fmt"
	"go/format"
	"testing"

	"github.com/akedrou/textdiff"
	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	detect "github.com/toejough/stubby/stubgen/run/3_detect"
	generate "github.com/toejough/stubby/stubgen/run/5_generate"
)

func TestAdapter_Golden(t *testing.T) {
	t.Parallel()

	iface := detect.Interface{
		Name: "Store",
		Methods: []detect.Method{
			{
				Name:    "Get",
				Params:  []detect.Param{{Name: "key", Type: "string"}},
				Results: []string{"string", "error"},
			},
			{
				Name:   "Log",
				Params: []detect.Param{{Name: "format", Type: "string"}, {Name: "args", Type: "...any"}},
			},
			{
				Name: "Put",
				Params: []detect.Param{
					{Name: "ctx", Type: "context.Context"},
					{Name: "key", Type: "string"},
					{Name: "value", Type: "string"},
				},
				Results: []string{"error"},
			},
		},
		Imports: []detect.Import{{Path: "context"}},
	}

	got, err := generate.Adapter(iface, "shop", "StoreStub")
	if err != nil {
		t.Fatalf("Adapter() error = %v", err)
	}

	if got != goldenStore {
		t.Fatalf("generated adapter differs from golden:\n%s", textdiff.Unified("golden", "generated", goldenStore, got))
	}
}

func TestAdapter_ForeignContract(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	iface := detect.Interface{
		Name:       "Clock",
		Qualifier:  "timekeeping",
		ImportPath: "example.com/time/v2",
		Methods:    []detect.Method{{Name: "Now", Results: []string{"timekeeping.Instant"}}},
		Imports:    []detect.Import{{Path: "github.com/toejough/stubby"}},
	}

	got, err := generate.Adapter(iface, "app_test", "ClockFake")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(ContainSubstring("package app_test\n"))
	g.Expect(got).To(ContainSubstring("import (\n\ttimekeeping \"example.com/time/v2\"\n\t\"github.com/toejough/stubby\"\n)"))
	g.Expect(got).To(ContainSubstring("func newClockFake(interceptor *stubby.Interceptor) timekeeping.Clock {"))
	g.Expect(got).To(ContainSubstring("stubby.Register[timekeeping.Clock](newClockFake)"))
}

func TestAdapter_NoMethods(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	got, err := generate.Adapter(detect.Interface{Name: "Marker"}, "shop", "MarkerStub")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(ContainSubstring("type MarkerStub struct {\n\tinterceptor *stubby.Interceptor\n}\n\n// StubInterceptor"))
	assertFormatted(t, got)
}

// TestAdapter_Formatted_Property proves generated adapters are already gofmt-clean.
func TestAdapter_Formatted_Property(t *testing.T) {
	t.Parallel()

	types := []string{"int", "string", "error", "[]byte", "map[string]int", "*Key", "func(int) error", "chan int"}

	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z][a-z]{0,6}`), 0, 5, rapid.ID[string]).
			Draw(rt, "methods")

		iface := detect.Interface{Name: "Contract"}

		for _, name := range names {
			method := detect.Method{Name: name}

			for i := range rapid.IntRange(0, 3).Draw(rt, "params") {
				method.Params = append(method.Params, detect.Param{
					Name: fmt.Sprintf("p%d", i),
					Type: rapid.SampledFrom(types).Draw(rt, "param type"),
				})
			}

			if rapid.Bool().Draw(rt, "variadic") {
				method.Params = append(method.Params, detect.Param{Name: "rest", Type: "...any"})
			}

			method.Results = rapid.SliceOfN(rapid.SampledFrom(types), 0, 3).Draw(rt, "results")
			iface.Methods = append(iface.Methods, method)
		}

		got, err := generate.Adapter(iface, "p", "ContractStub")
		if err != nil {
			rt.Fatalf("Adapter() error = %v", err)
		}

		assertFormatted(rt, got)
	})
}

// unexported constants.
const goldenStore = `// Code generated by stubgen. DO NOT EDIT.

package shop

import (
	"context"

	"github.com/toejough/stubby"
)

// StoreStub is a stubby adapter for Store.
type StoreStub struct {
	interceptor *stubby.Interceptor
}

func (s *StoreStub) Get(key string) (string, error) {
	rets := s.interceptor.Intercept("Get", key)

	return stubby.Result[string](rets, 0), stubby.Result[error](rets, 1)
}

func (s *StoreStub) Log(format string, args ...any) {
	s.interceptor.Intercept("Log", format, args)
}

func (s *StoreStub) Put(ctx context.Context, key string, value string) error {
	rets := s.interceptor.Intercept("Put", ctx, key, value)

	return stubby.Result[error](rets, 0)
}

// StubInterceptor returns the interceptor behind s.
func (s *StoreStub) StubInterceptor() *stubby.Interceptor {
	return s.interceptor
}

func newStoreStub(interceptor *stubby.Interceptor) Store {
	return &StoreStub{interceptor: interceptor}
}

func init() {
	stubby.Register[Store](newStoreStub)
}
`

func assertFormatted(t interface{ Fatalf(string, ...any) }, src string) {
	formatted, err := format.Source([]byte(src))
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}

	if string(formatted) != src {
		t.Fatalf("generated code is not gofmt-clean:\n%s", textdiff.Unified("generated", "gofmt", src, string(formatted)))
	}
}
