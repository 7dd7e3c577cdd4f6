package core_test

import (
	"errors"
	"strings"

	"github.com/toejough/stubby/internal/core"
)

// Contracts and hand-written adapters, shaped like stubgen output.

type Echoer interface {
	Echo(msg string) string
}

type Greeter interface {
	Greet() string
}

type Store interface {
	Get(id int) (string, error)
	Put(key Key, tags []string) bool
	Log(format string, args ...any)
}

type Key struct {
	Namespace string
	Parts     []string
}

type EchoerStub struct {
	interceptor *core.Interceptor
}

func (s *EchoerStub) Echo(msg string) string {
	rets := s.interceptor.Intercept("Echo", msg)

	return core.Result[string](rets, 0)
}

func (s *EchoerStub) StubInterceptor() *core.Interceptor {
	return s.interceptor
}

type GreeterStub struct {
	interceptor *core.Interceptor
}

func (s *GreeterStub) Greet() string {
	rets := s.interceptor.Intercept("Greet")

	return core.Result[string](rets, 0)
}

func (s *GreeterStub) StubInterceptor() *core.Interceptor {
	return s.interceptor
}

type StoreStub struct {
	interceptor *core.Interceptor
}

func (s *StoreStub) Get(id int) (string, error) {
	rets := s.interceptor.Intercept("Get", id)

	return core.Result[string](rets, 0), core.Result[error](rets, 1)
}

func (s *StoreStub) Log(format string, args ...any) {
	s.interceptor.Intercept("Log", format, args)
}

func (s *StoreStub) Put(key Key, tags []string) bool {
	rets := s.interceptor.Intercept("Put", key, tags)

	return core.Result[bool](rets, 0)
}

func (s *StoreStub) StubInterceptor() *core.Interceptor {
	return s.interceptor
}

// Real implementations for spies.

type echo struct{}

func (echo) Echo(msg string) string {
	return msg
}

type flakyStore struct {
	logged []string
}

func (f *flakyStore) Get(id int) (string, error) {
	if id < 0 {
		panic("negative id")
	}

	if id == 0 {
		return "", errNotFound
	}

	return strings.Repeat("x", id), nil
}

func (f *flakyStore) Log(format string, args ...any) {
	f.logged = append(f.logged, format)
	_ = args
}

func (f *flakyStore) Put(Key, []string) bool {
	return true
}

// unexported variables.
var (
	errNotFound = errors.New("not found")
)

//nolint:gochecknoinits // adapters register the way generated code does
func init() {
	core.Register[Echoer](func(i *core.Interceptor) Echoer { return &EchoerStub{interceptor: i} })
	core.Register[Greeter](func(i *core.Interceptor) Greeter { return &GreeterStub{interceptor: i} })
	core.Register[Store](func(i *core.Interceptor) Store { return &StoreStub{interceptor: i} })
}
