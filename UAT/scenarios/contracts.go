// Package scenarios holds the contracts the acceptance tests substitute.
package scenarios

//go:generate stubgen Greeter
//go:generate stubgen Echo

// Greeter says hello.
type Greeter interface {
	Greet() string
}

// Echo repeats what it is told.
type Echo interface {
	Echo(msg string) string
}

// Foo is a real Echo.
type Foo struct{}

// NewFoo returns a Foo.
func NewFoo() *Foo {
	return &Foo{}
}

// Echo returns msg unchanged.
func (f *Foo) Echo(msg string) string {
	return msg
}
