package core

import (
	"reflect"

	"github.com/rs/zerolog"
)

// Config holds the settings a substitute is created with.
type Config struct {
	// Logger receives debug lines for swallowed delegate failures and warnings for
	// shadowed recordings. Defaults to a disabled logger.
	Logger zerolog.Logger
	// PropagateFailures makes Intercept panic with ErrDelegateFailed instead of
	// returning zero values when a spy's real implementation panics.
	PropagateFailures bool
	// Factory forces a proxy factory. Nil picks one by contract kind.
	Factory ProxyFactory
	// Contract overrides the contract name used in method identities and logs.
	Contract string
}

// Option configures a substitute.
type Option func(*Config)

// WithContract overrides the contract name used in method identities and log lines.
func WithContract(name string) Option {
	return func(c *Config) {
		c.Contract = name
	}
}

// WithFactory forces the proxy factory used to build the substitute.
func WithFactory(factory ProxyFactory) Option {
	return func(c *Config) {
		c.Factory = factory
	}
}

// WithLogger sets the logger the substitute's interceptor writes to.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithPropagatedFailures makes delegate failures panic out of the substitute instead
// of being swallowed into zero values.
func WithPropagatedFailures() Option {
	return func(c *Config) {
		c.PropagateFailures = true
	}
}

// newConfig applies opts over the defaults for contract.
func newConfig(contract reflect.Type, opts []Option) Config {
	cfg := Config{
		Logger: zerolog.Nop(),
	}

	if contract != nil {
		cfg.Contract = contract.String()
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
