package core

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Interceptor decides what a substitute's calls return. Every substitute owns exactly
// one Interceptor, which owns the substitute's ledger and pending-call slot.
type Interceptor struct {
	id        string
	contract  string
	fallback  Fallback
	logger    zerolog.Logger
	propagate bool

	ledger     Ledger
	pending    Call
	hasPending bool
}

// NewInterceptor creates an interceptor for contract that falls back to fallback.
// The Factory setting of opts does not apply here.
func NewInterceptor(contract string, fallback Fallback, opts ...Option) *Interceptor {
	cfg := newConfig(nil, append([]Option{WithContract(contract)}, opts...))

	return newInterceptor(cfg, fallback)
}

// Contract returns the name of the contract this interceptor serves.
func (i *Interceptor) Contract() string {
	return i.contract
}

// Expectations returns a copy of the recorded expectations, oldest first.
func (i *Interceptor) Expectations() []Expectation {
	return i.ledger.Entries()
}

// ID returns the unique id used to tell substitutes apart in log lines.
func (i *Interceptor) ID() string {
	return i.id
}

// Intercept handles one call to the substitute:
//  1. the call becomes the pending call and this interceptor the active recorder,
//  2. the first ledger entry with an equal method and deep-equal args wins,
//  3. otherwise the fallback decides.
//
// A fallback error is logged and swallowed into zero values, unless failures are
// propagated, in which case Intercept panics with it.
func (i *Interceptor) Intercept(name string, args ...any) []any {
	call := Call{Method: Method{Contract: i.contract, Name: name}, Args: args}

	i.pending = call
	i.hasPending = true

	publish(i)

	if returns, ok := i.ledger.Lookup(call); ok {
		return returns
	}

	returns, err := i.fallback.Default(call)
	if err != nil {
		i.logger.Debug().Err(err).Stringer("call", call).Msg("fallback failed, returning zero values")

		if i.propagate {
			panic(err)
		}

		return nil
	}

	return returns
}

// Pending returns the most recently intercepted call, if there was one.
func (i *Interceptor) Pending() (Call, bool) {
	return i.pending, i.hasPending
}

// Record appends an expectation for call to the ledger.
func (i *Interceptor) Record(call Call, returns []any) {
	if i.ledger.Record(call, returns) {
		i.logger.Warn().Stringer("call", call).Msg("recording is shadowed by an earlier one for the same call")
	}
}

// newInterceptor builds an interceptor from an already-resolved config.
func newInterceptor(cfg Config, fallback Fallback) *Interceptor {
	if fallback == nil {
		fallback = AlwaysZero{}
	}

	id := uuid.NewString()

	return &Interceptor{
		id:        id,
		contract:  cfg.Contract,
		fallback:  fallback,
		propagate: cfg.PropagateFailures,
		logger: cfg.Logger.With().
			Str("contract", cfg.Contract).
			Str("substitute", id).
			Logger(),
	}
}
