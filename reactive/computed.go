package reactive

import "fmt"

type computedConfig struct {
	name   string
	equals func(a, b any) bool
}

type ComputedOption func(*computedConfig)

func WithComputedName(name string) ComputedOption {
	return func(c *computedConfig) {
		c.name = name
	}
}

// WithComputedEquals decides when a recomputed result replaces the cached one.
// An equal result keeps the previous instance, so identity comparisons
// downstream see no change.
func WithComputedEquals(equals func(a, b any) bool) ComputedOption {
	return func(c *computedConfig) {
		c.equals = equals
	}
}

// ComputedValue is a cached derived value. It is an observable for the
// derivations that read it and a derivation of the observables it reads.
type ComputedValue[T any] struct {
	derivationState

	base        Atom
	state       *State
	fn          func() T
	equals      func(a, b any) bool
	value       T
	hasValue    bool
	isStale     bool
	staleEpoch  uint64
	isComputing bool

	// queued on State.pendingUnobservations
	isPendingUnobservation bool
}

type unobservable interface {
	checkUnobserved()
}

func NewComputed[T any](s *State, fn func() T, opts ...ComputedOption) *ComputedValue[T] {
	cfg := &computedConfig{equals: Identical}
	for _, opt := range opts {
		opt(cfg)
	}
	c := &ComputedValue[T]{
		state:  s,
		fn:     fn,
		equals: cfg.equals,
	}
	c.base.init(s, cfg.name, "ComputedValue")
	c.base.onUnobservedHook = c.suspend
	return c
}

func (c *ComputedValue[T]) atom() *Atom {
	return &c.base
}

func (c *ComputedValue[T]) Atom() *Atom {
	return &c.base
}

func (c *ComputedValue[T]) Name() string {
	return c.base.name
}

func (c *ComputedValue[T]) String() string {
	return c.base.name
}

func (c *ComputedValue[T]) ObserverCount() int {
	return c.base.ObserverCount()
}

// Observing returns the observables read during the last tracked evaluation.
func (c *ComputedValue[T]) Observing() []Observable {
	return Observing(c)
}

// Get returns the derived value. Outside any derivation an unobserved
// computed is evaluated on the spot without caching or subscribing.
func (c *ComputedValue[T]) Get() T {
	if c.isComputing {
		panic(fmt.Errorf("%w: %s", ErrCycle, c.base.name))
	}
	if c.state.trackingDerivation == nil && !c.base.IsObserved() {
		return c.computeUntracked()
	}
	if c.base.ReportObserved() && !c.base.IsObserved() && !c.isPendingUnobservation {
		c.isPendingUnobservation = true
		c.state.pendingUnobservations = append(c.state.pendingUnobservations, c)
	}
	if c.isStale || !c.hasValue {
		c.recompute()
	}
	return c.value
}

func (c *ComputedValue[T]) computeUntracked() T {
	c.isComputing = true
	defer func() {
		c.isComputing = false
	}()
	return c.fn()
}

func (c *ComputedValue[T]) recompute() {
	s := c.state
	s.StartBatch()
	defer s.EndBatch()

	c.isComputing = true
	defer func() {
		c.isComputing = false
	}()

	next := TrackDerivedFunction(s, c, c.fn)
	c.isStale = false
	if c.hasValue && c.equals(c.value, next) {
		return
	}
	c.value = next
	c.hasValue = true
}

// onBecomeStale marks the computed stale and passes the notification on.
// Within one transaction only the first notification propagates.
func (c *ComputedValue[T]) onBecomeStale() {
	epoch := c.state.batchEpoch
	if c.isStale && c.staleEpoch == epoch {
		return
	}
	c.isStale = true
	c.staleEpoch = epoch
	c.base.propagateChanged()
}

func (c *ComputedValue[T]) checkUnobserved() {
	c.isPendingUnobservation = false
	if !c.base.IsObserved() && len(c.observing) > 0 {
		c.suspend()
	}
}

// suspend drops all dependencies once nothing observes the computed anymore.
func (c *ComputedValue[T]) suspend() {
	ClearObserving(c)
	c.isStale = true
	c.state.debug("computed suspended", "computed", c.base.name)
}
