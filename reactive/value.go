package reactive

import "fmt"

// Enhancer prepares a value before an observable container stores it.
type Enhancer func(s *State, v any) any

// DeepEnhancer turns plain structures into observable ones: map[string]any
// becomes an *Object and []any an *Array[any], recursively. Observables and
// everything else are returned untouched.
func DeepEnhancer(s *State, v any) any {
	switch x := v.(type) {
	case Observable:
		return x
	case map[string]any:
		return NewObject(s, x)
	case []any:
		return NewArray(s, x)
	}
	return v
}

// RefEnhancer stores values as they are.
func RefEnhancer(_ *State, v any) any {
	return v
}

// enhance falls back to the raw value when the enhanced form does not fit T,
// so only boxes typed as any receive nested observables.
func enhance[T any](s *State, e Enhancer, v T) T {
	if e == nil {
		return v
	}
	out := e(s, v)
	if typed, ok := out.(T); ok {
		return typed
	}
	if _, wrapped := out.(Observable); wrapped {
		s.debug("observable does not fit the container type, keeping raw value",
			"type", fmt.Sprintf("%T", v),
		)
	}
	return v
}

type valueConfig struct {
	name     string
	enhancer Enhancer
	equals   func(a, b any) bool
}

type ValueOption func(*valueConfig)

func WithName(name string) ValueOption {
	return func(c *valueConfig) {
		c.name = name
	}
}

func WithEnhancer(e Enhancer) ValueOption {
	return func(c *valueConfig) {
		c.enhancer = e
	}
}

// WithEquals replaces the identity comparison used to decide whether a write
// is a change.
func WithEquals(equals func(a, b any) bool) ValueOption {
	return func(c *valueConfig) {
		c.equals = equals
	}
}

func newValueConfig(opts []ValueOption) *valueConfig {
	cfg := &valueConfig{
		enhancer: DeepEnhancer,
		equals:   Identical,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ObservableValue is a boxed observable holding a single payload.
type ObservableValue[T any] struct {
	base     Atom
	value    T
	enhancer Enhancer
	equals   func(a, b any) bool
}

// NewBox creates a box holding value. Deep wrapping needs a box that can hold
// the observable: NewBox(s, map[string]any{...}) infers T as the map type and
// stores the map as is, while NewBox[any](s, map[string]any{...}) stores an
// *Object.
func NewBox[T any](s *State, value T, opts ...ValueOption) *ObservableValue[T] {
	cfg := newValueConfig(opts)
	return newBox(s, value, cfg)
}

func newBox[T any](s *State, value T, cfg *valueConfig) *ObservableValue[T] {
	b := &ObservableValue[T]{
		enhancer: cfg.enhancer,
		equals:   cfg.equals,
	}
	b.base.init(s, cfg.name, "ObservableValue")
	b.value = enhance(s, b.enhancer, value)
	return b
}

func (b *ObservableValue[T]) atom() *Atom {
	return &b.base
}

// Atom exposes the underlying atom for collaborators that need hooks.
func (b *ObservableValue[T]) Atom() *Atom {
	return &b.base
}

func (b *ObservableValue[T]) Name() string {
	return b.base.name
}

func (b *ObservableValue[T]) ObserverCount() int {
	return b.base.ObserverCount()
}

func (b *ObservableValue[T]) Get() T {
	b.base.ReportObserved()
	return b.value
}

// Peek returns the payload without recording a dependency.
func (b *ObservableValue[T]) Peek() T {
	return b.value
}

// Set stores value unless, after enhancing, it is identical to the current
// payload. Observers are notified after the payload has been replaced.
func (b *ObservableValue[T]) Set(value T) {
	next, changed := b.prepareNewValue(value)
	if changed {
		b.setNewValue(next)
	}
}

func (b *ObservableValue[T]) Update(fn func(current T) T) {
	b.Set(fn(b.value))
}

func (b *ObservableValue[T]) prepareNewValue(value T) (T, bool) {
	next := enhance(b.base.state, b.enhancer, value)
	if b.equals(b.value, next) {
		return b.value, false
	}
	return next, true
}

func (b *ObservableValue[T]) setNewValue(value T) {
	b.value = value
	b.base.ReportChanged()
}
