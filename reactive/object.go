package reactive

import (
	"slices"
	"sort"
)

// Object is an observable record with string keys. Each key is backed by its
// own ObservableValue (or ComputedValue), so readers only depend on the keys
// they read. A separate atom tracks the key set itself.
type Object struct {
	base   Atom
	state  *State
	cfg    valueConfig
	keys   []string
	values map[string]Observable
}

// NewObject creates an object from props. Keys are added in sorted order.
func NewObject(s *State, props map[string]any, opts ...ValueOption) *Object {
	cfg := newValueConfig(opts)
	o := &Object{
		state:  s,
		cfg:    *cfg,
		values: make(map[string]Observable, len(props)),
	}
	o.base.init(s, cfg.name, "ObservableObject")
	o.cfg.name = ""

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		o.values[key] = o.newProp(key, props[key])
		o.keys = append(o.keys, key)
	}
	return o
}

func (o *Object) atom() *Atom {
	return &o.base
}

func (o *Object) Name() string {
	return o.base.name
}

func (o *Object) ObserverCount() int {
	return o.base.ObserverCount()
}

func (o *Object) newProp(key string, value any) *ObservableValue[any] {
	cfg := o.cfg
	cfg.name = o.base.name + "." + key
	return newBox(o.state, value, &cfg)
}

// Get reads key. Reading a missing key depends on the key set, so a later
// Set of that key re-runs the reader.
func (o *Object) Get(key string) (any, bool) {
	switch p := o.values[key].(type) {
	case *ObservableValue[any]:
		return p.Get(), true
	case *ComputedValue[any]:
		return p.Get(), true
	}
	o.base.ReportObserved()
	return nil, false
}

// Set writes key, adding it when missing. Writes to computed keys are ignored.
func (o *Object) Set(key string, value any) {
	switch p := o.values[key].(type) {
	case *ObservableValue[any]:
		p.Set(value)
	case *ComputedValue[any]:
		o.state.debug("ignoring write to computed key", "object", o.base.name, "key", key)
	case nil:
		o.values[key] = o.newProp(key, value)
		o.keys = append(o.keys, key)
		o.base.ReportChanged()
	}
}

// AddComputed defines key as derived from fn. An existing key is replaced.
func (o *Object) AddComputed(key string, fn func() any) *ComputedValue[any] {
	c := NewComputed(o.state, fn, WithComputedName(o.base.name+"."+key))
	o.state.Batch(func() {
		if old, ok := o.values[key]; ok {
			o.values[key] = c
			old.atom().ReportChanged()
		} else {
			o.values[key] = c
			o.keys = append(o.keys, key)
		}
		o.base.ReportChanged()
	})
	return c
}

func (o *Object) Has(key string) bool {
	o.base.ReportObserved()
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	o.base.ReportObserved()
	return slices.Clone(o.keys)
}

// Delete removes key. Readers of the key and of the key set are notified.
func (o *Object) Delete(key string) {
	p, ok := o.values[key]
	if !ok {
		return
	}
	o.state.Batch(func() {
		delete(o.values, key)
		o.keys = slices.DeleteFunc(o.keys, func(k string) bool {
			return k == key
		})
		p.atom().ReportChanged()
		o.base.ReportChanged()
	})
}

// ToMap returns a snapshot of every key, depending on all of them.
func (o *Object) ToMap() map[string]any {
	keys := o.Keys()
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		out[key], _ = o.Get(key)
	}
	return out
}
