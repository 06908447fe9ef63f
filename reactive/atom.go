package reactive

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Observable is anything a derivation can depend on. It is implemented by
// *Atom, by the containers built on atoms and by *ComputedValue.
type Observable interface {
	Name() string
	ObserverCount() int
	atom() *Atom
}

type hook struct {
	id int
	fn func()
}

// Atom is the minimal trackable unit. Data holders call ReportObserved when
// they are read and ReportChanged after they have been mutated.
type Atom struct {
	state *State
	name  string

	// derivations currently depending on this atom
	observers mapset.Set[Derivation]
	// scratch mark used while rebinding a single derivation, otherwise 0
	diffValue int
	// runID of the last derivation run that recorded this atom
	lastAccessedBy uint64

	hookID           int
	observedHooks    []hook
	unobservedHooks  []hook
	onUnobservedHook func()
}

// NewAtom creates an atom. An empty name is replaced by a generated one.
func NewAtom(s *State, name string) *Atom {
	a := &Atom{}
	a.init(s, name, "Atom")
	return a
}

func (a *Atom) init(s *State, name, kind string) {
	if name == "" {
		name = s.nextName(kind)
	}
	a.state = s
	a.name = name
	a.observers = mapset.NewThreadUnsafeSet[Derivation]()
}

func (a *Atom) atom() *Atom {
	return a
}

func (a *Atom) Name() string {
	return a.name
}

func (a *Atom) String() string {
	return a.name
}

func (a *Atom) ObserverCount() int {
	return a.observers.Cardinality()
}

func (a *Atom) IsObserved() bool {
	return a.observers.Cardinality() > 0
}

// ReportObserved records the atom as a dependency of the derivation that is
// currently tracking, at most once per run. It returns whether a tracking
// context existed.
func (a *Atom) ReportObserved() bool {
	d := a.state.trackingDerivation
	if d == nil {
		return false
	}
	ds := d.derivation()
	if a.lastAccessedBy != ds.runID {
		a.lastAccessedBy = ds.runID
		ds.newObserving = append(ds.newObserving, a)
	}
	return true
}

// ReportChanged notifies every observer that it has become stale. It must be
// called after the new value is in place.
func (a *Atom) ReportChanged() {
	a.state.StartBatch()
	defer a.state.EndBatch()
	a.propagateChanged()
}

func (a *Atom) propagateChanged() {
	if a.observers.Cardinality() == 0 {
		return
	}
	for _, d := range a.observers.ToSlice() {
		d.onBecomeStale()
	}
}

// OnBecomeObserved registers fn to run whenever the atom gains its first
// observer. The returned func removes the listener.
func (a *Atom) OnBecomeObserved(fn func()) (remove func()) {
	a.hookID++
	id := a.hookID
	a.observedHooks = append(a.observedHooks, hook{id: id, fn: fn})
	return func() {
		a.observedHooks = removeHook(a.observedHooks, id)
	}
}

// OnBecomeUnobserved registers fn to run whenever the atom loses its last
// observer. The returned func removes the listener.
func (a *Atom) OnBecomeUnobserved(fn func()) (remove func()) {
	a.hookID++
	id := a.hookID
	a.unobservedHooks = append(a.unobservedHooks, hook{id: id, fn: fn})
	return func() {
		a.unobservedHooks = removeHook(a.unobservedHooks, id)
	}
}

func removeHook(hooks []hook, id int) []hook {
	for i, h := range hooks {
		if h.id == id {
			return append(hooks[:i:i], hooks[i+1:]...)
		}
	}
	return hooks
}

func (a *Atom) addObserver(d Derivation) {
	if !a.observers.Add(d) {
		return
	}
	if a.observers.Cardinality() == 1 {
		a.runHooks(a.observedHooks)
	}
}

func (a *Atom) removeObserver(d Derivation) {
	if !a.observers.Contains(d) {
		return
	}
	a.observers.Remove(d)
	if a.observers.Cardinality() > 0 {
		return
	}
	a.runHooks(a.unobservedHooks)
	if a.onUnobservedHook != nil {
		a.onUnobservedHook()
	}
}

// runHooks calls user listeners without letting their reads leak into the
// derivation being rebound.
func (a *Atom) runHooks(hooks []hook) {
	if len(hooks) == 0 {
		return
	}
	a.state.Untracked(func() {
		for _, h := range hooks {
			h.fn()
		}
	})
}
