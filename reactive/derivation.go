package reactive

import "fmt"

// Derivation is a computation that can depend on observables. It is
// implemented by *Reaction and *ComputedValue.
type Derivation interface {
	Name() string
	derivation() *derivationState
	onBecomeStale()
}

type derivationState struct {
	// observables read during the last completed run
	observing []*Atom
	// observables read so far during the current run
	newObserving []*Atom
	// value of State.runID when the current or last run started
	runID uint64
	// set while a tracked run of this derivation is on the stack
	isTracking bool
}

func (ds *derivationState) derivation() *derivationState {
	return ds
}

// TrackDerivedFunction runs fn with d installed as the tracking derivation and
// rebinds d's dependencies to exactly the observables fn read. Tracking nests:
// a computed evaluated inside a reaction tracks into itself and hands control
// back to the reaction afterwards.
//
// If fn panics the previous dependency set stays bound and the panic
// propagates. Tracking d again from inside fn panics with ErrReentrantTracking.
func TrackDerivedFunction[T any](s *State, d Derivation, fn func() T) T {
	ds := d.derivation()
	if ds.isTracking {
		panic(fmt.Errorf("%w: %s", ErrReentrantTracking, d.Name()))
	}
	ds.isTracking = true
	s.runID++
	ds.runID = s.runID
	ds.newObserving = ds.newObserving[:0]

	prevTracking := s.trackingDerivation
	s.trackingDerivation = d
	completed := false
	defer func() {
		ds.isTracking = false
		s.trackingDerivation = prevTracking
		if !completed {
			ds.newObserving = nil
		}
	}()

	result := fn()
	completed = true
	s.trackingDerivation = prevTracking
	bindDependencies(d)
	return result
}

// bindDependencies diffs the previous and the new dependency set using the
// atoms' diffValue marks. It must never interleave with another rebinding.
func bindDependencies(d Derivation) {
	ds := d.derivation()
	prevObserving := ds.observing
	observing := ds.newObserving
	ds.newObserving = nil

	// mark new dependencies, dropping duplicates left by nested derivations
	// that overwrote lastAccessedBy in the middle of this run
	n := 0
	for _, dep := range observing {
		if dep.diffValue == 0 {
			dep.diffValue = 1
			observing[n] = dep
			n++
		}
	}
	for i := n; i < len(observing); i++ {
		observing[i] = nil
	}
	observing = observing[:n]
	ds.observing = observing

	// unmarked previous dependencies are gone
	for _, dep := range prevObserving {
		if dep.diffValue == 0 {
			dep.removeObserver(d)
		}
	}

	for _, dep := range observing {
		if dep.diffValue == 1 {
			dep.diffValue = 0
			dep.addObserver(d)
		}
	}
}

// ClearObserving unsubscribes d from everything it currently observes.
func ClearObserving(d Derivation) {
	ds := d.derivation()
	obs := ds.observing
	ds.observing = nil
	for _, dep := range obs {
		dep.removeObserver(d)
	}
}

// Observing returns the observables d read during its last completed run.
func Observing(d Derivation) []Observable {
	ds := d.derivation()
	out := make([]Observable, len(ds.observing))
	for i, dep := range ds.observing {
		out[i] = dep
	}
	return out
}
