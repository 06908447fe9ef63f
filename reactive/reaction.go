package reactive

// Reaction is a derivation that runs a side-effecting callback every time one
// of its dependencies changes. The callback is expected to call Track to
// (re)subscribe. A reaction is either active or disposed; disposal is final.
type Reaction struct {
	derivationState

	state        *State
	name         string
	onInvalidate func(r *Reaction)
	isDisposed   bool
	isScheduled  bool
}

// NewReaction creates an active reaction. It does nothing until it is
// scheduled, either explicitly or by a dependency change.
func NewReaction(s *State, name string, onInvalidate func(r *Reaction)) *Reaction {
	if name == "" {
		name = s.nextName("Reaction")
	}
	return &Reaction{
		state:        s,
		name:         name,
		onInvalidate: onInvalidate,
	}
}

func (r *Reaction) Name() string {
	return r.name
}

func (r *Reaction) String() string {
	return r.name
}

func (r *Reaction) IsDisposed() bool {
	return r.isDisposed
}

func (r *Reaction) IsScheduled() bool {
	return r.isScheduled
}

// Observing returns the observables read during the last completed Track.
func (r *Reaction) Observing() []Observable {
	return Observing(r)
}

func (r *Reaction) onBecomeStale() {
	r.Schedule()
}

// Schedule queues the reaction and drains the queue unless a transaction or
// an outer drain is in progress.
func (r *Reaction) Schedule() {
	if r.isDisposed {
		return
	}
	if !r.isScheduled {
		r.isScheduled = true
		r.state.pendingReactions = append(r.state.pendingReactions, r)
	}
	r.state.runReactions()
}

func (r *Reaction) runReaction() {
	r.isScheduled = false
	if r.isDisposed {
		return
	}
	r.state.StartBatch()
	defer r.state.EndBatch()
	r.onInvalidate(r)
}

// Track runs fn as a tracked run of this reaction, replacing its dependency
// set with the observables fn reads.
func (r *Reaction) Track(fn func()) {
	if r.isDisposed {
		return
	}
	r.state.StartBatch()
	defer r.state.EndBatch()
	TrackDerivedFunction(r.state, r, func() struct{} {
		fn()
		return struct{}{}
	})
	if r.isDisposed {
		ClearObserving(r)
	}
}

// Dispose unsubscribes the reaction from everything and makes it inert.
// Calling Dispose more than once is harmless.
func (r *Reaction) Dispose() {
	if r.isDisposed {
		return
	}
	r.isDisposed = true
	r.state.StartBatch()
	defer r.state.EndBatch()
	ClearObserving(r)
	r.state.debug("reaction disposed", "reaction", r.name)
}
