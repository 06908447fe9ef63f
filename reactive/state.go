// Package reactive tracks which observables a computation reads and re-runs
// it when any of them change. Boxes, arrays and objects are observable,
// computed values cache derived results and reactions perform side effects.
//
// Writes are grouped into batches. Reactions invalidated during a batch run
// once, after the outermost batch ends, in the order they were scheduled.
package reactive

import (
	"fmt"
	"log/slog"
)

// OnErrorFunc receives errors returned by reaction views and effects.
type OnErrorFunc func(name string, err error)

// State is the scheduler context shared by every atom, derivation and
// reaction created from it. A program normally owns exactly one; tests create
// a fresh one each. A State must only be used from a single goroutine.
type State struct {
	// nesting depth of open transactions
	inBatch int
	// derivation currently accumulating dependencies
	trackingDerivation Derivation
	// scheduled, not yet executed, reactions
	pendingReactions []*Reaction
	// incremented once per tracked run
	runID uint64

	isRunningReactions bool
	nextID             uint64
	pauseStack         []Derivation
	// incremented every time an outermost transaction opens
	batchEpoch uint64
	// computeds bound by a tracked read while nothing observed them
	pendingUnobservations []unobservable

	onError        OnErrorFunc
	logger         *slog.Logger
	maxDrainCycles int
}

type Option func(*State)

// WithErrorHandler routes errors returned by reaction views to fn instead of
// raising them as panics.
func WithErrorHandler(fn OnErrorFunc) Option {
	return func(s *State) {
		s.onError = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// WithMaxDrainCycles bounds the number of snapshot cycles a single drain may
// run. Zero means unbounded.
func WithMaxDrainCycles(n int) Option {
	return func(s *State) {
		s.maxDrainCycles = n
	}
}

func NewState(opts ...Option) *State {
	s := &State{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *State) StartBatch() {
	if s.inBatch == 0 {
		s.batchEpoch++
	}
	s.inBatch++
}

func (s *State) EndBatch() {
	if s.inBatch == 0 {
		panic("reactive: EndBatch called without a matching StartBatch")
	}
	s.inBatch--
	if s.inBatch == 0 {
		defer s.processUnobservations()
		s.runReactions()
	}
}

// processUnobservations suspends queued computeds that ended the transaction
// without an observer, e.g. because the derivation reading them panicked
// before it could bind.
func (s *State) processUnobservations() {
	for len(s.pendingUnobservations) > 0 {
		queued := s.pendingUnobservations
		s.pendingUnobservations = nil
		for _, c := range queued {
			c.checkUnobserved()
		}
	}
}

// Batch runs cb inside a transaction. Reactions scheduled by writes in cb run
// once the outermost transaction ends, even if cb panics.
func (s *State) Batch(cb func()) {
	s.StartBatch()
	defer s.EndBatch()
	cb()
}

func (s *State) InBatch() int {
	return s.inBatch
}

// IsTracking reports whether reads are currently being recorded by a derivation.
func (s *State) IsTracking() bool {
	return s.trackingDerivation != nil
}

func (s *State) PendingReactions() int {
	return len(s.pendingReactions)
}

func (s *State) PauseTracking() {
	s.pauseStack = append(s.pauseStack, s.trackingDerivation)
	s.trackingDerivation = nil
}

func (s *State) ResumeTracking() {
	lastIdx := len(s.pauseStack) - 1
	if lastIdx < 0 {
		panic("reactive: ResumeTracking called without PauseTracking")
	}
	s.trackingDerivation = s.pauseStack[lastIdx]
	s.pauseStack = s.pauseStack[:lastIdx]
}

// Untracked runs fn without recording any of its reads as dependencies of the
// current derivation.
func (s *State) Untracked(fn func()) {
	s.PauseTracking()
	defer s.ResumeTracking()
	fn()
}

func (s *State) nextName(kind string) string {
	s.nextID++
	return fmt.Sprintf("%s@%d", kind, s.nextID)
}

func (s *State) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// runReactions drains the pending queue. It is a no-op inside a transaction
// and while an outer drain is already running; reactions scheduled during
// cycle N are picked up by cycle N+1 of the outermost drain.
func (s *State) runReactions() {
	if s.inBatch > 0 || s.isRunningReactions {
		return
	}
	s.isRunningReactions = true
	s.PauseTracking()
	defer func() {
		s.ResumeTracking()
		s.isRunningReactions = false
	}()

	for cycle := 1; len(s.pendingReactions) > 0; cycle++ {
		if s.maxDrainCycles > 0 && cycle > s.maxDrainCycles {
			s.dropPending(cycle)
			return
		}
		snapshot := s.pendingReactions
		s.pendingReactions = nil
		s.debug("draining reactions", "cycle", cycle, "count", len(snapshot))
		s.runSnapshot(snapshot)
	}
}

func (s *State) runSnapshot(snapshot []*Reaction) {
	done := 0
	defer func() {
		if done < len(snapshot) {
			// snapshot[done] panicked, keep the rest of the cycle queued
			rest := make([]*Reaction, 0, len(snapshot)-done-1+len(s.pendingReactions))
			rest = append(rest, snapshot[done+1:]...)
			s.pendingReactions = append(rest, s.pendingReactions...)
		}
	}()
	for _, r := range snapshot {
		r.runReaction()
		done++
	}
}

func (s *State) dropPending(cycle int) {
	names := make([]string, 0, len(s.pendingReactions))
	for _, r := range s.pendingReactions {
		r.isScheduled = false
		names = append(names, r.name)
	}
	s.pendingReactions = nil
	if s.logger != nil {
		s.logger.Error("reactions did not converge, dropping queue",
			"cycles", cycle-1,
			"reactions", names,
		)
	}
}
