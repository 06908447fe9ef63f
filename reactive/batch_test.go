package reactive_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/delaneyj/autotrack/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if err, ok = r.(error); !ok {
				panic(r)
			}
		}
	}()
	fn()
	return nil
}

// should run once after the outermost batch, seeing both writes
func TestNestedBatch(t *testing.T) {
	s := reactive.NewState()
	a := reactive.NewBox(s, 1)
	b := reactive.NewBox(s, 1)

	seen := [][2]int{}
	reactive.Autorun(s, func(r *reactive.Reaction) error {
		seen = append(seen, [2]int{a.Get(), b.Get()})
		return nil
	})

	s.StartBatch()
	a.Set(2)
	s.StartBatch()
	b.Set(3)
	s.EndBatch()
	assert.Len(t, seen, 1)
	assert.Equal(t, 1, s.InBatch())
	s.EndBatch()

	assert.Equal(t, [][2]int{{1, 1}, {2, 3}}, seen)
	assert.Equal(t, 0, s.InBatch())
}

// should produce the same executions for nested and flat batches
func TestBatchNestingIsIdempotent(t *testing.T) {
	run := func(nested bool) []int {
		s := reactive.NewState()
		a := reactive.NewBox(s, 0)
		b := reactive.NewBox(s, 0)
		c := reactive.NewBox(s, 0)

		sums := []int{}
		reactive.Autorun(s, func(r *reactive.Reaction) error {
			sums = append(sums, a.Get()+b.Get()+c.Get())
			return nil
		})

		s.Batch(func() {
			a.Set(1)
			if nested {
				s.Batch(func() {
					b.Set(2)
					s.Batch(func() {
						c.Set(3)
					})
				})
			} else {
				b.Set(2)
				c.Set(3)
			}
			assert.Len(t, sums, 1)
		})
		return sums
	}

	assert.Equal(t, run(false), run(true))
	assert.Equal(t, []int{0, 6}, run(true))
}

// should close the batch when the batched callback panics
func TestBatchPanicKeepsDepth(t *testing.T) {
	s := reactive.NewState()
	a := reactive.NewBox(s, 1)

	runs := 0
	reactive.Autorun(s, func(r *reactive.Reaction) error {
		runs++
		a.Get()
		return nil
	})

	assert.Panics(t, func() {
		s.Batch(func() {
			a.Set(2)
			panic("boom")
		})
	})
	assert.Equal(t, 0, s.InBatch())
	assert.Equal(t, 2, runs)

	a.Set(3)
	assert.Equal(t, 3, runs)
}

// should panic on unbalanced EndBatch
func TestEndBatchWithoutStart(t *testing.T) {
	s := reactive.NewState()
	assert.Panics(t, func() {
		s.EndBatch()
	})
}

// should raise view errors when no handler is configured
func TestReactionErrorPropagates(t *testing.T) {
	s := reactive.NewState()
	failing := reactive.NewBox(s, true)
	errBoom := errors.New("boom")

	runs := 0
	err := recoverError(func() {
		reactive.Autorun(s, func(r *reactive.Reaction) error {
			runs++
			if failing.Get() {
				return errBoom
			}
			return nil
		}, reactive.WithReactionName("failing"))
	})

	var reactionErr *reactive.ReactionError
	require.ErrorAs(t, err, &reactionErr)
	assert.Equal(t, "failing", reactionErr.Reaction)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, s.InBatch())

	// still subscribed, re-runs on the next change
	failing.Set(false)
	assert.Equal(t, 2, runs)
}

// should route view errors to the handler
func TestReactionErrorHandler(t *testing.T) {
	type reported struct {
		name string
		err  error
	}
	got := []reported{}
	s := reactive.NewState(reactive.WithErrorHandler(func(name string, err error) {
		got = append(got, reported{name, err})
	}))
	a := reactive.NewBox(s, 0)
	errOdd := errors.New("odd")

	reactive.Autorun(s, func(r *reactive.Reaction) error {
		if a.Get()%2 == 1 {
			return errOdd
		}
		return nil
	}, reactive.WithReactionName("parity"))

	a.Set(1)
	a.Set(2)
	a.Set(3)
	assert.Equal(t, []reported{{"parity", errOdd}, {"parity", errOdd}}, got)
}

// should keep a panicking reaction subscribed
func TestReactionPanicLeavesSubscription(t *testing.T) {
	s := reactive.NewState()
	a := reactive.NewBox(s, 1)

	runs := 0
	reactive.Autorun(s, func(r *reactive.Reaction) error {
		runs++
		if a.Get() == 2 {
			panic("two")
		}
		return nil
	})

	assert.PanicsWithValue(t, "two", func() {
		a.Set(2)
	})
	assert.Equal(t, 0, s.InBatch())
	assert.Equal(t, 1, a.ObserverCount())
	assert.False(t, s.IsTracking())

	a.Set(3)
	assert.Equal(t, 3, runs)
}

// should stop a reaction that keeps invalidating itself
func TestMaxDrainCycles(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	s := reactive.NewState(
		reactive.WithMaxDrainCycles(10),
		reactive.WithLogger(logger),
	)
	a := reactive.NewBox(s, 0)

	runs := 0
	r := reactive.Autorun(s, func(r *reactive.Reaction) error {
		runs++
		a.Set(a.Get() + 1)
		return nil
	})
	require.Equal(t, 1, runs)

	a.Set(100)
	assert.Equal(t, 11, runs)
	assert.Equal(t, 0, s.PendingReactions())
	assert.False(t, r.IsScheduled())
	assert.Contains(t, buf.String(), "reactions did not converge")
}

// should not record reads made while tracking is paused
func TestUntracked(t *testing.T) {
	s := reactive.NewState()
	a := reactive.NewBox(s, 1)
	b := reactive.NewBox(s, 1)

	runs := 0
	r := reactive.Autorun(s, func(r *reactive.Reaction) error {
		runs++
		a.Get()
		s.Untracked(func() {
			b.Get()
		})
		return nil
	})

	assert.Len(t, r.Observing(), 1)
	b.Set(2)
	assert.Equal(t, 1, runs)
	a.Set(2)
	assert.Equal(t, 2, runs)
}

// should report whether a tracking context exists
func TestReportObservedOutsideTracking(t *testing.T) {
	s := reactive.NewState()
	atom := reactive.NewAtom(s, "plain")
	assert.False(t, atom.ReportObserved())
	assert.False(t, s.IsTracking())

	inside := false
	reactive.Autorun(s, func(r *reactive.Reaction) error {
		inside = atom.ReportObserved()
		return nil
	})
	assert.True(t, inside)
	assert.Equal(t, 1, atom.ObserverCount())
}
