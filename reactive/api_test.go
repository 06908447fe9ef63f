package reactive_test

import (
	"testing"

	"github.com/delaneyj/autotrack/reactive"
	"github.com/stretchr/testify/assert"
)

// should fire only when the watched expression changes
func TestWatchParity(t *testing.T) {
	s := reactive.NewState()
	n := reactive.NewBox(s, 1)

	fired := []bool{}
	reactive.Watch(s, func(r *reactive.Reaction) bool {
		return n.Get()%2 == 0
	}, func(even bool, r *reactive.Reaction) error {
		fired = append(fired, even)
		return nil
	})
	assert.Empty(t, fired)

	n.Set(3)
	assert.Empty(t, fired)

	n.Set(4)
	assert.Equal(t, []bool{true}, fired)

	n.Set(6)
	n.Set(7)
	assert.Equal(t, []bool{true, false}, fired)
}

func TestWatchFireImmediately(t *testing.T) {
	s := reactive.NewState()
	n := reactive.NewBox(s, 1)

	fired := []int{}
	r := reactive.Watch(s, func(r *reactive.Reaction) int {
		return n.Get()
	}, func(v int, r *reactive.Reaction) error {
		fired = append(fired, v)
		return nil
	}, reactive.FireImmediately(), reactive.WithReactionName("counter"))

	assert.Equal(t, "counter", r.Name())
	assert.Equal(t, []int{1}, fired)

	n.Set(2)
	assert.Equal(t, []int{1, 2}, fired)
}

// should not track reads made by the effect
func TestWatchEffectIsUntracked(t *testing.T) {
	s := reactive.NewState()
	trigger := reactive.NewBox(s, 0)
	other := reactive.NewBox(s, "x")

	effects := 0
	r := reactive.Watch(s, func(r *reactive.Reaction) int {
		return trigger.Get()
	}, func(v int, r *reactive.Reaction) error {
		effects++
		other.Get()
		return nil
	}, reactive.FireImmediately())

	assert.Len(t, r.Observing(), 1)
	other.Set("y")
	assert.Equal(t, 1, effects)

	trigger.Set(1)
	assert.Equal(t, 2, effects)
}

func TestWatchStructuralEquals(t *testing.T) {
	s := reactive.NewState()
	items := reactive.NewArray(s, []int{1, 2})

	fired := 0
	reactive.Watch(s, func(r *reactive.Reaction) any {
		return items.ToSlice()
	}, func(v any, r *reactive.Reaction) error {
		fired++
		return nil
	}, reactive.WithReactionEquals(reactive.Structural))

	items.Splice(0, 2, 1, 2)
	assert.Equal(t, 0, fired)

	items.Push(3)
	assert.Equal(t, 1, fired)
}

// should stop once the effect disposes its own reaction
func TestWatchDisposeFromEffect(t *testing.T) {
	s := reactive.NewState()
	n := reactive.NewBox(s, 0)

	seen := []int{}
	reactive.Watch(s, func(r *reactive.Reaction) int {
		return n.Get()
	}, func(v int, r *reactive.Reaction) error {
		seen = append(seen, v)
		if v >= 2 {
			r.Dispose()
		}
		return nil
	})

	n.Set(1)
	n.Set(2)
	n.Set(3)
	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, 0, n.ObserverCount())
}
