package reactive

type reactionConfig struct {
	name            string
	fireImmediately bool
	equals          func(a, b any) bool
}

type ReactionOption func(*reactionConfig)

func WithReactionName(name string) ReactionOption {
	return func(c *reactionConfig) {
		c.name = name
	}
}

// FireImmediately makes Watch run its effect on the first evaluation too.
func FireImmediately() ReactionOption {
	return func(c *reactionConfig) {
		c.fireImmediately = true
	}
}

// WithReactionEquals sets how Watch compares successive expression results.
func WithReactionEquals(equals func(a, b any) bool) ReactionOption {
	return func(c *reactionConfig) {
		c.equals = equals
	}
}

func newReactionConfig(s *State, kind string, opts []ReactionOption) *reactionConfig {
	cfg := &reactionConfig{equals: Identical}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.name == "" {
		cfg.name = s.nextName(kind)
	}
	return cfg
}

// Autorun runs view now and again every time something it read changes.
// An error returned by view goes to the State's error handler, or is raised
// as a *ReactionError panic when there is none. Dispose the returned reaction
// to stop it.
func Autorun(s *State, view func(r *Reaction) error, opts ...ReactionOption) *Reaction {
	cfg := newReactionConfig(s, "Autorun", opts)
	reaction := NewReaction(s, cfg.name, func(r *Reaction) {
		var err error
		r.Track(func() {
			err = view(r)
		})
		if err != nil {
			s.reportError(r.name, err)
		}
	})
	reaction.Schedule()
	return reaction
}

// Watch tracks expr only. Whenever its result changes, effect runs untracked
// with the new result.
func Watch[T any](
	s *State,
	expr func(r *Reaction) T,
	effect func(value T, r *Reaction) error,
	opts ...ReactionOption,
) *Reaction {
	cfg := newReactionConfig(s, "Watch", opts)

	var (
		value    T
		firstRun = true
	)
	reaction := NewReaction(s, cfg.name, func(r *Reaction) {
		var next T
		r.Track(func() {
			next = expr(r)
		})
		if r.isDisposed {
			return
		}

		shouldFire := cfg.fireImmediately
		if !firstRun {
			shouldFire = !cfg.equals(value, next)
		}
		firstRun = false
		value = next
		if !shouldFire {
			return
		}

		var err error
		s.Untracked(func() {
			err = effect(value, r)
		})
		if err != nil {
			s.reportError(r.name, err)
		}
	})
	reaction.Schedule()
	return reaction
}
