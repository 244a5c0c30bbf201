// Package testutil provides scripted randomness and ready-made actors for
// tests of the combat packages.
package testutil

import "github.com/cory-johannsen/delve/internal/game/dice"

// ScriptSource replays a fixed list of draws. Each draw is clamped into
// [0, n): values at or above n yield n-1, negative values yield 0. Once the
// script is exhausted every draw yields the fallback value (0 unless Then is
// called), clamped the same way.
type ScriptSource struct {
	vals     []int
	next     int
	fallback int
}

// Script returns a source replaying vals in order.
func Script(vals ...int) *ScriptSource {
	return &ScriptSource{vals: vals}
}

// Then sets the value returned after the script is exhausted.
func (s *ScriptSource) Then(v int) *ScriptSource {
	s.fallback = v
	return s
}

// Intn implements dice.Source.
func (s *ScriptSource) Intn(n int) int {
	v := s.fallback
	if s.next < len(s.vals) {
		v = s.vals[s.next]
		s.next++
	}
	switch {
	case v < 0:
		return 0
	case v >= n:
		return n - 1
	}
	return v
}

// Consumed returns how many scripted values have been drawn.
func (s *ScriptSource) Consumed() int { return s.next }

// Stream wraps the source in a dice.Stream without logging.
func (s *ScriptSource) Stream() *dice.Stream { return dice.NewStream(s, nil) }

// Fixed returns a stream whose every draw yields v clamped into [0, n).
func Fixed(v int) *dice.Stream { return Script().Then(v).Stream() }

// Seeded returns a reproducible stream for seed.
func Seeded(seed uint64) *dice.Stream { return dice.NewStream(dice.NewSeededSource(seed), nil) }
