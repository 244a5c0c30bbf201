// Package lore records what the player has learned about each monster race
// through combat: how often each innate blow has been seen, which race flags
// and immunities have been revealed, and kill and death tallies.
package lore

import (
	"sync"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/element"
)

// MaxBlowCount caps a blow's familiarity counter.
const MaxBlowCount = 255

// ObviousThreshold is the familiarity above which a harmless, unremarkable
// blow is still counted.
const ObviousThreshold = 10

// Entry is the recorded knowledge about one monster race.
type Entry struct {
	Blows     [actor.MaxBlows]int
	Flags     actor.RaceFlag
	Immune    actor.ElementSet
	Auras     actor.Aura
	Kills     int
	Deaths    int
	Sightings int
}

// Store holds lore entries keyed by race ID.
// All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewStore creates an empty lore store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

func (s *Store) entry(race string) *Entry {
	e, ok := s.entries[race]
	if !ok {
		e = &Entry{}
		s.entries[race] = e
	}
	return e
}

// RecordBlow notes that the blow in slot was observed landing.
//
// Precondition: 0 <= slot < actor.MaxBlows.
// Postcondition: the slot's counter is incremented (up to MaxBlowCount) iff
// obvious, damage > 0, or the counter already exceeds ObviousThreshold.
// Returns whether the counter changed.
func (s *Store) RecordBlow(race string, slot int, obvious bool, damage int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(race)
	if !(obvious || damage > 0 || e.Blows[slot] > ObviousThreshold) {
		return false
	}
	if e.Blows[slot] >= MaxBlowCount {
		return false
	}
	e.Blows[slot]++
	return true
}

// BlowCount returns how often the blow in slot has been recorded.
func (s *Store) BlowCount(race string, slot int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[race]; ok {
		return e.Blows[slot]
	}
	return 0
}

// LearnFlags reveals race flags.
func (s *Store) LearnFlags(race string, f actor.RaceFlag) {
	if f == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(race).Flags |= f
}

// LearnImmunity reveals an elemental immunity.
func (s *Store) LearnImmunity(race string, el element.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(race)
	e.Immune = e.Immune.With(el)
}

// LearnAura reveals a permanent aura.
func (s *Store) LearnAura(race string, a actor.Aura) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(race).Auras |= a
}

// RecordKill counts a monster of race slain.
func (s *Store) RecordKill(race string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(race).Kills++
}

// RecordDeath counts a player death at the hands of race.
func (s *Store) RecordDeath(race string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(race).Deaths++
}

// RecordSighting counts an encounter with race.
func (s *Store) RecordSighting(race string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(race).Sightings++
}

// Get returns a copy of the entry for race.
//
// Postcondition: Returns (entry, true) if anything has been recorded, or
// (zero Entry, false) otherwise.
func (s *Store) Get(race string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[race]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}
