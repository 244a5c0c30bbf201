// Package skirmish runs a player against a band of monsters, round by round,
// until one side is gone or the round limit passes.
package skirmish

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/narrate"
)

// Clock is the game turn counter shared by the runner and the combat engine.
type Clock struct {
	n atomic.Int64
}

// Now returns the current turn.
func (c *Clock) Now() int { return int(c.n.Load()) }

// Advance moves to the next turn and returns it.
func (c *Clock) Advance() int { return int(c.n.Add(1)) }

// Attacker resolves one actor's melee turn. *combat.Engine satisfies it.
type Attacker interface {
	ResolveAttack(ctx context.Context, attackerID, defenderID string, mode combat.Mode) (combat.AttackOutcome, error)
}

// Roster is the live actor set. *actor.Registry satisfies it.
type Roster interface {
	Get(id string) (*actor.Actor, bool)
}

// Outcome is how a skirmish ended.
type Outcome int

const (
	Stalemate Outcome = iota
	PlayerWon
	PlayerDied
)

func (o Outcome) String() string {
	switch o {
	case PlayerWon:
		return "victory"
	case PlayerDied:
		return "defeat"
	default:
		return "stalemate"
	}
}

// Result summarises a finished skirmish.
type Result struct {
	Outcome  Outcome
	Rounds   int
	PlayerHP int
	// Slain lists the monsters that died, in order of death.
	Slain  []string
	Damage map[string]int
}

// Skirmish holds one encounter.
type Skirmish struct {
	attacker Attacker
	roster   Roster
	clock    *Clock
	msgs     combat.Messenger
	logger   *zap.Logger

	player   string
	monsters []string
}

// New creates a Skirmish between playerID and monsterIDs. msgs may be nil.
//
// Precondition: attacker, roster and clock must be non-nil; monsterIDs must
// not be empty.
func New(attacker Attacker, roster Roster, clock *Clock, msgs combat.Messenger, logger *zap.Logger, playerID string, monsterIDs ...string) (*Skirmish, error) {
	if attacker == nil || roster == nil || clock == nil {
		return nil, fmt.Errorf("skirmish: attacker, roster and clock must not be nil")
	}
	if len(monsterIDs) == 0 {
		return nil, fmt.Errorf("skirmish: at least one monster is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Skirmish{
		attacker: attacker,
		roster:   roster,
		clock:    clock,
		msgs:     msgs,
		logger:   logger,
		player:   playerID,
		monsters: monsterIDs,
	}, nil
}

func (s *Skirmish) say(key narrate.Key, args ...any) {
	if s.msgs != nil {
		s.msgs.Say(key, args...)
	}
}

func (s *Skirmish) live(id string) (*actor.Actor, bool) {
	a, ok := s.roster.Get(id)
	if !ok || a.Dead {
		return nil, false
	}
	return a, true
}

// target is the first monster still standing.
func (s *Skirmish) target() (string, bool) {
	for _, id := range s.monsters {
		if _, ok := s.live(id); ok {
			return id, true
		}
	}
	return "", false
}

// Run plays up to rounds rounds. Each round the player strikes the first
// monster standing, then every surviving monster strikes the player, then
// every survivor's timed statuses tick down.
//
// Precondition: rounds >= 1.
// Postcondition: returns an error only when the engine rejects an attack
// or ctx is cancelled.
func (s *Skirmish) Run(ctx context.Context, rounds int) (Result, error) {
	res := Result{Damage: make(map[string]int)}
	slain := make(map[string]bool)
	recordDeaths := func() {
		for _, id := range s.monsters {
			if _, ok := s.live(id); !ok && !slain[id] {
				slain[id] = true
				res.Slain = append(res.Slain, id)
			}
		}
	}

	for res.Rounds < rounds {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Rounds++
		turn := s.clock.Advance()
		s.say(narrate.RoundBegins, res.Rounds)

		if id, ok := s.target(); ok {
			out, err := s.attacker.ResolveAttack(ctx, s.player, id, combat.ModePlayerVsMonster)
			if err != nil {
				return res, fmt.Errorf("round %d: player attack: %w", res.Rounds, err)
			}
			res.Damage[s.player] += out.TotalDamage
		}
		recordDeaths()

		for _, id := range s.monsters {
			if _, ok := s.live(s.player); !ok {
				break
			}
			if _, ok := s.live(id); !ok {
				continue
			}
			out, err := s.attacker.ResolveAttack(ctx, id, s.player, combat.ModeMonsterVsPlayer)
			if err != nil {
				return res, fmt.Errorf("round %d: %s attack: %w", res.Rounds, id, err)
			}
			res.Damage[id] += out.TotalDamage
		}
		recordDeaths()

		s.tick()
		s.logger.Debug("round complete",
			zap.Int("round", res.Rounds),
			zap.Int("turn", turn),
			zap.Int("slain", len(res.Slain)),
		)

		p, alive := s.live(s.player)
		if !alive {
			res.Outcome = PlayerDied
			s.say(narrate.Defeat, s.player)
			return res, nil
		}
		res.PlayerHP = p.HP
		if _, ok := s.target(); !ok {
			res.Outcome = PlayerWon
			s.say(narrate.Victory, p.Name, res.Rounds)
			return res, nil
		}
	}
	s.say(narrate.Stalemate, res.Rounds)
	return res, nil
}

func (s *Skirmish) tick() {
	for _, id := range append([]string{s.player}, s.monsters...) {
		a, ok := s.live(id)
		if !ok {
			continue
		}
		for _, st := range a.Status.Tick() {
			s.say(narrate.StatusExpires, a.Name, st)
		}
	}
}
