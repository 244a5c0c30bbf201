package combat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/lore"
)

// Mode selects the direction of an attack.
type Mode int

const (
	ModePlayerVsMonster Mode = iota
	ModeMonsterVsPlayer
	ModeMonsterVsMonster
)

func (m Mode) String() string {
	switch m {
	case ModePlayerVsMonster:
		return "player_vs_monster"
	case ModeMonsterVsPlayer:
		return "monster_vs_player"
	case ModeMonsterVsMonster:
		return "monster_vs_monster"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// kinds returns the attacker and defender kinds m requires.
func (m Mode) kinds() (actor.Kind, actor.Kind, bool) {
	switch m {
	case ModePlayerVsMonster:
		return actor.KindPlayer, actor.KindMonster, true
	case ModeMonsterVsPlayer:
		return actor.KindMonster, actor.KindPlayer, true
	case ModeMonsterVsMonster:
		return actor.KindMonster, actor.KindMonster, true
	}
	return 0, 0, false
}

var (
	// ErrUnknownActor is returned when an id names no active actor.
	ErrUnknownActor = errors.New("combat: unknown actor")
	// ErrInvalidMatchup is returned when the participants do not fit the mode.
	ErrInvalidMatchup = errors.New("combat: invalid matchup")
	// ErrDeadParticipant is returned when either participant is already dead.
	ErrDeadParticipant = errors.New("combat: participant is dead")
)

// AttackOutcome is the result of one actor's attack turn.
type AttackOutcome struct {
	// TotalDamage is the HP the defender lost to the attacker's blows.
	TotalDamage  int
	DefenderDied bool
	AttackerDied bool
	// FearInduced is set when the defender became afraid this turn and
	// survived it.
	FearInduced bool

	Blows []BlowResult
	Trace []State
}

// Deps are the collaborators an Engine resolves attacks through.
type Deps struct {
	Stream    *dice.Stream
	Registry  Registry
	Lore      *lore.Store
	Messages  Messenger
	Projector Projector
	Quaker    Quaker
	Displacer Displacer
	Death     DeathHook
	Logger    *zap.Logger
	// Clock returns the current game turn. When nil the engine counts its
	// own calls.
	Clock func() int
}

// Options tune resolution.
type Options struct {
	// ArenaBattle removes the protection unique and quest monsters have
	// against monster damage.
	ArenaBattle bool
	// MaxPlayerBlows caps the player's blows per turn; 0 means no cap.
	MaxPlayerBlows int
}

// Engine resolves melee attacks between active actors. Calls are
// serialised; each runs to completion before the next starts.
type Engine struct {
	mu    sync.Mutex
	deps  Deps
	opts  Options
	turns int
}

// NewEngine creates an Engine.
//
// Precondition: deps.Stream and deps.Registry must be non-nil.
func NewEngine(deps Deps, opts Options) *Engine {
	if deps.Stream == nil {
		panic("combat: NewEngine requires a dice stream")
	}
	if deps.Registry == nil {
		panic("combat: NewEngine requires a registry")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Engine{deps: deps, opts: opts}
}

func (e *Engine) turn() *Turn {
	e.turns++
	n := e.turns
	if e.deps.Clock != nil {
		n = e.deps.Clock()
	}
	return &Turn{
		Stream:         e.deps.Stream,
		Registry:       e.deps.Registry,
		Lore:           e.deps.Lore,
		Messages:       e.deps.Messages,
		Projector:      e.deps.Projector,
		Quaker:         e.deps.Quaker,
		Displacer:      e.deps.Displacer,
		Death:          e.deps.Death,
		Number:         n,
		Arena:          e.opts.ArenaBattle,
		MaxPlayerBlows: e.opts.MaxPlayerBlows,
		Logger:         e.deps.Logger,
	}
}

// participants looks up and checks both actors for mode.
func (e *Engine) participants(attackerID, defenderID string, mode Mode) (*actor.Actor, *actor.Actor, error) {
	wantA, wantD, ok := mode.kinds()
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown mode %s", ErrInvalidMatchup, mode)
	}
	if attackerID == defenderID {
		return nil, nil, fmt.Errorf("%w: %q cannot attack itself", ErrInvalidMatchup, attackerID)
	}
	attacker, ok := e.deps.Registry.Get(attackerID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: attacker %q", ErrUnknownActor, attackerID)
	}
	defender, ok := e.deps.Registry.Get(defenderID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: defender %q", ErrUnknownActor, defenderID)
	}
	if attacker.Kind != wantA || defender.Kind != wantD {
		return nil, nil, fmt.Errorf("%w: %s attacking %s in %s", ErrInvalidMatchup, attacker.Kind, defender.Kind, mode)
	}
	if attacker.Dead || defender.Dead {
		return nil, nil, fmt.Errorf("%w: %q vs %q", ErrDeadParticipant, attackerID, defenderID)
	}
	for _, a := range []*actor.Actor{attacker, defender} {
		if err := a.Validate(); err != nil {
			return nil, nil, fmt.Errorf("combat: %w", err)
		}
	}
	if mode == ModePlayerVsMonster && attacker.Weapon == nil {
		return nil, nil, fmt.Errorf("%w: player %q has no weapon", ErrInvalidMatchup, attackerID)
	}
	return attacker, defender, nil
}

// ResolveAttack runs the attacker's full turn of blows against the defender.
//
// Precondition: both ids name live actors of the kinds mode requires.
// Postcondition: returns an error, with no actor touched, iff a
// precondition fails. A paralyzed or sleeping attacker, a monster that never
// attacks, or a monster whose statuses forbid melee yields an empty outcome.
func (e *Engine) ResolveAttack(ctx context.Context, attackerID, defenderID string, mode Mode) (AttackOutcome, error) {
	if err := ctx.Err(); err != nil {
		return AttackOutcome{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	attacker, defender, err := e.participants(attackerID, defenderID, mode)
	if err != nil {
		return AttackOutcome{}, err
	}
	if condition.Helpless(attacker.Status) {
		return AttackOutcome{}, nil
	}
	if !attacker.IsPlayer() && (attacker.NeverBlow || condition.PreventsMelee(attacker.Status)) {
		return AttackOutcome{}, nil
	}

	t := e.turn()
	var q *sequence
	if mode == ModePlayerVsMonster {
		q = t.playerAttack(attacker, defender, TechniqueNone)
	} else {
		q = t.monsterAttack(attacker, defender)
	}
	out := AttackOutcome{
		TotalDamage:  q.damage(),
		DefenderDied: defender.Dead,
		AttackerDied: attacker.Dead,
		FearInduced:  t.frightened[defender.ID] && !defender.Dead,
		Blows:        q.blows,
		Trace:        q.trace,
	}
	e.deps.Logger.Debug("attack resolved",
		zap.String("attacker", attackerID),
		zap.String("defender", defenderID),
		zap.Stringer("mode", mode),
		zap.Int("turn", t.Number),
		zap.Int("blows", len(out.Blows)),
		zap.Int("damage", out.TotalDamage),
		zap.Bool("defender_died", out.DefenderDied),
		zap.Bool("attacker_died", out.AttackerDied),
		zap.Bool("fear", out.FearInduced),
		zap.Stringer("end", q.end),
	)
	return out, nil
}
