package combat

import (
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/actor"
)

// State is a step of the per-turn blow loop.
type State int

const (
	SelectBlow State = iota
	CheckTermination
	RollHit
	Miss
	DescribeMethod
	RollBaseDamage
	DispatchEffect
	ApplyDamage
	ApplyStatus
	CheckDeathAndFear
	CheckCounterOrAura

	// Terminal states.
	TargetDead
	AttackerGone
	TargetGone
	BlowsExhausted
)

var stateNames = [...]string{
	SelectBlow:         "select_blow",
	CheckTermination:   "check_termination",
	RollHit:            "roll_hit",
	Miss:               "miss",
	DescribeMethod:     "describe_method",
	RollBaseDamage:     "roll_base_damage",
	DispatchEffect:     "dispatch_effect",
	ApplyDamage:        "apply_damage",
	ApplyStatus:        "apply_status",
	CheckDeathAndFear:  "check_death_and_fear",
	CheckCounterOrAura: "check_counter_or_aura",
	TargetDead:         "target_dead",
	AttackerGone:       "attacker_gone",
	TargetGone:         "target_gone",
	BlowsExhausted:     "blows_exhausted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether the loop stops in s.
func (s State) Terminal() bool { return s >= TargetDead }

// BlowResult records one blow of a sequence.
type BlowResult struct {
	Slot   int
	Method actor.Method
	Effect actor.Effect
	Hit    bool
	// Repelled blows hit but were turned aside by protection from evil.
	Repelled bool
	// Damage is the HP the target actually lost.
	Damage   int
	Obvious  bool
	Resisted bool
	Critical CriticalTier
	Vorpal   int
}

// blow is the working state of the blow in flight.
type blow struct {
	result  BlowResult
	desc    actor.BlowDescriptor
	rolled  int
	explode bool
	touched bool
	ctx     *EffectContext
	effect  EffectResult
	weapon  WeaponDamage
}

// blowSteps is one attack direction's implementation of the loop states.
type blowSteps interface {
	// available reports whether slot holds a blow the attacker may still use.
	available(slot int) bool
	rollHit(b *blow) bool
	miss(b *blow)
	describe(b *blow)
	rollDamage(b *blow)
	dispatch(b *blow)
	applyDamage(b *blow)
	applyStatus(b *blow)
	checkDeath(b *blow)
	counter(b *blow)
	// done runs after every blow, hit or miss.
	done(b *blow)
}

// sequence drives one attacker's blows against one target.
type sequence struct {
	steps    blowSteps
	attacker *actor.Actor
	target   *actor.Actor

	trace []State
	blows []BlowResult
	end   State
}

func newSequence(steps blowSteps, attacker, target *actor.Actor) *sequence {
	return &sequence{steps: steps, attacker: attacker, target: target}
}

func (q *sequence) enter(s State) { q.trace = append(q.trace, s) }

// terminated returns the terminal state the loop must stop in before slot,
// or SelectBlow when the loop may continue.
func (q *sequence) terminated(slot int, from, to actor.Pos) State {
	switch {
	case q.target.Dead || q.target.HP <= 0:
		return TargetDead
	case q.attacker.Dead || q.attacker.Pos != from:
		return AttackerGone
	case q.target.Pos != to:
		return TargetGone
	case !q.steps.available(slot):
		return BlowsExhausted
	}
	return SelectBlow
}

// run executes the loop until a terminal state.
//
// Postcondition: at most one BlowResult per available slot is recorded, and
// the loop stops before the next blow once the target is dead or either
// participant has moved.
func (q *sequence) run() State {
	from, to := q.attacker.Pos, q.target.Pos
	for slot := 0; ; slot++ {
		q.enter(SelectBlow)
		q.enter(CheckTermination)
		if end := q.terminated(slot, from, to); end != SelectBlow {
			q.enter(end)
			q.end = end
			return end
		}
		b := &blow{result: BlowResult{Slot: slot}}
		q.enter(RollHit)
		if !q.steps.rollHit(b) {
			q.enter(Miss)
			q.steps.miss(b)
			q.steps.done(b)
			q.blows = append(q.blows, b.result)
			continue
		}
		b.result.Hit = true
		q.enter(DescribeMethod)
		q.steps.describe(b)
		q.enter(RollBaseDamage)
		q.steps.rollDamage(b)
		q.enter(DispatchEffect)
		q.steps.dispatch(b)
		q.enter(ApplyDamage)
		q.steps.applyDamage(b)
		q.enter(ApplyStatus)
		q.steps.applyStatus(b)
		q.enter(CheckDeathAndFear)
		q.steps.checkDeath(b)
		q.enter(CheckCounterOrAura)
		q.steps.counter(b)
		q.steps.done(b)
		q.blows = append(q.blows, b.result)
	}
}

// damage sums the HP the target lost over the sequence.
func (q *sequence) damage() int {
	total := 0
	for _, b := range q.blows {
		total += b.Damage
	}
	return total
}
