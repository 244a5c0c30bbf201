// Package dice provides the randomness abstraction, dice notation and the
// ordered draw stream shared by every probability check in a combat turn.
package dice

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dice is an NdS damage expression as carried by blows and weapons.
// The zero value rolls 0.
type Dice struct {
	Count int
	Sides int
}

// D is shorthand for Dice{Count: count, Sides: sides}.
func D(count, sides int) Dice { return Dice{Count: count, Sides: sides} }

// Max returns the largest total the dice can produce.
func (d Dice) Max() int { return d.Count * d.Sides }

// IsZero reports whether the dice roll nothing.
func (d Dice) IsZero() bool { return d.Count == 0 || d.Sides == 0 }

// String renders the dice in NdS form.
func (d Dice) String() string { return fmt.Sprintf("%dd%d", d.Count, d.Sides) }

// Validate rejects negative counts or sides.
//
// Postcondition: Returns nil iff Count >= 0 and Sides >= 0.
func (d Dice) Validate() error {
	if d.Count < 0 || d.Sides < 0 {
		return fmt.Errorf("dice: %s must not be negative", d)
	}
	return nil
}

// UnmarshalYAML accepts the scalar form "NdS".
func (d *Dice) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("dice: expected NdS scalar: %w", err)
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML renders the scalar form "NdS".
func (d Dice) MarshalYAML() (any, error) { return d.String(), nil }

// Parse parses an "NdS" expression. A missing count means 1 ("d6").
//
// Precondition: expr must be non-empty.
// Postcondition: Returns a Dice with Count >= 0 and Sides >= 0, or a descriptive error.
func Parse(expr string) (Dice, error) {
	if expr == "" {
		return Dice{}, fmt.Errorf("dice: empty expression")
	}
	s := strings.ToLower(strings.TrimSpace(expr))
	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Dice{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Dice{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
	}
	sides, err := strconv.Atoi(s[dIdx+1:])
	if err != nil {
		return Dice{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}
	d := Dice{Count: count, Sides: sides}
	if err := d.Validate(); err != nil {
		return Dice{}, err
	}
	return d, nil
}

// RollResult holds the individual dice of a single roll.
//
// Postcondition: Total() == sum(Dice).
type RollResult struct {
	Expression string // e.g. "2d6"
	Dice       []int  // individual die results in draw order
}

// Total returns the sum of all die results.
func (r RollResult) Total() int {
	total := 0
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6 → [4 5] = 9"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v = %d", r.Expression, r.Dice, r.Total())
}
