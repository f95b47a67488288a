// Package domain contains the pure types and transforms of the study:
// trait profiles, persona derivation, questionnaire scoring, and the
// generation result that downstream consumers depend on positionally.
// The package has no infrastructure dependencies and every function is
// deterministic.
package domain

import "fmt"

// Condition identifies one of the four experimental arms a participant
// sees for a given task.
type Condition string

const (
	// ConditionBaseline generates with a fixed midpoint persona and no
	// persona block in the user turn.
	ConditionBaseline Condition = "baseline"

	// ConditionMirror generates with a persona equal to the participant's
	// own trait profile.
	ConditionMirror Condition = "mirror"

	// ConditionComplement generates with the participant's profile
	// reflected around the trait midpoint.
	ConditionComplement Condition = "complement"

	// ConditionCreative generates with a configured high-openness persona
	// and optional guidance text.
	ConditionCreative Condition = "creative"
)

// ConditionOrder is the canonical condition order. Callers receive
// generation results in exactly this order; the survey tool maps them
// by index, so the order is part of the external contract.
var ConditionOrder = [4]Condition{
	ConditionBaseline,
	ConditionMirror,
	ConditionComplement,
	ConditionCreative,
}

// Valid reports whether c is one of the four known conditions.
func (c Condition) Valid() bool {
	switch c {
	case ConditionBaseline, ConditionMirror, ConditionComplement, ConditionCreative:
		return true
	}
	return false
}

// AdoptsPersona reports whether the condition injects a persona block
// into the user turn. Baseline is the only condition that does not.
func (c Condition) AdoptsPersona() bool { return c != ConditionBaseline }

// Index returns the position of c in ConditionOrder, or -1 for an
// unknown condition.
func (c Condition) Index() int {
	for i, known := range ConditionOrder {
		if c == known {
			return i
		}
	}
	return -1
}

// ParseCondition converts a string into a Condition, returning an error
// for anything outside the closed set.
func ParseCondition(s string) (Condition, error) {
	c := Condition(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCondition, s)
	}
	return c, nil
}
