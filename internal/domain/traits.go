package domain

// Trait score bounds. Each of the five IPIP trait sums is built from ten
// Likert items scored 1..5, so valid values always fall in [10, 50].
const (
	// TraitMin is the lowest reachable trait sum.
	TraitMin = 10
	// TraitMax is the highest reachable trait sum.
	TraitMax = 50
	// TraitMidpoint is the center of the valid range, used for the
	// baseline persona and as the reflection axis for complementing.
	TraitMidpoint = 30
)

// TraitProfile holds a participant's Big Five trait sums. The JSON keys
// are the single-letter trait tags used on the wire and inside persona
// blocks.
type TraitProfile struct {
	Openness          int `json:"O" yaml:"O" validate:"min=10,max=50"`
	Conscientiousness int `json:"C" yaml:"C" validate:"min=10,max=50"`
	Extraversion      int `json:"E" yaml:"E" validate:"min=10,max=50"`
	Agreeableness     int `json:"A" yaml:"A" validate:"min=10,max=50"`
	Neuroticism       int `json:"N" yaml:"N" validate:"min=10,max=50"`
}

// MidpointProfile returns the neutral profile with every dimension at
// the trait midpoint.
func MidpointProfile() TraitProfile {
	return TraitProfile{
		Openness:          TraitMidpoint,
		Conscientiousness: TraitMidpoint,
		Extraversion:      TraitMidpoint,
		Agreeableness:     TraitMidpoint,
		Neuroticism:       TraitMidpoint,
	}
}

// Complement reflects the profile around the trait midpoint, clamped to
// the valid range: each dimension v maps to clamp(60-v, 10, 50).
// Out-of-range inputs still land in range; 55 clamps to 10 and 0
// clamps to 50.
func (p TraitProfile) Complement() TraitProfile {
	return TraitProfile{
		Openness:          clampTrait(2*TraitMidpoint - p.Openness),
		Conscientiousness: clampTrait(2*TraitMidpoint - p.Conscientiousness),
		Extraversion:      clampTrait(2*TraitMidpoint - p.Extraversion),
		Agreeableness:     clampTrait(2*TraitMidpoint - p.Agreeableness),
		Neuroticism:       clampTrait(2*TraitMidpoint - p.Neuroticism),
	}
}

// Validate checks that every dimension is within [TraitMin, TraitMax].
func (p TraitProfile) Validate() error {
	ve := NewValidationError("trait profile")
	check := func(tag string, v int) {
		if v < TraitMin || v > TraitMax {
			ve.AddError(tag + " out of range")
		}
	}
	check("O", p.Openness)
	check("C", p.Conscientiousness)
	check("E", p.Extraversion)
	check("A", p.Agreeableness)
	check("N", p.Neuroticism)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// IsZero reports whether the profile is the zero value, which is never a
// valid trait profile.
func (p TraitProfile) IsZero() bool { return p == TraitProfile{} }

func clampTrait(v int) int {
	if v < TraitMin {
		return TraitMin
	}
	if v > TraitMax {
		return TraitMax
	}
	return v
}
