package domain

// PersonaVersion is the default version label stamped on derived
// personas, used to correlate exported rows with the prompt set that
// produced them.
const PersonaVersion = "v1"

// defaultCreativeGuidance is the built-in guidance used when no creative
// persona document is configured.
const defaultCreativeGuidance = "Favor unconventional, high-variance ideas; " +
	"tolerate ambiguity; deprioritize rigid planning."

// PersonaDefinition is one derived persona: the condition it belongs to,
// the trait profile steering the generation, optional free-text
// guidance, and a version label. The JSON field names match the persona
// block serialized into user prompts and the export payloads.
type PersonaDefinition struct {
	Variant  Condition    `json:"type"`
	Profile  TraitProfile `json:"persona"`
	Guidance string       `json:"guidance,omitempty"`
	Version  string       `json:"version"`
}

// CreativePersona is the externally configured profile and guidance pair
// backing the creative condition.
type CreativePersona struct {
	Profile  TraitProfile `yaml:"persona" json:"persona"`
	Guidance string       `yaml:"guidance" json:"guidance,omitempty"`
	Version  string       `yaml:"version" json:"version"`
}

// DefaultCreativePersona returns the built-in creative persona used when
// configuration is absent: high openness, low neuroticism, and a fixed
// guidance string.
func DefaultCreativePersona() CreativePersona {
	return CreativePersona{
		Profile: TraitProfile{
			Openness:          48,
			Conscientiousness: 28,
			Extraversion:      44,
			Agreeableness:     40,
			Neuroticism:       18,
		},
		Guidance: defaultCreativeGuidance,
		Version:  PersonaVersion,
	}
}

// DerivePersonas derives the four persona definitions for one request,
// in canonical condition order. It never fails: a nil profile degrades
// the mirror persona to the baseline midpoint, and a zero-value creative
// persona falls back to the built-in default.
func DerivePersonas(profile *TraitProfile, creative CreativePersona) [4]PersonaDefinition {
	mirror := MidpointProfile()
	if profile != nil {
		mirror = *profile
	}

	if creative.Profile.IsZero() {
		creative = DefaultCreativePersona()
	}
	if creative.Version == "" {
		creative.Version = PersonaVersion
	}

	return [4]PersonaDefinition{
		{Variant: ConditionBaseline, Profile: MidpointProfile(), Version: PersonaVersion},
		{Variant: ConditionMirror, Profile: mirror, Version: PersonaVersion},
		{Variant: ConditionComplement, Profile: mirror.Complement(), Version: PersonaVersion},
		{Variant: ConditionCreative, Profile: creative.Profile, Guidance: creative.Guidance, Version: creative.Version},
	}
}
