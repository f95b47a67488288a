package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDerivePersonas_Order verifies the derived set is always four
// personas in canonical condition order.
func TestDerivePersonas_Order(t *testing.T) {
	personas := DerivePersonas(nil, CreativePersona{})

	require.Len(t, personas, 4)
	for i, p := range personas {
		assert.Equal(t, ConditionOrder[i], p.Variant)
	}
}

// TestDerivePersonas_NilProfileDegradesToBaseline verifies that an
// absent trait profile is not an error: the mirror persona equals the
// baseline midpoint persona.
func TestDerivePersonas_NilProfileDegradesToBaseline(t *testing.T) {
	personas := DerivePersonas(nil, CreativePersona{})

	baseline, mirror := personas[0], personas[1]
	assert.Equal(t, baseline.Profile, mirror.Profile)
	assert.Equal(t, MidpointProfile(), mirror.Profile)
	assert.Empty(t, mirror.Guidance)
	assert.Equal(t, MidpointProfile(), personas[2].Profile,
		"complement of the midpoint is the midpoint")
}

func TestDerivePersonas_MirrorAndComplement(t *testing.T) {
	profile := TraitProfile{Openness: 44, Conscientiousness: 22, Extraversion: 50, Agreeableness: 31, Neuroticism: 12}
	personas := DerivePersonas(&profile, CreativePersona{})

	assert.Equal(t, profile, personas[1].Profile)
	assert.Equal(t, profile.Complement(), personas[2].Profile)
	assert.Empty(t, personas[1].Guidance)
	assert.Empty(t, personas[2].Guidance)
	assert.Equal(t, PersonaVersion, personas[1].Version)
}

// TestDerivePersonas_CreativeFallback verifies the built-in creative
// persona is used when no creative document is configured.
func TestDerivePersonas_CreativeFallback(t *testing.T) {
	personas := DerivePersonas(nil, CreativePersona{})

	creative := personas[3]
	want := DefaultCreativePersona()
	assert.Equal(t, want.Profile, creative.Profile)
	assert.Equal(t, want.Guidance, creative.Guidance)
	assert.Equal(t, "v1", creative.Version)
	assert.Equal(t, 48, creative.Profile.Openness)
	assert.Equal(t, 18, creative.Profile.Neuroticism)
}

func TestDerivePersonas_ConfiguredCreative(t *testing.T) {
	configured := CreativePersona{
		Profile:  TraitProfile{Openness: 50, Conscientiousness: 20, Extraversion: 40, Agreeableness: 35, Neuroticism: 15},
		Guidance: "Push toward speculative framings.",
		Version:  "v2",
	}
	personas := DerivePersonas(nil, configured)

	creative := personas[3]
	assert.Equal(t, configured.Profile, creative.Profile)
	assert.Equal(t, configured.Guidance, creative.Guidance)
	assert.Equal(t, "v2", creative.Version)
}

// TestDerivePersonas_ConfiguredCreativeWithoutVersion verifies a
// configured persona missing a version label defaults to v1 rather than
// carrying an empty tag into exports.
func TestDerivePersonas_ConfiguredCreativeWithoutVersion(t *testing.T) {
	configured := CreativePersona{
		Profile: TraitProfile{Openness: 50, Conscientiousness: 20, Extraversion: 40, Agreeableness: 35, Neuroticism: 15},
	}
	personas := DerivePersonas(nil, configured)
	assert.Equal(t, PersonaVersion, personas[3].Version)
}
