package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartetlab/quartet/internal/domain"
)

func TestPromptLibrary_SystemPrompt_ConfiguredStyle(t *testing.T) {
	lib := NewPromptLibrary(PromptConfig{
		Styles: map[string]StyleTemplates{
			"A": {
				Baseline: "style A baseline system",
				Persona:  "style A persona system",
				Creative: "style A creative system",
			},
		},
	})

	assert.Equal(t, "style A baseline system", lib.SystemPrompt("A", domain.ConditionBaseline))
	assert.Equal(t, "style A persona system", lib.SystemPrompt("A", domain.ConditionMirror))
	assert.Equal(t, "style A persona system", lib.SystemPrompt("A", domain.ConditionComplement))
	assert.Equal(t, "style A creative system", lib.SystemPrompt("A", domain.ConditionCreative))
}

func TestPromptLibrary_SystemPrompt_StyleLookupIsCaseInsensitive(t *testing.T) {
	lib := NewPromptLibrary(PromptConfig{
		Styles: map[string]StyleTemplates{
			"A": {Baseline: "style A baseline system"},
		},
	})

	assert.Equal(t, "style A baseline system", lib.SystemPrompt("a", domain.ConditionBaseline))
}

func TestPromptLibrary_SystemPrompt_UnknownStyleFallsBackByCategory(t *testing.T) {
	lib := NewPromptLibrary(PromptConfig{})

	assert.Equal(t, defaultBaselineSystem, lib.SystemPrompt("Z", domain.ConditionBaseline))
	assert.Equal(t, defaultPersonaSystem, lib.SystemPrompt("Z", domain.ConditionMirror))
	assert.Equal(t, defaultPersonaSystem, lib.SystemPrompt("Z", domain.ConditionComplement))
	assert.Equal(t, defaultCreativeSystem, lib.SystemPrompt("Z", domain.ConditionCreative))
}

func TestPromptLibrary_SystemPrompt_PartialTemplatesFallBack(t *testing.T) {
	lib := NewPromptLibrary(PromptConfig{
		Styles: map[string]StyleTemplates{
			"B": {Creative: "style B creative system"},
		},
	})

	assert.Equal(t, defaultBaselineSystem, lib.SystemPrompt("B", domain.ConditionBaseline))
	assert.Equal(t, "style B creative system", lib.SystemPrompt("B", domain.ConditionCreative))
}

func TestPromptLibrary_UserPrompt_BaselineIsRawTaskPrompt(t *testing.T) {
	lib := NewPromptLibrary(PromptConfig{})
	persona := domain.PersonaDefinition{Variant: domain.ConditionBaseline, Profile: domain.MidpointProfile()}

	got, err := lib.UserPrompt(domain.ConditionBaseline, persona, "Brainstorm uses for an old shipping container.")
	require.NoError(t, err)
	assert.Equal(t, "Brainstorm uses for an old shipping container.", got)
}

func TestPromptLibrary_UserPrompt_PersonaBlockAppended(t *testing.T) {
	lib := NewPromptLibrary(PromptConfig{})
	persona := domain.PersonaDefinition{
		Variant: domain.ConditionMirror,
		Profile: domain.TraitProfile{Openness: 42, Conscientiousness: 18, Extraversion: 35, Agreeableness: 27, Neuroticism: 22},
	}

	got, err := lib.UserPrompt(domain.ConditionMirror, persona, "Task prompt.")
	require.NoError(t, err)
	assert.Equal(t, "Task prompt.\n\n"+`{"persona":{"O":42,"C":18,"E":35,"A":27,"N":22}}`, got)
}

func TestPromptLibrary_UserPrompt_GuidanceIncludedWhenPresent(t *testing.T) {
	lib := NewPromptLibrary(PromptConfig{})
	creative := domain.DefaultCreativePersona()
	persona := domain.PersonaDefinition{
		Variant:  domain.ConditionCreative,
		Profile:  creative.Profile,
		Guidance: creative.Guidance,
	}

	got, err := lib.UserPrompt(domain.ConditionCreative, persona, "Task prompt.")
	require.NoError(t, err)
	assert.Contains(t, got, `"guidance":"Favor unconventional`)
	assert.Contains(t, got, `"persona":{"O":48,"C":28,"E":44,"A":40,"N":18}`)
}

func TestLoadPromptLibrary_MissingFileUsesDefaults(t *testing.T) {
	lib, err := LoadPromptLibrary(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, defaultBaselineSystem, lib.SystemPrompt("A", domain.ConditionBaseline))
	assert.True(t, lib.CreativePersona().Profile.IsZero())
}

func TestLoadPromptLibrary_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := `
styles:
  A:
    baseline: "configured baseline"
creative_persona:
  persona:
    O: 50
    C: 20
    E: 40
    A: 38
    N: 15
  guidance: "Take big swings."
  version: v2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lib, err := LoadPromptLibrary(path)
	require.NoError(t, err)

	assert.Equal(t, "configured baseline", lib.SystemPrompt("A", domain.ConditionBaseline))
	creative := lib.CreativePersona()
	assert.Equal(t, 50, creative.Profile.Openness)
	assert.Equal(t, "Take big swings.", creative.Guidance)
	assert.Equal(t, "v2", creative.Version)
}

func TestLoadPromptLibrary_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("styles: ["), 0o644))

	_, err := LoadPromptLibrary(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse prompt config")
}
