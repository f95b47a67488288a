// Package application contains the persona derivation, prompt
// composition, and fan-out orchestration behind the study's generation
// endpoint, wired to infrastructure through the ports interfaces.
package application

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/quartetlab/quartet/internal/domain"
)

// Category defaults used when no template is configured for a style.
// An unrecognized style falls back to these rather than failing, so a
// survey misconfiguration degrades instead of blocking participants.
const (
	defaultBaselineSystem = "Generate 3 concise, distinct ideas. Avoid fluff. " +
		"Each idea has a bullet and one-sentence why."
	defaultPersonaSystem = "Adopt the given personality (O,C,E,A,N) and respond accordingly."
	defaultCreativeSystem = "Produce creative output: favor unconventional, " +
		"high-variance ideas; tolerate ambiguity."
)

// StyleTemplates is the per-style set of system prompt templates, one
// per condition category.
type StyleTemplates struct {
	Baseline string `yaml:"baseline"`
	Persona  string `yaml:"persona"`
	Creative string `yaml:"creative"`
}

// PromptConfig is the external prompt configuration document: system
// templates per style plus the creative persona profile.
type PromptConfig struct {
	Styles   map[string]StyleTemplates `yaml:"styles"`
	Creative domain.CreativePersona    `yaml:"creative_persona"`
}

// PromptLibrary resolves system and user prompts for a generation
// request. Style lookup is case-insensitive.
type PromptLibrary struct {
	styles   map[string]StyleTemplates
	creative domain.CreativePersona
	folder   cases.Caser
}

// NewPromptLibrary builds a library from an already parsed config.
func NewPromptLibrary(config PromptConfig) *PromptLibrary {
	folder := cases.Fold()
	styles := make(map[string]StyleTemplates, len(config.Styles))
	for name, templates := range config.Styles {
		styles[folder.String(name)] = templates
	}
	return &PromptLibrary{
		styles:   styles,
		creative: config.Creative,
		folder:   cases.Fold(),
	}
}

// LoadPromptLibrary reads a YAML prompt configuration from path. A
// missing file is not an error: the library falls back to built-in
// defaults for every style and the default creative persona.
func LoadPromptLibrary(path string) (*PromptLibrary, error) {
	if path == "" {
		return NewPromptLibrary(PromptConfig{}), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewPromptLibrary(PromptConfig{}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt config: %w", err)
	}

	var config PromptConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse prompt config: %w", err)
	}
	return NewPromptLibrary(config), nil
}

// CreativePersona returns the configured creative persona; zero when
// the config carried none, in which case derivation substitutes the
// built-in default.
func (pl *PromptLibrary) CreativePersona() domain.CreativePersona {
	return pl.creative
}

// SystemPrompt resolves the system prompt for a style and condition.
// Resolution prefers the style's configured template for the
// condition's category, then the built-in category default. Categories
// group conditions: baseline stands alone, mirror and complement share
// the persona-adoption template, creative has its own.
func (pl *PromptLibrary) SystemPrompt(style string, condition domain.Condition) string {
	templates, ok := pl.styles[pl.folder.String(style)]

	switch condition {
	case domain.ConditionCreative:
		if ok && templates.Creative != "" {
			return templates.Creative
		}
		return defaultCreativeSystem
	case domain.ConditionMirror, domain.ConditionComplement:
		if ok && templates.Persona != "" {
			return templates.Persona
		}
		return defaultPersonaSystem
	default:
		if ok && templates.Baseline != "" {
			return templates.Baseline
		}
		return defaultBaselineSystem
	}
}

// personaBlock is the JSON fragment appended to non-baseline user
// prompts. Guidance is omitted when empty.
type personaBlock struct {
	Persona  domain.TraitProfile `json:"persona"`
	Guidance string              `json:"guidance,omitempty"`
}

// UserPrompt composes the user prompt for a condition. The baseline
// user prompt is the raw task prompt, byte for byte. Every other
// condition appends a blank line and the serialized persona block, so
// the system turn stays fixed and cacheable while the user turn carries
// the per-participant variation.
func (pl *PromptLibrary) UserPrompt(condition domain.Condition, persona domain.PersonaDefinition, taskPrompt string) (string, error) {
	if condition == domain.ConditionBaseline {
		return taskPrompt, nil
	}

	block, err := json.Marshal(personaBlock{
		Persona:  persona.Profile,
		Guidance: persona.Guidance,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize persona block: %w", err)
	}
	return taskPrompt + "\n\n" + string(block), nil
}
