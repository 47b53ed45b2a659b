package logic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsreddy3/persona-backend/models"
)

func testCharacter() *models.Character {
	return &models.Character{
		ID:          1,
		Name:        "Ada",
		Description: "A pioneering mathematician with a sharp wit",
		Greeting:    "Charmed, I'm sure.",
		Tagline:     "The first programmer",
		Attributes:  []string{"historical", "genius"},
	}
}

func TestBuildCuratedLocale(t *testing.T) {
	p, err := NewPromptAssembler()
	require.NoError(t, err)

	prompt := p.Build(testCharacter(), "es")
	assert.Contains(t, prompt, "A pioneering mathematician with a sharp wit")
	assert.Contains(t, prompt, "español")
	assert.NotContains(t, prompt, "{character_description}")
}

func TestBuildFallbackEmbedsLanguage(t *testing.T) {
	p, err := NewPromptAssembler()
	require.NoError(t, err)

	prompt := p.Build(testCharacter(), "xx")
	assert.Contains(t, prompt, "A pioneering mathematician with a sharp wit")
	assert.Contains(t, prompt, "Respond in xx")
	assert.NotContains(t, prompt, "{language}")
}

func TestBuildNormalizesRegionTag(t *testing.T) {
	p, err := NewPromptAssembler()
	require.NoError(t, err)

	prompt := p.Build(testCharacter(), "en-US")
	// The EN template addresses the character by name.
	assert.Contains(t, prompt, "Ada")
	assert.Contains(t, prompt, "Respond in English")
}

func TestBuildLeavesNoPlaceholders(t *testing.T) {
	p, err := NewPromptAssembler()
	require.NoError(t, err)

	for _, lang := range append(supportedLanguages, "xx", "sv-SE") {
		prompt := p.Build(testCharacter(), lang)
		assert.False(t, strings.Contains(prompt, "{"), "unresolved placeholder for %s: %s", lang, prompt)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"EN":    "en",
		"en-US": "en",
		"pt_BR": "pt",
		" ja ":  "ja",
		"":      "en",
		"xx":    "xx",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeLanguage(input), "input %q", input)
	}
}
