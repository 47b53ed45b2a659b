package logic

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsreddy3/persona-backend/models"
)

//go:embed prompts.yaml
var promptsYAML []byte

// supportedLanguages is the curated locale set with a dedicated template.
// Anything else gets the REST fallback with an explicit language directive.
var supportedLanguages = []string{"en", "es", "pt", "ko", "ja", "id", "fr", "de", "zh"}

const fallbackPromptKey = "CONVERSATION_SYSTEM_PROMPT_REST"

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// allowedPlaceholders are the only substitutions templates may use; anything
// else is a configuration error caught at startup, not at request time.
var allowedPlaceholders = map[string]bool{
	"character_description": true,
	"character_name":        true,
	"tagline":               true,
	"type":                  true,
	"language":              true,
}

// PromptAssembler renders the localized system prompt handed to the
// completion provider as the first context entry.
type PromptAssembler struct {
	templates map[string]string
}

// NewPromptAssembler parses the embedded templates and rejects templates
// with unknown placeholders.
func NewPromptAssembler() (*PromptAssembler, error) {
	templates := make(map[string]string)
	if err := yaml.Unmarshal(promptsYAML, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}

	for _, lang := range supportedLanguages {
		key := "CONVERSATION_SYSTEM_PROMPT_" + strings.ToUpper(lang)
		if templates[key] == "" {
			return nil, fmt.Errorf("missing prompt template %s", key)
		}
	}
	if templates[fallbackPromptKey] == "" {
		return nil, fmt.Errorf("missing prompt template %s", fallbackPromptKey)
	}
	for key, tmpl := range templates {
		for _, match := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
			if !allowedPlaceholders[match[1]] {
				return nil, fmt.Errorf("template %s uses unknown placeholder {%s}", key, match[1])
			}
		}
	}

	return &PromptAssembler{templates: templates}, nil
}

// Build renders the system prompt for a character in the given language.
func (p *PromptAssembler) Build(character *models.Character, language string) string {
	lang := NormalizeLanguage(language)

	tmpl, ok := p.templates["CONVERSATION_SYSTEM_PROMPT_"+strings.ToUpper(lang)]
	if !ok || !isSupportedLanguage(lang) {
		tmpl = p.templates[fallbackPromptKey]
	}

	replacer := strings.NewReplacer(
		"{character_description}", character.Description,
		"{character_name}", character.Name,
		"{tagline}", character.Tagline,
		"{type}", strings.Join(character.Attributes, ", "),
		"{language}", lang,
	)
	return replacer.Replace(tmpl)
}

// NormalizeLanguage lowercases a language tag and strips any region
// subtag, so "en-US" becomes "en".
func NormalizeLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		lang = lang[:idx]
	}
	if lang == "" {
		lang = "en"
	}
	return lang
}

func isSupportedLanguage(lang string) bool {
	for _, l := range supportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
