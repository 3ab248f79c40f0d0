// Package messages renders user facing text from an embedded YAML catalog.
package messages

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var catalogYAML []byte

// DefaultLanguage is used when the requested language has no block.
const DefaultLanguage = "en"

// ErrUserErrorProcessing is the key of the generic failure reply.
const ErrUserErrorProcessing = "error_processing"

// Catalog holds the messages of one language, falling back to English per key.
type Catalog struct {
	lang     string
	messages map[string]string
	fallback map[string]string
}

// NewCatalog parses the embedded catalog for lang.
func NewCatalog(lang string) (*Catalog, error) {
	return parse(catalogYAML, lang)
}

func parse(data []byte, lang string) (*Catalog, error) {
	raw := make(map[string]map[string]string)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing message catalog: %w", err)
	}

	fallback, ok := raw[DefaultLanguage]
	if !ok {
		return nil, fmt.Errorf("message catalog has no %q block", DefaultLanguage)
	}

	if lang == "" {
		lang = DefaultLanguage
	}
	msgs, ok := raw[lang]
	if !ok {
		return nil, fmt.Errorf("message catalog has no %q block", lang)
	}

	return &Catalog{
		lang:     lang,
		messages: msgs,
		fallback: fallback,
	}, nil
}

// Language returns the active language.
func (c *Catalog) Language() string {
	return c.lang
}

// T renders key, replacing each {name} with the value that follows it in pairs.
// Unknown keys render as {key}.
func (c *Catalog) T(key string, pairs ...string) string {
	s, ok := c.messages[key]
	if !ok {
		if s, ok = c.fallback[key]; !ok {
			return "{" + key + "}"
		}
	}

	if len(pairs) == 0 {
		return s
	}

	replacements := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		replacements = append(replacements, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(replacements...).Replace(s)
}
