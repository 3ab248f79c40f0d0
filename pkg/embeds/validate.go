package embeds

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

var (
	hexColorPattern = regexp.MustCompile(`(?i)^[0-9A-F]{6}$`)
	urlPattern      = regexp.MustCompile(`^https?://.+`)
)

// Limits are the maximum sizes of an embed.
type Limits struct {
	Title       int
	Description int
	FieldValue  int
	Fields      int
}

// DefaultLimits are the platform limits.
var DefaultLimits = Limits{
	Title:       256,
	Description: 4096,
	FieldValue:  1024,
	Fields:      25,
}

// ValidationError is an input the requester has to correct.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func tooLong(field string, limit int) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf("too long (max %d characters)", limit)}
}

func checkLength(field, value string, limit int) error {
	if limit > 0 && utf8.RuneCountInString(value) > limit {
		return tooLong(field, limit)
	}
	return nil
}

// ValidateHexColor parses a six digit hex color, with or without a leading '#'.
func ValidateHexColor(s string) (int, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !hexColorPattern.MatchString(hex) {
		return 0, &ValidationError{Field: "color", Reason: "use a 6 digit hex color without #, for example 00AE86"}
	}
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, &ValidationError{Field: "color", Reason: err.Error()}
	}
	return int(v), nil
}

// colorOr parses s, or returns def when s is empty.
func colorOr(s string, def int) (int, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ValidateHexColor(s)
}

// ValidateURL checks an optional http or https URL. An empty string is valid.
func ValidateURL(field, s string) error {
	if s == "" || urlPattern.MatchString(s) {
		return nil
	}
	return &ValidationError{Field: field, Reason: "invalid URL, it must start with http:// or https://"}
}

// ParseFields parses "name|value|inline;name|value" into fields. Entries without a
// name or a value are skipped; inline defaults to false.
func ParseFields(s string, limits Limits) ([]entities.EmbedField, error) {
	fields := make([]entities.EmbedField, 0)
	if strings.TrimSpace(s) == "" {
		return fields, nil
	}

	for _, entry := range strings.Split(s, ";") {
		parts := strings.Split(entry, "|")
		if len(parts) < 2 {
			continue
		}

		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if name == "" || value == "" {
			continue
		}
		inline := len(parts) > 2 && strings.EqualFold(strings.TrimSpace(parts[2]), "true")

		if err := checkLength("field name", name, limits.Title); err != nil {
			return nil, err
		}
		if err := checkLength("field value", value, limits.FieldValue); err != nil {
			return nil, err
		}
		fields = append(fields, entities.EmbedField{Name: name, Value: value, Inline: inline})
	}

	if limits.Fields > 0 && len(fields) > limits.Fields {
		return nil, &ValidationError{Field: "fields", Reason: fmt.Sprintf("at most %d fields per embed", limits.Fields)}
	}
	return fields, nil
}
