package i18n

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	LangEnglish = "en"
	LangFrench  = "fr"
	LangArabic  = "ar"

	// Fallback is used whenever the requested language has no value.
	Fallback = LangEnglish
)

// Supported lists the languages with a translation bundle, fallback first.
var Supported = []string{LangEnglish, LangFrench, LangArabic}

func IsSupported(lang string) bool {
	return slices.Contains(Supported, lang)
}

var errUnsupportedScan = errors.New("unsupported type for multilingual column")

// Text is a multilingual string keyed by language code.
type Text map[string]string

// Get returns the value for lang, then the first non-blank value in Supported
// order (which starts with the fallback language).
func (t Text) Get(lang string) string {
	if v := t[lang]; strings.TrimSpace(v) != "" {
		return v
	}

	for _, l := range Supported {
		if v := t[l]; strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}

// Has reports whether at least one language carries a value.
func (t Text) Has() bool {
	return t.Get(Fallback) != ""
}

func (t Text) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}

	b, err := json.Marshal(map[string]string(t))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal multilingual text: %w", err)
	}

	return b, nil
}

func (t *Text) Scan(src any) error {
	return scanJSON(src, t)
}

// List is a multilingual list of strings keyed by language code.
type List map[string][]string

// Get applies the same fallback rules as Text.Get. The result is never nil.
func (l List) Get(lang string) []string {
	if v := l[lang]; len(v) > 0 {
		return v
	}

	if v := l[Fallback]; len(v) > 0 {
		return v
	}

	for _, code := range Supported {
		if v := l[code]; len(v) > 0 {
			return v
		}
	}

	return []string{}
}

func (l List) Value() (driver.Value, error) {
	if l == nil {
		return []byte("{}"), nil
	}

	b, err := json.Marshal(map[string][]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal multilingual list: %w", err)
	}

	return b, nil
}

func (l *List) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedScan, src)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to unmarshal multilingual column: %w", err)
	}

	return nil
}
