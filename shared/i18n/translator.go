package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed locales/*.json
var bundles embed.FS

// Translator resolves dotted keys ("booking.steps.details") against the
// embedded per-language bundles.
type Translator struct {
	strings map[string]map[string]string
}

func NewTranslator() (*Translator, error) {
	t := &Translator{strings: make(map[string]map[string]string, len(Supported))}

	for _, lang := range Supported {
		raw, err := bundles.ReadFile(path.Join("locales", lang+".json"))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s bundle: %w", lang, err)
		}

		var tree map[string]any
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse %s bundle: %w", lang, err)
		}

		flat := make(map[string]string)
		flatten("", tree, flat)
		t.strings[lang] = flat

		log.Debug().Str("lang", lang).Int("keys", len(flat)).Msg("Translation bundle loaded")
	}

	return t, nil
}

// MustTranslator panics when the embedded bundles are malformed.
func MustTranslator() *Translator {
	t, err := NewTranslator()
	if err != nil {
		panic(err)
	}

	return t
}

// Translate returns the string for key in lang, falling back to the fallback
// language and finally to the key itself.
func (t *Translator) Translate(key, lang string) string {
	if v, ok := t.strings[lang][key]; ok && v != "" {
		return v
	}

	if v, ok := t.strings[Fallback][key]; ok && v != "" {
		return v
	}

	return key
}

// Bundle returns every key for lang with fallback values filled in.
func (t *Translator) Bundle(lang string) map[string]string {
	if !IsSupported(lang) {
		lang = Fallback
	}

	out := make(map[string]string, len(t.strings[Fallback]))
	for key := range t.strings[Fallback] {
		out[key] = t.Translate(key, lang)
	}

	for key, v := range t.strings[lang] {
		out[key] = v
	}

	return out
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case string:
			out[full] = v
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}

			out[full] = strings.Join(parts, ", ")
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}
