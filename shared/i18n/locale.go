package i18n

import (
	"context"
	"net/http"
	"strings"

	"taghazout/shared/constant"
)

const (
	DirLTR = "ltr"
	DirRTL = "rtl"
)

// Locale is the per-request language and text direction.
type Locale struct {
	Lang string `json:"lang"`
	Dir  string `json:"dir"`
}

func NewLocale(lang string) Locale {
	if !IsSupported(lang) {
		lang = Fallback
	}

	dir := DirLTR
	if lang == LangArabic {
		dir = DirRTL
	}

	return Locale{Lang: lang, Dir: dir}
}

// Resolve picks the language from the lang query parameter, then the
// Accept-Language header, then defaultLang.
func Resolve(r *http.Request, defaultLang string) Locale {
	if lang := normalize(r.URL.Query().Get(constant.RequestParamLang)); IsSupported(lang) {
		return NewLocale(lang)
	}

	for _, part := range strings.Split(r.Header.Get(constant.RequestHeaderAcceptLanguage), ",") {
		tag, _, _ := strings.Cut(part, ";")
		if lang := normalize(tag); IsSupported(lang) {
			return NewLocale(lang)
		}
	}

	return NewLocale(normalize(defaultLang))
}

// normalize reduces a BCP 47 tag such as "fr-MA" to its primary subtag.
func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	primary, _, _ := strings.Cut(tag, "-")

	return primary
}

func WithLocale(ctx context.Context, loc Locale) context.Context {
	return context.WithValue(ctx, constant.ContextKeyLocale, loc)
}

// FromContext returns the request locale, or the fallback locale when none was set.
func FromContext(ctx context.Context) Locale {
	if loc, ok := ctx.Value(constant.ContextKeyLocale).(Locale); ok {
		return loc
	}

	return NewLocale(Fallback)
}
