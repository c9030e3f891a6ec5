package entity

import "context"

type languageKey struct{}

// WithLanguage attaches the requested summary language to ctx so content
// sources can prefer matching caption tracks.
func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// LanguageFromContext returns the language stored by WithLanguage.
func LanguageFromContext(ctx context.Context) (Language, bool) {
	lang, ok := ctx.Value(languageKey{}).(Language)
	return lang, ok && lang != ""
}
