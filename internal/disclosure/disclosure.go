// Package disclosure decides whether content shows the author's alias or
// the account display name. Every render path that prints an author must
// go through ResolveDisplayName.
package disclosure

import "strings"

const (
	AnonymousName = "Anonyme"
	FallbackName  = "Utilisateur"
)

var sensitiveCategories = map[string]struct{}{
	"temoignage": {},
	"urgent":     {},
	"support":    {},
}

// IsCategorySensitive reports whether a thread category forces alias display.
// An empty category is treated as sensitive.
func IsCategorySensitive(category string) bool {
	if category == "" {
		return true
	}
	_, ok := sensitiveCategories[strings.ToLower(category)]
	return ok
}

// ResolveDisplayName returns the author name to render. Nil and empty names
// are skipped, so the result is never empty.
func ResolveDisplayName(isSensitive bool, threadCategory string, aliasName, accountName *string) string {
	if isSensitive || IsCategorySensitive(threadCategory) {
		return firstNonEmpty(aliasName, AnonymousName)
	}

	if accountName != nil && *accountName != "" {
		return *accountName
	}
	return firstNonEmpty(aliasName, FallbackName)
}

func firstNonEmpty(name *string, fallback string) string {
	if name == nil || *name == "" {
		return fallback
	}
	return *name
}
