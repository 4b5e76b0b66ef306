package i18n

import (
	"fmt"
	"strings"

	"github.com/bcexpress/tracking-api/internal/constants"

	"github.com/gin-gonic/gin"
)

const defaultLocale = constants.LocaleIDID

// T resolves a message key for the given locale. Unknown keys fall
// back to the default locale, then to the key itself.
func T(locale, key string) string {
	normalized := NormalizeLocale(locale)
	if msg, ok := messages[normalized][key]; ok {
		return msg
	}
	if msg, ok := messages[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf resolves a message key and formats it with the given args.
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// NormalizeLocale maps a raw locale tag onto a supported locale.
func NormalizeLocale(locale string) string {
	normalized := strings.TrimSpace(locale)
	if normalized == "" {
		return defaultLocale
	}
	lower := strings.ToLower(normalized)
	for _, supported := range constants.SupportedLocales {
		if strings.EqualFold(supported, normalized) {
			return supported
		}
	}
	switch {
	case strings.HasPrefix(lower, "id"):
		return constants.LocaleIDID
	case strings.HasPrefix(lower, "en"):
		return constants.LocaleEnUS
	}
	return defaultLocale
}

// ResolveLocale picks the request locale from the query string,
// the X-Locale header, or Accept-Language, in that order.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if locale := strings.TrimSpace(c.Query("locale")); locale != "" {
		return NormalizeLocale(locale)
	}
	if locale := strings.TrimSpace(c.GetHeader("X-Locale")); locale != "" {
		return NormalizeLocale(locale)
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		return NormalizeLocale(tag)
	}
	return defaultLocale
}
