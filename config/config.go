package config

import (
	"os"
	"strings"
)

// SupportedLocales lists every locale the blog can serve content in.
var SupportedLocales = []string{"en", "zh", "zh-CN", "ja", "vi"}

// LocaleNames maps locale codes to their display names.
var LocaleNames = map[string]string{
	"en":    "English",
	"zh":    "繁體中文",
	"zh-CN": "简体中文",
	"ja":    "日本語",
	"vi":    "Tiếng Việt",
}

func IsSupportedLocale(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// DefaultLocale returns the process-wide default locale.
func DefaultLocale() string {
	if locale := os.Getenv("APP_LOCALE"); locale != "" && IsSupportedLocale(locale) {
		return locale
	}
	return "en"
}

// FallbackLocale returns the locale consulted when a setting has no value
// for the requested locale.
func FallbackLocale() string {
	if locale := os.Getenv("APP_FALLBACK_LOCALE"); locale != "" && IsSupportedLocale(locale) {
		return locale
	}
	return "en"
}

func JWTSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func SessionSecret() []byte {
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("jyu-blog-session")
}

func AppName() string {
	if name := os.Getenv("APP_NAME"); name != "" {
		return name
	}
	return "JYu Blog"
}

func IsProduction() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "production")
}
