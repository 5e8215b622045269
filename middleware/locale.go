package middleware

import (
	"github.com/JYu1999/jyu-blog/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	localeContextKey = "locale"
	localeSessionKey = "locale"
)

// LocaleMiddleware resolves the active locale for a request, in priority
// order: ?locale= query parameter, session, X-Locale header, app default.
// A supported code is persisted to the session for subsequent requests;
// unsupported codes are discarded and resolution falls through.
func LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		locale := ""

		if v := c.Query("locale"); config.IsSupportedLocale(v) {
			locale = v
		}
		if locale == "" {
			if v, ok := session.Get(localeSessionKey).(string); ok && config.IsSupportedLocale(v) {
				locale = v
			}
		}
		if locale == "" {
			if v := c.GetHeader("X-Locale"); config.IsSupportedLocale(v) {
				locale = v
			}
		}

		if locale != "" {
			if v, _ := session.Get(localeSessionKey).(string); v != locale {
				session.Set(localeSessionKey, locale)
				// Session write failures only lose locale stickiness.
				_ = session.Save()
			}
		} else {
			locale = config.DefaultLocale()
		}

		c.Set(localeContextKey, locale)
		c.Next()
	}
}

// CurrentLocale returns the locale resolved for this request. It falls
// back to the app default when the middleware did not run.
func CurrentLocale(c *gin.Context) string {
	if locale, ok := c.Get(localeContextKey); ok {
		if s, ok := locale.(string); ok && s != "" {
			return s
		}
	}
	return config.DefaultLocale()
}
