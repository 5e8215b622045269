package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JYu1999/jyu-blog/middleware"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localeServer() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.LocaleMiddleware())
	r.GET("/locale", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.CurrentLocale(c))
	})
	return r
}

func getLocale(t *testing.T, r *gin.Engine, path string, headers map[string]string, cookies []*http.Cookie) (string, []*http.Cookie) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String(), w.Result().Cookies()
}

func TestLocaleDefaultsToEnglish(t *testing.T) {
	r := localeServer()
	locale, _ := getLocale(t, r, "/locale", nil, nil)
	assert.Equal(t, "en", locale)
}

func TestLocaleFromQueryParam(t *testing.T) {
	r := localeServer()
	locale, _ := getLocale(t, r, "/locale?locale=ja", nil, nil)
	assert.Equal(t, "ja", locale)
}

func TestLocaleFromHeader(t *testing.T) {
	r := localeServer()
	locale, _ := getLocale(t, r, "/locale", map[string]string{"X-Locale": "vi"}, nil)
	assert.Equal(t, "vi", locale)
}

func TestUnsupportedLocaleFallsThrough(t *testing.T) {
	r := localeServer()

	locale, _ := getLocale(t, r, "/locale?locale=fr", nil, nil)
	assert.Equal(t, "en", locale)

	// A bad query value still lets the header win.
	locale, _ = getLocale(t, r, "/locale?locale=xx", map[string]string{"X-Locale": "zh"}, nil)
	assert.Equal(t, "zh", locale)
}

func TestLocalePersistsInSession(t *testing.T) {
	r := localeServer()

	locale, cookies := getLocale(t, r, "/locale?locale=zh-CN", nil, nil)
	require.Equal(t, "zh-CN", locale)
	require.NotEmpty(t, cookies)

	// Subsequent request without query or header keeps the session locale.
	locale, _ = getLocale(t, r, "/locale", nil, cookies)
	assert.Equal(t, "zh-CN", locale)
}

func TestQueryOverridesSession(t *testing.T) {
	r := localeServer()

	_, cookies := getLocale(t, r, "/locale?locale=ja", nil, nil)

	locale, _ := getLocale(t, r, "/locale?locale=vi", nil, cookies)
	assert.Equal(t, "vi", locale)
}
