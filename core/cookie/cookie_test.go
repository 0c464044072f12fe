package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit-dev/authkit/core/cookie"
)

const testSecret = "test-secret-key-32-characters-ok"

func newManager(t *testing.T, opts ...cookie.Option) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{testSecret}, opts...)
	require.NoError(t, err)
	return m
}

func TestNew_NoSecret(t *testing.T) {
	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}

func TestNew_SecretTooShort(t *testing.T) {
	_, err := cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
}

func TestSetGet_Roundtrip(t *testing.T) {
	m := newManager(t)
	w := httptest.NewRecorder()

	require.NoError(t, m.Set(w, "theme", "dark"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	got, err := m.Get(r, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)
}

func TestSet_DefaultAttributes(t *testing.T) {
	m := newManager(t)
	w := httptest.NewRecorder()

	require.NoError(t, m.Set(w, "theme", "dark"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestSet_OptionOverrides(t *testing.T) {
	m := newManager(t, cookie.WithSecure(true))
	w := httptest.NewRecorder()

	require.NoError(t, m.Set(w, "theme", "dark",
		cookie.WithPath("/admin"),
		cookie.WithMaxAge(3600),
	))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/admin", cookies[0].Path)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)
}

func TestSet_TooLarge(t *testing.T) {
	m := newManager(t)
	w := httptest.NewRecorder()

	err := m.Set(w, "big", strings.Repeat("x", cookie.MaxCookieSize+1))

	require.Error(t, err)
	var tooLarge cookie.ErrCookieTooLarge
	assert.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big", tooLarge.Name)
}

func TestGet_NotFound(t *testing.T) {
	m := newManager(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := m.Get(r, "missing")

	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestDelete(t *testing.T) {
	m := newManager(t)
	w := httptest.NewRecorder()

	m.Delete(w, "theme")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSignedRoundtrip(t *testing.T) {
	m := newManager(t)
	w := httptest.NewRecorder()

	require.NoError(t, m.SetSigned(w, "sid", "abc123"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	got, err := m.GetSigned(r, "sid")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)
}

func TestGetSigned_Tampered(t *testing.T) {
	m := newManager(t)
	w := httptest.NewRecorder()

	require.NoError(t, m.SetSigned(w, "sid", "abc123"))

	c := w.Result().Cookies()[0]
	c.Value = "dGFtcGVyZWQ=" + c.Value[strings.Index(c.Value, "|"):]

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)

	_, err := m.GetSigned(r, "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestGetSigned_MalformedValue(t *testing.T) {
	m := newManager(t)

	for _, value := range []string{"no-separator", "!!!|sig"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: value})

		_, err := m.GetSigned(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat, value)
	}
}

func TestGetSigned_KeyRotation(t *testing.T) {
	oldSecret := "old-secret-key-32-characters-okay"
	newSecret := "new-secret-key-32-characters-okay"

	oldManager, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, oldManager.SetSigned(w, "sid", "abc123"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	// New signing key first, old key kept for verification.
	rotated, err := cookie.New([]string{newSecret, oldSecret})
	require.NoError(t, err)

	got, err := rotated.GetSigned(r, "sid")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	// A manager without the old key rejects the cookie.
	replaced, err := cookie.New([]string{newSecret})
	require.NoError(t, err)

	_, err = replaced.GetSigned(r, "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestNewFromConfig(t *testing.T) {
	m, err := cookie.NewFromConfig(cookie.Config{
		Secrets:  testSecret + ", " + strings.ToUpper(testSecret) + ",",
		Path:     "/app",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "sid", "v"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/app", cookies[0].Path)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestNewFromConfig_NoSecrets(t *testing.T) {
	_, err := cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
