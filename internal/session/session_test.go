package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parcels/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return NewManager(config.Session{
		Name:          "parcels_session",
		AuthKey:       strings.Repeat("k", 32),
		MaxAgeSeconds: 3600,
	})
}

func echoUserID(t *testing.T, got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r.Context())
		require.True(t, ok)
		*got = userID
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestMiddleware_IssuesUserIDAndCookie(t *testing.T) {
	m := testManager()
	var userID string

	rr := httptest.NewRecorder()
	m.Middleware(echoUserID(t, &userID)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusNoContent, rr.Code)
	_, err := uuid.Parse(userID)
	require.NoError(t, err)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "parcels_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
}

func TestMiddleware_ReusesUserIDFromCookie(t *testing.T) {
	m := testManager()
	var first, second string

	rr := httptest.NewRecorder()
	m.Middleware(echoUserID(t, &first)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := rr.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	m.Middleware(echoUserID(t, &second)).ServeHTTP(rr, req)

	require.Equal(t, first, second)
	require.Empty(t, rr.Result().Cookies(), "an existing session is not re-saved")
}

func TestMiddleware_TamperedCookieGetsNewUser(t *testing.T) {
	m := testManager()
	var first, second string

	rr := httptest.NewRecorder()
	m.Middleware(echoUserID(t, &first)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := rr.Result().Cookies()[0]
	cookie.Value = "x" + cookie.Value

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	m.Middleware(echoUserID(t, &second)).ServeHTTP(rr, req)

	require.NotEmpty(t, second)
	require.NotEqual(t, first, second)
}

func TestMiddleware_ForeignKeyCannotReadCookie(t *testing.T) {
	var first, second string

	rr := httptest.NewRecorder()
	testManager().Middleware(echoUserID(t, &first)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := rr.Result().Cookies()[0]

	other := NewManager(config.Session{Name: "parcels_session", AuthKey: strings.Repeat("z", 32)})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	other.Middleware(echoUserID(t, &second)).ServeHTTP(httptest.NewRecorder(), req)

	require.NotEqual(t, first, second)
}

func TestNewManager_RandomKeyWhenUnset(t *testing.T) {
	m := NewManager(config.Session{Name: "s"})
	var userID string
	rr := httptest.NewRecorder()
	m.Middleware(echoUserID(t, &userID)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, userID)
}

func TestUserID_Context(t *testing.T) {
	_, ok := UserID(context.Background())
	require.False(t, ok)

	_, ok = UserID(WithUserID(context.Background(), ""))
	require.False(t, ok)

	id, ok := UserID(WithUserID(context.Background(), "user-1"))
	require.True(t, ok)
	require.Equal(t, "user-1", id)
}
