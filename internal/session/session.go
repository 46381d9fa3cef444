package session

import (
	"context"
	"net/http"
	"parcels/internal/config"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const userIDKey = "user_id"

type ctxKey struct{}

// Manager issues every client an opaque user id kept in a signed cookie.
type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(cfg config.Session) *Manager {
	authKey := []byte(cfg.AuthKey)
	if len(authKey) == 0 {
		// sessions will not survive a restart
		logrus.Warn("session.auth_key is not set, using a random key")
		authKey = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(authKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: cfg.Name}
}

// Middleware resolves the user id for the request, issuing a new one when the cookie is missing or invalid.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			// a tampered or stale cookie still yields a fresh session
			logrus.WithError(err).Debug("Discarding invalid session cookie")
		}

		userID, _ := sess.Values[userIDKey].(string)
		if userID == "" {
			userID = uuid.NewString()
			sess.Values[userIDKey] = userID
			if err = sess.Save(r, w); err != nil {
				logrus.WithError(err).Error("Failed to save session")
				http.Error(w, `{"error":"session unavailable"}`, http.StatusInternalServerError)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok && userID != ""
}
