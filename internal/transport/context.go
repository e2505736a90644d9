package transport

import (
	"context"
	"greenplace-be/internal/logger"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "gp_session"
)

type ctxKey string

const (
	sessionKey       ctxKey = "cartSession"
	sessionIssuedKey ctxKey = "cartSessionIssued"
)

// WithSession stores the browsing session id and tags the request's logs with it.
func WithSession(ctx context.Context, sessionID string) context.Context {
	ctx = context.WithValue(ctx, sessionKey, sessionID)
	return logger.WithSessionID(ctx, sessionID)
}

func SessionFrom(ctx context.Context) string {
	s, _ := ctx.Value(sessionKey).(string)
	return s
}

// SessionIssued reports whether the session was minted for this request
// because the client sent none.
func SessionIssued(ctx context.Context) bool {
	issued, _ := ctx.Value(sessionIssuedKey).(bool)
	return issued
}

// sessionFromRequest prefers the header over the cookie. Ids that are not
// UUIDs are ignored.
func sessionFromRequest(r *http.Request) (string, bool) {
	if id, err := uuid.Parse(r.Header.Get(SessionHeader)); err == nil {
		return id.String(), true
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String(), true
		}
	}
	return "", false
}

// SessionMiddleware resolves the cart session for every request. A new
// session is issued as a cookie when the client sent none.
func SessionMiddleware(maxAge time.Duration, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionID, ok := sessionFromRequest(r)
			if !ok {
				ctx = context.WithValue(ctx, sessionIssuedKey, true)
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(maxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			w.Header().Set(SessionHeader, sessionID)
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, sessionID)))
		})
	}
}
