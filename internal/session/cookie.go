package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sessions are anonymous: the cookie carries an opaque token whose only job
// is to key the snapshot row. The token is HMAC-signed so a forged cookie
// cannot probe other tokens.

type ctxKey string

const (
	cookieName  = "bougeotte_session"
	tokenCtxKey = ctxKey("sessionToken")
)

var secret string

// SetSecret installs the signing key, normally from config at boot.
func SetSecret(s string) {
	secret = s
}

// Secret returns the installed signing key, falling back to the environment
// and then a dev default so tests and one-off tools work without setup.
func Secret() string {
	if secret != "" {
		return secret
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(token string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Issue creates a fresh token and sets the signed cookie.
func Issue(w http.ResponseWriter) string {
	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token + "." + sign(token),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	return token
}

// Parse validates the cookie and returns the token.
func Parse(r *http.Request) (string, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return "", false
	}
	token, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(token))) {
		return "", false
	}
	return token, true
}

// Middleware guarantees every request carries a valid session token,
// issuing one when the cookie is absent or fails verification.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := Parse(r)
		if !ok {
			token = Issue(w)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenCtxKey, token)))
	})
}

// WithToken returns a context carrying the session token, as Middleware
// would set it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey, token)
}

// TokenFromContext retrieves the session token placed by Middleware.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenCtxKey).(string)
	return token, ok && token != ""
}
