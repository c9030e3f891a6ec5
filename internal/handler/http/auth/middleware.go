// Package auth provides optional bearer token authentication.
//
// Tokens are HS256 JWTs whose "sub" claim identifies the user. The user key
// scopes stored summaries; anonymous callers can summarize but have no history.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"briefly/internal/handler/http/respond"
	"briefly/internal/observability/logging"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxUser ctxKey = "user"

// Token validation errors.
var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// DefaultTokenTTL is the lifetime of tokens issued by IssueToken.
const DefaultTokenTTL = 24 * time.Hour

// Authenticator verifies and issues HS256 bearer tokens.
// A zero-length secret disables authentication entirely.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// NewAuthenticator creates an Authenticator. Call ValidateSecret first.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret), now: time.Now}
}

// Enabled reports whether a signing secret is configured.
func (a *Authenticator) Enabled() bool {
	return a != nil && len(a.secret) > 0
}

// WithUser stores the authenticated user key in ctx.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, ctxUser, user)
}

// UserFromContext returns the authenticated user key, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(ctxUser).(string)
	return user, ok && user != ""
}

// Optional authenticates the request when an Authorization header is present.
// Requests without one pass through anonymously; a present but invalid token
// is rejected with 401 so that clients notice expired credentials.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !a.Enabled() || header == "" {
			RecordAuthRequest(ResultAnonymous)
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		user, err := a.Verify(header)
		RecordAuthDuration(time.Since(start).Seconds())
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				RecordAuthRequest(ResultExpired)
			} else {
				RecordAuthRequest(ResultInvalid)
			}
			logging.FromContext(r.Context()).Warn("bearer token rejected",
				"reason", err.Error(),
				"path", r.URL.Path)
			respond.Error(w, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}

		RecordAuthRequest(ResultSuccess)
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Require rejects requests that Optional did not authenticate.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			RecordAuthRequest(ResultRequired)
			respond.Error(w, http.StatusUnauthorized, "Authentication required", ErrMissingToken.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Verify validates an Authorization header value and returns the subject.
func (a *Authenticator) Verify(authz string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", ErrMissingToken
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authz, prefix))

	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.secret, nil
	},
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !tok.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// IssueToken signs a token for subject valid for ttl.
func (a *Authenticator) IssueToken(subject string, ttl time.Duration) (string, error) {
	if !a.Enabled() {
		return "", errors.New("authentication is disabled: no signing secret configured")
	}
	if subject == "" {
		return "", errors.New("subject is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}
