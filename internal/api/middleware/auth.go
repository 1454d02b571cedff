package middleware

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohits-web03/codebox/internal/utils"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UsernameKey contextKey = "username"
)

// TokenCookie is the name of the session cookie.
const TokenCookie = "token"

// Claims are carried in the session JWT.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies session tokens.
type Authenticator struct {
	secret []byte
	admins []string
	ttl    time.Duration
}

func NewAuthenticator(secret string, admins []string) *Authenticator {
	return &Authenticator{secret: []byte(secret), admins: admins, ttl: 24 * time.Hour}
}

func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}

// IssueToken signs a session token for the given user.
func (a *Authenticator) IssueToken(userID, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) parse(r *http.Request) (*Claims, bool) {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil {
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, false
	}
	return claims, true
}

func withClaims(r *http.Request, c *Claims) *http.Request {
	ctx := context.WithValue(r.Context(), UserIDKey, c.UserID)
	ctx = context.WithValue(ctx, UsernameKey, c.Username)
	return r.WithContext(ctx)
}

// Username returns the authenticated username, if any.
func Username(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UsernameKey).(string)
	return name, ok && name != ""
}

func unauthorized(w http.ResponseWriter) {
	utils.Fail(w, http.StatusUnauthorized, "Unauthorized")
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and lets anonymous requests through unchanged.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := a.parse(r); ok {
			r = withClaims(r, claims)
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		claims, ok := a.parse(r)
		if !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, withClaims(r, claims))
	})
}

// RequireAdmin admits only authenticated users listed in ADMIN_USERNAMES.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, _ := Username(r.Context())
		if !slices.Contains(a.admins, name) {
			utils.Fail(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}
