package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"deskhive/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// ErrInvalidCredential is the only error the claim reader ever returns.
// Missing, malformed, badly signed and expired tokens are indistinguishable
// to callers; the specific cause goes to the log.
var ErrInvalidCredential = errors.New("invalid credential")

// LongRoleClaim is the long-form role claim URI used by tokens minted by the
// legacy identity service. The reader accepts it alongside the short "role" key.
const LongRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// JWT claims
type Claims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	LongRole string `json:"http://schemas.microsoft.com/ws/2008/06/identity/claims/role,omitempty"`
	jwt.RegisteredClaims
}

// UserRole resolves the role claim, short key first.
func (c *Claims) UserRole() string {
	if c.Role != "" {
		return c.Role
	}
	return c.LongRole
}

// ParseToken reads a bearer credential from an Authorization header value and
// returns its verified claims.
func ParseToken(header string) (*Claims, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrInvalidCredential
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(header[7:], claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		log.Printf("token rejected: %v", err)
		return nil, ErrInvalidCredential
	}
	if claims.UserID == "" {
		log.Println("token rejected: missing subject")
		return nil, ErrInvalidCredential
	}
	return claims, nil
}

// Authenticate requires a valid bearer token and stores the subject id and
// role in the request context.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := ParseToken(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.RoleKey, claims.UserRole())
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth attaches identity when a valid token is present and proceeds
// regardless. Used on public read endpoints.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims, err := ParseToken(r.Header.Get("Authorization")); err == nil {
			ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, globals.RoleKey, claims.UserRole())
			r = r.WithContext(ctx)
		}
		next(w, r, ps)
	}
}

// RequireRole gates a handler on the role claim. Wrap inside Authenticate.
func RequireRole(role string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		got, _ := r.Context().Value(globals.RoleKey).(string)
		if got != role {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	}
}

// RequesterID returns the authenticated subject id from the request context.
func RequesterID(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}

// RequesterRole returns the authenticated role from the request context.
func RequesterRole(r *http.Request) string {
	role, _ := r.Context().Value(globals.RoleKey).(string)
	return role
}
