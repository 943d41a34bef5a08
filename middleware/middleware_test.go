package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deskhive/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func init() {
	globals.JwtSecret = []byte("test-secret")
}

func signToken(t *testing.T, claims *Claims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func baseClaims(userID string) *Claims {
	return &Claims{
		UserID: userID,
		Email:  "u@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestParseTokenShortRole(t *testing.T) {
	claims := baseClaims("u1")
	claims.Role = globals.RoleAdmin
	token := signToken(t, claims, globals.JwtSecret)

	got, err := ParseToken("Bearer " + token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if got.UserID != "u1" {
		t.Errorf("UserID = %q", got.UserID)
	}
	if got.UserRole() != globals.RoleAdmin {
		t.Errorf("UserRole = %q", got.UserRole())
	}
}

func TestParseTokenLongRoleClaim(t *testing.T) {
	claims := baseClaims("u1")
	claims.LongRole = globals.RoleUser
	token := signToken(t, claims, globals.JwtSecret)

	got, err := ParseToken("Bearer " + token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if got.UserRole() != globals.RoleUser {
		t.Errorf("UserRole = %q, want %q", got.UserRole(), globals.RoleUser)
	}
}

func TestParseTokenShortRoleWins(t *testing.T) {
	claims := baseClaims("u1")
	claims.Role = globals.RoleAdmin
	claims.LongRole = globals.RoleUser
	token := signToken(t, claims, globals.JwtSecret)

	got, err := ParseToken("Bearer " + token)
	if err != nil {
		t.Fatal(err)
	}
	if got.UserRole() != globals.RoleAdmin {
		t.Errorf("short role key should win, got %q", got.UserRole())
	}
}

func TestParseTokenRejections(t *testing.T) {
	expired := baseClaims("u1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	noSubject := baseClaims("")

	cases := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"no bearer prefix", signToken(t, baseClaims("u1"), globals.JwtSecret)},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + signToken(t, baseClaims("u1"), []byte("other-secret"))},
		{"expired", "Bearer " + signToken(t, expired, globals.JwtSecret)},
		{"missing subject", "Bearer " + signToken(t, noSubject, globals.JwtSecret)},
	}
	for _, c := range cases {
		if _, err := ParseToken(c.header); !errors.Is(err, ErrInvalidCredential) {
			t.Errorf("%s: err = %v, want ErrInvalidCredential", c.name, err)
		}
	}
}

func TestAuthenticatePopulatesContext(t *testing.T) {
	claims := baseClaims("u42")
	claims.Role = globals.RoleUser
	token := signToken(t, claims, globals.JwtSecret)

	var gotID, gotRole string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotID = RequesterID(r)
		gotRole = RequesterRole(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotID != "u42" || gotRole != globals.RoleUser {
		t.Errorf("context: id=%q role=%q", gotID, gotRole)
	}
}

func TestAuthenticateRejectsAnonymous(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if called {
		t.Error("handler ran without a credential")
	}
}

func TestRequireRole(t *testing.T) {
	adminToken := signToken(t, func() *Claims {
		c := baseClaims("admin")
		c.Role = globals.RoleAdmin
		return c
	}(), globals.JwtSecret)
	userToken := signToken(t, func() *Claims {
		c := baseClaims("user")
		c.Role = globals.RoleUser
		return c
	}(), globals.JwtSecret)

	handler := Authenticate(RequireRole(globals.RoleAdmin, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodDelete, "/", nil)
	r.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("admin: status = %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodDelete, "/", nil)
	r.Header.Set("Authorization", "Bearer "+userToken)
	w = httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user: status = %d, want 403", w.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	// anonymous request still reaches the handler
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous: status = %d", w.Code)
	}
}
