package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret")

func setupAuthEcho() *echo.Echo {
	e := echo.New()
	e.Use(JWTAuth(testSecret))
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, ActorID(c))
	})
	return e
}

func callWhoami(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_ValidToken(t *testing.T) {
	actor := strings.Repeat("c", 32)
	tok, err := IssueToken(testSecret, actor, time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	rec := callWhoami(setupAuthEcho(), "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != actor {
		t.Fatalf("actor = %q, want %q", rec.Body.String(), actor)
	}
}

func TestJWTAuth_Rejects(t *testing.T) {
	actor := strings.Repeat("c", 32)
	expired, _ := IssueToken(testSecret, actor, -time.Minute)
	wrongKey, _ := IssueToken([]byte("other"), actor, time.Minute)
	badSubject, _ := IssueToken(testSecret, "alice", time.Minute)
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: actor}).SignedString(testSecret)
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   actor,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(testSecret)

	tests := []struct {
		name    string
		authz   string
		wantMsg string
	}{
		{"missing header", "", "missing bearer token"},
		{"wrong scheme", "Basic abc", "missing bearer token"},
		{"empty token", "Bearer ", "missing bearer token"},
		{"garbage", "Bearer not.a.jwt", "invalid token"},
		{"expired", "Bearer " + expired, "token expired"},
		{"wrong key", "Bearer " + wrongKey, "invalid token"},
		{"no expiry", "Bearer " + noExpiry, "invalid token"},
		{"other alg", "Bearer " + hs512, "invalid token"},
		{"subject not hex32", "Bearer " + badSubject, "invalid token subject"},
	}
	e := setupAuthEcho()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := callWhoami(e, tt.authz)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantMsg) {
				t.Fatalf("body = %s, want %q", rec.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestBearer(t *testing.T) {
	if tok, ok := bearer("bearer abc"); !ok || tok != "abc" {
		t.Fatalf("scheme must be case-insensitive, got %q %v", tok, ok)
	}
	if _, ok := bearer("Bearer"); ok {
		t.Fatal("scheme without token must fail")
	}
}
