package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"docshelf/internal/domain/models"
	"docshelf/internal/httputil"

	"github.com/golang-jwt/jwt/v5"
)

// stubVerifier accepts one fixed token and rejects everything else.
type stubVerifier struct {
	validToken string
	userID     string
}

func (v *stubVerifier) VerifyToken(tokenString string) (*models.SupabaseClaims, error) {
	if tokenString != v.validToken {
		return nil, errors.New("invalid token")
	}
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: v.userID},
		Role:             "authenticated",
	}, nil
}

func (v *stubVerifier) Close() error { return nil }

// captureUser records the user id the inner handler sees.
func captureUser(into *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*into = httputil.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	verifier := &stubVerifier{validToken: "good-token", userID: "user-42"}

	var seenUser string
	handler := AuthMiddleware(verifier)(captureUser(&seenUser))

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc-1", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seenUser != "user-42" {
		t.Errorf("handler saw user %q, want %q", seenUser, "user-42")
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	verifier := &stubVerifier{validToken: "good-token", userID: "user-42"}
	handler := AuthMiddleware(verifier)(captureUser(new(string)))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
		{"bad token", "Bearer forged"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/documents/doc-1", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_HealthBypass(t *testing.T) {
	verifier := &stubVerifier{validToken: "good-token"}
	handler := AuthMiddleware(verifier)(captureUser(new(string)))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestDevAuthMiddleware_SetsFixedUser(t *testing.T) {
	var seenUser string
	handler := DevAuthMiddleware("dev-user")(captureUser(&seenUser))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents/doc-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seenUser != "dev-user" {
		t.Errorf("handler saw user %q, want %q", seenUser, "dev-user")
	}
}
