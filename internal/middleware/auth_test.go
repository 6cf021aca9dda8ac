package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"notemind-backend/internal/models"
)

func authedHandler(t *testing.T, wantUserID uuid.UUID) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := GetUserID(r.Context()); got != wantUserID {
			t.Errorf("context user ID = %s, want %s", got, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID := uuid.New()

	token, err := auth.GenerateAccessToken(userID, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	auth.Middleware(authedHandler(t, userID)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
}

func TestJWTMiddleware_MissingOrMalformedHeader(t *testing.T) {
	auth := NewJWTAuth("test-secret")

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc123", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()

		auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("handler reached with header %q", header)
		})).ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rr.Code)
		}
		if resp := decodeErrorBody(t, rr); resp.Error.Code != "UNAUTHORIZED" {
			t.Errorf("header %q: code = %q, want UNAUTHORIZED", header, resp.Error.Code)
		}
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	auth := NewJWTAuth("test-secret")

	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(-time.Minute).Unix(),
		"iat":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.Secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with expired token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if resp := decodeErrorBody(t, rr); resp.Error.Code != "TOKEN_EXPIRED" {
		t.Errorf("code = %q, want TOKEN_EXPIRED", resp.Error.Code)
	}
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	issuer := NewJWTAuth("issuer-secret")
	verifier := NewJWTAuth("different-secret")

	token, err := issuer.GenerateAccessToken(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	verifier.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with token signed by another secret")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if resp := decodeErrorBody(t, rr); resp.Error.Code != "UNAUTHORIZED" {
		t.Errorf("code = %q, want UNAUTHORIZED", resp.Error.Code)
	}
}
