package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func signed(t *testing.T, secret, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	var seen int64
	handler := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
	}))

	cases := []struct {
		name   string
		header string
		status int
		userID int64
	}{
		{"valid", "Bearer " + signed(t, "s3cret", "12", time.Now().Add(time.Hour)), http.StatusOK, 12},
		{"missing", "", http.StatusUnauthorized, 0},
		{"wrong secret", "Bearer " + signed(t, "other", "12", time.Now().Add(time.Hour)), http.StatusUnauthorized, 0},
		{"expired", "Bearer " + signed(t, "s3cret", "12", time.Now().Add(-time.Hour)), http.StatusUnauthorized, 0},
		{"bad subject", "Bearer " + signed(t, "s3cret", "abc", time.Now().Add(time.Hour)), http.StatusUnauthorized, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = 0
			req := httptest.NewRequest(http.MethodGet, "/advisor/report", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if seen != tc.userID {
				t.Fatalf("user id = %d, want %d", seen, tc.userID)
			}
		})
	}
}

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatal("response has no request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q, want the caller's abc-123", got)
	}
}
