package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mandatopr/gabinete/internal/auth"
)

func newEchoHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSubject(r.Context()) == "" {
			t.Error("subject não injetado no contexto")
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthCookie(t *testing.T) {
	mgr := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	signed, _, err := mgr.GenerateAccessToken("user-1", "gabinete", []string{"ADMIN"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	handler := Auth(mgr)(newEchoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: signed})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAuthBearer(t *testing.T) {
	mgr := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	signed, _, err := mgr.GenerateAccessToken("user-1", "gabinete", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	handler := Auth(mgr)(newEchoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRejeitaTokenInvalido(t *testing.T) {
	mgr := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	handler := Auth(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler não deveria rodar")
	}))

	for _, token := range []string{"", "lixo"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d", token, rec.Code)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		roles []string
		want  int
	}{
		{[]string{"ADMIN"}, http.StatusNoContent},
		{[]string{"admin"}, http.StatusNoContent},
		{[]string{"ASSESSOR"}, http.StatusForbidden},
		{nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		ctx := context.WithValue(req.Context(), ContextKeyRoles, tc.roles)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))

		if rec.Code != tc.want {
			t.Errorf("roles %v: status = %d, esperava %d", tc.roles, rec.Code, tc.want)
		}
	}
}
