package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mandatopr/gabinete/internal/auth"
)

type contextKey string

const (
	ContextKeySubject  contextKey = "subject"
	ContextKeyUsername contextKey = "username"
	ContextKeyRoles    contextKey = "roles"
)

// AccessCookieName é o cookie httpOnly que carrega o token de acesso.
const AccessCookieName = "access_token"

// Auth valida JWT de acesso e injeta claims no contexto. O token pode vir
// no cookie httpOnly ou no header Authorization (Bearer).
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessTokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "AUTH", "token ausente")
				return
			}

			claims, err := jwtManager.ParseAndValidate(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "token inválido")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
			ctx = context.WithValue(ctx, ContextKeyRoles, claims.Roles)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// GetSubject recupera subject do contexto.
func GetSubject(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeySubject).(string)
	return val
}

// GetUsername recupera username do contexto.
func GetUsername(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyUsername).(string)
	return val
}

// GetRoles recupera roles do contexto.
func GetRoles(ctx context.Context) []string {
	val, _ := ctx.Value(ContextKeyRoles).([]string)
	return val
}

// RequireAdmin garante papel administrativo.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roles := GetRoles(r.Context())
		for _, role := range roles {
			if strings.EqualFold(role, "ADMIN") {
				next.ServeHTTP(w, r)
				return
			}
		}

		writeError(w, http.StatusForbidden, "FORBIDDEN", "acesso restrito a administradores")
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
