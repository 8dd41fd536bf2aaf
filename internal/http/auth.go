package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	httpmiddleware "github.com/mandatopr/gabinete/internal/http/middleware"
	"github.com/mandatopr/gabinete/internal/service"
)

const refreshCookieName = "refresh_token"

// Login autentica por username e senha e grava os cookies de sessão.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if strings.TrimSpace(payload.Username) == "" || strings.TrimSpace(payload.Password) == "" {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "username e password são obrigatórios", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	h.writeLoginSuccess(w, result)
}

// Refresh troca o refresh token do cookie por nova sessão.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := refreshFromRequest(r)
	if token == "" {
		WriteError(w, http.StatusUnauthorized, "AUTH", "refresh ausente", nil)
		return
	}

	result, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrRefreshInvalid) {
			WriteError(w, http.StatusUnauthorized, "AUTH", "refresh inválido", nil)
			return
		}
		if errors.Is(err, service.ErrAccountDisabled) {
			WriteError(w, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro ao renovar sessão", nil)
		return
	}

	h.writeLoginSuccess(w, result)
}

// Logout revoga o refresh token atual e limpa os cookies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := refreshFromRequest(r); token != "" {
		_ = h.authService.Logout(r.Context(), token)
	}

	h.clearSessionCookies(w)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me retorna informações do usuário autenticado.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subjectStr := httpmiddleware.GetSubject(r.Context())

	subject, err := uuid.Parse(subjectStr)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	u, err := h.authService.GetUser(r.Context(), subject)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível carregar perfil", nil)
		return
	}

	WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "AUTH", err.Error(), nil)
	case errors.Is(err, service.ErrAccountDisabled):
		WriteError(w, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro ao autenticar", nil)
	}
}

func (h *Handler) writeLoginSuccess(w http.ResponseWriter, result *service.LoginResult) {
	accessExpiry := time.Now().Add(h.authService.JWT().AccessTTL())
	h.setSessionCookie(w, httpmiddleware.AccessCookieName, result.AccessToken, accessExpiry)
	h.setSessionCookie(w, refreshCookieName, result.RefreshToken, result.RefreshExpiry)

	WriteJSON(w, http.StatusOK, map[string]any{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

func refreshFromRequest(r *http.Request) string {
	if c, err := r.Cookie(refreshCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	secure := !h.devCookies
	sameSite := http.SameSiteNoneMode
	if h.devCookies {
		sameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	secure := !h.devCookies
	sameSite := http.SameSiteNoneMode
	if h.devCookies {
		sameSite = http.SameSiteLaxMode
	}
	for _, name := range []string{httpmiddleware.AccessCookieName, refreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: sameSite,
		})
	}
}
