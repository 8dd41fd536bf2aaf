package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/mandatopr/gabinete/internal/http/middleware"
	"github.com/mandatopr/gabinete/internal/user"
	"github.com/mandatopr/gabinete/internal/util"
)

// ListUsers devolve todas as contas do painel.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro ao listar usuários", nil)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// CreateUser cadastra uma conta nova.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input user.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	u, err := h.users.Create(r.Context(), input)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	log.Info().Str("admin", httpmiddleware.GetUsername(r.Context())).
		Str("username", u.Username).Msg("usuário criado")
	WriteJSON(w, http.StatusCreated, u)
}

// GetUser busca conta por id.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.handleUserError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

// UpdateUser aplica alterações parciais em uma conta.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var input user.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	u, err := h.users.Update(r.Context(), id, input)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	log.Info().Str("admin", httpmiddleware.GetUsername(r.Context())).
		Str("id", id.String()).Msg("usuário atualizado")
	WriteJSON(w, http.StatusOK, u)
}

// DeleteUser remove uma conta; a própria conta do solicitante é protegida.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	requesterID, err := uuid.Parse(httpmiddleware.GetSubject(r.Context()))
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "identificação inválida", nil)
		return
	}

	if err := h.users.Delete(r.Context(), id, requesterID); err != nil {
		h.handleUserError(w, err)
		return
	}

	log.Info().Str("admin", httpmiddleware.GetUsername(r.Context())).
		Str("id", id.String()).Msg("usuário removido")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "usuário não encontrado", nil)
	case errors.Is(err, user.ErrDuplicate):
		WriteError(w, http.StatusConflict, "CONFLICT", "username já cadastrado", nil)
	case errors.Is(err, user.ErrSelfDelete):
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, user.ErrInvalidRole):
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	case errors.Is(err, util.ErrValidation):
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
	}
}
