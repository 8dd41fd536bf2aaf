package municipio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler orquestra rotas do catálogo e dos dados municipais.
type Handler struct {
	service  *Service
	username func(ctx context.Context) string
}

// NewHandler cria handler com extrator de username injetável.
func NewHandler(service *Service, username func(ctx context.Context) string) *Handler {
	return &Handler{service: service, username: username}
}

// RegisterRoutes monta rotas de leitura; escritas exigem o wrap admin
// aplicado pelo roteador.
func (h *Handler) RegisterRoutes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/municipios", h.handleListMunicipios)
	r.Get("/municipios/{id}", h.handleGetMunicipio)

	r.Get("/municipio-info/{municipioID}", h.handleGetInfo)
	r.With(admin).Post("/municipio-info", h.handleCreateInfo)
	r.With(admin).Put("/municipio-info/{municipioID}", h.handleUpdateInfo)

	r.Get("/municipio-liderancas/{municipioID}", h.handleListLiderancas)
	r.With(admin).Post("/municipio-liderancas", h.handleCreateLideranca)
	r.With(admin).Put("/municipio-liderancas/{id}", h.handleUpdateLideranca)
	r.With(admin).Delete("/municipio-liderancas/{id}", h.handleDeleteLideranca)
}

func (h *Handler) handleListMunicipios(w http.ResponseWriter, r *http.Request) {
	municipios, err := Search(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "catálogo indisponível")
		return
	}
	writeJSON(w, http.StatusOK, municipios)
}

func (h *Handler) handleGetMunicipio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido")
		return
	}

	m, err := GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "município não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "catálogo indisponível")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) handleGetInfo(w http.ResponseWriter, r *http.Request) {
	municipioID, err := strconv.Atoi(chi.URLParam(r, "municipioID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "municipio_id inválido")
		return
	}

	info, err := h.service.GetInfo(r.Context(), municipioID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro ao carregar informações")
		return
	}
	// info nil sinaliza estado vazio para o painel
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) handleCreateInfo(w http.ResponseWriter, r *http.Request) {
	var input InfoCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido")
		return
	}

	info, err := h.service.CreateInfo(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro ao cadastrar informações")
		return
	}

	log.Info().Str("admin", h.username(r.Context())).Int("municipio_id", input.MunicipioID).
		Msg("municipio_info criado")
	writeJSON(w, http.StatusCreated, info)
}

func (h *Handler) handleUpdateInfo(w http.ResponseWriter, r *http.Request) {
	municipioID, err := strconv.Atoi(chi.URLParam(r, "municipioID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "municipio_id inválido")
		return
	}

	var input InfoUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido")
		return
	}

	info, err := h.service.UpdateInfo(r.Context(), municipioID, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "informações não encontradas")
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro ao atualizar informações")
		return
	}

	log.Info().Str("admin", h.username(r.Context())).Int("municipio_id", municipioID).
		Msg("municipio_info atualizado")
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) handleListLiderancas(w http.ResponseWriter, r *http.Request) {
	municipioID, err := strconv.Atoi(chi.URLParam(r, "municipioID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "municipio_id inválido")
		return
	}

	liderancas, err := h.service.ListLiderancas(r.Context(), municipioID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro ao listar contatos")
		return
	}
	writeJSON(w, http.StatusOK, liderancas)
}

func (h *Handler) handleCreateLideranca(w http.ResponseWriter, r *http.Request) {
	var input LiderancaCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido")
		return
	}

	l, err := h.service.CreateLideranca(r.Context(), input)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION", verr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro ao cadastrar contato")
		return
	}

	log.Info().Str("admin", h.username(r.Context())).Int("municipio_id", input.MunicipioID).
		Msg("contato criado")
	writeJSON(w, http.StatusCreated, l)
}

func (h *Handler) handleUpdateLideranca(w http.ResponseWriter, r *http.Request) {
	var input LiderancaUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido")
		return
	}

	id := chi.URLParam(r, "id")
	l, err := h.service.UpdateLideranca(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "contato não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro ao atualizar contato")
		return
	}

	log.Info().Str("admin", h.username(r.Context())).Str("id", id).Msg("contato atualizado")
	writeJSON(w, http.StatusOK, l)
}

func (h *Handler) handleDeleteLideranca(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteLideranca(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "contato não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro ao remover contato")
		return
	}

	log.Info().Str("admin", h.username(r.Context())).Str("id", id).Msg("contato removido")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "error": nil})
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
