package pedido

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// LiderancaV1Provider expõe as operações do esquema legado.
type LiderancaV1Provider interface {
	Create(ctx context.Context, userID string, input LiderancaV1Create) (*LiderancaV1, error)
	List(ctx context.Context, municipioID string) ([]LiderancaV1, error)
	Get(ctx context.Context, id string) (*LiderancaV1, error)
	Update(ctx context.Context, id string, input LiderancaV1Update) (*LiderancaV1, error)
	Delete(ctx context.Context, id string) error
}

// LiderancaV2Provider expõe as operações do esquema vigente.
type LiderancaV2Provider interface {
	Create(ctx context.Context, input LiderancaV2Create) (*LiderancaV2, error)
	List(ctx context.Context, q, municipio, lideranca, status string) ([]LiderancaV2, error)
	Get(ctx context.Context, id string) (*LiderancaV2, error)
	Update(ctx context.Context, id string, input LiderancaV2Update) (*LiderancaV2, error)
	Delete(ctx context.Context, id string) error
}

// MaquinarioProvider expõe as operações de pedidos de maquinário.
type MaquinarioProvider interface {
	Create(ctx context.Context, input MaquinarioV2Create) (*MaquinarioV2, error)
	List(ctx context.Context, q, municipio, status string) ([]MaquinarioV2, error)
	Get(ctx context.Context, id string) (*MaquinarioV2, error)
	Update(ctx context.Context, id string, input MaquinarioV2Update) (*MaquinarioV2, error)
	Delete(ctx context.Context, id string) error
}

// Handler orquestra rotas de pedidos.
type Handler struct {
	v1         LiderancaV1Provider
	v2         LiderancaV2Provider
	maquinario MaquinarioProvider
	subject    func(ctx context.Context) string
}

// NewHandler cria handler com extrator de subject injetável.
func NewHandler(v1 LiderancaV1Provider, v2 LiderancaV2Provider, maquinario MaquinarioProvider, subject func(ctx context.Context) string) *Handler {
	return &Handler{v1: v1, v2: v2, maquinario: maquinario, subject: subject}
}

// RegisterRoutes monta as rotas de pedidos em um roteador autenticado.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/v1/liderancas", func(r chi.Router) {
		r.Post("/", h.handleCreateV1)
		r.Get("/", h.handleListV1)
		r.Get("/{id}", h.handleGetV1)
		r.Patch("/{id}", h.handleUpdateV1)
		r.Delete("/{id}", h.handleDeleteV1)
	})

	r.Route("/liderancas", func(r chi.Router) {
		r.Post("/", h.handleCreateV2)
		r.Get("/", h.handleListV2)
		r.Get("/{id}", h.handleGetV2)
		r.Patch("/{id}", h.handleUpdateV2)
		r.Delete("/{id}", h.handleDeleteV2)
	})

	r.Route("/pedidos-maquinarios", func(r chi.Router) {
		r.Get("/catalogo", h.handleCatalogo)
		r.Post("/", h.handleCreateMaquinario)
		r.Get("/", h.handleListMaquinarios)
		r.Get("/{id}", h.handleGetMaquinario)
		r.Patch("/{id}", h.handleUpdateMaquinario)
		r.Delete("/{id}", h.handleDeleteMaquinario)
	})
}

func (h *Handler) handleCreateV1(w http.ResponseWriter, r *http.Request) {
	var input LiderancaV1Create
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	rec, err := h.v1.Create(r.Context(), h.subject(r.Context()), input)
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleListV1(w http.ResponseWriter, r *http.Request) {
	recs, err := h.v1.List(r.Context(), r.URL.Query().Get("municipio_id"))
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) handleGetV1(w http.ResponseWriter, r *http.Request) {
	rec, err := h.v1.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleUpdateV1(w http.ResponseWriter, r *http.Request) {
	var input LiderancaV1Update
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	rec, err := h.v1.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleDeleteV1(w http.ResponseWriter, r *http.Request) {
	if err := h.v1.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleCreateV2(w http.ResponseWriter, r *http.Request) {
	var input LiderancaV2Create
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	rec, err := h.v2.Create(r.Context(), input)
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleListV2(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	recs, err := h.v2.List(r.Context(), q.Get("q"), q.Get("municipio"), q.Get("lideranca"), q.Get("status"))
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) handleGetV2(w http.ResponseWriter, r *http.Request) {
	rec, err := h.v2.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleUpdateV2(w http.ResponseWriter, r *http.Request) {
	var input LiderancaV2Update
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	rec, err := h.v2.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleDeleteV2(w http.ResponseWriter, r *http.Request) {
	if err := h.v2.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleCatalogo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Catalogo())
}

func (h *Handler) handleCreateMaquinario(w http.ResponseWriter, r *http.Request) {
	var input MaquinarioV2Create
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	rec, err := h.maquinario.Create(r.Context(), input)
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleListMaquinarios(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	recs, err := h.maquinario.List(r.Context(), q.Get("q"), q.Get("municipio"), q.Get("status"))
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) handleGetMaquinario(w http.ResponseWriter, r *http.Request) {
	rec, err := h.maquinario.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleUpdateMaquinario(w http.ResponseWriter, r *http.Request) {
	var input MaquinarioV2Update
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	rec, err := h.maquinario.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleDeleteMaquinario(w http.ResponseWriter, r *http.Request) {
	if err := h.maquinario.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writePedidoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// writePedidoError traduz erros de domínio para o envelope HTTP.
func writePedidoError(w http.ResponseWriter, err error) {
	var fieldErr *FieldError
	switch {
	case errors.As(err, &fieldErr):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION", fieldErr.Error(), map[string]string{
			"field":    fieldErr.Field,
			"value":    fieldErr.Value,
			"expected": fieldErr.Expected,
		})
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "pedido não encontrado", nil)
	case errors.Is(err, ErrNotModified):
		// 304 não carrega corpo
		w.WriteHeader(http.StatusNotModified)
	case errors.Is(err, ErrNoChange):
		writeError(w, http.StatusBadRequest, "VALIDATION", "nenhum campo para atualizar", nil)
	case errors.Is(err, ErrPersistence):
		writeError(w, http.StatusInternalServerError, "INTERNAL", "escrita não confirmada", nil)
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "error": nil})
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	body := map[string]any{"code": code, "message": message}
	if details != nil {
		body["details"] = details
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": nil, "error": body})
}
