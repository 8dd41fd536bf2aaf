package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler orquestra as rotas dos feeds externos.
type Handler struct {
	pedidos  *Cache[[]Row]
	estradas *Cache[*ValueRange]
	username func(ctx context.Context) string
}

// NewHandler cria handler sobre os dois caches.
func NewHandler(pedidos *Cache[[]Row], estradas *Cache[*ValueRange], username func(ctx context.Context) string) *Handler {
	return &Handler{pedidos: pedidos, estradas: estradas, username: username}
}

// RegisterRoutes monta rotas dos feeds; o refresh exige o wrap admin.
func (h *Handler) RegisterRoutes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/pedidos", h.handleListPedidos)
	r.Get("/pedidos/cache-info", h.handleCacheInfo)
	r.With(admin).Post("/pedidos/refresh", h.handleRefreshPedidos)

	r.Get("/estradas-rurais", h.handleEstradas)
}

func (h *Handler) handleListPedidos(w http.ResponseWriter, r *http.Request) {
	rows, err := h.pedidos.Get(r.Context())
	if err != nil {
		writeFeedError(w, err)
		return
	}

	if municipio := r.URL.Query().Get("municipio"); municipio != "" {
		rows = ByMunicipio(rows, municipio)
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) handleRefreshPedidos(w http.ResponseWriter, r *http.Request) {
	rows, err := h.pedidos.ForceRefresh(r.Context())
	if err != nil {
		writeFeedError(w, err)
		return
	}

	log.Info().Str("admin", h.username(r.Context())).Int("rows", len(rows)).
		Msg("planilha de pedidos atualizada manualmente")

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Dados atualizados com sucesso",
		"total_rows": len(rows),
		"cache_info": h.pedidos.Info(),
	})
}

func (h *Handler) handleCacheInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pedidos.Info())
}

func (h *Handler) handleEstradas(w http.ResponseWriter, r *http.Request) {
	payload, err := h.estradas.Get(r.Context())
	if err != nil {
		writeFeedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": payload.Values})
}

func writeFeedError(w http.ResponseWriter, err error) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		writeError(w, http.StatusBadGateway, "FETCH", fetchErr.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno")
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
