package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mandatopr/gabinete/internal/config"
	"github.com/mandatopr/gabinete/internal/feed"
	httpmiddleware "github.com/mandatopr/gabinete/internal/http/middleware"
	"github.com/mandatopr/gabinete/internal/municipio"
	"github.com/mandatopr/gabinete/internal/pedido"
	"github.com/mandatopr/gabinete/internal/service"
	"github.com/mandatopr/gabinete/internal/user"
)

type Handler struct {
	cfg           *config.Config
	pool          *pgxpool.Pool
	redis         *redis.Client
	authService   *service.AuthService
	users         *user.Service
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
	devCookies    bool
}

// NewRouter devolve roteador configurado.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client, authService *service.AuthService, userService *user.Service) http.Handler {
	devCookies := false
	for _, origin := range cfg.AllowOrigins {
		if strings.Contains(origin, "localhost") {
			devCookies = true
			break
		}
	}

	h := &Handler{
		cfg:           cfg,
		pool:          pool,
		redis:         redisClient,
		authService:   authService,
		users:         userService,
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
		devCookies:    devCookies,
	}

	docStore := pedido.NewRepository(pool)
	pedidoHandler := pedido.NewHandler(
		pedido.NewLiderancaV1Service(docStore),
		pedido.NewLiderancaV2Service(docStore),
		pedido.NewMaquinarioService(docStore),
		httpmiddleware.GetSubject,
	)

	municipioService := municipio.NewService(municipio.NewRepository(pool))
	municipioHandler := municipio.NewHandler(municipioService, httpmiddleware.GetUsername)

	pedidosFeed := feed.NewCSVFeed(cfg.PedidosCSVURL, cfg.PedidosFetchLimit)
	pedidosCache := feed.NewCache(cfg.PedidosCacheTTL, time.Now, pedidosFeed.Fetch,
		func(rows []feed.Row) int { return len(rows) })

	estradasFeed := feed.NewSheetsFeed(cfg.EstradasSheetID, cfg.EstradasSheetTab, cfg.EstradasAPIKey, cfg.EstradasFetchLimit)
	estradasCache := feed.NewCache(cfg.EstradasCacheTTL, time.Now, estradasFeed.Fetch,
		func(vr *feed.ValueRange) int {
			if vr == nil {
				return 0
			}
			return len(vr.Values)
		})

	feedHandler := feed.NewHandler(pedidosCache, estradasCache, httpmiddleware.GetUsername)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)

		public.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Login)
			auth.Post("/refresh", h.Refresh)
			auth.Post("/logout", h.Logout)
		})
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(authService.JWT()))
		private.Use(httpmiddleware.UserRateLimit(h.authLimiter))

		private.Get("/me", h.Me)

		pedidoHandler.RegisterRoutes(private)
		municipioHandler.RegisterRoutes(private, httpmiddleware.RequireAdmin)
		feedHandler.RegisterRoutes(private, httpmiddleware.RequireAdmin)

		private.Group(func(admin chi.Router) {
			admin.Use(httpmiddleware.RequireAdmin)
			admin.Route("/admin/users", func(u chi.Router) {
				u.Get("/", h.ListUsers)
				u.Post("/", h.CreateUser)
				u.Get("/{id}", h.GetUser)
				u.Patch("/{id}", h.UpdateUser)
				u.Delete("/{id}", h.DeleteUser)
			})
		})
	})

	return r
}

// Health responde status simples.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready valida conexões com Postgres e Redis.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbErr := h.pool.Ping(ctx)
	redisErr := h.redis.Ping(ctx).Err()

	if dbErr != nil || redisErr != nil {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "dependências indisponíveis", map[string]any{
			"db":    errorString(dbErr),
			"redis": errorString(redisErr),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
