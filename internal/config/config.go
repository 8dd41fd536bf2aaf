package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port            int
	DBDSN           string
	RedisURL        string
	JWTSecret       string
	JWTAccessTTL    time.Duration
	JWTRefreshTTL   time.Duration
	AllowOrigins    []string
	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig

	// Bootstrap do usuário admin inicial.
	AdminUsername string
	AdminPassword string

	// Feed CSV de pedidos publicado pela planilha.
	PedidosCSVURL     string
	PedidosCacheTTL   time.Duration
	PedidosFetchLimit time.Duration

	// Feed da API do Google Sheets (estradas rurais).
	EstradasSheetID    string
	EstradasSheetTab   string
	EstradasAPIKey     string
	EstradasCacheTTL   time.Duration
	EstradasFetchLimit time.Duration
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN obrigatório")
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL obrigatório")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	// O cookie de sessão do painel vive 7 dias.
	accessTTL, err := parseDurationEnv("JWT_ACCESS_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTAccessTTL = accessTTL

	refreshTTL, err := parseDurationEnv("JWT_REFRESH_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTRefreshTTL = refreshTTL

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	cfg.AdminUsername = strings.TrimSpace(getEnv("ADMIN_USERNAME", ""))
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")

	cfg.PedidosCSVURL = strings.TrimSpace(getEnv("PEDIDOS_CSV_URL", ""))
	if cfg.PedidosCacheTTL, err = parseDurationEnv("PEDIDOS_CACHE_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.PedidosFetchLimit, err = parseDurationEnv("PEDIDOS_FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	cfg.EstradasSheetID = strings.TrimSpace(getEnv("ESTRADAS_SHEET_ID", ""))
	cfg.EstradasSheetTab = strings.TrimSpace(getEnv("ESTRADAS_SHEET_TAB", ""))
	cfg.EstradasAPIKey = strings.TrimSpace(getEnv("ESTRADAS_SHEETS_API_KEY", ""))
	if cfg.EstradasCacheTTL, err = parseDurationEnv("ESTRADAS_CACHE_TTL", 3*time.Minute); err != nil {
		return nil, err
	}
	if cfg.EstradasFetchLimit, err = parseDurationEnv("ESTRADAS_FETCH_TIMEOUT", 20*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
