package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/gabinete")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.JWTAccessTTL != 7*24*time.Hour {
		t.Errorf("JWTAccessTTL = %v", cfg.JWTAccessTTL)
	}
	if cfg.PedidosCacheTTL != 15*time.Minute {
		t.Errorf("PedidosCacheTTL = %v", cfg.PedidosCacheTTL)
	}
	if cfg.EstradasCacheTTL != 3*time.Minute {
		t.Errorf("EstradasCacheTTL = %v", cfg.EstradasCacheTTL)
	}
}

func TestLoadExigeSegredoForte(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "curto")

	if _, err := Load(); err == nil {
		t.Fatal("segredo curto deveria falhar")
	}
}

func TestLoadExigeBanco(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("DB_DSN vazio deveria falhar")
	}
}

func TestLoadOrigens(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOW_ORIGINS", "https://painel.mandatopr.com.br, http://localhost:5173 ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.AllowOrigins) != 2 {
		t.Fatalf("AllowOrigins = %v", cfg.AllowOrigins)
	}
	if cfg.AllowOrigins[1] != "http://localhost:5173" {
		t.Errorf("origem não aparada: %q", cfg.AllowOrigins[1])
	}
}

func TestLoadDuracaoInvalida(t *testing.T) {
	setRequired(t)
	t.Setenv("PEDIDOS_CACHE_TTL", "quinze minutos")

	if _, err := Load(); err == nil {
		t.Fatal("duração ilegível deveria falhar")
	}
}
