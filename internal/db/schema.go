package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// As coleções de pedidos guardam o documento integral em jsonb porque o
// histórico contém registros gravados por versões anteriores do esquema
// (campos ausentes, datas como timestamp nativo). O normalizador de leitura
// completa o que faltar.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
        id uuid PRIMARY KEY,
        username text NOT NULL,
        senha_hash text NOT NULL,
        papel text NOT NULL DEFAULT 'user',
        ativo boolean NOT NULL DEFAULT true,
        criado_em timestamptz NOT NULL DEFAULT now(),
        atualizado_em timestamptz NOT NULL DEFAULT now()
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS usuarios_username_key ON usuarios (username)`,

	`CREATE TABLE IF NOT EXISTS pedidos_liderancas (
        id uuid PRIMARY KEY,
        doc jsonb NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS pedidos_liderancas_created_at ON pedidos_liderancas ((doc->>'created_at'))`,

	`CREATE TABLE IF NOT EXISTS pedidos_liderancas_v2 (
        id uuid PRIMARY KEY,
        doc jsonb NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS pedidos_liderancas_v2_created_at ON pedidos_liderancas_v2 ((doc->>'created_at'))`,
	`CREATE INDEX IF NOT EXISTS pedidos_liderancas_v2_municipio ON pedidos_liderancas_v2 ((doc->>'municipio_nome'))`,
	`CREATE INDEX IF NOT EXISTS pedidos_liderancas_v2_lideranca ON pedidos_liderancas_v2 ((doc->>'lideranca_nome'))`,
	`CREATE INDEX IF NOT EXISTS pedidos_liderancas_v2_protocolo ON pedidos_liderancas_v2 ((doc->>'protocolo'))`,

	`CREATE TABLE IF NOT EXISTS pedidos_maquinarios_v2 (
        id uuid PRIMARY KEY,
        doc jsonb NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS pedidos_maquinarios_v2_created_at ON pedidos_maquinarios_v2 ((doc->>'created_at'))`,
	`CREATE INDEX IF NOT EXISTS pedidos_maquinarios_v2_municipio ON pedidos_maquinarios_v2 ((doc->>'municipio_nome'))`,

	`CREATE TABLE IF NOT EXISTS municipio_info (
        id uuid PRIMARY KEY,
        municipio_id integer NOT NULL,
        prefeito_nome text,
        prefeito_partido text,
        prefeito_tel text,
        vice_nome text,
        vice_partido text,
        vice_tel text,
        votos_2014 integer,
        votos_2018 integer,
        votos_2022 integer,
        created_at timestamptz NOT NULL DEFAULT now(),
        updated_at timestamptz NOT NULL DEFAULT now()
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS municipio_info_municipio_key ON municipio_info (municipio_id)`,

	`CREATE TABLE IF NOT EXISTS municipio_liderancas (
        id uuid PRIMARY KEY,
        municipio_id integer NOT NULL,
        nome text NOT NULL,
        cargo text NOT NULL,
        telefone text,
        created_at timestamptz NOT NULL DEFAULT now(),
        updated_at timestamptz NOT NULL DEFAULT now()
    )`,
	`CREATE INDEX IF NOT EXISTS municipio_liderancas_municipio ON municipio_liderancas (municipio_id)`,
}

// EnsureSchema cria tabelas e índices quando ausentes (idempotente).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
