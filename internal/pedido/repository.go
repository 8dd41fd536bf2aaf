package pedido

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// listCap limita a listagem como teto de segurança, não como paginação.
const listCap = 10000

// DocStore abstrai a persistência documento-a-documento das coleções.
type DocStore interface {
	Insert(ctx context.Context, collection, id string, doc map[string]any) (int64, error)
	FindByID(ctx context.Context, collection, id string) (map[string]any, error)
	List(ctx context.Context, collection string, filter ListFilter) ([]map[string]any, error)
	// UpdateDoc aplica o patch somente se ele alterar o documento;
	// conteúdo idêntico devolve ErrNotModified sem tocar updated_at.
	UpdateDoc(ctx context.Context, collection, id string, patch map[string]any, updatedAt string) error
	// UpdateDocAlways aplica o patch incondicionalmente (caminho legado).
	UpdateDocAlways(ctx context.Context, collection, id string, patch map[string]any, updatedAt string) error
	Delete(ctx context.Context, collection, id string) error
}

// Repository guarda cada pedido como documento jsonb íntegro, preservando o
// histórico heterogêneo das coleções.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria instância do repositório.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert grava novo documento e devolve o número de linhas confirmadas.
func (r *Repository) Insert(ctx context.Context, collection, id string, doc map[string]any) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, collection)
	tag, err := r.pool.Exec(ctx, query, id, doc)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// FindByID devolve o documento cru ou ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, collection, id string) (map[string]any, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, collection)

	var doc map[string]any
	if err := r.pool.QueryRow(ctx, query, id).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List devolve documentos ordenados por created_at decrescente.
func (r *Repository) List(ctx context.Context, collection string, filter ListFilter) ([]map[string]any, error) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)

	appendClause := func(clause string, value any) {
		clauses = append(clauses, fmt.Sprintf(clause, idx))
		args = append(args, value)
		idx++
	}

	if filter.MunicipioID != "" {
		appendClause(`doc->>'municipio_id' = $%d`, filter.MunicipioID)
	}
	if filter.Municipio != "" {
		appendClause(`doc->>'municipio_nome' ILIKE $%d`, like(filter.Municipio))
	}
	if filter.Lideranca != "" {
		appendClause(`doc->>'lideranca_nome' ILIKE $%d`, like(filter.Lideranca))
	}
	if filter.Status != "" {
		appendClause(`doc->>'status' = $%d`, filter.Status)
	}

	if filter.Q != "" && (len(filter.QFields) > 0 || filter.QItems) {
		var ors []string
		for _, field := range filter.QFields {
			ors = append(ors, fmt.Sprintf(`doc->>'%s' ILIKE $%d`, field, idx))
		}
		if filter.QItems {
			ors = append(ors, fmt.Sprintf(
				`EXISTS (SELECT 1 FROM jsonb_array_elements(doc->'itens') item WHERE item->>'equipamento' ILIKE $%d)`, idx))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
		args = append(args, like(filter.Q))
		idx++
	}

	query := fmt.Sprintf(`SELECT doc FROM %s`, collection)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY doc->>'created_at' DESC LIMIT %d", listCap)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		var doc map[string]any
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateDoc mescla o patch apenas quando ele muda o documento. Um update com
// valores idênticos aos atuais devolve ErrNotModified e não renova o
// updated_at, distinguindo-o de ErrNotFound.
func (r *Repository) UpdateDoc(ctx context.Context, collection, id string, patch map[string]any, updatedAt string) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET doc = doc || $2 || jsonb_build_object('updated_at', $3::text)
        WHERE id = $1 AND doc || $2 <> doc
    `, collection)

	tag, err := r.pool.Exec(ctx, query, id, patch, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// nada alterado: distinguir inexistente de idêntico
	if _, err := r.FindByID(ctx, collection, id); err != nil {
		return err
	}
	return ErrNotModified
}

// UpdateDocAlways mescla o patch e renova updated_at mesmo sem mudança.
func (r *Repository) UpdateDocAlways(ctx context.Context, collection, id string, patch map[string]any, updatedAt string) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET doc = doc || $2 || jsonb_build_object('updated_at', $3::text)
        WHERE id = $1
    `, collection)

	tag, err := r.pool.Exec(ctx, query, id, patch, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete remove o documento; ausência vira ErrNotFound.
func (r *Repository) Delete(ctx context.Context, collection, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, collection)
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func like(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}
