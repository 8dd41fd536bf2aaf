package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provê acesso à tabela usuarios.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria instância do repositório.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = "id, username, senha_hash, papel, ativo, criado_em, atualizado_em"

// Create insere novo usuário; username duplicado vira ErrDuplicate.
func (r *Repository) Create(ctx context.Context, u User) (*User, error) {
	const query = `
        INSERT INTO usuarios (id, username, senha_hash, papel, ativo)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query, u.ID, strings.TrimSpace(u.Username), u.SenhaHash, strings.ToLower(u.Role), u.Active)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return created, nil
}

// GetByID busca usuário por identificador.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByUsername busca usuário pelo username exato.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE username = $1`
	return scanUser(r.pool.QueryRow(ctx, query, strings.TrimSpace(username)))
}

// List devolve todos os usuários, mais antigos primeiro.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios ORDER BY criado_em ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Update aplica apenas os campos presentes e renova atualizado_em.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateInput, senhaHash *string) (*User, error) {
	setParts := []string{}
	args := []any{}
	idx := 1

	if input.Username != nil {
		setParts = append(setParts, fmt.Sprintf("username = $%d", idx))
		args = append(args, strings.TrimSpace(*input.Username))
		idx++
	}
	if senhaHash != nil {
		setParts = append(setParts, fmt.Sprintf("senha_hash = $%d", idx))
		args = append(args, *senhaHash)
		idx++
	}
	if input.Role != nil {
		setParts = append(setParts, fmt.Sprintf("papel = $%d", idx))
		args = append(args, strings.ToLower(strings.TrimSpace(*input.Role)))
		idx++
	}
	if input.Active != nil {
		setParts = append(setParts, fmt.Sprintf("ativo = $%d", idx))
		args = append(args, *input.Active)
		idx++
	}

	setParts = append(setParts, "atualizado_em = now()")
	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE usuarios
        SET %s
        WHERE id = $%d
        RETURNING `+userColumns, strings.Join(setParts, ", "), idx)

	updated, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return updated, nil
}

// Delete remove usuário; ausência vira ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.SenhaHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
