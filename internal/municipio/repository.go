package municipio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persiste informações e contatos municipais no Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria repositório de dados municipais.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const infoColumns = `id, municipio_id, prefeito_nome, prefeito_partido, prefeito_tel,
    vice_nome, vice_partido, vice_tel, votos_2014, votos_2018, votos_2022,
    created_at, updated_at`

// CreateInfo insere as informações de um município. Um segundo cadastro
// para o mesmo município devolve ErrDuplicate.
func (r *Repository) CreateInfo(ctx context.Context, info *Info) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO municipio_info (
            id, municipio_id, prefeito_nome, prefeito_partido, prefeito_tel,
            vice_nome, vice_partido, vice_tel, votos_2014, votos_2018, votos_2022,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		info.ID, info.MunicipioID, info.PrefeitoNome, info.PrefeitoPartido, info.PrefeitoTel,
		info.ViceNome, info.VicePartido, info.ViceTel, info.Votos2014, info.Votos2018, info.Votos2022,
		info.CreatedAt, info.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserir municipio_info: %w", err)
	}
	return nil
}

// GetInfo busca as informações pelo id do município.
func (r *Repository) GetInfo(ctx context.Context, municipioID int) (*Info, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+infoColumns+` FROM municipio_info WHERE municipio_id = $1`, municipioID)
	return scanInfo(row)
}

// UpdateInfo aplica campos presentes e renova updated_at.
func (r *Repository) UpdateInfo(ctx context.Context, municipioID int, input InfoUpdate) (*Info, error) {
	setParts := []string{}
	args := []any{}
	idx := 1

	add := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if input.PrefeitoNome != nil {
		add("prefeito_nome", *input.PrefeitoNome)
	}
	if input.PrefeitoPartido != nil {
		add("prefeito_partido", *input.PrefeitoPartido)
	}
	if input.PrefeitoTel != nil {
		add("prefeito_tel", *input.PrefeitoTel)
	}
	if input.ViceNome != nil {
		add("vice_nome", *input.ViceNome)
	}
	if input.VicePartido != nil {
		add("vice_partido", *input.VicePartido)
	}
	if input.ViceTel != nil {
		add("vice_tel", *input.ViceTel)
	}
	if input.Votos2014 != nil {
		add("votos_2014", *input.Votos2014)
	}
	if input.Votos2018 != nil {
		add("votos_2018", *input.Votos2018)
	}
	if input.Votos2022 != nil {
		add("votos_2022", *input.Votos2022)
	}

	setParts = append(setParts, "updated_at = now()")
	args = append(args, municipioID)

	query := fmt.Sprintf(
		`UPDATE municipio_info SET %s WHERE municipio_id = $%d RETURNING `+infoColumns,
		strings.Join(setParts, ", "), idx)

	row := r.pool.QueryRow(ctx, query, args...)
	return scanInfo(row)
}

// ListLiderancas devolve os contatos de um município.
func (r *Repository) ListLiderancas(ctx context.Context, municipioID int) ([]Lideranca, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, municipio_id, nome, cargo, telefone, created_at, updated_at
        FROM municipio_liderancas
        WHERE municipio_id = $1
        ORDER BY nome`, municipioID)
	if err != nil {
		return nil, fmt.Errorf("listar contatos: %w", err)
	}
	defer rows.Close()

	out := make([]Lideranca, 0)
	for rows.Next() {
		var l Lideranca
		if err := rows.Scan(&l.ID, &l.MunicipioID, &l.Nome, &l.Cargo, &l.Telefone, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ler contato: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CreateLideranca insere um contato.
func (r *Repository) CreateLideranca(ctx context.Context, l *Lideranca) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO municipio_liderancas (id, municipio_id, nome, cargo, telefone, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		l.ID, l.MunicipioID, l.Nome, l.Cargo, l.Telefone, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserir contato: %w", err)
	}
	return nil
}

// UpdateLideranca aplica campos presentes e renova updated_at.
func (r *Repository) UpdateLideranca(ctx context.Context, id string, input LiderancaUpdate) (*Lideranca, error) {
	setParts := []string{}
	args := []any{}
	idx := 1

	add := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if input.Nome != nil {
		add("nome", *input.Nome)
	}
	if input.Cargo != nil {
		add("cargo", *input.Cargo)
	}
	if input.Telefone != nil {
		add("telefone", *input.Telefone)
	}

	setParts = append(setParts, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE municipio_liderancas SET %s WHERE id = $%d
        RETURNING id, municipio_id, nome, cargo, telefone, created_at, updated_at`,
		strings.Join(setParts, ", "), idx)

	var l Lideranca
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&l.ID, &l.MunicipioID, &l.Nome, &l.Cargo, &l.Telefone, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("atualizar contato: %w", err)
	}
	return &l, nil
}

// DeleteLideranca remove um contato.
func (r *Repository) DeleteLideranca(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM municipio_liderancas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remover contato: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInfo(row pgx.Row) (*Info, error) {
	var info Info
	err := row.Scan(
		&info.ID, &info.MunicipioID, &info.PrefeitoNome, &info.PrefeitoPartido, &info.PrefeitoTel,
		&info.ViceNome, &info.VicePartido, &info.ViceTel, &info.Votos2014, &info.Votos2018, &info.Votos2022,
		&info.CreatedAt, &info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ler municipio_info: %w", err)
	}
	return &info, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
