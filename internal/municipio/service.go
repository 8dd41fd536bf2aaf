package municipio

import (
	"context"
	"strings"

	"github.com/mandatopr/gabinete/internal/util"
)

// Store abstrai a persistência para permitir stubs em teste.
type Store interface {
	CreateInfo(ctx context.Context, info *Info) error
	GetInfo(ctx context.Context, municipioID int) (*Info, error)
	UpdateInfo(ctx context.Context, municipioID int, input InfoUpdate) (*Info, error)
	ListLiderancas(ctx context.Context, municipioID int) ([]Lideranca, error)
	CreateLideranca(ctx context.Context, l *Lideranca) error
	UpdateLideranca(ctx context.Context, id string, input LiderancaUpdate) (*Lideranca, error)
	DeleteLideranca(ctx context.Context, id string) error
}

// Service aplica as regras de dados municipais.
type Service struct {
	store Store
}

// NewService cria o serviço municipal.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetInfo devolve as informações do município ou nil quando não cadastradas.
// Ausência não é erro: o painel trata o estado vazio.
func (s *Service) GetInfo(ctx context.Context, municipioID int) (*Info, error) {
	info, err := s.store.GetInfo(ctx, municipioID)
	if err == ErrNotFound {
		return nil, nil
	}
	return info, err
}

// CreateInfo cadastra informações para um município ainda sem registro.
func (s *Service) CreateInfo(ctx context.Context, input InfoCreate) (*Info, error) {
	now := util.Now()
	info := &Info{
		ID:              util.NewID(),
		MunicipioID:     input.MunicipioID,
		PrefeitoNome:    input.PrefeitoNome,
		PrefeitoPartido: input.PrefeitoPartido,
		PrefeitoTel:     input.PrefeitoTel,
		ViceNome:        input.ViceNome,
		VicePartido:     input.VicePartido,
		ViceTel:         input.ViceTel,
		Votos2014:       input.Votos2014,
		Votos2018:       input.Votos2018,
		Votos2022:       input.Votos2022,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.CreateInfo(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

// UpdateInfo aplica campos presentes sobre um registro existente.
func (s *Service) UpdateInfo(ctx context.Context, municipioID int, input InfoUpdate) (*Info, error) {
	if _, err := s.store.GetInfo(ctx, municipioID); err != nil {
		return nil, err
	}
	return s.store.UpdateInfo(ctx, municipioID, input)
}

// ListLiderancas devolve os contatos do município.
func (s *Service) ListLiderancas(ctx context.Context, municipioID int) ([]Lideranca, error) {
	return s.store.ListLiderancas(ctx, municipioID)
}

// CreateLideranca cadastra um contato com nome e cargo obrigatórios.
func (s *Service) CreateLideranca(ctx context.Context, input LiderancaCreate) (*Lideranca, error) {
	if strings.TrimSpace(input.Nome) == "" {
		return nil, errRequired("nome")
	}
	if strings.TrimSpace(input.Cargo) == "" {
		return nil, errRequired("cargo")
	}

	now := util.Now()
	l := &Lideranca{
		ID:          util.NewID(),
		MunicipioID: input.MunicipioID,
		Nome:        input.Nome,
		Cargo:       input.Cargo,
		Telefone:    input.Telefone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateLideranca(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateLideranca aplica campos presentes.
func (s *Service) UpdateLideranca(ctx context.Context, id string, input LiderancaUpdate) (*Lideranca, error) {
	return s.store.UpdateLideranca(ctx, id, input)
}

// DeleteLideranca remove um contato.
func (s *Service) DeleteLideranca(ctx context.Context, id string) error {
	return s.store.DeleteLideranca(ctx, id)
}

// ValidationError indica campo obrigatório ausente.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " é obrigatório"
}

func errRequired(field string) error {
	return &ValidationError{Field: field}
}
