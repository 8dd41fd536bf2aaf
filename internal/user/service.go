package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mandatopr/gabinete/internal/auth"
	"github.com/mandatopr/gabinete/internal/util"
)

// Store abstrai a persistência de usuários (facilita stubs em teste).
type Store interface {
	Create(ctx context.Context, u User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput, senhaHash *string) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service reúne regras de negócio de contas do painel.
type Service struct {
	store Store
}

// NewService cria nova instância do serviço.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create valida e cria um usuário.
func (s *Service) Create(ctx context.Context, input CreateInput) (*User, error) {
	if err := util.ValidateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = RoleUser
	}
	if !IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := auth.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(input.Username),
		SenhaHash: hash,
		Role:      role,
		Active:    input.Active,
	})
}

// List devolve todas as contas.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// Get busca conta por id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.GetByID(ctx, id)
}

// Update aplica alterações parciais; senha nova é re-hasheada.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*User, error) {
	if input.Username != nil {
		if err := util.ValidateUsername(*input.Username); err != nil {
			return nil, err
		}
	}
	if input.Role != nil && !IsValidRole(*input.Role) {
		return nil, ErrInvalidRole
	}

	var senhaHash *string
	if input.Password != nil {
		if err := util.ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := auth.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		senhaHash = &hash
	}

	return s.store.Update(ctx, id, input, senhaHash)
}

// Delete remove conta; admins não podem excluir a própria conta.
func (s *Service) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	if id == requesterID {
		return ErrSelfDelete
	}
	return s.store.Delete(ctx, id)
}

// EnsureAdmin cria o usuário administrador inicial quando ausente.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	if _, err := s.store.GetByUsername(ctx, username); err == nil {
		log.Info().Str("username", username).Msg("admin já existe")
		return nil
	}

	_, err := s.Create(ctx, CreateInput{
		Username: username,
		Password: password,
		Role:     RoleAdmin,
		Active:   true,
	})
	if err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("admin inicial criado")
	return nil
}
