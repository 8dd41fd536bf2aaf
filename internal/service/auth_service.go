package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mandatopr/gabinete/internal/auth"
	"github.com/mandatopr/gabinete/internal/user"
	"github.com/mandatopr/gabinete/internal/util"
)

var (
	// ErrInvalidCredentials indica falha na autenticação.
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	// ErrAccountDisabled indica conta desativada.
	ErrAccountDisabled = errors.New("conta desativada")
	// ErrRefreshInvalid indica refresh token inválido ou expirado.
	ErrRefreshInvalid = errors.New("refresh token inválido")
)

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// AuthService concentra regras de autenticação e sessões.
type AuthService struct {
	users      userStore
	redis      redisCommander
	jwt        *auth.JWTManager
	refreshTTL time.Duration
}

// NewAuthService cria novo serviço.
func NewAuthService(users userStore, redisClient redisCommander, jwtMgr *auth.JWTManager, refreshTTL time.Duration) *AuthService {
	return &AuthService{users: users, redis: redisClient, jwt: jwtMgr, refreshTTL: refreshTTL}
}

// JWT expõe gerenciador de JWT (útil em middlewares).
func (s *AuthService) JWT() *auth.JWTManager {
	return s.jwt
}

// LoginResult representa retorno padrão de autenticações.
type LoginResult struct {
	AccessToken   string
	RefreshToken  string
	User          *user.User
	RefreshExpiry time.Time
}

// Login autentica por username e senha.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			log.Warn().Msg("login: usuário não encontrado")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.Verify(password, u.SenhaHash)
	if err != nil || !ok {
		log.Warn().Msg("login: senha inválida")
		return nil, ErrInvalidCredentials
	}

	if !u.Active {
		return nil, ErrAccountDisabled
	}

	return s.issueSession(ctx, u)
}

// Refresh troca um refresh token válido por nova sessão.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*LoginResult, error) {
	hash := auth.HashRefreshToken(rawRefresh)
	key := auth.RefreshRedisKey(hash)

	subject, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, ErrRefreshInvalid
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrRefreshInvalid
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRefreshInvalid
	}
	if !u.Active {
		return nil, ErrAccountDisabled
	}

	// rotação: invalida o token usado antes de emitir outro
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, u)
}

// Logout revoga o refresh token da sessão.
func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	if rawRefresh == "" {
		return nil
	}
	hash := auth.HashRefreshToken(rawRefresh)
	return s.redis.Del(ctx, auth.RefreshRedisKey(hash)).Err()
}

// GetUser carrega usuário autenticado pelo subject do token.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) issueSession(ctx context.Context, u *user.User) (*LoginResult, error) {
	token, _, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Username, []string{strings.ToUpper(u.Role)})
	if err != nil {
		return nil, err
	}

	rawRefresh, refreshHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	expiry := util.Now().Add(s.refreshTTL)
	if err := s.redis.Set(ctx, auth.RefreshRedisKey(refreshHash), u.ID.String(), s.refreshTTL).Err(); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:   token,
		RefreshToken:  rawRefresh,
		User:          u,
		RefreshExpiry: expiry,
	}, nil
}
