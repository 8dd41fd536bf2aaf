package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("usuário não encontrado")
	ErrDuplicate   = errors.New("username já cadastrado")
	ErrSelfDelete  = errors.New("não é possível excluir a própria conta")
	ErrInvalidRole = errors.New("papel inválido")
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa uma conta do painel.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	SenhaHash string    `json:"-"`
	Role      string    `json:"role"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateInput encapsula campos para criação de usuário.
type CreateInput struct {
	Username string
	Password string
	Role     string
	Active   bool
}

// UpdateInput permite atualização parcial; campos nil são ignorados.
type UpdateInput struct {
	Username *string
	Password *string
	Role     *string
	Active   *bool
}

// IsValidRole indica se o papel é aceito.
func IsValidRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// IsAdmin diz se o usuário tem papel administrativo.
func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}
