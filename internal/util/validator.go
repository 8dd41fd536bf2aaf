package util

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marca falhas de validação de entrada; handlers traduzem
// para 422 em vez de erro interno.
var ErrValidation = errors.New("dados inválidos")

// ValidateUsername garante username utilizável como chave única.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username obrigatório", ErrValidation)
	}
	if len(username) < 3 {
		return fmt.Errorf("%w: username deve ter pelo menos 3 caracteres", ErrValidation)
	}
	if strings.ContainsAny(username, " \t\n") {
		return fmt.Errorf("%w: username não pode conter espaços", ErrValidation)
	}
	return nil
}

// ValidatePassword verifica requisitos mínimos de senha.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: senha deve ter pelo menos 8 caracteres", ErrValidation)
	}
	return nil
}

// RequireString garante string não vazia.
func RequireString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s obrigatório", ErrValidation, field)
	}
	return nil
}
