package util

import "github.com/google/uuid"

// NewID gera identificador único de registro (UUID v4 em texto).
func NewID() string {
	return uuid.NewString()
}
