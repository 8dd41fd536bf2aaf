package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents remove marcas diacríticas ("São José" -> "Sao Jose").
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Fold normaliza texto para comparação acento e caixa-insensível.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(StripAccents(s)))
}

// OnlyDigits devolve apenas os dígitos da string.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
