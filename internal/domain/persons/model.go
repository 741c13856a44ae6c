package persons

import (
	"fmt"
	"strings"
	"time"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func ParseSex(s string) (Sex, error) {
	switch sx := Sex(strings.ToLower(strings.TrimSpace(s))); sx {
	case SexMale, SexFemale:
		return sx, nil
	default:
		return "", fmt.Errorf("unknown sex %q", s)
	}
}

// Person es el titular de una cartilla de vacunación.
type Person struct {
	ID   string
	Name string

	// CPF siempre normalizado a 11 dígitos.
	CPF       string
	BirthDate time.Time
	Sex       Sex

	CreatedAt time.Time
}

// NormalizeCPF deja solo los dígitos y exige exactamente 11.
func NormalizeCPF(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == ' ':
		default:
			return "", fmt.Errorf("cpf contains invalid character %q", r)
		}
	}
	cpf := b.String()
	if len(cpf) != 11 {
		return "", fmt.Errorf("cpf must have 11 digits, got %d", len(cpf))
	}
	return cpf, nil
}
