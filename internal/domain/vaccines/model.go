package vaccines

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Category agrupa vacunas para filtrar la cartilla.
// @Enum NATIONAL_CARD, OTHER
type Category string

const (
	// CategoryNationalCard son las vacunas del calendario nacional.
	CategoryNationalCard Category = "NATIONAL_CARD"
	CategoryOther        Category = "OTHER"
)

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CategoryNationalCard, CategoryOther:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// Vaccine es la definición de una vacuna con su esquema de dosis.
type Vaccine struct {
	ID       string
	Name     string
	Category Category

	// Schedule conserva el orden informado; sin duplicados.
	Schedule []DoseKind

	CreatedAt time.Time
}

// Applies indica si d forma parte del esquema de la vacuna.
func (v Vaccine) Applies(d DoseKind) bool {
	return slices.Contains(v.Schedule, d)
}
