package vaccines

import (
	"fmt"
	"slices"
	"strings"
)

// DoseKind es una etapa del esquema de vacunación.
// @Enum FIRST, SECOND, THIRD, SINGLE, BOOSTER, FIRST_BOOSTER, SECOND_BOOSTER
type DoseKind string

const (
	DoseFirst         DoseKind = "FIRST"
	DoseSecond        DoseKind = "SECOND"
	DoseThird         DoseKind = "THIRD"
	DoseSingle        DoseKind = "SINGLE"
	DoseBooster       DoseKind = "BOOSTER"
	DoseFirstBooster  DoseKind = "FIRST_BOOSTER"
	DoseSecondBooster DoseKind = "SECOND_BOOSTER"
)

// doseOrder es el orden de declaración: define las columnas de la cartilla.
var doseOrder = []DoseKind{
	DoseFirst,
	DoseSecond,
	DoseThird,
	DoseSingle,
	DoseBooster,
	DoseFirstBooster,
	DoseSecondBooster,
}

// Ranks explícitos; 0 = no participa de esa secuencia.
type doseInfo struct {
	label       string
	primaryRank int
	boosterRank int
}

var doseTable = map[DoseKind]doseInfo{
	DoseFirst:         {label: "1st dose", primaryRank: 1},
	DoseSecond:        {label: "2nd dose", primaryRank: 2},
	DoseThird:         {label: "3rd dose", primaryRank: 3},
	DoseSingle:        {label: "single dose"},
	DoseBooster:       {label: "booster"},
	DoseFirstBooster:  {label: "1st booster", boosterRank: 1},
	DoseSecondBooster: {label: "2nd booster", boosterRank: 2},
}

// AllDoseKinds devuelve todos los tipos de dosis en orden de declaración.
func AllDoseKinds() []DoseKind {
	return slices.Clone(doseOrder)
}

func ParseDoseKind(s string) (DoseKind, error) {
	d := DoseKind(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown dose kind %q", s)
	}
	return d, nil
}

func (d DoseKind) Valid() bool {
	_, ok := doseTable[d]
	return ok
}

// Label es el nombre legible usado en mensajes de validación.
func (d DoseKind) Label() string {
	if info, ok := doseTable[d]; ok {
		return info.label
	}
	return string(d)
}

// PrimaryRank: FIRST=1, SECOND=2, THIRD=3, resto 0.
func (d DoseKind) PrimaryRank() int { return doseTable[d].primaryRank }

// BoosterRank: FIRST_BOOSTER=1, SECOND_BOOSTER=2, resto 0 (BOOSTER simple incluido).
func (d DoseKind) BoosterRank() int { return doseTable[d].boosterRank }

// LastPrimaryDose devuelve la dosis primaria de mayor rank presente en el
// esquema (THIRD > SECOND > FIRST). ok=false si no hay ninguna.
func LastPrimaryDose(schedule []DoseKind) (DoseKind, bool) {
	var (
		last DoseKind
		rank int
	)
	for _, d := range schedule {
		if r := d.PrimaryRank(); r > rank {
			last, rank = d, r
		}
	}
	return last, rank > 0
}
