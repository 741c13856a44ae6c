package vaccination

import (
	"time"

	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/domain/vaccines"
)

// Record es una dosis aplicada. Único por (PersonID, VaccineID, Dose).
type Record struct {
	ID              string
	PersonID        string
	VaccineID       string
	Dose            vaccines.DoseKind
	ApplicationDate time.Time

	// RecordedBy es el usuario autenticado que cargó la dosis; puede ir vacío.
	RecordedBy string
	CreatedAt  time.Time
}

type DoseStatus string

const (
	StatusTaken         DoseStatus = "TAKEN"
	StatusMissing       DoseStatus = "MISSING"
	StatusNotApplicable DoseStatus = "NOT_APPLICABLE"
)

// DoseStatusEntry es una celda de la cartilla. RecordID y ApplicationDate
// solo se completan para TAKEN.
type DoseStatusEntry struct {
	Dose            vaccines.DoseKind
	Status          DoseStatus
	RecordID        string
	ApplicationDate time.Time
}

type VaccineStatus struct {
	VaccineID   string
	VaccineName string
	Category    vaccines.Category
	Doses       []DoseStatusEntry
}

// Card es la cartilla: una fila por vacuna, una columna por tipo de dosis.
type Card struct {
	Person   persons.Person
	Vaccines []VaccineStatus
}

type HistoryEntry struct {
	RecordID        string
	VaccineID       string
	VaccineName     string
	Dose            vaccines.DoseKind
	ApplicationDate time.Time
	RecordedBy      string
	CreatedAt       time.Time
}
