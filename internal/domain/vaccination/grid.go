package vaccination

import (
	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/domain/vaccines"
)

type doseKey struct {
	vaccineID string
	dose      vaccines.DoseKind
}

// BuildGrid arma la cartilla: para cada vacuna (en el orden recibido) y cada
// tipo de dosis (en orden de declaración) una celda TAKEN, MISSING o
// NOT_APPLICABLE. Es pura; no cachea nada entre llamadas.
func BuildGrid(p persons.Person, vs []vaccines.Vaccine, records []Record) Card {
	taken := make(map[doseKey]Record, len(records))
	for _, r := range records {
		taken[doseKey{r.VaccineID, r.Dose}] = r
	}

	kinds := vaccines.AllDoseKinds()
	rows := make([]VaccineStatus, 0, len(vs))
	for _, v := range vs {
		doses := make([]DoseStatusEntry, 0, len(kinds))
		for _, d := range kinds {
			entry := DoseStatusEntry{Dose: d}
			switch rec, ok := taken[doseKey{v.ID, d}]; {
			case !v.Applies(d):
				entry.Status = StatusNotApplicable
			case ok:
				entry.Status = StatusTaken
				entry.RecordID = rec.ID
				entry.ApplicationDate = rec.ApplicationDate
			default:
				entry.Status = StatusMissing
			}
			doses = append(doses, entry)
		}
		rows = append(rows, VaccineStatus{
			VaccineID:   v.ID,
			VaccineName: v.Name,
			Category:    v.Category,
			Doses:       doses,
		})
	}

	return Card{Person: p, Vaccines: rows}
}
