package vaccination

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/middleware"
	"vaccination-card/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

// Routes devuelve el subrouter de la cartilla; se monta en /persons/{personID}/card.
func Routes(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/", getCardHandler(svc))
	r.Post("/", addVaccinationHandler(svc))
	r.Get("/history", historyHandler(svc))
	r.Delete("/records/{recordID}", deleteRecordHandler(svc))
	return r
}

type addVaccinationRequest struct {
	VaccineID       string            `json:"vaccine_id"`
	Dose            vaccines.DoseKind `json:"dose" enums:"FIRST,SECOND,THIRD,SINGLE,BOOSTER,FIRST_BOOSTER,SECOND_BOOSTER"`
	ApplicationDate string            `json:"application_date"` // YYYY-MM-DD
}

type doseStatusResponse struct {
	DoseType        vaccines.DoseKind `json:"dose_type"`
	Status          DoseStatus        `json:"status" enums:"TAKEN,MISSING,NOT_APPLICABLE"`
	RecordID        *string           `json:"record_id"`
	ApplicationDate *web.Date         `json:"application_date" swaggertype:"string"`
}

type vaccineStatusResponse struct {
	VaccineID   string               `json:"vaccine_id"`
	VaccineName string               `json:"vaccine_name"`
	Category    vaccines.Category    `json:"category"`
	Doses       []doseStatusResponse `json:"doses"`
}

type cardResponse struct {
	Person   persons.PersonResponse  `json:"person"`
	Vaccines []vaccineStatusResponse `json:"vaccines"`
}

type historyEntryResponse struct {
	RecordID        string            `json:"record_id"`
	VaccineID       string            `json:"vaccine_id"`
	VaccineName     string            `json:"vaccine_name"`
	Dose            vaccines.DoseKind `json:"dose"`
	ApplicationDate web.Date          `json:"application_date" swaggertype:"string"`
	RecordedBy      string            `json:"recorded_by,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// getCardHandler godoc
// @Summary Obtener cartilla
// @Description Grilla vacuna x tipo de dosis con estado TAKEN, MISSING o NOT_APPLICABLE.
// @Tags card
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param category query string false "NATIONAL_CARD u OTHER"
// @Success 200 {object} cardResponse
// @Failure 400 {string} string "invalid category"
// @Failure 404 {string} string "person not found"
// @Router /api/persons/{personID}/card [get]
func getCardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := vaccines.CategoryQuery(r)
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}

		card, err := svc.GetCard(r.Context(), chi.URLParam(r, "personID"), category)
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toCardResponse(card))
	}
}

// addVaccinationHandler godoc
// @Summary Registrar dosis
// @Description Valida la secuencia de dosis, registra la aplicación y devuelve la cartilla actualizada.
// @Tags card
// @Accept json
// @Produce json
// @Param personID path string true "ID de la persona"
// @Param payload body addVaccinationRequest true "Dosis aplicada"
// @Success 201 {object} cardResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "person or vaccine not found"
// @Failure 409 {string} string "dose already recorded"
// @Failure 422 {string} string "business rule violation"
// @Router /api/persons/{personID}/card [post]
func addVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addVaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var appDate time.Time
		if strings.TrimSpace(req.ApplicationDate) != "" {
			t, err := time.Parse(web.DateLayout, strings.TrimSpace(req.ApplicationDate))
			if err != nil {
				http.Error(w, "application_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			appDate = t
		}

		card, err := svc.AddVaccination(r.Context(), chi.URLParam(r, "personID"), AddInput{
			VaccineID:       req.VaccineID,
			Dose:            req.Dose,
			ApplicationDate: appDate,
			RecordedBy:      middleware.UserID(r.Context()),
		})
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toCardResponse(card))
	}
}

// historyHandler godoc
// @Summary Historial de vacunación
// @Tags card
// @Produce json
// @Param personID path string true "ID de la persona"
// @Success 200 {array} historyEntryResponse
// @Failure 404 {string} string "person not found"
// @Router /api/persons/{personID}/card/history [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.History(r.Context(), chi.URLParam(r, "personID"))
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}

		out := make([]historyEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, historyEntryResponse{
				RecordID:        e.RecordID,
				VaccineID:       e.VaccineID,
				VaccineName:     e.VaccineName,
				Dose:            e.Dose,
				ApplicationDate: web.Date(e.ApplicationDate),
				RecordedBy:      e.RecordedBy,
				CreatedAt:       e.CreatedAt,
			})
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

// deleteRecordHandler godoc
// @Summary Eliminar registro de vacunación
// @Tags card
// @Param personID path string true "ID de la persona"
// @Param recordID path string true "ID del registro"
// @Success 204
// @Failure 404 {string} string "vaccination record not found"
// @Router /api/persons/{personID}/card/records/{recordID} [delete]
func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.DeleteRecord(r.Context(), chi.URLParam(r, "personID"), chi.URLParam(r, "recordID"))
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toCardResponse(c Card) cardResponse {
	rows := make([]vaccineStatusResponse, 0, len(c.Vaccines))
	for _, v := range c.Vaccines {
		doses := make([]doseStatusResponse, 0, len(v.Doses))
		for _, d := range v.Doses {
			ds := doseStatusResponse{DoseType: d.Dose, Status: d.Status}
			if d.Status == StatusTaken {
				id := d.RecordID
				ds.RecordID = &id
				ds.ApplicationDate = web.DatePtr(d.ApplicationDate)
			}
			doses = append(doses, ds)
		}
		rows = append(rows, vaccineStatusResponse{
			VaccineID:   v.VaccineID,
			VaccineName: v.VaccineName,
			Category:    v.Category,
			Doses:       doses,
		})
	}
	return cardResponse{
		Person:   persons.ToResponse(c.Person),
		Vaccines: rows,
	}
}
