package vaccines

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vaccination-card/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vaccines", func(vr chi.Router) {
		vr.Post("/", createVaccineHandler(svc))
		vr.Get("/", listVaccinesHandler(svc))
		vr.Get("/{vaccineID}", getVaccineHandler(svc))
		vr.Delete("/{vaccineID}", deleteVaccineHandler(svc))
	})
}

// createVaccineRequest es el cuerpo para registrar una vacuna.
type createVaccineRequest struct {
	Name         string     `json:"name"`
	Category     Category   `json:"category" enums:"NATIONAL_CARD,OTHER"`
	DoseSchedule []DoseKind `json:"dose_schedule"`
}

// vaccineResponse representa una vacuna y su esquema de dosis.
type vaccineResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     Category   `json:"category"`
	DoseSchedule []DoseKind `json:"dose_schedule"`
	CreatedAt    time.Time  `json:"created_at"`
}

// createVaccineHandler godoc
// @Summary Registrar vacuna
// @Description Crea una vacuna con su categoría y esquema de dosis (tipos de dosis válidos, sin repetidos). El nombre es único.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param payload body createVaccineRequest true "Vacuna"
// @Success 201 {object} vaccineResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "vaccine name already exists"
// @Router /api/vaccines [post]
func createVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			Category: req.Category,
			Schedule: req.DoseSchedule,
		})
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}

		web.WriteJSON(w, http.StatusCreated, toVaccineResponse(v))
	}
}

// listVaccinesHandler godoc
// @Summary Listar vacunas
// @Description Lista las vacunas ordenadas por nombre, opcionalmente filtradas por categoría.
// @Tags vaccines
// @Produce json
// @Param category query string false "NATIONAL_CARD u OTHER"
// @Success 200 {array} vaccineResponse
// @Failure 400 {string} string "invalid category"
// @Failure 401 {string} string "unauthorized"
// @Router /api/vaccines [get]
func listVaccinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := CategoryQuery(r)
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}

		items, err := svc.List(r.Context(), category)
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}

		out := make([]vaccineResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccineResponse(v))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

// getVaccineHandler godoc
// @Summary Obtener vacuna
// @Tags vaccines
// @Produce json
// @Param vaccineID path string true "ID de la vacuna"
// @Success 200 {object} vaccineResponse
// @Failure 404 {string} string "vaccine not found"
// @Router /api/vaccines/{vaccineID} [get]
func getVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vaccineID"))
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toVaccineResponse(v))
	}
}

// deleteVaccineHandler godoc
// @Summary Eliminar vacuna
// @Description Falla con 409 si hay registros de vacunación que la referencian.
// @Tags vaccines
// @Param vaccineID path string true "ID de la vacuna"
// @Success 204
// @Failure 404 {string} string "vaccine not found"
// @Failure 409 {string} string "vaccine has vaccination records"
// @Router /api/vaccines/{vaccineID} [delete]
func deleteVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "vaccineID")); err != nil {
			web.WriteError(w, svc.log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CategoryQuery lee ?category=; vacío => nil (todas). También lo usa la cartilla.
func CategoryQuery(r *http.Request) (*Category, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("category"))
	if raw == "" {
		return nil, nil
	}
	c, err := ParseCategory(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &c, nil
}

func toVaccineResponse(v Vaccine) vaccineResponse {
	return vaccineResponse{
		ID:           v.ID,
		Name:         v.Name,
		Category:     v.Category,
		DoseSchedule: v.Schedule,
		CreatedAt:    v.CreatedAt,
	}
}
