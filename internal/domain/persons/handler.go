package persons

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"vaccination-card/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /persons; card (opcional) se monta en /persons/{personID}/card.
func RegisterRoutes(r chi.Router, svc *Service, card http.Handler) {
	r.Route("/persons", func(pr chi.Router) {
		pr.Post("/", createPersonHandler(svc))
		pr.Get("/", listPersonsHandler(svc))
		pr.Get("/search", searchPersonHandler(svc))
		pr.Get("/{personID}", getPersonHandler(svc))
		pr.Delete("/{personID}", deletePersonHandler(svc))

		if card != nil {
			pr.Mount("/{personID}/card", card)
		}
	})
}

type createPersonRequest struct {
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	Sex       string `json:"sex" enums:"male,female"`
}

// PersonResponse también se embebe en la cartilla.
type PersonResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	BirthDate web.Date  `json:"birth_date" swaggertype:"string" example:"1990-05-17"`
	Sex       Sex       `json:"sex"`
	CreatedAt time.Time `json:"created_at"`
}

// createPersonHandler godoc
// @Summary Registrar persona
// @Description Crea una persona. El CPF se normaliza a 11 dígitos y es único.
// @Tags persons
// @Accept json
// @Produce json
// @Param payload body createPersonRequest true "Persona"
// @Success 201 {object} PersonResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "cpf already registered"
// @Router /api/persons [post]
func createPersonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPersonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(web.DateLayout, strings.TrimSpace(req.BirthDate))
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = t
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			CPF:       req.CPF,
			BirthDate: bd,
			Sex:       req.Sex,
		})
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}

		web.WriteJSON(w, http.StatusCreated, ToResponse(p))
	}
}

// listPersonsHandler godoc
// @Summary Listar personas
// @Tags persons
// @Produce json
// @Success 200 {array} PersonResponse
// @Failure 401 {string} string "unauthorized"
// @Router /api/persons [get]
func listPersonsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}

		out := make([]PersonResponse, 0, len(items))
		for _, p := range items {
			out = append(out, ToResponse(p))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

// searchPersonHandler godoc
// @Summary Buscar persona por CPF
// @Tags persons
// @Produce json
// @Param cpf query string true "CPF con o sin máscara"
// @Success 200 {object} PersonResponse
// @Failure 400 {string} string "invalid cpf"
// @Failure 404 {string} string "person not found"
// @Router /api/persons/search [get]
func searchPersonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.SearchByCPF(r.Context(), r.URL.Query().Get("cpf"))
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

// getPersonHandler godoc
// @Summary Obtener persona
// @Tags persons
// @Produce json
// @Param personID path string true "ID de la persona"
// @Success 200 {object} PersonResponse
// @Failure 404 {string} string "person not found"
// @Router /api/persons/{personID} [get]
func getPersonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "personID"))
		if err != nil {
			web.WriteError(w, svc.log, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

// deletePersonHandler godoc
// @Summary Eliminar persona
// @Description Elimina la persona junto con todos sus registros de vacunación.
// @Tags persons
// @Param personID path string true "ID de la persona"
// @Success 204
// @Failure 404 {string} string "person not found"
// @Router /api/persons/{personID} [delete]
func deletePersonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "personID")); err != nil {
			web.WriteError(w, svc.log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToResponse(p Person) PersonResponse {
	return PersonResponse{
		ID:        p.ID,
		Name:      p.Name,
		CPF:       p.CPF,
		BirthDate: web.Date(p.BirthDate),
		Sex:       p.Sex,
		CreatedAt: p.CreatedAt,
	}
}
