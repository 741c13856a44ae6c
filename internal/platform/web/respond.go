package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vaccination-card/internal/platform/logger"
	"vaccination-card/internal/platform/sentinel"
)

// DateLayout es el formato de fechas (sin hora) en requests y responses.
const DateLayout = "2006-01-02"

// WriteJSON escribe v como JSON con el status indicado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError traduce la categoría del error a status HTTP. Los mensajes de
// input inválido, conflicto y reglas de negocio se devuelven tal cual.
func WriteError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, sentinel.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sentinel.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, sentinel.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, sentinel.ErrBusinessRule):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		if log != nil {
			log.Error("request failed", logger.Fields{"err": err})
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Date serializa time.Time como YYYY-MM-DD.
type Date time.Time

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

// DatePtr devuelve nil para el zero value.
func DatePtr(t time.Time) *Date {
	if t.IsZero() {
		return nil
	}
	d := Date(t)
	return &d
}
