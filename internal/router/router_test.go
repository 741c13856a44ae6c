package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/router"
)

const nurseID = "nurse-1"

func TestHTTP_EndToEnd_VaccinationCard(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// 1) Alta de persona y vacunas
	personID := createPerson(t, ts.URL, map[string]any{
		"name":       "Maria Silva",
		"cpf":        "123.456.789-09",
		"birth_date": "1990-05-17",
		"sex":        "female",
	})
	hepBID := createVaccine(t, ts.URL, "Hepatite B", "NATIONAL_CARD", "FIRST", "SECOND", "FIRST_BOOSTER", "SECOND_BOOSTER")
	bcgID := createVaccine(t, ts.URL, "BCG", "NATIONAL_CARD", "FIRST")
	createVaccine(t, ts.URL, "Febre Amarela", "OTHER", "SINGLE")

	// 2) Cartilla vacía: THIRD no aplica, el resto falta
	{
		st, body := doReq(t, ts.URL, "GET", "/api/persons/"+personID+"/card", nurseID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 card, got %d body=%s", st, string(body))
		}
		card := decodeCard(t, body)
		if len(card.Vaccines) != 3 {
			t.Fatalf("expected 3 vaccines, got %d", len(card.Vaccines))
		}
		if card.Person.CPF != "12345678909" || card.Person.BirthDate != "1990-05-17" {
			t.Fatalf("unexpected person in card: %+v", card.Person)
		}
		hep := card.row(hepBID)
		want := map[string]string{
			"FIRST": "MISSING", "SECOND": "MISSING", "THIRD": "NOT_APPLICABLE", "SINGLE": "NOT_APPLICABLE",
			"BOOSTER": "NOT_APPLICABLE", "FIRST_BOOSTER": "MISSING", "SECOND_BOOSTER": "MISSING",
		}
		if len(hep.Doses) != len(vaccines.AllDoseKinds()) {
			t.Fatalf("expected %d doses, got %d", len(vaccines.AllDoseKinds()), len(hep.Doses))
		}
		for _, d := range hep.Doses {
			if want[d.DoseType] != d.Status {
				t.Fatalf("dose %s: expected %s, got %s", d.DoseType, want[d.DoseType], d.Status)
			}
		}
	}

	// 3) Reglas de secuencia: 422 con el mensaje tal cual
	{
		st, body := addDose(t, ts.URL, personID, hepBID, "SECOND", "2024-01-10")
		expectRule(t, st, body, "1st dose is required before registering the 2nd dose.")

		st, body = addDose(t, ts.URL, personID, bcgID, "SECOND", "2024-01-10")
		expectRule(t, st, body, "The requested dose: 2nd dose is not applicable for the vaccine: BCG.")
	}

	// 4) Esquema completo de Hepatite B
	var card cardResponse
	for _, step := range []struct{ dose, date string }{
		{"FIRST", "2024-01-10"},
		{"SECOND", "2024-02-10"},
		{"FIRST_BOOSTER", "2024-06-10"},
	} {
		st, body := addDose(t, ts.URL, personID, hepBID, step.dose, step.date)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 for %s, got %d body=%s", step.dose, st, string(body))
		}
		card = decodeCard(t, body)
	}
	first := card.row(hepBID).dose("FIRST")
	if first.Status != "TAKEN" || first.RecordID == nil || first.ApplicationDate == nil || *first.ApplicationDate != "2024-01-10" {
		t.Fatalf("unexpected FIRST cell: %+v", first)
	}

	// 5) Duplicado
	{
		st, body := addDose(t, ts.URL, personID, hepBID, "FIRST", "2024-03-01")
		expectRule(t, st, body, "1st dose already recorded for this person.")
	}

	// 6) Filtro por categoría
	{
		st, body := doReq(t, ts.URL, "GET", "/api/persons/"+personID+"/card?category=OTHER", nurseID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		if c := decodeCard(t, body); len(c.Vaccines) != 1 || c.Vaccines[0].VaccineName != "Febre Amarela" {
			t.Fatalf("expected only Febre Amarela, got %+v", c.Vaccines)
		}

		st, _ = doReq(t, ts.URL, "GET", "/api/persons/"+personID+"/card?category=PRIVATE", nurseID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown category, got %d", st)
		}
	}

	// 7) Historial con quien registró la dosis
	{
		st, body := doReq(t, ts.URL, "GET", "/api/persons/"+personID+"/card/history", nurseID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d", st)
		}
		var entries []struct {
			Dose            string `json:"dose"`
			ApplicationDate string `json:"application_date"`
			RecordedBy      string `json:"recorded_by"`
		}
		if err := json.Unmarshal(body, &entries); err != nil {
			t.Fatalf("decode history: %v", err)
		}
		if len(entries) != 3 || entries[0].Dose != "FIRST" || entries[2].Dose != "FIRST_BOOSTER" {
			t.Fatalf("unexpected history: %+v", entries)
		}
		if entries[0].RecordedBy != nurseID {
			t.Fatalf("expected recorded_by %s, got %q", nurseID, entries[0].RecordedBy)
		}
	}

	// 8) Vacuna en uso no se borra
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/vaccines/"+hepBID, nurseID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 deleting vaccine in use, got %d", st)
		}
	}

	// 9) Borrar un registro
	{
		recordID := *card.row(hepBID).dose("FIRST_BOOSTER").RecordID
		st, _ := doReq(t, ts.URL, "DELETE", "/api/persons/"+personID+"/card/records/"+recordID, nurseID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 deleting record, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/api/persons/"+personID+"/card/records/"+recordID, nurseID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}

	// 10) Borrar la persona libera la vacuna
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/persons/"+personID, nurseID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 deleting person, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/persons/"+personID+"/card", nurseID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 card after delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/api/vaccines/"+hepBID, nurseID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 deleting vaccine, got %d", st)
		}
	}
}

func TestHTTP_PersonsAndErrors(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/api/persons", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}

	personID := createPerson(t, ts.URL, map[string]any{
		"name": "João Souza", "cpf": "98765432100", "birth_date": "1985-01-02", "sex": "male",
	})

	st, body := doReq(t, ts.URL, "GET", "/api/persons/search?cpf=987.654.321-00", nurseID, nil)
	if st != http.StatusOK || !strings.Contains(string(body), personID) {
		t.Fatalf("expected search hit, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/persons", nurseID, map[string]any{
		"name": "Dup", "cpf": "98765432100", "birth_date": "1985-01-02", "sex": "male",
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate cpf, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/persons", nurseID, map[string]any{
		"name": "Bad", "cpf": "123", "birth_date": "1985-01-02", "sex": "male",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for short cpf, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/api/persons/missing", nurseID, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}

	st, _ = addDose(t, ts.URL, personID, "missing-vaccine", "FIRST", "2024-01-01")
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown vaccine, got %d", st)
	}

	bcgID := createVaccine(t, ts.URL, "BCG", "NATIONAL_CARD", "FIRST")
	st, _ = addDose(t, ts.URL, personID, bcgID, "FIRST", "2999-01-01")
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for future date, got %d", st)
	}
	st, _ = addDose(t, ts.URL, personID, bcgID, "FIRST", "01/01/2024")
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date format, got %d", st)
	}
}

func TestHTTP_OpsEndpointsAndCatalogSeed(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Catalog: []vaccines.CreateInput{
			{Name: "BCG", Category: vaccines.CategoryNationalCard, Schedule: []vaccines.DoseKind{vaccines.DoseFirst}},
		},
	}))
	defer ts.Close()

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}

	st, body := doReq(t, ts.URL, "GET", "/api/vaccines", nurseID, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"name":"BCG"`) {
		t.Fatalf("expected seeded BCG, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "vaccination_card_vaccines_created_total 1") {
		t.Fatalf("expected vaccines counter in metrics, got %d", st)
	}

	if st, _ := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil); st != http.StatusOK {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

// -------------------------
// Helpers
// -------------------------

type doseCell struct {
	DoseType        string  `json:"dose_type"`
	Status          string  `json:"status"`
	RecordID        *string `json:"record_id"`
	ApplicationDate *string `json:"application_date"`
}

type vaccineRow struct {
	VaccineID   string     `json:"vaccine_id"`
	VaccineName string     `json:"vaccine_name"`
	Category    string     `json:"category"`
	Doses       []doseCell `json:"doses"`
}

type cardResponse struct {
	Person struct {
		ID        string `json:"id"`
		CPF       string `json:"cpf"`
		BirthDate string `json:"birth_date"`
	} `json:"person"`
	Vaccines []vaccineRow `json:"vaccines"`
}

func (c cardResponse) row(vaccineID string) vaccineRow {
	for _, v := range c.Vaccines {
		if v.VaccineID == vaccineID {
			return v
		}
	}
	return vaccineRow{}
}

func (v vaccineRow) dose(kind string) doseCell {
	for _, d := range v.Doses {
		if d.DoseType == kind {
			return d
		}
	}
	return doseCell{}
}

func decodeCard(t *testing.T, body []byte) cardResponse {
	t.Helper()
	var c cardResponse
	if err := json.Unmarshal(body, &c); err != nil {
		t.Fatalf("decode card: %v body=%s", err, string(body))
	}
	return c
}

func expectRule(t *testing.T, status int, body []byte, message string) {
	t.Helper()
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", status, string(body))
	}
	if got := strings.TrimSpace(string(body)); got != message {
		t.Fatalf("expected message %q, got %q", message, got)
	}
}

func createPerson(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/api/persons", nurseID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating person, got %d body=%s", st, string(body))
	}
	return decodeID(t, body)
}

func createVaccine(t *testing.T, baseURL, name, category string, schedule ...string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/api/vaccines", nurseID, map[string]any{
		"name":          name,
		"category":      category,
		"dose_schedule": schedule,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating vaccine, got %d body=%s", st, string(body))
	}
	return decodeID(t, body)
}

func addDose(t *testing.T, baseURL, personID, vaccineID, dose, date string) (int, []byte) {
	t.Helper()
	return doReq(t, baseURL, "POST", "/api/persons/"+personID+"/card", nurseID, map[string]any{
		"vaccine_id":       vaccineID,
		"dose":             dose,
		"application_date": date,
	})
}

func decodeID(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.ID == "" {
		t.Fatalf("decode id: %v body=%s", err, string(body))
	}
	return out.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
