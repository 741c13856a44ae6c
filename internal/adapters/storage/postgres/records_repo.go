package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vaccination-card/internal/domain/vaccination"
	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/sentinel"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

const recordColumns = `id, person_id, vaccine_id, dose, application_date, recorded_by, created_at`

// Create devuelve ErrConflict si la restricción única (persona, vacuna, dosis)
// rechaza el insert, aunque el validador ya lo haya chequeado.
func (r *RecordsRepo) Create(ctx context.Context, rec vaccination.Record) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO vaccination_records (`+recordColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		rec.ID,
		rec.PersonID,
		rec.VaccineID,
		string(rec.Dose),
		rec.ApplicationDate,
		rec.RecordedBy,
		rec.CreatedAt,
	)
	return mapErr(err)
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (vaccination.Record, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM vaccination_records WHERE id = $1
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return vaccination.Record{}, sentinel.ErrNotFound
	}
	return rec, err
}

func (r *RecordsRepo) ListByPerson(ctx context.Context, personID string) ([]vaccination.Record, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM vaccination_records
		WHERE person_id = $1
		ORDER BY application_date ASC, created_at ASC, id ASC
	`, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccination.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) Exists(ctx context.Context, personID, vaccineID string, dose vaccines.DoseKind) (bool, error) {
	var ok bool
	err := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM vaccination_records
			WHERE person_id = $1 AND vaccine_id = $2 AND dose = $3
		)
	`, personID, vaccineID, string(dose)).Scan(&ok)
	return ok, err
}

func (r *RecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM vaccination_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) DeleteByPerson(ctx context.Context, personID string) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM vaccination_records WHERE person_id = $1`, personID)
	return err
}

func (r *RecordsRepo) ExistsForVaccine(ctx context.Context, vaccineID string) (bool, error) {
	var ok bool
	err := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM vaccination_records WHERE vaccine_id = $1)
	`, vaccineID).Scan(&ok)
	return ok, err
}

func scanRecord(s scanner) (vaccination.Record, error) {
	var (
		rec  vaccination.Record
		dose string
	)
	if err := s.Scan(&rec.ID, &rec.PersonID, &rec.VaccineID, &dose, &rec.ApplicationDate, &rec.RecordedBy, &rec.CreatedAt); err != nil {
		return vaccination.Record{}, err
	}
	rec.Dose = vaccines.DoseKind(dose)
	return rec, nil
}
