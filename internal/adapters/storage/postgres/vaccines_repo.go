package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgtype"

	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/sentinel"
)

type VaccinesRepo struct {
	db *sql.DB

	// types escanea TEXT[] a través de database/sql.
	types *pgtype.Map
}

func NewVaccinesRepo(db *sql.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db, types: pgtype.NewMap()}
}

func (r *VaccinesRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO vaccines (id, name, category, schedule, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		v.ID,
		v.Name,
		string(v.Category),
		scheduleToText(v.Schedule),
		v.CreatedAt,
	)
	return mapErr(err)
}

func (r *VaccinesRepo) GetByID(ctx context.Context, id string) (vaccines.Vaccine, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, name, category, schedule, created_at FROM vaccines WHERE id = $1
	`, id)
	return r.scanVaccine(row)
}

func (r *VaccinesRepo) List(ctx context.Context, f vaccines.ListFilter) ([]vaccines.Vaccine, error) {
	var category *string
	if f.Category != nil {
		c := string(*f.Category)
		category = &c
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT id, name, category, schedule, created_at
		FROM vaccines
		WHERE ($1::text IS NULL OR category = $1)
		ORDER BY name ASC, id ASC
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.Vaccine, 0)
	for rows.Next() {
		v, err := r.scanVaccine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Delete devuelve ErrConflict (FK RESTRICT) si hay registros que la usan.
func (r *VaccinesRepo) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM vaccines WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (r *VaccinesRepo) scanVaccine(s scanner) (vaccines.Vaccine, error) {
	var (
		v        vaccines.Vaccine
		category string
		schedule []string
	)
	err := s.Scan(&v.ID, &v.Name, &category, r.types.SQLScanner(&schedule), &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return vaccines.Vaccine{}, sentinel.ErrNotFound
	}
	if err != nil {
		return vaccines.Vaccine{}, err
	}

	v.Category = vaccines.Category(category)
	v.Schedule = make([]vaccines.DoseKind, 0, len(schedule))
	for _, d := range schedule {
		v.Schedule = append(v.Schedule, vaccines.DoseKind(d))
	}
	return v, nil
}

func scheduleToText(schedule []vaccines.DoseKind) []string {
	out := make([]string, 0, len(schedule))
	for _, d := range schedule {
		out = append(out, string(d))
	}
	return out
}
