package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/platform/sentinel"
)

type PersonsRepo struct {
	db *sql.DB
}

func NewPersonsRepo(db *sql.DB) *PersonsRepo {
	return &PersonsRepo{db: db}
}

const personColumns = `id, name, cpf, birth_date, sex, created_at`

func (r *PersonsRepo) Create(ctx context.Context, p persons.Person) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO persons (`+personColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		p.ID,
		p.Name,
		p.CPF,
		p.BirthDate,
		string(p.Sex),
		p.CreatedAt,
	)
	return mapErr(err)
}

func (r *PersonsRepo) GetByID(ctx context.Context, id string) (persons.Person, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT `+personColumns+` FROM persons WHERE id = $1
	`, id)
	return scanPerson(row)
}

func (r *PersonsRepo) GetByCPF(ctx context.Context, cpf string) (persons.Person, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT `+personColumns+` FROM persons WHERE cpf = $1
	`, cpf)
	return scanPerson(row)
}

func (r *PersonsRepo) List(ctx context.Context) ([]persons.Person, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+personColumns+` FROM persons ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]persons.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete: los registros de vacunación caen por ON DELETE CASCADE.
func (r *PersonsRepo) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(s scanner) (persons.Person, error) {
	var (
		p   persons.Person
		sex string
	)
	err := s.Scan(&p.ID, &p.Name, &p.CPF, &p.BirthDate, &sex, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return persons.Person{}, sentinel.ErrNotFound
	}
	if err != nil {
		return persons.Person{}, err
	}
	p.Sex = persons.Sex(sex)
	return p, nil
}
