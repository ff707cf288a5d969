package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"found-pets/internal/domain/pets"
)

// Fechas como TEXT: found_on en YYYY-MM-DD, timestamps en UTC con ancho fijo
// (9 decimales siempre) para que ORDER BY created_at ordene como el tiempo.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const selectPet = `
	SELECT
		id, name, species, address,
		found_on, created_at, updated_at
	FROM pets
`

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, selectPet+` ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}
	return getByID(ctx, r.db, id)
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species, address,
			found_on, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?)
	`,
		p.ID,
		p.Name,
		string(p.Species),
		p.Address,
		toNullDate(p.FoundOn),
		p.CreatedAt.UTC().Format(tsLayout),
		p.UpdatedAt.UTC().Format(tsLayout),
	)
	if err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (r *PetsRepo) Update(ctx context.Context, id string, mutate pets.MutateFunc) (pets.Pet, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getByID(ctx, tx, id)
	if err != nil {
		return pets.Pet{}, err
	}

	next := current
	if err := mutate(&next); err != nil {
		return pets.Pet{}, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt

	if _, err := tx.ExecContext(ctx, `
		UPDATE pets
		SET name = ?, species = ?, address = ?, found_on = ?, updated_at = ?
		WHERE id = ?
	`,
		next.Name,
		string(next.Species),
		next.Address,
		toNullDate(next.FoundOn),
		next.UpdatedAt.UTC().Format(tsLayout),
		next.ID,
	); err != nil {
		return pets.Pet{}, fmt.Errorf("update pet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return pets.Pet{}, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getByID(ctx context.Context, q queryer, id string) (pets.Pet, error) {
	p, err := scanPet(q.QueryRowContext(ctx, selectPet+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p                  pets.Pet
		species            string
		foundOn            sql.NullString
		createdAt, updated string
	)
	if err := s.Scan(&p.ID, &p.Name, &species, &p.Address, &foundOn, &createdAt, &updated); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	if foundOn.Valid && foundOn.String != "" {
		t, err := time.Parse(pets.DateLayout, foundOn.String)
		if err != nil {
			return pets.Pet{}, fmt.Errorf("parse found_on %q: %w", foundOn.String, err)
		}
		p.FoundOn = &t
	}

	var err error
	if p.CreatedAt, err = time.Parse(tsLayout, createdAt); err != nil {
		return pets.Pet{}, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(tsLayout, updated); err != nil {
		return pets.Pet{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return p, nil
}

func toNullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(pets.DateLayout), Valid: true}
}
