package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"found-pets/internal/domain/pets"
)

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
	defer rows.Close()

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
	return getByID(ctx, r.db, selectPet+` WHERE id = $1`, id)
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species, address,
			found_on, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		p.ID,
		p.Name,
		string(p.Species),
		p.Address,
		toNullDate(p.FoundOn),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

// Update bloquea la fila (FOR UPDATE) durante validar-y-guardar.
func (r *PetsRepo) Update(ctx context.Context, id string, mutate pets.MutateFunc) (pets.Pet, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getByID(ctx, tx, selectPet+` WHERE id = $1 FOR UPDATE`, id)
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
		SET
			name = $2,
			species = $3,
			address = $4,
			found_on = $5,
			updated_at = $6
		WHERE id = $1
	`,
		next.ID,
		next.Name,
		string(next.Species),
		next.Address,
		toNullDate(next.FoundOn),
		next.UpdatedAt,
	); err != nil {
		return pets.Pet{}, fmt.Errorf("update pet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return pets.Pet{}, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
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

func getByID(ctx context.Context, q queryer, query, id string) (pets.Pet, error) {
	p, err := scanPet(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	var species string
	var fo sql.NullTime
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&species,
		&p.Address,
		&fo,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	if fo.Valid {
		// found_on es DATE: pgx lo entrega como medianoche UTC
		t := time.Date(fo.Time.Year(), fo.Time.Month(), fo.Time.Day(), 0, 0, 0, 0, time.UTC)
		p.FoundOn = &t
	}
	return p, nil
}

func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
