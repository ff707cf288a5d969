package pets

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven todos los adapters cuando el id no existe.
var ErrNotFound = errors.New("pet not found")

// MutateFunc modifica el registro cargado. Si devuelve error no se escribe nada.
type MutateFunc func(p *Pet) error

type Repository interface {
	List(ctx context.Context) ([]Pet, error)
	GetByID(ctx context.Context, id string) (Pet, error)
	Create(ctx context.Context, p Pet) error
	// Update carga, muta y guarda como una sola operación atómica.
	Update(ctx context.Context, id string, mutate MutateFunc) (Pet, error)
	Delete(ctx context.Context, id string) error
}
