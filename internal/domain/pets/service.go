package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) Find(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// New arma un candidato vacío para el formulario de alta.
func (s *Service) New() Pet {
	return Pet{}
}

// Create construye el candidato, valida y recién ahí persiste.
// Con ValidationErrors devuelve el candidato (sin id) para re-mostrar el form.
func (s *Service) Create(ctx context.Context, in Fields) (Pet, error) {
	var p Pet
	in.Apply(&p)

	if errs := Validate(p); len(errs) > 0 {
		return p, errs
	}

	now := s.timestamp()
	p.ID = s.newID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Update aplica los campos presentes sobre el registro actual y revalida todo.
// O entran todos los cambios o ninguno.
func (s *Service) Update(ctx context.Context, id string, in Fields) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}

	var candidate Pet
	updated, err := s.repo.Update(ctx, id, func(p *Pet) error {
		in.Apply(p)
		candidate = *p

		if errs := Validate(*p); len(errs) > 0 {
			return errs
		}
		p.UpdatedAt = s.timestamp()
		return nil
	})
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return candidate, verrs
		}
		return Pet{}, err
	}
	return updated, nil
}

// timestamp trunca a microsegundos, la precisión de TIMESTAMPTZ, para que lo
// devuelto por Create/Update sea igual a lo que después lee Find en cualquier store.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
