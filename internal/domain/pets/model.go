package pets

import "time"

// Species define las especies aceptadas.
// @Enum dog, cat, bird, horse
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesBird  Species = "bird"
	SpeciesHorse Species = "horse"
)

// AllSpecies es el conjunto cerrado, en el orden en que se muestra en el formulario.
var AllSpecies = []Species{SpeciesDog, SpeciesCat, SpeciesBird, SpeciesHorse}

func (s Species) Valid() bool {
	for _, v := range AllSpecies {
		if s == v {
			return true
		}
	}
	return false
}

// DateLayout es el formato de found_on en formularios (input type=date).
const DateLayout = "2006-01-02"

// Pet representa una mascota encontrada.
type Pet struct {
	ID string

	Name    string
	Species Species // vacío = sin especificar
	Address string

	FoundOn *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Persisted indica si el registro ya tiene id asignado (candidato vs guardado).
func (p Pet) Persisted() bool {
	return p.ID != ""
}

// FoundOnString devuelve found_on como YYYY-MM-DD o "" si no hay fecha.
func (p Pet) FoundOnString() string {
	if p.FoundOn == nil {
		return ""
	}
	return p.FoundOn.Format(DateLayout)
}

// Fields son los únicos atributos asignables desde afuera.
// Punteros: nil = no enviado, no tocar.
type Fields struct {
	Name    *string
	Species *string
	Address *string
	FoundOn *string // YYYY-MM-DD; inválido o vacío => sin fecha
}

// Apply copia en p los campos presentes. No valida.
func (f Fields) Apply(p *Pet) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Species != nil {
		p.Species = Species(*f.Species)
	}
	if f.Address != nil {
		p.Address = *f.Address
	}
	if f.FoundOn != nil {
		p.FoundOn = parseDate(*f.FoundOn)
	}
}

// parseDate se comporta como el cast de una columna date: lo que no es fecha queda nil.
func parseDate(s string) *time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
