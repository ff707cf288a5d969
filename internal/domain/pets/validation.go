package pets

import (
	"strings"
)

const (
	MsgBlank       = "can't be blank"
	MsgNotIncluded = "is not included in the list"
)

// FieldError es un error asociado a un atributo.
type FieldError struct {
	Field   string
	Message string
}

// FullMessage arma "Name can't be blank".
func (e FieldError) FullMessage() string {
	return humanize(e.Field) + " " + e.Message
}

// ValidationErrors agrupa todas las violaciones de un registro.
// Vacío = válido.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v.FullMessages(), ", ")
}

func (v ValidationErrors) FullMessages() []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		out = append(out, e.FullMessage())
	}
	return out
}

// On devuelve los mensajes de un campo (para marcar el input en el form).
func (v ValidationErrors) On(field string) []string {
	var out []string
	for _, e := range v {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// Validate es pura: no toca storage y junta todas las violaciones, no solo la primera.
func Validate(p Pet) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: MsgBlank})
	}
	if p.Species != "" && !p.Species.Valid() {
		errs = append(errs, FieldError{Field: "species", Message: MsgNotIncluded})
	}

	return errs
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
