// Package views renderiza las páginas HTML con html/template.
// Los templates van embebidos en el binario; el dato de cada página lo arma el handler.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
)

//go:embed templates/*.html
var files embed.FS

// Nombres de página.
const (
	PageIndex = "index"
	PageShow  = "show"
	PageNew   = "new"
	PageEdit  = "edit"
	PageError = "error"
)

// PetPath es la URL de una mascota; la usan los templates y los redirects.
func PetPath(id string) string {
	return "/pets/" + url.PathEscape(id)
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"petPath": PetPath,
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{PageIndex, PageShow, PageNew, PageEdit, PageError} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files,
			"templates/layout.html",
			"templates/_form.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustNew es para wiring en main/tests donde un template roto es un bug.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render ejecuta a un buffer primero para no mandar HTML a medias con status 200.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
