package pets

import (
	"errors"
	"net/http"
	"net/url"

	"found-pets/internal/platform/logger"
	"found-pets/internal/views"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Renderer es lo único que el handler necesita de views.
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}

// Datos de cada página.
type (
	IndexPage struct {
		Pets   []Pet
		Notice string
	}
	ShowPage struct {
		Pet    Pet
		Notice string
	}
	FormPage struct {
		Pet     Pet
		Errors  ValidationErrors
		Species []Species
	}
	ErrorPage struct {
		Status  int
		Title   string
		Message string
	}
)

// Códigos de notice en el redirect; el texto lo fija el server, no el query string.
var notices = map[string]string{
	"created":   "Pet was successfully created.",
	"updated":   "Pet was successfully updated.",
	"destroyed": "Pet was successfully destroyed.",
}

type handler struct {
	svc  *Service
	view Renderer
	log  logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, view Renderer, log logger.Logger) {
	h := &handler{svc: svc, view: view, log: log}

	r.Get("/", h.index)

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", h.index)
		pr.Post("/", h.create)

		// chi prioriza el segmento estático /new sobre {petID}
		pr.Get("/new", h.newForm)

		pr.Route("/{petID}", func(ir chi.Router) {
			ir.Get("/", h.show)
			ir.Get("/edit", h.edit)
			ir.Patch("/", h.update)
			ir.Put("/", h.update)
			ir.Delete("/", h.destroy)
		})
	})
}

// NotFound renderiza la página 404; el router la usa también para rutas desconocidas.
func NotFound(view Renderer, log logger.Logger) http.HandlerFunc {
	h := &handler{view: view, log: log}
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderError(w, r, http.StatusNotFound, "The page you were looking for doesn't exist.")
	}
}

// InternalError es el fallback del middleware de recover.
func InternalError(view Renderer, log logger.Logger) http.HandlerFunc {
	h := &handler{view: view, log: log}
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderError(w, r, http.StatusInternalServerError, "We're sorry, but something went wrong.")
	}
}

// index godoc
// @Summary List pets
// @Produce html
// @Success 200
// @Router /pets [get]
func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.failure(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, views.PageIndex, IndexPage{
		Pets:   items,
		Notice: noticeFrom(r),
	})
}

// show godoc
// @Summary Show a pet
// @Produce html
// @Param petID path string true "Pet ID"
// @Success 200
// @Failure 404
// @Router /pets/{petID} [get]
func (h *handler) show(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Find(r.Context(), chi.URLParam(r, "petID"))
	if err != nil {
		h.failure(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, views.PageShow, ShowPage{Pet: p, Notice: noticeFrom(r)})
}

// newForm godoc
// @Summary New pet form
// @Produce html
// @Success 200
// @Router /pets/new [get]
func (h *handler) newForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageNew, h.form(h.svc.New(), nil))
}

// create godoc
// @Summary Create a pet
// @Accept x-www-form-urlencoded
// @Produce html
// @Param pet[name] formData string true "Name"
// @Param pet[species] formData string false "Species" Enums(dog, cat, bird, horse)
// @Param pet[address] formData string false "Address"
// @Param pet[found_on] formData string false "Found on (YYYY-MM-DD)"
// @Success 302
// @Failure 422
// @Router /pets [post]
func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.fields(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			h.render(w, r, http.StatusUnprocessableEntity, views.PageNew, h.form(p, verrs))
			return
		}
		h.failure(w, r, err)
		return
	}

	h.log.Info("pet created", map[string]any{"request_id": chimw.GetReqID(r.Context()), "pet_id": p.ID})
	redirect(w, r, views.PetPath(p.ID), "created", http.StatusFound)
}

// edit godoc
// @Summary Edit pet form
// @Produce html
// @Param petID path string true "Pet ID"
// @Success 200
// @Failure 404
// @Router /pets/{petID}/edit [get]
func (h *handler) edit(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Find(r.Context(), chi.URLParam(r, "petID"))
	if err != nil {
		h.failure(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, views.PageEdit, h.form(p, nil))
}

// update godoc
// @Summary Update a pet
// @Accept x-www-form-urlencoded
// @Produce html
// @Param petID path string true "Pet ID"
// @Param pet[name] formData string false "Name"
// @Param pet[species] formData string false "Species" Enums(dog, cat, bird, horse)
// @Param pet[address] formData string false "Address"
// @Param pet[found_on] formData string false "Found on (YYYY-MM-DD)"
// @Success 302
// @Failure 404
// @Failure 422
// @Router /pets/{petID} [patch]
func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	in, ok := h.fields(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "petID"), in)
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			h.render(w, r, http.StatusUnprocessableEntity, views.PageEdit, h.form(p, verrs))
			return
		}
		h.failure(w, r, err)
		return
	}

	h.log.Info("pet updated", map[string]any{"request_id": chimw.GetReqID(r.Context()), "pet_id": p.ID})
	redirect(w, r, views.PetPath(p.ID), "updated", http.StatusFound)
}

// destroy godoc
// @Summary Delete a pet
// @Param petID path string true "Pet ID"
// @Success 303
// @Failure 404
// @Router /pets/{petID} [delete]
func (h *handler) destroy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "petID")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.failure(w, r, err)
		return
	}

	h.log.Info("pet destroyed", map[string]any{"request_id": chimw.GetReqID(r.Context()), "pet_id": id})
	// 303 para que el cliente siga con GET y no repita el DELETE
	redirect(w, r, "/pets", "destroyed", http.StatusSeeOther)
}

// fields parsea el form; si no se puede, ya respondió (415 o 400).
func (h *handler) fields(w http.ResponseWriter, r *http.Request) (Fields, bool) {
	in, err := ParseFields(r)
	switch {
	case err == nil:
		return in, true
	case errors.Is(err, ErrUnsupportedMedia):
		h.renderError(w, r, http.StatusUnsupportedMediaType, "Send the form as application/x-www-form-urlencoded or multipart/form-data.")
	default:
		h.renderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
	}
	return Fields{}, false
}

func (h *handler) form(p Pet, errs ValidationErrors) FormPage {
	return FormPage{Pet: p, Errors: errs, Species: AllSpecies}
}

// failure mapea errores de dominio a páginas de error.
func (h *handler) failure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		h.renderError(w, r, http.StatusNotFound, "The pet you were looking for doesn't exist.")
		return
	}

	h.log.Error("request failed", map[string]any{
		"request_id": chimw.GetReqID(r.Context()),
		"path":       r.URL.Path,
		"err":        err,
	})
	h.renderError(w, r, http.StatusInternalServerError, "We're sorry, but something went wrong.")
}

func (h *handler) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, status, views.PageError, ErrorPage{
		Status:  status,
		Title:   http.StatusText(status),
		Message: msg,
	})
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.view.Render(w, status, page, data); err != nil {
		// no se escribió nada todavía: Render ejecuta a buffer
		h.log.Error("render failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"page":       page,
			"err":        err,
		})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, path, notice string, status int) {
	if notice != "" {
		path += "?" + url.Values{"notice": {notice}}.Encode()
	}
	http.Redirect(w, r, path, status)
}

func noticeFrom(r *http.Request) string {
	return notices[r.URL.Query().Get("notice")]
}
