package router

import (
	"encoding/json"
	"net/http"

	mem "found-pets/internal/adapters/storage/memory"
	_ "found-pets/internal/docs" // registra el doc swagger
	"found-pets/internal/domain/pets"
	"found-pets/internal/middleware"
	"found-pets/internal/platform/config"
	"found-pets/internal/platform/logger"
	"found-pets/internal/views"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si es nil se usa el repo in-memory.
	PetRepo   pets.Repository
	StoreKind config.StoreKind

	Logger logger.Logger // nil => Nop
	Views  pets.Renderer // nil => templates embebidos
}

// HealthResponse es el body de GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// NewRouter arma la tabla de rutas una sola vez; después no se modifica.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	view := opts.Views
	if view == nil {
		view = views.MustNew()
	}
	repo := opts.PetRepo
	kind := opts.StoreKind
	if repo == nil {
		repo = mem.NewPetRepo()
		kind = config.StoreMemory
	}
	if kind == "" {
		kind = config.StoreMemory
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log, pets.InternalError(view, log)))
	r.Use(middleware.MethodOverride)

	r.NotFound(pets.NotFound(view, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Store: string(kind)})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	petsSvc := pets.NewService(repo)
	pets.RegisterRoutes(r, petsSvc, view, log)

	return r
}
