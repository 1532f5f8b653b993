package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/api/middleware"
)

// NewRouter builds the API router for the upload queue.
func NewRouter(service UploadService) http.Handler {
	handler := NewTaskHandler(service)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/tasks", handler.SubmitTask)
		r.Get("/queue", handler.GetQueue)
		r.Get("/stats", handler.GetStats)
	})

	return r
}
