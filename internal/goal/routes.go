package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/done", h.MarkDone)
	r.Post("/{id}/skip", h.Skip)
	r.Post("/{id}/reactivate", h.Reactivate)
	r.Delete("/{id}", h.Delete)

	return r
}
