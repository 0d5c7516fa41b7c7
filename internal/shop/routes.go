package shop

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/cosmetics", h.Catalog)
	r.Post("/cosmetics/{id}/purchase", h.Purchase)
	r.Post("/premium/activate", h.ActivatePremium)

	return r
}
