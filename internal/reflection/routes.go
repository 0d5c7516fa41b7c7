package reflection

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/analyze", h.Analyze)
	r.Post("/set-as-goal", h.SetAsGoal)

	return r
}
