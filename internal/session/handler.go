package session

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ubloom/engine/internal/config"
)

// Bootstrapper seeds the progress aggregate from the external login backend.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, username string, coins, streak int)
}

// BootstrapDTO is the payload the external login backend hands over after a
// successful authentication. Validating credentials is not this engine's
// concern.
type BootstrapDTO struct {
	Username string `json:"username"`
	Coins    int    `json:"coins"`
	Streak   int    `json:"streak"`
}

type Handler struct {
	progress Bootstrapper
}

func NewHandler(progress Bootstrapper) *Handler {
	return &Handler{progress: progress}
}

func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto BootstrapDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.Username == "" {
		config.JSONError(w, http.StatusUnprocessableEntity, "username is required")
		return
	}

	h.progress.Bootstrap(r.Context(), dto.Username, dto.Coins, dto.Streak)
	w.WriteHeader(http.StatusNoContent)
}
