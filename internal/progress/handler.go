package progress

import (
	"errors"
	"net/http"

	"github.com/ubloom/engine/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, toResponse(h.service.Snapshot()))
}

func (h *Handler) ReviveStreak(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.ReviveStreak(r.Context()); err != nil {
		switch {
		case errors.Is(err, ErrStreakNotBroken):
			config.JSONError(w, http.StatusConflict, "streak is not broken")
		case errors.Is(err, ErrInsufficientFunds):
			config.JSONError(w, http.StatusPaymentRequired, "not enough coins to revive")
		default:
			log.WithError(err).Error("Failed to revive streak")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, toResponse(h.service.Snapshot()))
}
