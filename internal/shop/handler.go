package shop

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/progress"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Catalog(r.Context()))
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Purchase(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrCosmeticNotFound):
			config.JSONError(w, http.StatusNotFound, "cosmetic not found")
		case errors.Is(err, ErrAlreadyOwned):
			config.JSONError(w, http.StatusConflict, "cosmetic already owned")
		case errors.Is(err, progress.ErrInsufficientFunds):
			config.JSONError(w, http.StatusPaymentRequired, "not enough coins")
		default:
			log.WithError(err).Error("Failed to purchase cosmetic")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ActivatePremium(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.ActivatePremium(r.Context()); err != nil {
		if errors.Is(err, ErrAlreadyPremium) {
			config.JSONError(w, http.StatusConflict, "premium already active")
			return
		}
		log.WithError(err).Error("Failed to activate premium")
		config.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
