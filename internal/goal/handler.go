package goal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/progress"
	util "github.com/ubloom/engine/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func goalID(r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.service.Create(r.Context(), dto.Text, util.DateOf(time.Now()))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyText):
			config.JSONError(w, http.StatusUnprocessableEntity, "goal text is empty")
		case errors.Is(err, ErrGoalLimitReached):
			config.JSONError(w, http.StatusForbidden, "daily goal limit reached")
		default:
			log.WithError(err).Error("Failed to create goal")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, g)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.List(r.Context()))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(r)
	if !ok {
		config.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	g, err := h.service.Get(r.Context(), id)
	if err != nil {
		config.JSONError(w, http.StatusNotFound, "goal not found")
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) MarkDone(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := goalID(r)
	if !ok {
		config.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	g, rewarded, err := h.service.MarkDone(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			config.JSONError(w, http.StatusNotFound, "goal not found")
			return
		}
		log.WithError(err).Error("Failed to mark goal done")
		config.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, GoalActionResponse{Goal: g, Rewarded: rewarded})
}

func (h *Handler) Skip(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := goalID(r)
	if !ok {
		config.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	g, err := h.service.Skip(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrGoalNotFound):
			config.JSONError(w, http.StatusNotFound, "goal not found")
		case errors.Is(err, ErrNotActive):
			config.JSONError(w, http.StatusConflict, "goal is not active")
		default:
			log.WithError(err).Error("Failed to skip goal")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Reactivate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := goalID(r)
	if !ok {
		config.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	g, err := h.service.Reactivate(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrGoalNotFound):
			config.JSONError(w, http.StatusNotFound, "goal not found")
		case errors.Is(err, ErrNotSkipped):
			config.JSONError(w, http.StatusConflict, "goal is not skipped")
		case errors.Is(err, progress.ErrInsufficientFunds):
			config.JSONError(w, http.StatusPaymentRequired, "not enough coins to reactivate")
		default:
			log.WithError(err).Error("Failed to reactivate goal")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := goalID(r)
	if !ok {
		config.JSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrGoalNotFound):
			config.JSONError(w, http.StatusNotFound, "goal not found")
		case errors.Is(err, ErrGoalNotDone):
			config.JSONError(w, http.StatusConflict, "only done goals can be deleted")
		default:
			log.WithError(err).Error("Failed to delete goal")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
