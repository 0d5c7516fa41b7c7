package reflection

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/goal"
	util "github.com/ubloom/engine/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto AnalyzeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reflection, err := h.service.Analyze(r.Context(), dto.JournalText)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyJournal):
			config.JSONError(w, http.StatusUnprocessableEntity, "no journal text to analyze")
		case errors.Is(err, ErrServiceUnavailable), errors.Is(err, ErrInvalidReflection):
			config.JSONError(w, http.StatusBadGateway, err.Error())
		default:
			log.WithError(err).Error("Failed to analyze journal")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, reflection)
}

func (h *Handler) SetAsGoal(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SetAsGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.service.SetAsGoal(r.Context(), dto.GrowthPath, util.DateOf(time.Now()))
	if err != nil {
		switch {
		case errors.Is(err, goal.ErrEmptyText):
			config.JSONError(w, http.StatusUnprocessableEntity, "growth path has no goal text")
		case errors.Is(err, goal.ErrGoalLimitReached):
			config.JSONError(w, http.StatusForbidden, "daily goal limit reached")
		default:
			log.WithError(err).Error("Failed to create goal from reflection")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, g)
}
