package journal

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ubloom/engine/internal/config"
	util "github.com/ubloom/engine/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SaveEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, firstOfDay, err := h.service.Save(r.Context(), dto.Text, dto.Reflection, util.DateOf(time.Now()))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyEntry):
			config.JSONError(w, http.StatusUnprocessableEntity, "journal text is empty")
		case errors.Is(err, ErrJournalLimitReached):
			config.JSONError(w, http.StatusForbidden, "daily journal limit reached")
		default:
			log.WithError(err).Error("Failed to save journal entry")
			config.JSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, SaveEntryResponse{Entry: entry, FirstOfDay: firstOfDay})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.History(r.Context()))
}
