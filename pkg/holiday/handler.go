package holiday

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CustomHolidayDTO struct {
	Id      int    `json:"id"`
	Date    string `json:"date"`
	Comment string `json:"comment,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListHolidays godoc
// @Summary List custom holidays
// @Description Get all custom holidays ordered by date
// @Tags Holiday
// @Produce json
// @Success 200 {array} CustomHolidayDTO
// @Router /api/holiday [get]
func (handler *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing custom holidays")
	w.Header().Set("Content-Type", "application/json")
	holidays, err := handler.service.ListHolidays(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	holidaysDTO := make([]CustomHolidayDTO, 0, len(holidays))
	for _, holiday := range holidays {
		holidaysDTO = append(holidaysDTO, toDTO(holiday))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(holidaysDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// AddHoliday godoc
// @Summary Add a custom holiday
// @Description Register a new custom holiday with an optional comment
// @Tags Holiday
// @Accept json
// @Produce json
// @Param holiday body CustomHolidayDTO true "Custom Holiday"
// @Success 201 {object} CustomHolidayDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 409 {string} string "Holiday already exists"
// @Router /api/holiday [post]
func (handler *Handler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding custom holiday")
	w.Header().Set("Content-Type", "application/json")
	var holidayDTO CustomHolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&holidayDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", holidayDTO.Date)
	if err != nil {
		http.Error(w, "date must be in yyyy-MM-dd format", http.StatusBadRequest)
		return
	}

	holiday, err := handler.service.AddHoliday(r.Context(), date, holidayDTO.Comment)
	if err != nil {
		if errors.Is(err, ErrDuplicateHoliday) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(holiday)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateHolidayComment godoc
// @Summary Update a custom holiday comment
// @Description Replace the comment of an existing custom holiday
// @Tags Holiday
// @Accept json
// @Param holidayId path int true "Custom Holiday ID"
// @Param holiday body CustomHolidayDTO true "Custom Holiday"
// @Success 204 "No Content"
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Holiday Not Found"
// @Router /api/holiday/{holidayId} [put]
func (handler *Handler) UpdateHolidayComment(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating custom holiday comment")
	vars := mux.Vars(r)
	holidayId, err := strconv.Atoi(vars["holidayId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var holidayDTO CustomHolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&holidayDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.UpdateComment(r.Context(), holidayId, holidayDTO.Comment); err != nil {
		if errors.Is(err, ErrHolidayNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteHoliday godoc
// @Summary Delete a custom holiday
// @Tags Holiday
// @Param holidayId path int true "Custom Holiday ID"
// @Success 204 "No Content"
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Holiday Not Found"
// @Router /api/holiday/{holidayId} [delete]
func (handler *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting custom holiday")
	vars := mux.Vars(r)
	holidayId, err := strconv.Atoi(vars["holidayId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := handler.service.DeleteHoliday(r.Context(), holidayId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "custom holiday not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(holiday CustomHoliday) CustomHolidayDTO {
	return CustomHolidayDTO{
		Id:      holiday.Id,
		Date:    holiday.Date.Format("2006-01-02"),
		Comment: holiday.Comment,
	}
}
