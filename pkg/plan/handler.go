package plan

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/taktplan/taktplan/internal/utils"
	"github.com/taktplan/taktplan/pkg/holiday"
	"github.com/taktplan/taktplan/pkg/item"
)

type MonthViewDTO struct {
	Month string       `json:"month"`
	Days  []DayDTO     `json:"days"`
	Items []ItemRowDTO `json:"items"`
}

type DayDTO struct {
	Date       string `json:"date"`
	NonWorking bool   `json:"nonWorking"`
	Label      string `json:"label,omitempty"`
}

type ItemRowDTO struct {
	ItemId     int            `json:"itemId"`
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Quantities map[string]int `json:"quantities"`
}

type EditDTO struct {
	ItemId   int    `json:"itemId"`
	Date     string `json:"date"`
	Quantity string `json:"quantity"`
}

type SaveBatchRequestDTO struct {
	Month string    `json:"month"`
	Edits []EditDTO `json:"edits"`
}

type SaveBatchResponseDTO struct {
	Success bool     `json:"success"`
	Saved   int      `json:"saved"`
	Errors  []string `json:"errors"`
}

type Handler struct {
	service  Service
	renderer CsvRenderer
	clock    utils.Clock
}

func NewHandler(service Service, renderer CsvRenderer, clock utils.Clock) *Handler {
	return &Handler{service: service, renderer: renderer, clock: clock}
}

// GetMonthView godoc
// @Summary Get the manufacturing plan grid for one month
// @Description Returns the item rows, day columns with non-working markers, and planned quantities. Defaults to the current month.
// @Tags Plan
// @Produce json
// @Param month query string false "Month in yyyy-MM format, defaults to the current month"
// @Success 200 {object} MonthViewDTO
// @Router /api/plan [get]
func (handler *Handler) GetMonthView(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting month view")
	w.Header().Set("Content-Type", "application/json")
	month := handler.resolveMonth(r.URL.Query().Get("month"))
	view, err := handler.service.BuildMonthView(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(MonthViewToDTO(view)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// SaveBatch godoc
// @Summary Save a batch of plan cell edits
// @Description Applies each edit independently. An empty quantity clears the cell; rejected edits are reported per cell and do not block the rest.
// @Tags Plan
// @Accept json
// @Produce json
// @Param batch body SaveBatchRequestDTO true "Batch of edits"
// @Success 200 {object} SaveBatchResponseDTO
// @Failure 400 {string} string "Invalid month"
// @Router /api/plan [post]
func (handler *Handler) SaveBatch(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving plan batch")
	w.Header().Set("Content-Type", "application/json")
	var request SaveBatchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	month, err := holiday.MonthFromString(request.Month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	edits := make([]Edit, 0, len(request.Edits))
	for _, editDTO := range request.Edits {
		date, err := time.Parse("2006-01-02", editDTO.Date)
		if err != nil {
			// A mangled date means a mangled form field, not a user mistake
			// worth reporting. Skip it like an unknown item.
			log.Warnf("Skipping plan edit with invalid date %q", editDTO.Date)
			continue
		}
		edits = append(edits, Edit{ItemId: editDTO.ItemId, Date: date, Quantity: editDTO.Quantity})
	}

	result, err := handler.service.SaveBatch(r.Context(), month, edits)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	response := SaveBatchResponseDTO{
		Success: len(result.Errors) == 0,
		Saved:   result.Saved,
		Errors:  result.Errors,
	}
	if response.Errors == nil {
		response.Errors = []string{}
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ExportCsv godoc
// @Summary Export the manufacturing plan for one month as CSV
// @Tags Plan
// @Produce text/csv
// @Param month query string false "Month in yyyy-MM format, defaults to the current month"
// @Success 200 {string} string "CSV content"
// @Router /api/plan/export [get]
func (handler *Handler) ExportCsv(w http.ResponseWriter, r *http.Request) {
	log.Debug("Exporting plan as CSV")
	month := handler.resolveMonth(r.URL.Query().Get("month"))
	view, err := handler.service.BuildMonthView(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	content, err := handler.renderer.Render(view)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=plan-%s.csv", month))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.Errorf("Error writing CSV response: %v", err)
	}
}

// resolveMonth falls back to the current month when the parameter is missing
// or unparsable, so a stale or mangled link still renders a usable grid.
func (handler *Handler) resolveMonth(param string) holiday.Month {
	if param == "" {
		return holiday.MonthOf(handler.clock.Now())
	}
	month, err := holiday.MonthFromString(param)
	if err != nil {
		log.Warnf("Invalid month %q, falling back to the current month", param)
		return holiday.MonthOf(handler.clock.Now())
	}
	return month
}

func MonthViewToDTO(view MonthView) MonthViewDTO {
	days := make([]DayDTO, 0, len(view.Dates))
	for _, date := range view.Dates {
		days = append(days, DayDTO{
			Date:       date.Format("2006-01-02"),
			NonWorking: view.Calendar.IsNonWorking(date),
			Label:      view.Calendar.Label(date),
		})
	}
	items := make([]ItemRowDTO, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, ItemRowToDTO(it, view))
	}
	return MonthViewDTO{Month: view.Month.String(), Days: days, Items: items}
}

func ItemRowToDTO(it item.Item, view MonthView) ItemRowDTO {
	quantities := map[string]int{}
	for _, date := range view.Dates {
		if quantity, exists := view.Grid.Quantity(it.Id, date); exists {
			quantities[date.Format("2006-01-02")] = quantity
		}
	}
	return ItemRowDTO{ItemId: it.Id, Code: it.Code, Name: it.Name, Quantities: quantities}
}
