package item

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ItemDTO struct {
	Id                   int    `json:"id"`
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	CategoryCode         string `json:"categoryCode,omitempty"`
	CategoryName         string `json:"categoryName,omitempty"`
	ManufactureStartDate string `json:"manufactureStartDate,omitempty"`
	Remarks              string `json:"remarks,omitempty"`
}

type ItemCategoryDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// SearchItems godoc
// @Summary Search items
// @Description Search the item master by name substring, exact code, or category
// @Tags Item
// @Produce json
// @Param name query string false "Name substring"
// @Param code query string false "Exact item code"
// @Param categoryCode query string false "Category code"
// @Success 200 {array} ItemDTO
// @Router /api/item [get]
func (handler *Handler) SearchItems(w http.ResponseWriter, r *http.Request) {
	log.Debug("Searching items")
	w.Header().Set("Content-Type", "application/json")
	filter := Filter{
		Name:         r.URL.Query().Get("name"),
		Code:         r.URL.Query().Get("code"),
		CategoryCode: r.URL.Query().Get("categoryCode"),
	}
	items, err := handler.service.SearchItems(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	itemsDTO := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemsDTO = append(itemsDTO, ItemToDTO(item))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(itemsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetItem godoc
// @Summary Get an item by id
// @Tags Item
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} ItemDTO
// @Failure 404 {string} string "Item Not Found"
// @Router /api/item/{itemId} [get]
func (handler *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting item")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	itemId, err := strconv.Atoi(vars["itemId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := handler.service.GetItem(r.Context(), itemId)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ItemToDTO(item)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// RegisterItem godoc
// @Summary Register a new item
// @Tags Item
// @Accept json
// @Produce json
// @Param item body ItemDTO true "Item"
// @Success 201 {object} ItemDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 409 {string} string "Item code already in use"
// @Router /api/item [post]
func (handler *Handler) RegisterItem(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering item")
	w.Header().Set("Content-Type", "application/json")
	var itemDTO ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&itemDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := DTOToItem(itemDTO)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.RegisterItem(r.Context(), item)
	if err != nil {
		writeItemError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ItemToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateItem godoc
// @Summary Update an existing item
// @Tags Item
// @Accept json
// @Produce json
// @Param itemId path int true "Item ID"
// @Param item body ItemDTO true "Item"
// @Success 200 {object} ItemDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Item Not Found"
// @Failure 409 {string} string "Item code already in use"
// @Router /api/item/{itemId} [put]
func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating item")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	itemId, err := strconv.Atoi(vars["itemId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var itemDTO ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&itemDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := DTOToItem(itemDTO)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.Id = itemId

	updated, err := handler.service.UpdateItem(r.Context(), item)
	if err != nil {
		writeItemError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ItemToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListCategories godoc
// @Summary List item categories
// @Tags Item
// @Produce json
// @Success 200 {array} ItemCategoryDTO
// @Router /api/item/category [get]
func (handler *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing item categories")
	w.Header().Set("Content-Type", "application/json")
	categories, err := handler.service.ListCategories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	categoriesDTO := make([]ItemCategoryDTO, 0, len(categories))
	for _, category := range categories {
		categoriesDTO = append(categoriesDTO, ItemCategoryDTO(category))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoriesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateCategory godoc
// @Summary Create an item category
// @Tags Item
// @Accept json
// @Param category body ItemCategoryDTO true "Item Category"
// @Success 201 "Created"
// @Failure 400 {string} string "Bad Request"
// @Failure 409 {string} string "Category code already in use"
// @Router /api/item/category [post]
func (handler *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating item category")
	var categoryDTO ItemCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&categoryDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := handler.service.CreateCategory(r.Context(), ItemCategory(categoryDTO)); err != nil {
		writeItemError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// UpdateCategory godoc
// @Summary Rename an item category
// @Tags Item
// @Accept json
// @Param code path string true "Category code"
// @Param category body ItemCategoryDTO true "Item Category"
// @Success 204 "No Content"
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Category Not Found"
// @Router /api/item/category/{code} [put]
func (handler *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating item category")
	vars := mux.Vars(r)
	var categoryDTO ItemCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&categoryDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	categoryDTO.Code = vars["code"]
	if err := handler.service.UpdateCategory(r.Context(), ItemCategory(categoryDTO)); err != nil {
		writeItemError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCategory godoc
// @Summary Delete an item category
// @Tags Item
// @Param code path string true "Category code"
// @Success 204 "No Content"
// @Failure 404 {string} string "Category Not Found"
// @Router /api/item/category/{code} [delete]
func (handler *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting item category")
	vars := mux.Vars(r)
	deleted, err := handler.service.DeleteCategory(r.Context(), vars["code"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "item category not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrDuplicateCode), errors.Is(err, ErrDuplicateCategory):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrCategoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func ItemToDTO(item Item) ItemDTO {
	dto := ItemDTO{
		Id:           item.Id,
		Code:         item.Code,
		Name:         item.Name,
		CategoryCode: item.CategoryCode,
		CategoryName: item.CategoryName,
		Remarks:      item.Remarks,
	}
	if item.ManufactureStartDate != nil {
		dto.ManufactureStartDate = item.ManufactureStartDate.Format("2006-01-02")
	}
	return dto
}

func DTOToItem(dto ItemDTO) (Item, error) {
	item := Item{
		Id:           dto.Id,
		Code:         dto.Code,
		Name:         dto.Name,
		CategoryCode: dto.CategoryCode,
		Remarks:      dto.Remarks,
	}
	if dto.ManufactureStartDate != "" {
		startDate, err := time.Parse("2006-01-02", dto.ManufactureStartDate)
		if err != nil {
			return Item{}, errors.New("manufactureStartDate must be in yyyy-MM-dd format")
		}
		item.ManufactureStartDate = &startDate
	}
	return item, nil
}
