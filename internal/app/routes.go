package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Manufacturing plan
	r.HandleFunc("/api/plan", deps.PlanHandler.GetMonthView).Methods("GET")
	r.HandleFunc("/api/plan", deps.PlanHandler.SaveBatch).Methods("POST")
	r.HandleFunc("/api/plan/export", deps.PlanHandler.ExportCsv).Methods("GET")

	// Item master
	r.HandleFunc("/api/item", deps.ItemHandler.SearchItems).Methods("GET")
	r.HandleFunc("/api/item", deps.ItemHandler.RegisterItem).Methods("POST")
	r.HandleFunc("/api/item/category", deps.ItemHandler.ListCategories).Methods("GET")
	r.HandleFunc("/api/item/category", deps.ItemHandler.CreateCategory).Methods("POST")
	r.HandleFunc("/api/item/category/{code}", deps.ItemHandler.UpdateCategory).Methods("PUT")
	r.HandleFunc("/api/item/category/{code}", deps.ItemHandler.DeleteCategory).Methods("DELETE")
	r.HandleFunc("/api/item/{itemId}", deps.ItemHandler.GetItem).Methods("GET")
	r.HandleFunc("/api/item/{itemId}", deps.ItemHandler.UpdateItem).Methods("PUT")

	// Custom holidays
	r.HandleFunc("/api/holiday", deps.HolidayHandler.ListHolidays).Methods("GET")
	r.HandleFunc("/api/holiday", deps.HolidayHandler.AddHoliday).Methods("POST")
	r.HandleFunc("/api/holiday/{holidayId}", deps.HolidayHandler.UpdateHolidayComment).Methods("PUT")
	r.HandleFunc("/api/holiday/{holidayId}", deps.HolidayHandler.DeleteHoliday).Methods("DELETE")
}
