package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taktplan/taktplan/internal/config"
	"github.com/taktplan/taktplan/internal/utils"
	"github.com/taktplan/taktplan/pkg/holiday"
	"github.com/taktplan/taktplan/pkg/item"
	"github.com/taktplan/taktplan/pkg/plan"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	ItemRepo    item.Repository
	ItemService item.Service
	ItemHandler *item.Handler

	HolidayRepo    holiday.Repository
	HolidayService holiday.Service
	HolidayHandler *holiday.Handler

	PlanRepo        plan.Repository
	PlanService     plan.Service
	PlanCsvRenderer *plan.CsvRendererImpl
	PlanHandler     *plan.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.ItemRepo = item.NewRepository(db)
	deps.ItemService = item.NewService(deps.ItemRepo)
	deps.ItemHandler = item.NewHandler(deps.ItemService)

	deps.HolidayRepo = holiday.NewRepository(db)
	deps.HolidayService = holiday.NewService(deps.HolidayRepo)
	deps.HolidayHandler = holiday.NewHandler(deps.HolidayService)

	deps.PlanRepo = plan.NewRepository(db)
	deps.PlanService = plan.NewService(deps.PlanRepo, deps.ItemService, deps.HolidayService)
	deps.PlanCsvRenderer = plan.NewCsvRenderer()
	deps.PlanHandler = plan.NewHandler(deps.PlanService, deps.PlanCsvRenderer, deps.Clock)

	return deps
}
