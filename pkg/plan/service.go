package plan

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/taktplan/taktplan/pkg/holiday"
	"github.com/taktplan/taktplan/pkg/item"
)

// ItemReader is the slice of the item service the planner needs: the row set
// of the grid and the manufacture start dates to validate edits against.
type ItemReader interface {
	ListItems(ctx context.Context) ([]item.Item, error)
}

// HolidayCalendar supplies the non-working day classification for a month.
type HolidayCalendar interface {
	CalendarForMonth(ctx context.Context, month holiday.Month) (holiday.MonthCalendar, error)
}

// MonthView is everything the grid page needs for one month: the item rows,
// the day columns with their non-working classification, and the planned
// quantities.
type MonthView struct {
	Month    holiday.Month
	Items    []item.Item
	Dates    []time.Time
	Calendar holiday.MonthCalendar
	Grid     Grid
}

type Service interface {
	BuildMonthView(ctx context.Context, month holiday.Month) (MonthView, error)
	// SaveBatch applies a batch of cell edits. Edits are validated one by one;
	// a rejected edit is reported in the result and never blocks the rest.
	SaveBatch(ctx context.Context, month holiday.Month, edits []Edit) (BatchResult, error)
}

type ServiceImpl struct {
	repo     Repository
	items    ItemReader
	calendar HolidayCalendar
}

func NewService(repo Repository, items ItemReader, calendar HolidayCalendar) Service {
	return &ServiceImpl{repo: repo, items: items, calendar: calendar}
}

func (s *ServiceImpl) BuildMonthView(ctx context.Context, month holiday.Month) (MonthView, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return MonthView{}, fmt.Errorf("failed to load items for month view: %w", err)
	}
	calendar, err := s.calendar.CalendarForMonth(ctx, month)
	if err != nil {
		return MonthView{}, fmt.Errorf("failed to build calendar for month view: %w", err)
	}
	plans, err := s.repo.ListPlans(ctx, month.Start(), month.End())
	if err != nil {
		return MonthView{}, fmt.Errorf("failed to load plans for month view: %w", err)
	}

	itemIds := make([]int, 0, len(items))
	for _, it := range items {
		itemIds = append(itemIds, it.Id)
	}
	return MonthView{
		Month:    month,
		Items:    items,
		Dates:    calendar.Dates(),
		Calendar: calendar,
		Grid:     AssembleGrid(itemIds, calendar.Dates(), plans),
	}, nil
}

func (s *ServiceImpl) SaveBatch(ctx context.Context, month holiday.Month, edits []Edit) (BatchResult, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to load items for batch save: %w", err)
	}
	itemsById := make(map[int]item.Item, len(items))
	for _, it := range items {
		itemsById[it.Id] = it
	}

	var result BatchResult
	for _, edit := range edits {
		it, exists := itemsById[edit.ItemId]
		if !exists {
			// The row vanished between render and save. Nothing to report to
			// the user about an item they can no longer see.
			log.Warnf("Skipping plan edit for unknown item %d", edit.ItemId)
			continue
		}
		date := dateOnly(edit.Date)

		raw := strings.TrimSpace(edit.Quantity)
		if raw == "" {
			if err := s.repo.DeletePlan(ctx, it.Id, date); err != nil {
				return result, err
			}
			result.Saved++
			continue
		}

		quantity, convErr := strconv.Atoi(raw)
		if convErr != nil || quantity < MinQuantity || quantity > MaxQuantity {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"item %s on %s: quantity must be a whole number between %d and %d",
				it.Code, date.Format("2006-01-02"), MinQuantity, MaxQuantity))
			continue
		}
		if it.ManufactureStartDate != nil && date.Before(dateOnly(*it.ManufactureStartDate)) {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"item %s on %s: manufacturing does not start until %s",
				it.Code, date.Format("2006-01-02"), it.ManufactureStartDate.Format("2006-01-02")))
			continue
		}

		if err := s.upsert(ctx, it.Id, date, quantity); err != nil {
			return result, err
		}
		result.Saved++
	}
	log.Debugf("Saved plan batch for %s: %d applied, %d rejected", month, result.Saved, len(result.Errors))
	return result, nil
}

// upsert writes one cell, tolerating a concurrent insert of the same cell by
// retrying as an update. Last write wins.
func (s *ServiceImpl) upsert(ctx context.Context, itemId int, date time.Time, quantity int) error {
	_, err := s.repo.GetPlan(ctx, itemId, date)
	if err == nil {
		_, err = s.repo.UpdatePlanQuantity(ctx, itemId, date, quantity)
		return err
	}
	if !errors.Is(err, ErrPlanNotFound) {
		return err
	}
	_, err = s.repo.InsertPlan(ctx, Plan{ItemId: itemId, PlanDate: date, Quantity: quantity})
	if errors.Is(err, ErrDuplicatePlan) {
		log.Warnf("Concurrent insert for item %d on %s, retrying as update", itemId, date.Format("2006-01-02"))
		_, err = s.repo.UpdatePlanQuantity(ctx, itemId, date, quantity)
	}
	return err
}
