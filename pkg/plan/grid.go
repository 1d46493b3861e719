package plan

import "time"

// Grid is the read-side view of a month of plans, keyed by item id and day.
type Grid struct {
	quantities map[int]map[time.Time]int
}

// AssembleGrid indexes a flat list of plan cells for lookup by item and date.
// Plans belonging to items outside the given row set, or dated outside the
// given columns, are dropped.
func AssembleGrid(itemIds []int, dates []time.Time, plans []Plan) Grid {
	columns := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		columns[dateOnly(d)] = true
	}
	rows := make(map[int]map[time.Time]int, len(itemIds))
	for _, itemId := range itemIds {
		rows[itemId] = map[time.Time]int{}
	}
	for _, plan := range plans {
		row, exists := rows[plan.ItemId]
		if !exists {
			continue
		}
		day := dateOnly(plan.PlanDate)
		if !columns[day] {
			continue
		}
		row[day] = plan.Quantity
	}
	return Grid{quantities: rows}
}

// Quantity returns the planned quantity for a cell, and whether the cell has
// one at all. An empty cell is absence, never zero.
func (g Grid) Quantity(itemId int, date time.Time) (int, bool) {
	row, exists := g.quantities[itemId]
	if !exists {
		return 0, false
	}
	quantity, exists := row[dateOnly(date)]
	return quantity, exists
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
