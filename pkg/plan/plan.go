package plan

import "time"

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Plan is one cell of the manufacturing plan grid: a quantity scheduled for
// one item on one day.
type Plan struct {
	Id       int
	ItemId   int
	PlanDate time.Time
	Quantity int
}

// Edit is a single cell change submitted from the grid. Quantity arrives as
// the raw user input so the service can distinguish a cleared cell from an
// invalid one.
type Edit struct {
	ItemId   int
	Date     time.Time
	Quantity string
}

// BatchResult reports how a batch save went. Saved counts the edits that were
// applied, including deletions; Errors holds one message per rejected edit.
type BatchResult struct {
	Saved  int
	Errors []string
}
