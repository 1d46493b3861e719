package item

import "time"

// Item is one entry of the item master. ManufactureStartDate, when set, is
// the earliest calendar date for which a manufacturing plan may exist.
type Item struct {
	Id                   int
	Code                 string
	Name                 string
	CategoryCode         string
	CategoryName         string
	ManufactureStartDate *time.Time
	Remarks              string
}

// ItemCategory groups items under a short code.
type ItemCategory struct {
	Code string
	Name string
}

// Filter narrows an item search. Name matches as a substring; Code and
// CategoryCode match exactly. Zero values are ignored.
type Filter struct {
	Name         string
	Code         string
	CategoryCode string
}
