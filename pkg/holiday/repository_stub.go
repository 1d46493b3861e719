package holiday

import (
	"context"
	"sort"
	"time"
)

type RepositoryStub struct {
	nextId   int
	holidays map[int]CustomHoliday
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{holidays: map[int]CustomHoliday{}}
}

func (s *RepositoryStub) ListHolidays(ctx context.Context) ([]CustomHoliday, error) {
	holidays := make([]CustomHoliday, 0, len(s.holidays))
	for _, holiday := range s.holidays {
		holidays = append(holidays, holiday)
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays, nil
}

func (s *RepositoryStub) AddHoliday(ctx context.Context, date time.Time, comment string) (CustomHoliday, error) {
	date = dateOnly(date)
	for _, existing := range s.holidays {
		if existing.Date.Equal(date) {
			return CustomHoliday{}, ErrDuplicateHoliday
		}
	}
	s.nextId++
	holiday := CustomHoliday{Id: s.nextId, Date: date, Comment: comment}
	s.holidays[holiday.Id] = holiday
	return holiday, nil
}

func (s *RepositoryStub) UpdateComment(ctx context.Context, id int, comment string) (bool, error) {
	holiday, exists := s.holidays[id]
	if !exists {
		return false, nil
	}
	holiday.Comment = comment
	s.holidays[id] = holiday
	return true, nil
}

func (s *RepositoryStub) DeleteHoliday(ctx context.Context, id int) (bool, error) {
	if _, exists := s.holidays[id]; exists {
		delete(s.holidays, id)
		return true, nil
	}
	return false, nil
}

func (s *RepositoryStub) Cleanup() {
	s.holidays = map[int]CustomHoliday{}
}
