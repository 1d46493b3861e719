package holiday

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

const maxCommentLength = 200

type Service interface {
	ListHolidays(ctx context.Context) ([]CustomHoliday, error)
	AddHoliday(ctx context.Context, date time.Time, comment string) (CustomHoliday, error)
	UpdateComment(ctx context.Context, id int, comment string) error
	DeleteHoliday(ctx context.Context, id int) (bool, error)
	// CalendarForMonth builds the month classification from national
	// holidays, the stored custom holidays, and weekends.
	CalendarForMonth(ctx context.Context, month Month) (MonthCalendar, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListHolidays(ctx context.Context) ([]CustomHoliday, error) {
	return s.repo.ListHolidays(ctx)
}

func (s *ServiceImpl) AddHoliday(ctx context.Context, date time.Time, comment string) (CustomHoliday, error) {
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return CustomHoliday{}, fmt.Errorf("comment must be at most %d characters", maxCommentLength)
	}
	return s.repo.AddHoliday(ctx, date, comment)
}

func (s *ServiceImpl) UpdateComment(ctx context.Context, id int, comment string) error {
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return fmt.Errorf("comment must be at most %d characters", maxCommentLength)
	}
	updated, err := s.repo.UpdateComment(ctx, id, comment)
	if err != nil {
		return err
	}
	if !updated {
		return ErrHolidayNotFound
	}
	return nil
}

func (s *ServiceImpl) DeleteHoliday(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.DeleteHoliday(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("custom holiday not deleted, probably because it does not exist (%d)", id)
	}
	return deleted, nil
}

func (s *ServiceImpl) CalendarForMonth(ctx context.Context, month Month) (MonthCalendar, error) {
	customHolidays, err := s.repo.ListHolidays(ctx)
	if err != nil {
		return MonthCalendar{}, fmt.Errorf("failed to list custom holidays: %w", err)
	}
	return BuildMonthCalendar(month, customHolidays), nil
}
