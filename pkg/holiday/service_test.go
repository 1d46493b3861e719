package holiday

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var holidayRepoStub = NewRepositoryStub()

var service Service

func setup(t *testing.T) func() {
	service = NewService(holidayRepoStub)
	return func() {
		t.Log("Teardown after test")
		holidayRepoStub.Cleanup()
	}
}

func TestServiceImpl_AddHoliday(t *testing.T) {
	t.Run("should add a holiday with a comment", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		holiday, err := service.AddHoliday(ctx, date(2025, time.March, 10), "Plant maintenance")

		// then
		assert.NoError(t, err)
		assert.NotZero(t, holiday.Id)
		assert.Equal(t, date(2025, time.March, 10), holiday.Date)
		assert.Equal(t, "Plant maintenance", holiday.Comment)
	})

	t.Run("should reject a duplicate date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.AddHoliday(ctx, date(2025, time.March, 10), "")
		require.NoError(t, err)

		// when
		_, err = service.AddHoliday(ctx, date(2025, time.March, 10), "again")

		// then
		assert.ErrorIs(t, err, ErrDuplicateHoliday)
	})

	t.Run("should reject an overly long comment", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.AddHoliday(ctx, date(2025, time.March, 10), strings.Repeat("x", 201))

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "200")
	})
}

func TestServiceImpl_ListHolidays(t *testing.T) {
	t.Run("should list holidays ordered by date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.AddHoliday(ctx, date(2025, time.March, 20), "later")
		require.NoError(t, err)
		_, err = service.AddHoliday(ctx, date(2025, time.March, 5), "earlier")
		require.NoError(t, err)

		// when
		holidays, err := service.ListHolidays(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, holidays, 2)
		assert.Equal(t, "earlier", holidays[0].Comment)
		assert.Equal(t, "later", holidays[1].Comment)
	})
}

func TestServiceImpl_UpdateComment(t *testing.T) {
	t.Run("should update the comment of an existing holiday", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		holiday, err := service.AddHoliday(ctx, date(2025, time.March, 10), "old")
		require.NoError(t, err)

		// when
		err = service.UpdateComment(ctx, holiday.Id, "new")

		// then
		assert.NoError(t, err)
		holidays, _ := service.ListHolidays(ctx)
		require.Len(t, holidays, 1)
		assert.Equal(t, "new", holidays[0].Comment)
	})

	t.Run("should return error for an unknown holiday", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.UpdateComment(ctx, 123, "whatever")

		// then
		assert.ErrorIs(t, err, ErrHolidayNotFound)
	})
}

func TestServiceImpl_DeleteHoliday(t *testing.T) {
	t.Run("should delete an existing holiday", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		holiday, err := service.AddHoliday(ctx, date(2025, time.March, 10), "")
		require.NoError(t, err)

		// when
		deleted, err := service.DeleteHoliday(ctx, holiday.Id)

		// then
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("should report false for an unknown holiday", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		deleted, err := service.DeleteHoliday(ctx, 99)

		// then
		assert.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestServiceImpl_CalendarForMonth(t *testing.T) {
	t.Run("should merge stored custom holidays into the calendar", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.AddHoliday(ctx, date(2025, time.March, 10), "Plant maintenance")
		require.NoError(t, err)

		// when
		calendar, err := service.CalendarForMonth(ctx, Month{Year: 2025, Month: time.March})

		// then
		require.NoError(t, err)
		assert.True(t, calendar.IsNonWorking(date(2025, time.March, 10)))
		assert.Equal(t, "Plant maintenance", calendar.Label(date(2025, time.March, 10)))
	})
}
