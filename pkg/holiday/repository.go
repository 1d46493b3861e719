package holiday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrHolidayNotFound = errors.New("custom holiday not found")
var ErrDuplicateHoliday = errors.New("custom holiday already exists for this date")

type Repository interface {
	ListHolidays(ctx context.Context) ([]CustomHoliday, error)
	AddHoliday(ctx context.Context, date time.Time, comment string) (CustomHoliday, error)
	UpdateComment(ctx context.Context, id int, comment string) (bool, error)
	DeleteHoliday(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListHolidays(ctx context.Context) ([]CustomHoliday, error) {
	query := `SELECT id, holiday_date, comment FROM custom_holiday ORDER BY holiday_date`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query custom holidays: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var holidays []CustomHoliday
	for rows.Next() {
		var holiday CustomHoliday
		var comment sql.NullString
		if err := rows.Scan(&holiday.Id, &holiday.Date, &comment); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		if comment.Valid {
			holiday.Comment = comment.String
		}
		holiday.Date = dateOnly(holiday.Date)
		holidays = append(holidays, holiday)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return holidays, nil
}

func (r *RepositoryImpl) AddHoliday(ctx context.Context, date time.Time, comment string) (CustomHoliday, error) {
	query := `INSERT INTO custom_holiday (holiday_date, comment) VALUES ($1, $2) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, dateOnly(date), toNullString(comment)).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return CustomHoliday{}, ErrDuplicateHoliday
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return CustomHoliday{}, err
	}
	return CustomHoliday{Id: id, Date: dateOnly(date), Comment: comment}, nil
}

func (r *RepositoryImpl) UpdateComment(ctx context.Context, id int, comment string) (bool, error) {
	query := `UPDATE custom_holiday SET comment = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, toNullString(comment), id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) DeleteHoliday(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM custom_holiday WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
