package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrItemNotFound = errors.New("item not found")
var ErrDuplicateCode = errors.New("item code is already in use")
var ErrCategoryNotFound = errors.New("item category not found")
var ErrDuplicateCategory = errors.New("item category code is already in use")

type Repository interface {
	SearchItems(ctx context.Context, filter Filter) ([]Item, error)
	GetItem(ctx context.Context, id int) (Item, error)
	CreateItem(ctx context.Context, item Item) (int, error)
	UpdateItem(ctx context.Context, item Item) (bool, error)
	ListCategories(ctx context.Context) ([]ItemCategory, error)
	CreateCategory(ctx context.Context, category ItemCategory) error
	UpdateCategory(ctx context.Context, category ItemCategory) (bool, error)
	DeleteCategory(ctx context.Context, code string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const itemSelect = `SELECT
			i.id,
			i.code,
			i.name,
			i.category_code,
			c.name as category_name,
			i.manufacture_start_date,
			i.remarks
		FROM item i
		LEFT JOIN item_category c ON i.category_code = c.code`

func (r *RepositoryImpl) SearchItems(ctx context.Context, filter Filter) ([]Item, error) {
	query := itemSelect

	var where []string
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = append(where, fmt.Sprintf("i.name LIKE $%d", len(args)))
	}
	if filter.Code != "" {
		args = append(args, filter.Code)
		where = append(where, fmt.Sprintf("i.code = $%d", len(args)))
	}
	if filter.CategoryCode != "" {
		args = append(args, filter.CategoryCode)
		where = append(where, fmt.Sprintf("i.category_code = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY i.code"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return items, nil
}

func (r *RepositoryImpl) GetItem(ctx context.Context, id int) (Item, error) {
	row := r.db.QueryRow(ctx, itemSelect+" WHERE i.id = $1", id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		log.Error(err)
		return Item{}, err
	}
	return item, nil
}

func (r *RepositoryImpl) CreateItem(ctx context.Context, item Item) (int, error) {
	query := `INSERT INTO item (code, name, category_code, manufacture_start_date, remarks)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		item.Code,
		item.Name,
		toNullString(item.CategoryCode),
		toNullTime(item.ManufactureStartDate),
		toNullString(item.Remarks),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateCode
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) UpdateItem(ctx context.Context, item Item) (bool, error) {
	query := `UPDATE item SET
			code = $1,
			name = $2,
			category_code = $3,
			manufacture_start_date = $4,
			remarks = $5
		WHERE id = $6`
	result, err := r.db.Exec(ctx, query,
		item.Code,
		item.Name,
		toNullString(item.CategoryCode),
		toNullTime(item.ManufactureStartDate),
		toNullString(item.Remarks),
		item.Id,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, ErrDuplicateCode
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) ListCategories(ctx context.Context) ([]ItemCategory, error) {
	query := `SELECT code, name FROM item_category ORDER BY code`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query item categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []ItemCategory
	for rows.Next() {
		var category ItemCategory
		if err := rows.Scan(&category.Code, &category.Name); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *RepositoryImpl) CreateCategory(ctx context.Context, category ItemCategory) error {
	query := `INSERT INTO item_category (code, name) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, category.Code, category.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCategory
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) UpdateCategory(ctx context.Context, category ItemCategory) (bool, error) {
	query := `UPDATE item_category SET name = $1 WHERE code = $2`
	result, err := r.db.Exec(ctx, query, category.Name, category.Code)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) DeleteCategory(ctx context.Context, code string) (bool, error) {
	query := `DELETE FROM item_category WHERE code = $1`
	result, err := r.db.Exec(ctx, query, code)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	var categoryCode sql.NullString
	var categoryName sql.NullString
	var manufactureStartDate sql.NullTime
	var remarks sql.NullString

	if err := row.Scan(
		&item.Id,
		&item.Code,
		&item.Name,
		&categoryCode,
		&categoryName,
		&manufactureStartDate,
		&remarks,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, err
		}
		return Item{}, fmt.Errorf("error scanning row: %w", err)
	}

	if categoryCode.Valid {
		item.CategoryCode = categoryCode.String
	}
	if categoryName.Valid {
		item.CategoryName = categoryName.String
	}
	if manufactureStartDate.Valid {
		startDate := manufactureStartDate.Time
		item.ManufactureStartDate = &startDate
	}
	if remarks.Valid {
		item.Remarks = remarks.String
	}
	return item, nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
