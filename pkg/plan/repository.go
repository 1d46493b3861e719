package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrPlanNotFound = errors.New("plan not found")
var ErrDuplicatePlan = errors.New("plan already exists for this item and date")

type Repository interface {
	// GetPlan returns the plan cell for one item on one day.
	GetPlan(ctx context.Context, itemId int, date time.Time) (Plan, error)
	InsertPlan(ctx context.Context, plan Plan) (int, error)
	UpdatePlanQuantity(ctx context.Context, itemId int, date time.Time, quantity int) (bool, error)
	// DeletePlan removes a cell if present. Deleting an absent cell is not an error.
	DeletePlan(ctx context.Context, itemId int, date time.Time) error
	// ListPlans returns all cells with a plan date inside [from, to], ordered
	// by date then item.
	ListPlans(ctx context.Context, from time.Time, to time.Time) ([]Plan, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetPlan(ctx context.Context, itemId int, date time.Time) (Plan, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, item_id, plan_date, quantity FROM manufacturing_plan WHERE item_id = $1 AND plan_date = $2",
		itemId, date)
	plan, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrPlanNotFound
		}
		log.Errorf("Error fetching plan: %v", err)
		return Plan{}, fmt.Errorf("failed to fetch plan: %w", err)
	}
	return plan, nil
}

func (r *RepositoryImpl) InsertPlan(ctx context.Context, plan Plan) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		"INSERT INTO manufacturing_plan (item_id, plan_date, quantity) VALUES ($1, $2, $3) RETURNING id",
		plan.ItemId, plan.PlanDate, plan.Quantity).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicatePlan
		}
		log.Errorf("Error inserting plan: %v", err)
		return 0, fmt.Errorf("failed to insert plan: %w", err)
	}
	return id, nil
}

func (r *RepositoryImpl) UpdatePlanQuantity(ctx context.Context, itemId int, date time.Time, quantity int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE manufacturing_plan SET quantity = $1 WHERE item_id = $2 AND plan_date = $3",
		quantity, itemId, date)
	if err != nil {
		log.Errorf("Error updating plan quantity: %v", err)
		return false, fmt.Errorf("failed to update plan: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) DeletePlan(ctx context.Context, itemId int, date time.Time) error {
	_, err := r.db.Exec(ctx,
		"DELETE FROM manufacturing_plan WHERE item_id = $1 AND plan_date = $2",
		itemId, date)
	if err != nil {
		log.Errorf("Error deleting plan: %v", err)
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) ListPlans(ctx context.Context, from time.Time, to time.Time) ([]Plan, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, item_id, plan_date, quantity FROM manufacturing_plan WHERE plan_date BETWEEN $1 AND $2 ORDER BY plan_date, item_id",
		from, to)
	if err != nil {
		log.Errorf("Error listing plans: %v", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			log.Errorf("Error scanning plan row: %v", err)
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

func scanPlan(row pgx.Row) (Plan, error) {
	var plan Plan
	if err := row.Scan(&plan.Id, &plan.ItemId, &plan.PlanDate, &plan.Quantity); err != nil {
		return Plan{}, err
	}
	plan.PlanDate = plan.PlanDate.UTC()
	return plan, nil
}
