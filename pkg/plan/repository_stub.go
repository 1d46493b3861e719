package plan

import (
	"context"
	"sort"
	"sync"
	"time"
)

type cellKey struct {
	itemId int
	date   time.Time
}

// RepositoryStub gates everything behind a mutex so tests can exercise
// concurrent batch saves against it.
type RepositoryStub struct {
	mu     sync.Mutex
	nextId int
	plans  map[cellKey]Plan
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{plans: map[cellKey]Plan{}}
}

func (s *RepositoryStub) key(itemId int, date time.Time) cellKey {
	return cellKey{itemId: itemId, date: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)}
}

func (s *RepositoryStub) GetPlan(ctx context.Context, itemId int, date time.Time) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, exists := s.plans[s.key(itemId, date)]
	if !exists {
		return Plan{}, ErrPlanNotFound
	}
	return plan, nil
}

func (s *RepositoryStub) InsertPlan(ctx context.Context, plan Plan) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key(plan.ItemId, plan.PlanDate)
	if _, exists := s.plans[key]; exists {
		return 0, ErrDuplicatePlan
	}
	s.nextId++
	plan.Id = s.nextId
	plan.PlanDate = key.date
	s.plans[key] = plan
	return plan.Id, nil
}

func (s *RepositoryStub) UpdatePlanQuantity(ctx context.Context, itemId int, date time.Time, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key(itemId, date)
	plan, exists := s.plans[key]
	if !exists {
		return false, nil
	}
	plan.Quantity = quantity
	s.plans[key] = plan
	return true, nil
}

func (s *RepositoryStub) DeletePlan(ctx context.Context, itemId int, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plans, s.key(itemId, date))
	return nil
}

func (s *RepositoryStub) ListPlans(ctx context.Context, from time.Time, to time.Time) ([]Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var plans []Plan
	for _, plan := range s.plans {
		if plan.PlanDate.Before(from) || plan.PlanDate.After(to) {
			continue
		}
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].PlanDate.Equal(plans[j].PlanDate) {
			return plans[i].PlanDate.Before(plans[j].PlanDate)
		}
		return plans[i].ItemId < plans[j].ItemId
	})
	return plans, nil
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = map[cellKey]Plan{}
	s.nextId = 0
}
