package item

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// ErrValidation wraps all master-data validation failures so handlers can map
// them to a client error in one place.
var ErrValidation = errors.New("validation failed")

var codePattern = regexp.MustCompile(`^[0-9]{1,5}$`)

const (
	maxNameLength         = 10
	maxCategoryCodeLength = 10
	maxCategoryNameLength = 50
	maxRemarksLength      = 100
)

type Service interface {
	// ListItems returns the full item master, the row set of the planning grid.
	ListItems(ctx context.Context) ([]Item, error)
	SearchItems(ctx context.Context, filter Filter) ([]Item, error)
	GetItem(ctx context.Context, id int) (Item, error)
	RegisterItem(ctx context.Context, item Item) (Item, error)
	UpdateItem(ctx context.Context, item Item) (Item, error)
	ListCategories(ctx context.Context) ([]ItemCategory, error)
	CreateCategory(ctx context.Context, category ItemCategory) error
	UpdateCategory(ctx context.Context, category ItemCategory) error
	DeleteCategory(ctx context.Context, code string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListItems(ctx context.Context) ([]Item, error) {
	return s.repo.SearchItems(ctx, Filter{})
}

func (s *ServiceImpl) SearchItems(ctx context.Context, filter Filter) ([]Item, error) {
	return s.repo.SearchItems(ctx, filter)
}

func (s *ServiceImpl) GetItem(ctx context.Context, id int) (Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *ServiceImpl) RegisterItem(ctx context.Context, item Item) (Item, error) {
	if err := validateItem(item); err != nil {
		return Item{}, err
	}
	id, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return Item{}, err
	}
	return s.repo.GetItem(ctx, id)
}

func (s *ServiceImpl) UpdateItem(ctx context.Context, item Item) (Item, error) {
	if err := validateItem(item); err != nil {
		return Item{}, err
	}
	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return Item{}, err
	}
	if !updated {
		return Item{}, ErrItemNotFound
	}
	return s.repo.GetItem(ctx, item.Id)
}

func (s *ServiceImpl) ListCategories(ctx context.Context) ([]ItemCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *ServiceImpl) CreateCategory(ctx context.Context, category ItemCategory) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	return s.repo.CreateCategory(ctx, category)
}

func (s *ServiceImpl) UpdateCategory(ctx context.Context, category ItemCategory) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return err
	}
	if !updated {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *ServiceImpl) DeleteCategory(ctx context.Context, code string) (bool, error) {
	return s.repo.DeleteCategory(ctx, code)
}

func validateItem(item Item) error {
	if !codePattern.MatchString(item.Code) {
		return fmt.Errorf("%w: item code must be 1 to 5 digits", ErrValidation)
	}
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", ErrValidation)
	}
	if utf8.RuneCountInString(item.Name) > maxNameLength {
		return fmt.Errorf("%w: item name must be at most %d characters", ErrValidation, maxNameLength)
	}
	if utf8.RuneCountInString(item.CategoryCode) > maxCategoryCodeLength {
		return fmt.Errorf("%w: category code must be at most %d characters", ErrValidation, maxCategoryCodeLength)
	}
	if utf8.RuneCountInString(item.Remarks) > maxRemarksLength {
		return fmt.Errorf("%w: remarks must be at most %d characters", ErrValidation, maxRemarksLength)
	}
	return nil
}

func validateCategory(category ItemCategory) error {
	if category.Code == "" || category.Name == "" {
		return fmt.Errorf("%w: category code and name are required", ErrValidation)
	}
	if utf8.RuneCountInString(category.Code) > maxCategoryCodeLength {
		return fmt.Errorf("%w: category code must be at most %d characters", ErrValidation, maxCategoryCodeLength)
	}
	if utf8.RuneCountInString(category.Name) > maxCategoryNameLength {
		return fmt.Errorf("%w: category name must be at most %d characters", ErrValidation, maxCategoryNameLength)
	}
	return nil
}
