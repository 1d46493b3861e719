package item

import (
	"context"
	"sort"
	"strings"
)

type RepositoryStub struct {
	nextId     int
	items      map[int]Item
	categories map[string]ItemCategory
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:      map[int]Item{},
		categories: map[string]ItemCategory{},
	}
}

func (s *RepositoryStub) SearchItems(ctx context.Context, filter Filter) ([]Item, error) {
	var items []Item
	for _, item := range s.items {
		if filter.Name != "" && !strings.Contains(item.Name, filter.Name) {
			continue
		}
		if filter.Code != "" && item.Code != filter.Code {
			continue
		}
		if filter.CategoryCode != "" && item.CategoryCode != filter.CategoryCode {
			continue
		}
		if category, exists := s.categories[item.CategoryCode]; exists {
			item.CategoryName = category.Name
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
	return items, nil
}

func (s *RepositoryStub) GetItem(ctx context.Context, id int) (Item, error) {
	item, exists := s.items[id]
	if !exists {
		return Item{}, ErrItemNotFound
	}
	if category, exists := s.categories[item.CategoryCode]; exists {
		item.CategoryName = category.Name
	}
	return item, nil
}

func (s *RepositoryStub) CreateItem(ctx context.Context, item Item) (int, error) {
	for _, existing := range s.items {
		if existing.Code == item.Code {
			return 0, ErrDuplicateCode
		}
	}
	s.nextId++
	item.Id = s.nextId
	s.items[item.Id] = item
	return item.Id, nil
}

func (s *RepositoryStub) UpdateItem(ctx context.Context, item Item) (bool, error) {
	if _, exists := s.items[item.Id]; !exists {
		return false, nil
	}
	for _, existing := range s.items {
		if existing.Id != item.Id && existing.Code == item.Code {
			return false, ErrDuplicateCode
		}
	}
	s.items[item.Id] = item
	return true, nil
}

func (s *RepositoryStub) ListCategories(ctx context.Context) ([]ItemCategory, error) {
	categories := make([]ItemCategory, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Code < categories[j].Code })
	return categories, nil
}

func (s *RepositoryStub) CreateCategory(ctx context.Context, category ItemCategory) error {
	if _, exists := s.categories[category.Code]; exists {
		return ErrDuplicateCategory
	}
	s.categories[category.Code] = category
	return nil
}

func (s *RepositoryStub) UpdateCategory(ctx context.Context, category ItemCategory) (bool, error) {
	if _, exists := s.categories[category.Code]; !exists {
		return false, nil
	}
	s.categories[category.Code] = category
	return true, nil
}

func (s *RepositoryStub) DeleteCategory(ctx context.Context, code string) (bool, error) {
	if _, exists := s.categories[code]; exists {
		delete(s.categories, code)
		return true, nil
	}
	return false, nil
}

func (s *RepositoryStub) Cleanup() {
	s.items = map[int]Item{}
	s.categories = map[string]ItemCategory{}
	s.nextId = 0
}
