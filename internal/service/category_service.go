package service

import (
	"context"
	"strings"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/cache"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
)

const categoryListTTL = 10 * time.Minute

// CategoryService serves the category tree.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates the category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns categories for the storefront or admin. The active-only
// storefront listing is cached; admin reads go to the database.
func (s *CategoryService) List(ctx context.Context, onlyActive bool) ([]models.Category, error) {
	if !onlyActive {
		return s.categoryRepo.List(false)
	}
	var cached []models.Category
	if hit, err := cache.GetJSON(ctx, cache.KeyCategoryTree, &cached); err == nil && hit {
		return cached, nil
	}
	categories, err := s.categoryRepo.List(true)
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, cache.KeyCategoryTree, categories, categoryListTTL)
	return categories, nil
}

// GetBySlug returns one category.
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create inserts a category.
func (s *CategoryService) Create(category *models.Category) error {
	if category == nil || strings.TrimSpace(category.Slug) == "" {
		return ErrCategoryNotFound
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Update saves a category.
func (s *CategoryService) Update(category *models.Category) error {
	if category == nil || category.ID == 0 {
		return ErrCategoryNotFound
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Delete removes a category.
func (s *CategoryService) Delete(id uint) error {
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CategoryService) invalidate() {
	_ = cache.Del(context.Background(), cache.KeyCategoryTree)
}
