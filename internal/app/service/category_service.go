package service

import (
	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/internal/app/repository"
	"github.com/marketloop/marketloop-backend/pkg/logger"
)

type CategoryService interface {
	GetCategories() ([]model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) GetCategories() ([]model.Category, error) {
	logger.Debug("Fetching categories", nil)

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch categories", err, nil)
		return nil, err
	}

	logger.Debug("Categories fetched successfully", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}
