package db

import (
	"strings"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"gorm.io/gorm"
)

// defaultCategories are created once when the categories table is empty.
var defaultCategories = []string{"Electronics", "Clothing", "Books", "Home", "Misc"}

// SeedCategories inserts the default category set if none exist yet.
func SeedCategories(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Debug("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding default categories...")

	for _, name := range defaultCategories {
		category := model.Category{
			Name: name,
			Slug: strings.ToLower(name),
		}
		if err := gdb.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": name,
			})
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_categories": len(defaultCategories),
	})
	return nil
}
