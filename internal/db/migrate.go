package db

import (
	"fmt"

	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
)

// Migrate runs gorm auto-migration for every model. Parents migrate before
// children so foreign keys resolve.
func Migrate() error {
	logger.Info("Running database migrations", nil)

	err := DB.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.ProductCategory{},
		&model.ProductType{},
		&model.ProductVendor{},
		&model.Product{},
		&model.ProductMedia{},
		&model.ProductOption{},
		&model.ProductOptionValue{},
		&model.ProductVariant{},
		&model.Collection{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database migrations completed", nil)
	return nil
}
