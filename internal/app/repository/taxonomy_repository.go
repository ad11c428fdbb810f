package repository

import (
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

// TaxonomyRepository covers the referenced catalog taxonomy: categories,
// types and vendors. These are simple lookup tables managed from the admin
// surface.
type TaxonomyRepository interface {
	ListCategories() ([]model.ProductCategory, error)
	CreateCategory(category *model.ProductCategory) error
	ListTypes() ([]model.ProductType, error)
	CreateType(productType *model.ProductType) error
	ListVendors() ([]model.ProductVendor, error)
	CreateVendor(vendor *model.ProductVendor) error
}

type taxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListCategories() ([]model.ProductCategory, error) {
	var categories []model.ProductCategory
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list product categories", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *taxonomyRepository) CreateCategory(category *model.ProductCategory) error {
	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create product category", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}
	return nil
}

func (r *taxonomyRepository) ListTypes() ([]model.ProductType, error) {
	var types []model.ProductType
	if err := r.db.Order("value ASC").Find(&types).Error; err != nil {
		logger.Error("Failed to list product types", err, nil)
		return nil, err
	}
	return types, nil
}

func (r *taxonomyRepository) CreateType(productType *model.ProductType) error {
	if err := r.db.Create(productType).Error; err != nil {
		logger.Error("Failed to create product type", err, map[string]interface{}{
			"value": productType.Value,
		})
		return err
	}
	return nil
}

func (r *taxonomyRepository) ListVendors() ([]model.ProductVendor, error) {
	var vendors []model.ProductVendor
	if err := r.db.Order("name ASC").Find(&vendors).Error; err != nil {
		logger.Error("Failed to list product vendors", err, nil)
		return nil, err
	}
	return vendors, nil
}

func (r *taxonomyRepository) CreateVendor(vendor *model.ProductVendor) error {
	if err := r.db.Create(vendor).Error; err != nil {
		logger.Error("Failed to create product vendor", err, map[string]interface{}{
			"name": vendor.Name,
		})
		return err
	}
	return nil
}
