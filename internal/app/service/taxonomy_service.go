package service

import (
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/repository"
	"github.com/vendra/vendra-backend/pkg/logger"
)

// TaxonomyService manages the flat classification tables products point at:
// categories, types and vendors.
type TaxonomyService interface {
	ListCategories() ([]model.ProductCategory, error)
	CreateCategory(name string, parentID *uint) (*model.ProductCategory, error)
	ListTypes() ([]model.ProductType, error)
	CreateType(value string) (*model.ProductType, error)
	ListVendors() ([]model.ProductVendor, error)
	CreateVendor(name string) (*model.ProductVendor, error)
}

type taxonomyService struct {
	taxonomyRepo repository.TaxonomyRepository
}

func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepository) TaxonomyService {
	return &taxonomyService{
		taxonomyRepo: taxonomyRepo,
	}
}

func (s *taxonomyService) ListCategories() ([]model.ProductCategory, error) {
	return s.taxonomyRepo.ListCategories()
}

func (s *taxonomyService) CreateCategory(name string, parentID *uint) (*model.ProductCategory, error) {
	category := &model.ProductCategory{
		Name:     name,
		ParentID: parentID,
	}
	if err := s.taxonomyRepo.CreateCategory(category); err != nil {
		return nil, err
	}

	logger.Info("Product category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        name,
	})
	return category, nil
}

func (s *taxonomyService) ListTypes() ([]model.ProductType, error) {
	return s.taxonomyRepo.ListTypes()
}

func (s *taxonomyService) CreateType(value string) (*model.ProductType, error) {
	productType := &model.ProductType{Value: value}
	if err := s.taxonomyRepo.CreateType(productType); err != nil {
		return nil, err
	}

	logger.Info("Product type created", map[string]interface{}{
		"type_id": productType.ID,
		"value":   value,
	})
	return productType, nil
}

func (s *taxonomyService) ListVendors() ([]model.ProductVendor, error) {
	return s.taxonomyRepo.ListVendors()
}

func (s *taxonomyService) CreateVendor(name string) (*model.ProductVendor, error) {
	vendor := &model.ProductVendor{Name: name}
	if err := s.taxonomyRepo.CreateVendor(vendor); err != nil {
		return nil, err
	}

	logger.Info("Product vendor created", map[string]interface{}{
		"vendor_id": vendor.ID,
		"name":      name,
	})
	return vendor, nil
}
