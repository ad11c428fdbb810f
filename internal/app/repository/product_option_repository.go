package repository

import (
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductOptionRepository interface {
	WithTx(tx *gorm.DB) ProductOptionRepository
	Create(option *model.ProductOption) error
	FindByProductID(productID uint) ([]model.ProductOption, error)
	Update(option *model.ProductOption) error
	DeleteByIDs(ids []uint) error
	DeleteByProductID(productID uint) error
	CreateValues(values []model.ProductOptionValue) error
	FindValuesByOptionID(optionID uint) ([]model.ProductOptionValue, error)
	FindValuesByProductID(productID uint) ([]model.ProductOptionValue, error)
	DeleteValuesByIDs(ids []uint) error
}

type productOptionRepository struct {
	db *gorm.DB
}

func NewProductOptionRepository(db *gorm.DB) ProductOptionRepository {
	return &productOptionRepository{db: db}
}

func (r *productOptionRepository) WithTx(tx *gorm.DB) ProductOptionRepository {
	return &productOptionRepository{db: tx}
}

func (r *productOptionRepository) Create(option *model.ProductOption) error {
	logger.Debug("Creating product option", map[string]interface{}{
		"product_id": option.ProductID,
		"name":       option.Name,
	})

	if err := r.db.Create(option).Error; err != nil {
		logger.Error("Failed to create product option", err, map[string]interface{}{
			"product_id": option.ProductID,
			"name":       option.Name,
		})
		return err
	}
	return nil
}

func (r *productOptionRepository) FindByProductID(productID uint) ([]model.ProductOption, error) {
	var options []model.ProductOption
	if err := r.db.
		Where("product_id = ?", productID).
		Order("id ASC").
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_option_values.id ASC")
		}).
		Find(&options).Error; err != nil {
		logger.Error("Failed to find product options", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return options, nil
}

func (r *productOptionRepository) Update(option *model.ProductOption) error {
	if err := r.db.Omit("Values").Save(option).Error; err != nil {
		logger.Error("Failed to update product option", err, map[string]interface{}{
			"option_id": option.ID,
		})
		return err
	}
	return nil
}

// DeleteByIDs removes options together with their values. Values go first so
// no orphaned value rows survive the option.
func (r *productOptionRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Where("option_id IN ?", ids).Delete(&model.ProductOptionValue{}).Error; err != nil {
		logger.Error("Failed to delete option values for options", err, map[string]interface{}{
			"option_count": len(ids),
		})
		return err
	}
	if err := r.db.Where("id IN ?", ids).Delete(&model.ProductOption{}).Error; err != nil {
		logger.Error("Failed to delete product options", err, map[string]interface{}{
			"option_count": len(ids),
		})
		return err
	}
	return nil
}

func (r *productOptionRepository) DeleteByProductID(productID uint) error {
	options, err := r.FindByProductID(productID)
	if err != nil {
		return err
	}
	ids := make([]uint, 0, len(options))
	for _, option := range options {
		ids = append(ids, option.ID)
	}
	return r.DeleteByIDs(ids)
}

func (r *productOptionRepository) CreateValues(values []model.ProductOptionValue) error {
	if len(values) == 0 {
		return nil
	}
	if err := r.db.Create(&values).Error; err != nil {
		logger.Error("Failed to create option values", err, map[string]interface{}{
			"count": len(values),
		})
		return err
	}
	return nil
}

func (r *productOptionRepository) FindValuesByOptionID(optionID uint) ([]model.ProductOptionValue, error) {
	var values []model.ProductOptionValue
	if err := r.db.
		Where("option_id = ?", optionID).
		Order("id ASC").
		Find(&values).Error; err != nil {
		logger.Error("Failed to find option values", err, map[string]interface{}{
			"option_id": optionID,
		})
		return nil, err
	}
	return values, nil
}

// FindValuesByProductID returns every option value belonging to any option of
// the product, in option/row order. The option-value resolver works off this.
func (r *productOptionRepository) FindValuesByProductID(productID uint) ([]model.ProductOptionValue, error) {
	var values []model.ProductOptionValue
	if err := r.db.
		Joins("JOIN product_options ON product_options.id = product_option_values.option_id").
		Where("product_options.product_id = ?", productID).
		Order("product_option_values.option_id ASC, product_option_values.id ASC").
		Find(&values).Error; err != nil {
		logger.Error("Failed to find option values by product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return values, nil
}

func (r *productOptionRepository) DeleteValuesByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Where("id IN ?", ids).Delete(&model.ProductOptionValue{}).Error; err != nil {
		logger.Error("Failed to delete option values by IDs", err, map[string]interface{}{
			"count": len(ids),
		})
		return err
	}
	return nil
}
