package repository

import (
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductVariantRepository interface {
	WithTx(tx *gorm.DB) ProductVariantRepository
	Create(variant *model.ProductVariant) error
	FindByProductID(productID uint) ([]model.ProductVariant, error)
	Update(variant *model.ProductVariant) error
	DeleteByIDs(ids []uint) error
	DeleteByProductID(productID uint) error
	ReplaceOptionValues(variant *model.ProductVariant, values []model.ProductOptionValue) error
}

type productVariantRepository struct {
	db *gorm.DB
}

func NewProductVariantRepository(db *gorm.DB) ProductVariantRepository {
	return &productVariantRepository{db: db}
}

func (r *productVariantRepository) WithTx(tx *gorm.DB) ProductVariantRepository {
	return &productVariantRepository{db: tx}
}

func (r *productVariantRepository) Create(variant *model.ProductVariant) error {
	logger.Debug("Creating product variant", map[string]interface{}{
		"product_id": variant.ProductID,
		"name":       variant.Name,
	})

	if err := r.db.Omit("OptionValues").Create(variant).Error; err != nil {
		logger.Error("Failed to create product variant", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"name":       variant.Name,
		})
		return err
	}
	return nil
}

func (r *productVariantRepository) FindByProductID(productID uint) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	if err := r.db.
		Where("product_id = ?", productID).
		Order("id ASC").
		Preload("OptionValues").
		Find(&variants).Error; err != nil {
		logger.Error("Failed to find product variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

func (r *productVariantRepository) Update(variant *model.ProductVariant) error {
	if err := r.db.Omit(clause.Associations).Save(variant).Error; err != nil {
		logger.Error("Failed to update product variant", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}
	return nil
}

// DeleteByIDs removes variants and their option-value association rows.
func (r *productVariantRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.
		Exec("DELETE FROM product_variant_option_values WHERE product_variant_id IN ?", ids).Error; err != nil {
		logger.Error("Failed to delete variant option-value associations", err, map[string]interface{}{
			"variant_count": len(ids),
		})
		return err
	}
	if err := r.db.Where("id IN ?", ids).Delete(&model.ProductVariant{}).Error; err != nil {
		logger.Error("Failed to delete product variants", err, map[string]interface{}{
			"variant_count": len(ids),
		})
		return err
	}
	return nil
}

func (r *productVariantRepository) DeleteByProductID(productID uint) error {
	variants, err := r.FindByProductID(productID)
	if err != nil {
		return err
	}
	ids := make([]uint, 0, len(variants))
	for _, variant := range variants {
		ids = append(ids, variant.ID)
	}
	return r.DeleteByIDs(ids)
}

// ReplaceOptionValues swaps the variant's option-value association set for the
// given values. Replacement is total: values absent from the new set are
// detached.
func (r *productVariantRepository) ReplaceOptionValues(variant *model.ProductVariant, values []model.ProductOptionValue) error {
	if err := r.db.Model(variant).Association("OptionValues").Replace(&values); err != nil {
		logger.Error("Failed to replace variant option values", err, map[string]interface{}{
			"variant_id":  variant.ID,
			"value_count": len(values),
		})
		return err
	}
	return nil
}
