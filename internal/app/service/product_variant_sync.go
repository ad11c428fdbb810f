package service

import (
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

// syncVariants reconciles the product's variants against the payload. Updates
// apply whichever scalar fields are present and, when an options list is
// given, replace the variant's option-value associations wholesale. Creations
// must carry an options list; a variant with no option selection is rejected,
// not skipped.
func (s *productService) syncVariants(tx *gorm.DB, product *model.Product, items []VariantSyncItem) (SyncResult, error) {
	var result SyncResult
	variantRepo := s.variantRepo.WithTx(tx)

	existing, err := variantRepo.FindByProductID(product.ID)
	if err != nil {
		return result, err
	}

	existingIDs := make([]uint, 0, len(existing))
	existingByID := make(map[uint]model.ProductVariant, len(existing))
	for _, variant := range existing {
		existingIDs = append(existingIDs, variant.ID)
		existingByID[variant.ID] = variant
	}

	diff := diffChildren(existingIDs, items, func(item VariantSyncItem) (uint, bool) {
		if item.ID != nil {
			return *item.ID, true
		}
		return 0, false
	})

	if len(diff.toDelete) > 0 {
		if err := variantRepo.DeleteByIDs(diff.toDelete); err != nil {
			return result, err
		}
		result.Detached = diff.toDelete
	}

	for _, item := range diff.toUpdate {
		variant, ok := existingByID[*item.ID]
		if !ok {
			logger.Warn("Variant sync payload references variant not on product", map[string]interface{}{
				"product_id": product.ID,
				"variant_id": *item.ID,
			})
			return result, ErrVariantNotFound
		}

		applyVariantScalars(&variant, item)
		if err := variantRepo.Update(&variant); err != nil {
			return result, err
		}

		if item.Options != nil {
			resolved, err := s.resolveOptionValues(tx, product.ID, *item.Options)
			if err != nil {
				return result, err
			}
			if err := variantRepo.ReplaceOptionValues(&variant, resolved); err != nil {
				return result, err
			}
		}
		result.Updated = append(result.Updated, variant.ID)
	}

	for _, item := range diff.toCreate {
		if item.Options == nil {
			logger.Warn("Variant creation without option selection rejected", map[string]interface{}{
				"product_id": product.ID,
			})
			return result, ErrVariantOptionsRequired
		}

		resolved, err := s.resolveOptionValues(tx, product.ID, *item.Options)
		if err != nil {
			return result, err
		}

		variant := model.ProductVariant{ProductID: product.ID}
		applyVariantScalars(&variant, item)
		if err := variantRepo.Create(&variant); err != nil {
			return result, err
		}
		if err := variantRepo.ReplaceOptionValues(&variant, resolved); err != nil {
			return result, err
		}
		result.Attached = append(result.Attached, variant.ID)
	}

	logger.Debug("Variants synchronized", map[string]interface{}{
		"product_id": product.ID,
		"attached":   len(result.Attached),
		"detached":   len(result.Detached),
		"updated":    len(result.Updated),
	})
	return result, nil
}

func applyVariantScalars(variant *model.ProductVariant, item VariantSyncItem) {
	if item.Name != nil {
		variant.Name = *item.Name
	}
	if item.Price != nil {
		variant.Price = *item.Price
	}
	if item.Quantity != nil {
		variant.Quantity = *item.Quantity
	}
	if item.SKU != nil {
		variant.SKU = item.SKU
	}
	if item.Barcode != nil {
		variant.Barcode = item.Barcode
	}
}

// resolveOptionValues maps value strings to existing option-value rows of the
// product. The first row whose value matches wins. Any string with no match
// fails the whole resolution: a variant option reference must point at a real
// value.
func (s *productService) resolveOptionValues(tx *gorm.DB, productID uint, refs []VariantOptionRef) ([]model.ProductOptionValue, error) {
	values, err := s.optionRepo.WithTx(tx).FindValuesByProductID(productID)
	if err != nil {
		return nil, err
	}

	byValue := make(map[string]model.ProductOptionValue, len(values))
	for _, value := range values {
		if _, ok := byValue[value.Value]; !ok {
			byValue[value.Value] = value
		}
	}

	resolved := make([]model.ProductOptionValue, 0, len(refs))
	for _, ref := range refs {
		value, ok := byValue[ref.Value]
		if !ok {
			logger.Warn("Option value did not resolve for product", map[string]interface{}{
				"product_id": productID,
				"value":      ref.Value,
			})
			return nil, ErrOptionValueNotFound
		}
		resolved = append(resolved, value)
	}
	return resolved, nil
}
