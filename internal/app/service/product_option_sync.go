package service

import (
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

// syncOptions reconciles the product's option groups against the payload.
// Deleting an option cascades to its values. Updates may rename the option
// and, when the payload carries a values list, hand that list to the nested
// value synchronizer.
func (s *productService) syncOptions(tx *gorm.DB, product *model.Product, items []OptionSyncItem) (SyncResult, error) {
	var result SyncResult
	optionRepo := s.optionRepo.WithTx(tx)

	existing, err := optionRepo.FindByProductID(product.ID)
	if err != nil {
		return result, err
	}

	existingIDs := make([]uint, 0, len(existing))
	existingByID := make(map[uint]model.ProductOption, len(existing))
	for _, option := range existing {
		existingIDs = append(existingIDs, option.ID)
		existingByID[option.ID] = option
	}

	diff := diffChildren(existingIDs, items, func(item OptionSyncItem) (uint, bool) {
		if item.ID != nil {
			return *item.ID, true
		}
		return 0, false
	})

	if len(diff.toDelete) > 0 {
		if err := optionRepo.DeleteByIDs(diff.toDelete); err != nil {
			return result, err
		}
		result.Detached = diff.toDelete
	}

	for _, item := range diff.toUpdate {
		option, ok := existingByID[*item.ID]
		if !ok {
			logger.Warn("Option sync payload references option not on product", map[string]interface{}{
				"product_id": product.ID,
				"option_id":  *item.ID,
			})
			return result, ErrOptionNotFound
		}

		if item.Name != nil {
			option.Name = *item.Name
			if err := optionRepo.Update(&option); err != nil {
				return result, err
			}
		}
		if item.Values != nil {
			if _, err := s.syncOptionValues(tx, &option, *item.Values); err != nil {
				return result, err
			}
		}
		result.Updated = append(result.Updated, option.ID)
	}

	for _, item := range diff.toCreate {
		option := &model.ProductOption{ProductID: product.ID}
		if item.Name != nil {
			option.Name = *item.Name
		}
		if err := optionRepo.Create(option); err != nil {
			return result, err
		}

		if item.Values != nil {
			values := make([]model.ProductOptionValue, 0, len(*item.Values))
			for _, v := range dedupStrings(*item.Values) {
				values = append(values, model.ProductOptionValue{OptionID: option.ID, Value: v})
			}
			if err := optionRepo.CreateValues(values); err != nil {
				return result, err
			}
		}
		result.Attached = append(result.Attached, option.ID)
	}

	logger.Debug("Options synchronized", map[string]interface{}{
		"product_id": product.ID,
		"attached":   len(result.Attached),
		"detached":   len(result.Detached),
		"updated":    len(result.Updated),
	})
	return result, nil
}

// syncOptionValues reconciles one option's value set against a list of value
// strings. The string is the key: existing values missing from the list are
// deleted, list entries with no existing row are created. There is no update
// case: a changed value is a delete plus a create, never a rename.
func (s *productService) syncOptionValues(tx *gorm.DB, option *model.ProductOption, values []string) (SyncResult, error) {
	var result SyncResult
	optionRepo := s.optionRepo.WithTx(tx)

	existing, err := optionRepo.FindValuesByOptionID(option.ID)
	if err != nil {
		return result, err
	}

	desired := dedupStrings(values)
	desiredSet := make(map[string]struct{}, len(desired))
	for _, v := range desired {
		desiredSet[v] = struct{}{}
	}

	existingSet := make(map[string]struct{}, len(existing))
	var toDelete []uint
	for _, value := range existing {
		existingSet[value.Value] = struct{}{}
		if _, keep := desiredSet[value.Value]; !keep {
			toDelete = append(toDelete, value.ID)
		}
	}

	if len(toDelete) > 0 {
		if err := optionRepo.DeleteValuesByIDs(toDelete); err != nil {
			return result, err
		}
		result.Detached = toDelete
	}

	var toCreate []model.ProductOptionValue
	for _, v := range desired {
		if _, exists := existingSet[v]; !exists {
			toCreate = append(toCreate, model.ProductOptionValue{OptionID: option.ID, Value: v})
		}
	}
	if len(toCreate) > 0 {
		if err := optionRepo.CreateValues(toCreate); err != nil {
			return result, err
		}
		for _, value := range toCreate {
			result.Attached = append(result.Attached, value.ID)
		}
	}

	return result, nil
}
