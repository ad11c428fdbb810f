package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

// syncMedia reconciles the product's media rows against the payload. Items
// with an ID update rank only; items without an ID must carry a file, which is
// stored under a product-scoped path before the row is created. Rows whose ID
// is missing from the payload are deleted, but their stored objects are not;
// the storage sweeper picks those up later.
func (s *productService) syncMedia(tx *gorm.DB, product *model.Product, items []MediaSyncItem) (SyncResult, error) {
	var result SyncResult
	mediaRepo := s.mediaRepo.WithTx(tx)

	existing, err := mediaRepo.FindByProductID(product.ID)
	if err != nil {
		return result, err
	}

	existingIDs := make([]uint, 0, len(existing))
	existingByID := make(map[uint]model.ProductMedia, len(existing))
	for _, media := range existing {
		existingIDs = append(existingIDs, media.ID)
		existingByID[media.ID] = media
	}

	diff := diffChildren(existingIDs, items, func(item MediaSyncItem) (uint, bool) {
		if item.ID != nil {
			return *item.ID, true
		}
		return 0, false
	})

	if len(diff.toDelete) > 0 {
		if err := mediaRepo.DeleteByIDs(diff.toDelete); err != nil {
			return result, err
		}
		result.Detached = diff.toDelete
	}

	for _, item := range diff.toUpdate {
		media, ok := existingByID[*item.ID]
		if !ok {
			logger.Warn("Media sync payload references media not on product", map[string]interface{}{
				"product_id": product.ID,
				"media_id":   *item.ID,
			})
			return result, ErrMediaNotFound
		}
		media.Rank = item.Rank
		if err := mediaRepo.Update(&media); err != nil {
			return result, err
		}
		result.Updated = append(result.Updated, media.ID)
	}

	folder := fmt.Sprintf("products/%d", product.ID)
	for _, item := range diff.toCreate {
		if item.File == nil {
			return result, ErrMediaFileRequired
		}

		// Key carries a UUID so uploads from separate sync calls never
		// overwrite each other's objects.
		baseName := fmt.Sprintf("%s-%s", product.Handle, uuid.New().String())
		url, err := s.storage.Store(context.Background(), *item.File, folder, baseName)
		if err != nil {
			logger.Error("Failed to store media file", err, map[string]interface{}{
				"product_id": product.ID,
				"base_name":  baseName,
			})
			return result, fmt.Errorf("%w: %v", ErrStorageFailure, err)
		}

		media := &model.ProductMedia{
			ProductID: product.ID,
			URL:       url,
			Rank:      item.Rank,
		}
		if err := mediaRepo.Create(media); err != nil {
			return result, err
		}
		result.Attached = append(result.Attached, media.ID)
	}

	logger.Debug("Media synchronized", map[string]interface{}{
		"product_id": product.ID,
		"attached":   len(result.Attached),
		"detached":   len(result.Detached),
		"updated":    len(result.Updated),
	})
	return result, nil
}
