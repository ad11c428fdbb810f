package repository

import (
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductMediaRepository interface {
	WithTx(tx *gorm.DB) ProductMediaRepository
	Create(media *model.ProductMedia) error
	FindByProductID(productID uint) ([]model.ProductMedia, error)
	Update(media *model.ProductMedia) error
	DeleteByIDs(ids []uint) error
	DeleteByProductID(productID uint) error
	ListAllURLs() ([]string, error)
}

type productMediaRepository struct {
	db *gorm.DB
}

func NewProductMediaRepository(db *gorm.DB) ProductMediaRepository {
	return &productMediaRepository{db: db}
}

func (r *productMediaRepository) WithTx(tx *gorm.DB) ProductMediaRepository {
	return &productMediaRepository{db: tx}
}

func (r *productMediaRepository) Create(media *model.ProductMedia) error {
	if err := r.db.Create(media).Error; err != nil {
		logger.Error("Failed to create product media", err, map[string]interface{}{
			"product_id": media.ProductID,
			"rank":       media.Rank,
		})
		return err
	}
	return nil
}

func (r *productMediaRepository) FindByProductID(productID uint) ([]model.ProductMedia, error) {
	var media []model.ProductMedia
	if err := r.db.
		Where("product_id = ?", productID).
		Order("rank ASC, id ASC").
		Find(&media).Error; err != nil {
		logger.Error("Failed to find product media", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return media, nil
}

func (r *productMediaRepository) Update(media *model.ProductMedia) error {
	if err := r.db.Save(media).Error; err != nil {
		logger.Error("Failed to update product media", err, map[string]interface{}{
			"media_id": media.ID,
		})
		return err
	}
	return nil
}

func (r *productMediaRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Where("id IN ?", ids).Delete(&model.ProductMedia{}).Error; err != nil {
		logger.Error("Failed to delete product media by IDs", err, map[string]interface{}{
			"count": len(ids),
		})
		return err
	}
	return nil
}

func (r *productMediaRepository) DeleteByProductID(productID uint) error {
	if err := r.db.Where("product_id = ?", productID).Delete(&model.ProductMedia{}).Error; err != nil {
		logger.Error("Failed to delete product media by product", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}

// ListAllURLs returns every stored media URL. The storage sweeper uses this to
// decide which objects are still referenced.
func (r *productMediaRepository) ListAllURLs() ([]string, error) {
	var urls []string
	if err := r.db.Model(&model.ProductMedia{}).Pluck("url", &urls).Error; err != nil {
		logger.Error("Failed to list media URLs", err, nil)
		return nil, err
	}
	return urls, nil
}
