package repository

import (
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

type CollectionRepository interface {
	WithTx(tx *gorm.DB) CollectionRepository
	Create(collection *model.Collection) error
	FindAll() ([]model.Collection, error)
	FindByID(id uint) (*model.Collection, error)
	FindByIDs(ids []uint) ([]model.Collection, error)
	FindIDsByProductID(productID uint) ([]uint, error)
	CountByHandle(handle string, excludeID uint) (int64, error)
	Update(collection *model.Collection) error
	Delete(id uint) error
	ReplaceProducts(product *model.Product, collections []model.Collection) error
	DetachProduct(productID uint) error
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) WithTx(tx *gorm.DB) CollectionRepository {
	return &collectionRepository{db: tx}
}

func (r *collectionRepository) Create(collection *model.Collection) error {
	if err := r.db.Create(collection).Error; err != nil {
		logger.Error("Failed to create collection", err, map[string]interface{}{
			"title": collection.Title,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) FindAll() ([]model.Collection, error) {
	var collections []model.Collection
	if err := r.db.Order("id ASC").Find(&collections).Error; err != nil {
		logger.Error("Failed to list collections", err, nil)
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) FindByID(id uint) (*model.Collection, error) {
	var collection model.Collection
	if err := r.db.First(&collection, id).Error; err != nil {
		logger.Error("Failed to find collection by ID", err, map[string]interface{}{
			"collection_id": id,
		})
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) FindByIDs(ids []uint) ([]model.Collection, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var collections []model.Collection
	if err := r.db.Where("id IN ?", ids).Find(&collections).Error; err != nil {
		logger.Error("Failed to find collections by IDs", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return collections, nil
}

// FindIDsByProductID returns the collection IDs the product currently
// belongs to, straight from the join table.
func (r *collectionRepository) FindIDsByProductID(productID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.
		Table("collection_products").
		Where("product_id = ?", productID).
		Order("collection_id ASC").
		Pluck("collection_id", &ids).Error; err != nil {
		logger.Error("Failed to list product collection IDs", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return ids, nil
}

func (r *collectionRepository) CountByHandle(handle string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&model.Collection{}).Where("handle = ?", handle)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to count collections by handle", err, map[string]interface{}{
			"handle": handle,
		})
		return 0, err
	}
	return count, nil
}

func (r *collectionRepository) Update(collection *model.Collection) error {
	if err := r.db.Omit("Products").Save(collection).Error; err != nil {
		logger.Error("Failed to update collection", err, map[string]interface{}{
			"collection_id": collection.ID,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) Delete(id uint) error {
	if err := r.db.Exec("DELETE FROM collection_products WHERE collection_id = ?", id).Error; err != nil {
		logger.Error("Failed to detach products from collection", err, map[string]interface{}{
			"collection_id": id,
		})
		return err
	}
	if err := r.db.Delete(&model.Collection{}, id).Error; err != nil {
		logger.Error("Failed to delete collection", err, map[string]interface{}{
			"collection_id": id,
		})
		return err
	}
	return nil
}

// ReplaceProducts sets the product's collection memberships to exactly the
// given collections.
func (r *collectionRepository) ReplaceProducts(product *model.Product, collections []model.Collection) error {
	if err := r.db.Model(product).Association("Collections").Replace(&collections); err != nil {
		logger.Error("Failed to replace product collections", err, map[string]interface{}{
			"product_id": product.ID,
			"count":      len(collections),
		})
		return err
	}
	return nil
}

// DetachProduct removes the product's membership rows without touching the
// collections themselves. Used when a product is deleted.
func (r *collectionRepository) DetachProduct(productID uint) error {
	if err := r.db.Exec("DELETE FROM collection_products WHERE product_id = ?", productID).Error; err != nil {
		logger.Error("Failed to detach product from collections", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}
