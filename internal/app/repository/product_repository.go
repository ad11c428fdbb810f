package repository

import (
	"fmt"

	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductSort string

const (
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortTitle     ProductSort = "title"
	ProductSortUpdatedAt ProductSort = "updated_at"
)

type ProductFilter struct {
	Status        *model.ProductStatus
	CategoryID    *uint
	CollectionID  *uint
	Search        string
	SortBy        ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindByIDForUpdate(id uint) (*model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, int64, error)
	FindByIDsInBatches(ids []uint, batchSize int, fn func(products []model.Product) error) error
	CountByHandle(handle string, excludeID uint) (int64, error)
	Save(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

// aggregateQuery applies the fixed eager-load set used by every aggregate read:
// category, type, vendor, collections, media, options with values, variants
// with their selected option values.
func (r *productRepository) aggregateQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Type").
		Preload("Vendor").
		Preload("Collections").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_media.rank ASC, product_media.id ASC")
		}).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_options.id ASC")
		}).
		Preload("Options.Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_option_values.id ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.id ASC")
		}).
		Preload("Variants.OptionValues")
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"title":  product.Title,
		"handle": product.Handle,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"title":  product.Title,
			"handle": product.Handle,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.aggregateQuery().First(&product, id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate loads the bare product row under a row-level lock. Child
// relations are not preloaded; the synchronizers load their own child sets.
func (r *productRepository) FindByIDForUpdate(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if err != nil {
		logger.Error("Failed to lock product row", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"status":        filter.Status,
		"category_id":   filter.CategoryID,
		"collection_id": filter.CollectionID,
		"search":        filter.Search,
		"sort_by":       filter.SortBy,
		"limit":         filter.Limit,
		"offset":        filter.Offset,
	})

	query := r.aggregateQuery()

	if filter.Status != nil {
		query = query.Where("products.status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.CollectionID != nil {
		query = query.
			Joins("JOIN collection_products ON collection_products.product_id = products.id").
			Where("collection_products.collection_id = ?", *filter.CollectionID)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("products.title LIKE ? OR products.description LIKE ?", like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Distinct("products.id").Count(&total).Error; err != nil {
		logger.Error("Failed to count products with filter", err, nil)
		return nil, 0, err
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortTitle:
		query = query.Order("products.title " + direction)
	case ProductSortUpdatedAt:
		query = query.Order("products.updated_at " + direction)
	case ProductSortCreatedAt:
		fallthrough
	default:
		query = query.Order("products.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, err
	}

	return products, total, nil
}

// FindByIDsInBatches streams the products matching ids to fn in chunks of
// batchSize so bulk operations never hold the full result set in memory.
func (r *productRepository) FindByIDsInBatches(ids []uint, batchSize int, fn func(products []model.Product) error) error {
	if len(ids) == 0 {
		return nil
	}

	var batch []model.Product
	result := r.db.
		Where("id IN ?", ids).
		Order("id ASC").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		})
	if result.Error != nil {
		logger.Error("Failed to iterate products in batches", result.Error, map[string]interface{}{
			"id_count":   len(ids),
			"batch_size": batchSize,
		})
		return result.Error
	}
	return nil
}

func (r *productRepository) CountByHandle(handle string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&model.Product{}).Where("handle = ?", handle)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to count products by handle", err, map[string]interface{}{
			"handle": handle,
		})
		return 0, err
	}
	return count, nil
}

func (r *productRepository) Save(product *model.Product) error {
	if err := r.db.Omit(clause.Associations).Save(product).Error; err != nil {
		logger.Error("Failed to save product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Soft-deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}
