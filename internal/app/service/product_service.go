package service

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/repository"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrMediaNotFound          = errors.New("product media not found")
	ErrOptionNotFound         = errors.New("product option not found")
	ErrVariantNotFound        = errors.New("product variant not found")
	ErrCollectionNotFound     = errors.New("collection not found")
	ErrOptionValueNotFound    = errors.New("option value not found")
	ErrVariantOptionsRequired = errors.New("variant requires an option selection")
	ErrMediaFileRequired      = errors.New("media item requires a file")
	ErrStorageFailure         = errors.New("media storage failure")
)

// Catalog change events published after a committed write.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// bulkUpdateChunkSize bounds how many product rows a bulk update holds in
// memory at once.
const bulkUpdateChunkSize = 100

type ProductService interface {
	CreateProduct(input ProductCreateInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductUpdateInput) (*model.Product, error)
	UpdateProducts(items []ProductBulkUpdateItem) ([]model.Product, error)
	DeleteProduct(id uint) error
	GetProduct(id uint) (*model.Product, error)
	ListProducts(opts ProductListOptions) ([]model.Product, int64, error)
}

type productService struct {
	db             *gorm.DB
	productRepo    repository.ProductRepository
	mediaRepo      repository.ProductMediaRepository
	optionRepo     repository.ProductOptionRepository
	variantRepo    repository.ProductVariantRepository
	collectionRepo repository.CollectionRepository
	storage        MediaStorage
	cache          ProductCache          // optional
	events         CatalogEventPublisher // optional
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	mediaRepo repository.ProductMediaRepository,
	optionRepo repository.ProductOptionRepository,
	variantRepo repository.ProductVariantRepository,
	collectionRepo repository.CollectionRepository,
	storage MediaStorage,
	cache ProductCache,
	events CatalogEventPublisher,
) ProductService {
	return &productService{
		db:             db,
		productRepo:    productRepo,
		mediaRepo:      mediaRepo,
		optionRepo:     optionRepo,
		variantRepo:    variantRepo,
		collectionRepo: collectionRepo,
		storage:        storage,
		cache:          cache,
		events:         events,
	}
}

func (s *productService) CreateProduct(input ProductCreateInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"title": input.Title,
	})

	handle, err := s.uniqueHandle(s.db, input.Title, 0)
	if err != nil {
		return nil, err
	}

	status := model.StatusDraft
	if input.Status != nil {
		status = *input.Status
	}

	product := &model.Product{
		Title:       input.Title,
		Subtitle:    input.Subtitle,
		Handle:      handle,
		Description: input.Description,
		Status:      status,
		Tags:        input.Tags,
		Metadata:    input.Metadata,
		CategoryID:  input.CategoryID,
		TypeID:      input.TypeID,
		VendorID:    input.VendorID,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	created, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		return nil, err
	}

	s.publish(EventProductCreated, created.ID)
	logger.Info("Product created", map[string]interface{}{
		"product_id": created.ID,
		"handle":     created.Handle,
	})
	return created, nil
}

// UpdateProduct applies a partial update to the aggregate inside a single
// transaction. Child collections are synchronized only when their payload key
// is present; a present-but-empty list deletes every child of that type. Any
// synchronizer failure rolls back the whole update.
func (s *productService) UpdateProduct(id uint, input ProductUpdateInput) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.WithTx(tx).FindByIDForUpdate(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := s.applyProductUpdate(tx, product, input); err != nil {
			return err
		}

		updated, err = s.productRepo.WithTx(tx).FindByID(id)
		return err
	})
	if err != nil {
		logger.Error("Product update failed, transaction rolled back", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	s.invalidate(id)
	s.publish(EventProductUpdated, id)
	return updated, nil
}

// applyProductUpdate mutates scalars and runs the child synchronizers in a
// fixed order: media, options, variants, collections. Options must be in
// place before variants run, or option-value resolution for values created in
// this same call would fail.
func (s *productService) applyProductUpdate(tx *gorm.DB, product *model.Product, input ProductUpdateInput) error {
	if input.Title != nil && *input.Title != product.Title {
		product.Title = *input.Title
		handle, err := s.uniqueHandle(tx, product.Title, product.ID)
		if err != nil {
			return err
		}
		product.Handle = handle
	}
	if input.Subtitle != nil {
		product.Subtitle = *input.Subtitle
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	if input.Metadata != nil {
		product.Metadata = input.Metadata
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.TypeID != nil {
		product.TypeID = input.TypeID
	}
	if input.VendorID != nil {
		product.VendorID = input.VendorID
	}

	if err := s.productRepo.WithTx(tx).Save(product); err != nil {
		return err
	}

	if input.Media != nil {
		if _, err := s.syncMedia(tx, product, *input.Media); err != nil {
			return err
		}
	}
	if input.Options != nil {
		if _, err := s.syncOptions(tx, product, *input.Options); err != nil {
			return err
		}
	}
	if input.Variants != nil {
		if _, err := s.syncVariants(tx, product, *input.Variants); err != nil {
			return err
		}
	}
	if input.CollectionIDs != nil {
		if _, err := s.syncCollections(tx, product, *input.CollectionIDs); err != nil {
			return err
		}
	}
	return nil
}

// syncCollections replaces the product's collection memberships with exactly
// the given ID set. Plain set replacement against the join table, with no
// create/update distinction for memberships.
func (s *productService) syncCollections(tx *gorm.DB, product *model.Product, ids []uint) (SyncResult, error) {
	var result SyncResult
	collectionRepo := s.collectionRepo.WithTx(tx)

	existingIDs, err := collectionRepo.FindIDsByProductID(product.ID)
	if err != nil {
		return result, err
	}

	desired := dedupIDs(ids)
	collections, err := collectionRepo.FindByIDs(desired)
	if err != nil {
		return result, err
	}
	if len(collections) != len(desired) {
		logger.Warn("Collection sync payload references unknown collection", map[string]interface{}{
			"product_id": product.ID,
			"requested":  len(desired),
			"found":      len(collections),
		})
		return result, ErrCollectionNotFound
	}

	if err := collectionRepo.ReplaceProducts(product, collections); err != nil {
		return result, err
	}

	desiredSet := make(map[uint]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}
	existingSet := make(map[uint]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existingSet[id] = struct{}{}
		if _, keep := desiredSet[id]; !keep {
			result.Detached = append(result.Detached, id)
		}
	}
	for _, id := range desired {
		if _, had := existingSet[id]; !had {
			result.Attached = append(result.Attached, id)
		}
	}
	return result, nil
}

// UpdateProducts applies per-product updates over a batch, fetching matching
// rows in chunks so the whole result set is never loaded at once. The entire
// batch runs in one transaction: one bad item rolls back everything.
func (s *productService) UpdateProducts(items []ProductBulkUpdateItem) ([]model.Product, error) {
	logger.Info("Bulk updating products", map[string]interface{}{
		"item_count": len(items),
	})

	inputByID := make(map[uint]ProductUpdateInput, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if _, seen := inputByID[item.ID]; !seen {
			ids = append(ids, item.ID)
		}
		inputByID[item.ID] = item.ProductUpdateInput
	}

	var results []model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		return productRepo.FindByIDsInBatches(ids, bulkUpdateChunkSize, func(products []model.Product) error {
			for i := range products {
				product := products[i]
				input, ok := inputByID[product.ID]
				if !ok {
					continue
				}
				if err := s.applyProductUpdate(tx, &product, input); err != nil {
					return fmt.Errorf("product %d: %w", product.ID, err)
				}
				reloaded, err := productRepo.FindByID(product.ID)
				if err != nil {
					return err
				}
				results = append(results, *reloaded)
			}
			return nil
		})
	})
	if err != nil {
		logger.Error("Bulk product update failed, batch rolled back", err, map[string]interface{}{
			"item_count": len(items),
		})
		return nil, err
	}

	for _, product := range results {
		s.invalidate(product.ID)
		s.publish(EventProductUpdated, product.ID)
	}
	return results, nil
}

// DeleteProduct hard-deletes the owned children (variants, option values,
// options, media), detaches collection memberships, and soft-deletes the
// product row. Collections themselves survive.
func (s *productService) DeleteProduct(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.productRepo.WithTx(tx).FindByIDForUpdate(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := s.variantRepo.WithTx(tx).DeleteByProductID(id); err != nil {
			return err
		}
		if err := s.optionRepo.WithTx(tx).DeleteByProductID(id); err != nil {
			return err
		}
		if err := s.mediaRepo.WithTx(tx).DeleteByProductID(id); err != nil {
			return err
		}
		if err := s.collectionRepo.WithTx(tx).DetachProduct(id); err != nil {
			return err
		}
		return s.productRepo.WithTx(tx).Delete(id)
	})
	if err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	s.invalidate(id)
	s.publish(EventProductDeleted, id)
	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.GetProduct(id); ok {
			return product, nil
		}
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetProduct(product)
	}
	return product, nil
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, int64, error) {
	products, total, err := s.productRepo.FindWithFilter(opts.toFilter())
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, 0, err
	}
	return products, total, nil
}

// uniqueHandle slugifies the title and probes for a free handle among
// non-deleted products, appending -2, -3... on collision.
func (s *productService) uniqueHandle(db *gorm.DB, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	productRepo := s.productRepo.WithTx(db)

	handle := base
	for i := 2; ; i++ {
		count, err := productRepo.CountByHandle(handle, excludeID)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return handle, nil
		}
		handle = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *productService) invalidate(id uint) {
	if s.cache != nil {
		s.cache.InvalidateProduct(id)
	}
}

func (s *productService) publish(event string, id uint) {
	if s.events != nil {
		s.events.PublishProductEvent(event, id)
	}
}

func dedupIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
