package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/service"
	apperrors "github.com/vendra/vendra-backend/internal/errors"
	"github.com/vendra/vendra-backend/internal/middleware"
)

// CatalogController serves the public storefront read surface. Only active
// products are visible here regardless of query parameters.
type CatalogController struct {
	productService    service.ProductService
	collectionService service.CollectionService
	taxonomyService   service.TaxonomyService
}

func NewCatalogController(
	productService service.ProductService,
	collectionService service.CollectionService,
	taxonomyService service.TaxonomyService,
) *CatalogController {
	return &CatalogController{
		productService:    productService,
		collectionService: collectionService,
		taxonomyService:   taxonomyService,
	}
}

// ListProducts returns a page of active products
// GET /api/v1/catalog/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := parseListOptions(c)
	active := model.StatusActive
	opts.Status = &active

	products, total, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		log.Error("Failed to list catalog products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})
}

// GetProduct returns one active product aggregate
// GET /api/v1/catalog/products/:id
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		respondProductError(c, err)
		return
	}

	// The storefront never sees drafts or archived products
	if product.Status != model.StatusActive {
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// ListCollections returns all collections
// GET /api/v1/catalog/collections
func (ctrl *CatalogController) ListCollections(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	collections, err := ctrl.collectionService.ListCollections()
	if err != nil {
		log.Error("Failed to list collections", err, nil)
		apperrors.InternalError(c, "Failed to fetch collections")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"count":       len(collections),
	})
}

// GetTaxonomy returns categories, types and vendors in one payload
// GET /api/v1/catalog/taxonomy
func (ctrl *CatalogController) GetTaxonomy(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.taxonomyService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch taxonomy")
		return
	}

	types, err := ctrl.taxonomyService.ListTypes()
	if err != nil {
		log.Error("Failed to list product types", err, nil)
		apperrors.InternalError(c, "Failed to fetch taxonomy")
		return
	}

	vendors, err := ctrl.taxonomyService.ListVendors()
	if err != nil {
		log.Error("Failed to list vendors", err, nil)
		apperrors.InternalError(c, "Failed to fetch taxonomy")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"types":      types,
		"vendors":    vendors,
	})
}
