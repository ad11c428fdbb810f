package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendra/vendra-backend/internal/app/service"
	apperrors "github.com/vendra/vendra-backend/internal/errors"
	"github.com/vendra/vendra-backend/internal/middleware"
)

type TaxonomyController struct {
	taxonomyService service.TaxonomyService
}

func NewTaxonomyController(taxonomyService service.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{
		taxonomyService: taxonomyService,
	}
}

type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

type CreateTypeRequest struct {
	Value string `json:"value" binding:"required"`
}

type CreateVendorRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories returns all product categories
// GET /api/v1/admin/taxonomy/categories
func (ctrl *TaxonomyController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.taxonomyService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateCategory creates a product category
// POST /api/v1/admin/taxonomy/categories
func (ctrl *TaxonomyController) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	category, err := ctrl.taxonomyService.CreateCategory(req.Name, req.ParentID)
	if err != nil {
		info := apperrors.ParseError(err, "category")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// ListTypes returns all product types
// GET /api/v1/admin/taxonomy/types
func (ctrl *TaxonomyController) ListTypes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	types, err := ctrl.taxonomyService.ListTypes()
	if err != nil {
		log.Error("Failed to list product types", err, nil)
		apperrors.InternalError(c, "Failed to fetch product types")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"types": types,
		"count": len(types),
	})
}

// CreateType creates a product type
// POST /api/v1/admin/taxonomy/types
func (ctrl *TaxonomyController) CreateType(c *gin.Context) {
	var req CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	productType, err := ctrl.taxonomyService.CreateType(req.Value)
	if err != nil {
		info := apperrors.ParseError(err, "product type")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"type": productType,
	})
}

// ListVendors returns all vendors
// GET /api/v1/admin/taxonomy/vendors
func (ctrl *TaxonomyController) ListVendors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendors, err := ctrl.taxonomyService.ListVendors()
	if err != nil {
		log.Error("Failed to list vendors", err, nil)
		apperrors.InternalError(c, "Failed to fetch vendors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendors": vendors,
		"count":   len(vendors),
	})
}

// CreateVendor creates a vendor
// POST /api/v1/admin/taxonomy/vendors
func (ctrl *TaxonomyController) CreateVendor(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	vendor, err := ctrl.taxonomyService.CreateVendor(req.Name)
	if err != nil {
		info := apperrors.ParseError(err, "vendor")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"vendor": vendor,
	})
}
