package controller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/service"
	apperrors "github.com/vendra/vendra-backend/internal/errors"
	"github.com/vendra/vendra-backend/internal/middleware"
)

// maxUpdatePayloadBytes bounds multipart update requests.
const maxUpdatePayloadBytes = 64 << 20 // 64MB

type ProductController struct {
	productService service.ProductService
	exportService  service.ExportService
}

func NewProductController(productService service.ProductService, exportService service.ExportService) *ProductController {
	return &ProductController{
		productService: productService,
		exportService:  exportService,
	}
}

type CreateProductRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Subtitle    string                 `json:"subtitle"`
	Description string                 `json:"description"`
	Status      *model.ProductStatus   `json:"status"`
	Tags        []string               `json:"tags"`
	Metadata    map[string]interface{} `json:"metadata"`
	CategoryID  *uint                  `json:"category_id"`
	TypeID      *uint                  `json:"type_id"`
	VendorID    *uint                  `json:"vendor_id"`
}

// UpdateProductRequest carries a partial product update. Omitted keys leave
// the corresponding field or child collection untouched; an empty child
// array deletes all children of that type.
type UpdateProductRequest struct {
	Title       *string                `json:"title"`
	Subtitle    *string                `json:"subtitle"`
	Description *string                `json:"description"`
	Status      *model.ProductStatus   `json:"status"`
	Tags        *[]string              `json:"tags"`
	Metadata    map[string]interface{} `json:"metadata"`
	CategoryID  *uint                  `json:"category_id"`
	TypeID      *uint                  `json:"type_id"`
	VendorID    *uint                  `json:"vendor_id"`

	Media         *[]MediaItemRequest   `json:"media"`
	Options       *[]OptionItemRequest  `json:"options"`
	Variants      *[]VariantItemRequest `json:"variants"`
	CollectionIDs *[]uint               `json:"collection_ids"`
}

// MediaItemRequest identifies existing media by ID. New media (no ID) must
// name the multipart file field holding its content.
type MediaItemRequest struct {
	ID        *uint  `json:"id"`
	Rank      int    `json:"rank"`
	FileField string `json:"file_field"`
}

type OptionItemRequest struct {
	ID     *uint     `json:"id"`
	Name   *string   `json:"name"`
	Values *[]string `json:"values"`
}

type VariantItemRequest struct {
	ID       *uint                   `json:"id"`
	Name     *string                 `json:"name"`
	Price    *decimal.Decimal        `json:"price"`
	Quantity *int                    `json:"quantity"`
	SKU      *string                 `json:"sku"`
	Barcode  *string                 `json:"barcode"`
	Options  *[]VariantOptionRequest `json:"options"`
}

type VariantOptionRequest struct {
	Value string `json:"value" binding:"required"`
}

type BulkUpdateRequest struct {
	Products []BulkUpdateItemRequest `json:"products" binding:"required"`
}

type BulkUpdateItemRequest struct {
	ID uint `json:"id" binding:"required"`
	UpdateProductRequest
}

// CreateProduct creates a new product (admin)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.productService.CreateProduct(service.ProductCreateInput{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Status:      req.Status,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
		CategoryID:  req.CategoryID,
		TypeID:      req.TypeID,
		VendorID:    req.VendorID,
	})
	if err != nil {
		respondProductError(c, err)
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"handle":     product.Handle,
	})
	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// GetProduct returns one product aggregate (admin)
// GET /api/v1/admin/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// ListProducts returns a filtered product page (admin)
// GET /api/v1/admin/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	opts := parseListOptions(c)

	products, total, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})
}

// UpdateProduct applies a partial update to one product aggregate. Accepts
// plain JSON, or multipart/form-data with the JSON under a "payload" field
// plus file parts for new media.
// PATCH /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	req, form, ok := bindUpdateRequest(c)
	if !ok {
		return
	}

	input, err := req.toInput(form)
	if err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, input)
	if err != nil {
		respondProductError(c, err)
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// BulkUpdateProducts applies partial updates to many products in one
// transaction. Unknown product IDs are skipped, not errors.
// POST /api/v1/admin/products/bulk
func (ctrl *ProductController) BulkUpdateProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid bulk update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	items := make([]service.ProductBulkUpdateItem, 0, len(req.Products))
	for _, p := range req.Products {
		input, err := p.toInput(nil)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, fmt.Sprintf("product %d: %s", p.ID, err.Error()))
			return
		}
		items = append(items, service.ProductBulkUpdateItem{
			ID:                 p.ID,
			ProductUpdateInput: input,
		})
	}

	products, err := ctrl.productService.UpdateProducts(items)
	if err != nil {
		respondProductError(c, err)
		return
	}

	log.Info("Bulk product update completed", map[string]interface{}{
		"requested": len(items),
		"updated":   len(products),
	})
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// DeleteProduct removes a product and its owned children (admin)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondProductError(c, err)
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	c.Status(http.StatusNoContent)
}

// ExportCatalog streams the catalog as an XLSX file (admin)
// GET /api/v1/admin/products/export
func (ctrl *ProductController) ExportCatalog(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filename := fmt.Sprintf("catalog-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := ctrl.exportService.ExportCatalog(c.Writer); err != nil {
		log.Error("Catalog export failed", err, nil)
		// Headers are already written, nothing sensible left to send
		c.Abort()
		return
	}
}

func bindUpdateRequest(c *gin.Context) (UpdateProductRequest, *multipart.Form, bool) {
	var req UpdateProductRequest

	if isMultipart(c) {
		if err := c.Request.ParseMultipartForm(maxUpdatePayloadBytes); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid multipart request")
			return req, nil, false
		}
		form := c.Request.MultipartForm

		payloads := form.Value["payload"]
		if len(payloads) == 0 {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Missing payload field")
			return req, nil, false
		}
		if err := bindJSONString(payloads[0], &req); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid payload JSON")
			return req, nil, false
		}
		return req, form, true
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return req, nil, false
	}
	return req, nil, true
}

func (r UpdateProductRequest) toInput(form *multipart.Form) (service.ProductUpdateInput, error) {
	input := service.ProductUpdateInput{
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Description: r.Description,
		Status:      r.Status,
		Tags:        r.Tags,
		Metadata:    r.Metadata,
		CategoryID:  r.CategoryID,
		TypeID:      r.TypeID,
		VendorID:    r.VendorID,
	}

	if r.Media != nil {
		items := make([]service.MediaSyncItem, 0, len(*r.Media))
		for _, m := range *r.Media {
			item := service.MediaSyncItem{
				ID:   m.ID,
				Rank: m.Rank,
			}
			if m.ID == nil {
				file, err := openFormFile(form, m.FileField)
				if err != nil {
					return input, err
				}
				item.File = file
			}
			items = append(items, item)
		}
		input.Media = &items
	}

	if r.Options != nil {
		items := make([]service.OptionSyncItem, 0, len(*r.Options))
		for _, o := range *r.Options {
			items = append(items, service.OptionSyncItem{
				ID:     o.ID,
				Name:   o.Name,
				Values: o.Values,
			})
		}
		input.Options = &items
	}

	if r.Variants != nil {
		items := make([]service.VariantSyncItem, 0, len(*r.Variants))
		for _, v := range *r.Variants {
			item := service.VariantSyncItem{
				ID:       v.ID,
				Name:     v.Name,
				Price:    v.Price,
				Quantity: v.Quantity,
				SKU:      v.SKU,
				Barcode:  v.Barcode,
			}
			if v.Options != nil {
				refs := make([]service.VariantOptionRef, 0, len(*v.Options))
				for _, o := range *v.Options {
					refs = append(refs, service.VariantOptionRef{Value: o.Value})
				}
				item.Options = &refs
			}
			items = append(items, item)
		}
		input.Variants = &items
	}

	input.CollectionIDs = r.CollectionIDs

	return input, nil
}

func openFormFile(form *multipart.Form, field string) (*service.MediaFile, error) {
	if field == "" {
		return nil, errors.New("new media item is missing file_field")
	}
	if form == nil {
		return nil, fmt.Errorf("file field %q requires a multipart request", field)
	}
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, fmt.Errorf("file field %q not found in request", field)
	}

	header := headers[0]
	reader, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %q: %w", field, err)
	}

	return &service.MediaFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      reader,
	}, nil
}

func parseListOptions(c *gin.Context) service.ProductListOptions {
	opts := service.ProductListOptions{
		Search: c.Query("q"),
		Sort:   service.ProductSort(c.DefaultQuery("sort", string(service.ProductSortCreatedAt))),
		Limit:  parseQueryInt(c, "limit", 20),
		Offset: parseQueryInt(c, "offset", 0),
	}
	opts.SortAscending = c.Query("order") == "asc"

	if status := c.Query("status"); status != "" {
		s := model.ProductStatus(status)
		opts.Status = &s
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		if id, err := strconv.ParseUint(categoryID, 10, 32); err == nil {
			v := uint(id)
			opts.CategoryID = &v
		}
	}
	if collectionID := c.Query("collection_id"); collectionID != "" {
		if id, err := strconv.ParseUint(collectionID, 10, 32); err == nil {
			v := uint(id)
			opts.CollectionID = &v
		}
	}
	return opts
}

// respondProductError maps catalog service errors onto HTTP responses.
func respondProductError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrMediaNotFound):
		apperrors.RespondWithError(c, http.StatusUnprocessableEntity, apperrors.ProductMediaNotFound, "Media item does not belong to this product")
	case errors.Is(err, service.ErrOptionNotFound):
		apperrors.RespondWithError(c, http.StatusUnprocessableEntity, apperrors.ProductOptionNotFound, "Option does not belong to this product")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.RespondWithError(c, http.StatusUnprocessableEntity, apperrors.ProductVariantNotFound, "Variant does not belong to this product")
	case errors.Is(err, service.ErrCollectionNotFound):
		apperrors.RespondWithError(c, http.StatusUnprocessableEntity, apperrors.CollectionNotFound, "One or more collections do not exist")
	case errors.Is(err, service.ErrOptionValueNotFound):
		apperrors.RespondWithError(c, http.StatusUnprocessableEntity, apperrors.ProductValueUnresolved, "Variant references an option value this product does not define")
	case errors.Is(err, service.ErrVariantOptionsRequired):
		apperrors.RespondWithError(c, http.StatusUnprocessableEntity, apperrors.ProductOptionsRequired, "New variants must select their option values")
	case errors.Is(err, service.ErrMediaFileRequired):
		apperrors.RespondWithError(c, http.StatusUnprocessableEntity, apperrors.ProductFileRequired, "New media items must include a file")
	case errors.Is(err, service.ErrStorageFailure):
		log.Error("Media storage failure", err, nil)
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.StorageWriteFailed, "Failed to store media file")
	default:
		log.Error("Catalog operation failed", err, nil)
		info := apperrors.ParseError(err, "product")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}
